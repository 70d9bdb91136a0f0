package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"contribhub/internal/domain"
)

// Client calls the ContribHub API over HTTP. In the browser the base URL is
// empty, requests are same-origin and the session cookie rides along with
// every call; no token is held in memory.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs an API client. baseURL may be empty for same-origin
// requests from the WASM build.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// ListIssues fetches the full issue catalog.
func (c *Client) ListIssues(ctx context.Context) ([]domain.Issue, error) {
	var resp issuesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/issues", nil, &resp, false); err != nil {
		return nil, err
	}
	return resp.Issues, nil
}

// ListBookmarks fetches the signed-in user's bookmarked issues. A 401 is
// reported as ErrUnauthorized.
func (c *Client) ListBookmarks(ctx context.Context) ([]domain.Issue, error) {
	var resp issuesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/bookmarks", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Issues, nil
}

// AddBookmark bookmarks an issue for the signed-in user.
func (c *Client) AddBookmark(ctx context.Context, issueID int) error {
	payload := map[string]int{"issueId": issueID}
	return c.doJSON(ctx, http.MethodPost, "/api/bookmarks", payload, nil, true)
}

// RemoveBookmark removes a bookmark for the signed-in user.
func (c *Client) RemoveBookmark(ctx context.Context, issueID int) error {
	path := fmt.Sprintf("/api/bookmarks/%d", issueID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, true)
}

// CurrentUser reads the authentication state. It returns (nil, nil) when the
// backend reports an anonymous session.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var resp userResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/user", nil, &resp, false); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/logout", nil, nil, true)
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any, authGated bool) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && authGated {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return &StatusError{Status: resp.StatusCode, Message: errResp.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

type issuesResponse struct {
	Issues []domain.Issue `json:"issues"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}
