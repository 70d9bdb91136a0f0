package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"contribhub/internal/backend"
	"contribhub/internal/bookmarks"
	"contribhub/internal/domain"
	"contribhub/internal/issues"
)

var difficultyOptions = []string{
	issues.FilterAll,
	string(domain.DifficultyBeginner),
	string(domain.DifficultyIntermediate),
	string(domain.DifficultyUnknown),
}

var sortOptions = []struct {
	mode  issues.SortMode
	label string
}{
	{issues.SortCommentsDesc, "Most comments"},
	{issues.SortCommentsAsc, "Fewest comments"},
	{issues.SortNewest, "Newest"},
	{issues.SortOldest, "Oldest"},
}

func sortLabel(mode issues.SortMode) string {
	for _, o := range sortOptions {
		if o.mode == mode {
			return o.label
		}
	}
	return "Most comments"
}

type issuesView struct {
	app.Compo

	loading bool
	loadErr string
	authed  bool
	notice  string

	search       string
	difficulty   string
	sortBy       issues.SortMode
	page         int
	showDiffMenu bool
	showSortMenu bool
}

func (v *issuesView) OnInit() {
	v.loading = true
	v.difficulty = issues.FilterAll
	v.sortBy = issues.SortCommentsDesc
	v.page = 1
}

func (v *issuesView) OnMount(ctx app.Context) {
	saved.Notify(func() {
		ctx.Dispatch(func(app.Context) {})
	})

	ctx.Async(func() {
		_, err := catalog.Refresh(ctx)
		ctx.Dispatch(func(app.Context) {
			v.loading = false
			if err != nil && !errors.Is(err, backend.ErrSuperseded) {
				v.loadErr = "Could not load the issue catalog."
			}
		})
	})

	ctx.Async(func() {
		_, ok, err := sessions.Refresh(ctx)
		if err != nil || !ok {
			ctx.Dispatch(func(app.Context) { v.authed = false })
			return
		}
		_, _ = saved.Refresh(ctx)
		ctx.Dispatch(func(app.Context) { v.authed = true })
	})
}

func (v *issuesView) OnDismount() {
	saved.Notify(nil)
}

func (v *issuesView) query() issues.Query {
	return issues.Query{
		Search:     v.search,
		Difficulty: v.difficulty,
		Sort:       v.sortBy,
	}
}

// refine re-derives the view after any filter or sort change. The page
// always snaps back to the first one.
func (v *issuesView) refine(mutate func()) {
	mutate()
	v.page = 1
}

func (v *issuesView) onSearch(ctx app.Context, e app.Event) {
	v.refine(func() { v.search = ctx.JSSrc().Get("value").String() })
}

func (v *issuesView) pickDifficulty(d string) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		e.Call("stopPropagation")
		v.refine(func() { v.difficulty = d })
		v.showDiffMenu = false
	}
}

func (v *issuesView) pickSort(mode issues.SortMode) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		e.Call("stopPropagation")
		v.refine(func() { v.sortBy = mode })
		v.showSortMenu = false
	}
}

func (v *issuesView) onToggle(id int) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		e.PreventDefault()
		e.Call("stopPropagation")

		if _, ok := sessions.Current(); !ok {
			ctx.Navigate("/login")
			return
		}

		ctx.Async(func() {
			_, err := saved.Toggle(ctx, id)
			switch {
			case err == nil, errors.Is(err, bookmarks.ErrToggleInProgress):
				return
			case errors.Is(err, bookmarks.ErrNotAuthenticated):
				ctx.Dispatch(func(ctx app.Context) { ctx.Navigate("/login") })
			default:
				ctx.Dispatch(func(app.Context) {
					v.notice = "Saving the bookmark failed. Please try again."
				})
			}
		})
	}
}

func (v *issuesView) Render() app.UI {
	if v.loading {
		return app.Div().Class("page").Body(
			navbar(v.authed),
			app.Div().Class("loading-overlay").Body(
				app.Div().Class("loading-spinner"),
			),
		)
	}

	filtered := issues.Apply(catalog.Cached(), v.query())
	totalPages := issues.TotalPages(len(filtered))
	page := issues.ClampPage(v.page, totalPages)
	visible := issues.Page(filtered, page)

	return app.Div().Class("page").OnClick(func(ctx app.Context, e app.Event) {
		v.showDiffMenu = false
		v.showSortMenu = false
	}).Body(
		navbar(v.authed),
		app.Main().Class("content").Body(
			app.H1().Text("Open Issues"),
			app.If(v.loadErr != "", func() app.UI {
				return app.Div().Class("banner banner-error").Text(v.loadErr)
			}),
			app.If(v.notice != "", func() app.UI {
				return app.Div().Class("banner banner-warn").Body(
					app.Span().Text(v.notice),
					app.Button().Class("banner-dismiss").Text("×").
						OnClick(func(ctx app.Context, e app.Event) { v.notice = "" }),
				)
			}),

			app.Div().Class("toolbar").Body(
				app.Input().
					Class("search-input").
					Type("search").
					Placeholder("Search title, description or repo...").
					Value(v.search).
					OnInput(v.onSearch),
				v.renderDifficultyMenu(),
				v.renderSortMenu(),
			),

			app.P().Class("result-count").Text(resultCount(len(filtered))),

			app.If(len(filtered) == 0, func() app.UI {
				return app.Div().Class("empty-state").Text("No issues match your filters.")
			}).Else(func() app.UI {
				return app.Div().Class("issue-list").Body(
					app.Range(visible).Slice(func(i int) app.UI {
						return v.renderIssue(visible[i])
					}),
				)
			}),

			v.renderPagination(page, totalPages),
		),
	)
}

func (v *issuesView) renderDifficultyMenu() app.UI {
	label := "All difficulties"
	if v.difficulty != issues.FilterAll {
		label = titleCase(v.difficulty)
	}
	return app.Div().Class("dropdown").Body(
		app.Button().Class("dropdown-toggle").Text(label).
			OnClick(func(ctx app.Context, e app.Event) {
				e.Call("stopPropagation")
				v.showDiffMenu = !v.showDiffMenu
				v.showSortMenu = false
			}),
		app.If(v.showDiffMenu, func() app.UI {
			return app.Div().Class("dropdown-menu").Body(
				app.Range(difficultyOptions).Slice(func(i int) app.UI {
					d := difficultyOptions[i]
					text := titleCase(d)
					if d == issues.FilterAll {
						text = "All difficulties"
					}
					cls := "dropdown-item"
					if d == v.difficulty {
						cls += " active"
					}
					return app.Button().Class(cls).Text(text).OnClick(v.pickDifficulty(d))
				}),
			)
		}),
	)
}

func (v *issuesView) renderSortMenu() app.UI {
	return app.Div().Class("dropdown").Body(
		app.Button().Class("dropdown-toggle").Text(sortLabel(v.sortBy)).
			OnClick(func(ctx app.Context, e app.Event) {
				e.Call("stopPropagation")
				v.showSortMenu = !v.showSortMenu
				v.showDiffMenu = false
			}),
		app.If(v.showSortMenu, func() app.UI {
			return app.Div().Class("dropdown-menu").Body(
				app.Range(sortOptions).Slice(func(i int) app.UI {
					o := sortOptions[i]
					cls := "dropdown-item"
					if o.mode == v.sortBy {
						cls += " active"
					}
					return app.Button().Class(cls).Text(o.label).OnClick(v.pickSort(o.mode))
				}),
			)
		}),
	)
}

func (v *issuesView) renderIssue(is domain.Issue) app.UI {
	bookmarkLabel := "Save"
	bookmarkClass := "bookmark-btn"
	if saved.Contains(is.ID) {
		bookmarkLabel = "Saved"
		bookmarkClass += " saved"
	}

	return app.Div().Class("issue-card glass-card").Body(
		app.Div().Class("issue-header").Body(
			app.A().Class("issue-title").Href(is.URL).Target("_blank").Text(is.Title),
			app.Button().Class(bookmarkClass).Text(bookmarkLabel).OnClick(v.onToggle(is.ID)),
		),
		app.P().Class("issue-description").Text(truncateWords(is.Description, 12)),
		app.Div().Class("issue-meta").Body(
			app.Span().Class("issue-repo").Text(is.Repo),
			app.Span().Class("difficulty difficulty-"+string(is.Difficulty)).Text(string(is.Difficulty)),
			app.Span().Class("issue-comments").Text(fmt.Sprintf("%d comments", is.Comments)),
		),
	)
}

func (v *issuesView) renderPagination(page, totalPages int) app.UI {
	if totalPages <= 1 {
		return app.Div()
	}

	numbers := issues.PageNumbers(totalPages, page)
	return app.Div().Class("pagination").Body(
		app.Button().Class("page-btn").Text("‹").Disabled(page == 1).
			OnClick(func(ctx app.Context, e app.Event) { v.page = page - 1 }),
		app.Range(numbers).Slice(func(i int) app.UI {
			n := numbers[i]
			if n == issues.Ellipsis {
				return app.Span().Class("page-ellipsis").Text("…")
			}
			cls := "page-btn"
			if n == page {
				cls += " current"
			}
			return app.Button().Class(cls).Text(fmt.Sprintf("%d", n)).
				OnClick(func(ctx app.Context, e app.Event) { v.page = n })
		}),
		app.Button().Class("page-btn").Text("›").Disabled(page == totalPages).
			OnClick(func(ctx app.Context, e app.Event) { v.page = page + 1 }),
	)
}

func resultCount(n int) string {
	if n == 1 {
		return "1 issue found"
	}
	return fmt.Sprintf("%d issues found", n)
}

func truncateWords(s string, limit int) string {
	words := strings.Fields(s)
	if len(words) <= limit {
		return s
	}
	return strings.Join(words[:limit], " ") + "..."
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
