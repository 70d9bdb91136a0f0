package issues

import (
	"reflect"
	"testing"

	"contribhub/internal/domain"
)

func TestPageExactness(t *testing.T) {
	list := make([]domain.Issue, 25)
	for i := range list {
		list[i] = domain.Issue{ID: i + 1}
	}

	total := TotalPages(len(list))
	if total != 3 {
		t.Fatalf("TotalPages(25) = %d, want 3", total)
	}

	// Concatenating all pages reconstructs the list exactly once.
	var rebuilt []domain.Issue
	for p := 1; p <= total; p++ {
		page := Page(list, p)
		if p < total && len(page) != PageSize {
			t.Errorf("page %d has %d issues, want %d", p, len(page), PageSize)
		}
		rebuilt = append(rebuilt, page...)
	}
	if !reflect.DeepEqual(rebuilt, list) {
		t.Error("concatenated pages do not reconstruct the list")
	}

	if got := Page(list, 4); got != nil {
		t.Errorf("page past the end = %v, want nil", got)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 0}, {1, 1}, {10, 1}, {11, 2}, {20, 2}, {21, 3},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.n); got != tt.want {
			t.Errorf("TotalPages(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct{ page, total, want int }{
		{0, 5, 1},
		{-3, 5, 1},
		{1, 5, 1},
		{5, 5, 5},
		{9, 5, 5},
		{2, 0, 1},
	}
	for _, tt := range tests {
		if got := ClampPage(tt.page, tt.total); got != tt.want {
			t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.total, got, tt.want)
		}
	}
}

func TestPageNumbers(t *testing.T) {
	tests := []struct {
		name           string
		total, current int
		want           []int
	}{
		{"no pages", 0, 1, nil},
		{"single page", 1, 1, []int{1}},
		{"four pages lists all", 4, 2, []int{1, 2, 3, 4}},
		{"middle of ten", 10, 5, []int{1, Ellipsis, 4, 5, 6, Ellipsis, 10}},
		{"start of ten", 10, 1, []int{1, 2, Ellipsis, 10}},
		{"second of ten", 10, 2, []int{1, 2, 3, Ellipsis, 10}},
		{"end of ten", 10, 10, []int{1, Ellipsis, 9, 10}},
		{"five pages first", 5, 1, []int{1, 2, Ellipsis, 5}},
		{"five pages last", 5, 5, []int{1, Ellipsis, 4, 5}},
		{"five pages middle collapses nothing", 5, 3, []int{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageNumbers(tt.total, tt.current)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PageNumbers(%d, %d) = %v, want %v", tt.total, tt.current, got, tt.want)
			}
		})
	}
}
