package issues

import "contribhub/internal/domain"

// PageSize is the number of issues shown per page.
const PageSize = 10

// Ellipsis marks a collapsed run of page numbers in a summary.
const Ellipsis = -1

// TotalPages returns the number of pages needed for n issues.
func TotalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// ClampPage bounds a requested page number to [1, totalPages]. The paginator
// itself never receives an out-of-range page; callers clamp first.
func ClampPage(page, totalPages int) int {
	if page < 1 || totalPages < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Page returns the 1-indexed page slice of list, clamped to its bounds.
func Page(list []domain.Issue, page int) []domain.Issue {
	start := (page - 1) * PageSize
	if start < 0 || start >= len(list) {
		return nil
	}
	end := start + PageSize
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

// PageNumbers builds the page-index summary for the navigation controls.
// With four pages or fewer every page is listed. Otherwise the summary is
// page 1, the current page and its immediate neighbors, and the last page,
// with each gap collapsed into a single Ellipsis marker.
func PageNumbers(totalPages, current int) []int {
	if totalPages <= 0 {
		return nil
	}
	if totalPages <= 4 {
		pages := make([]int, totalPages)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	start := max(2, current-1)
	end := min(totalPages-1, current+1)

	pages := []int{1}
	if start > 2 {
		pages = append(pages, Ellipsis)
	}
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	if end < totalPages-1 {
		pages = append(pages, Ellipsis)
	}
	return append(pages, totalPages)
}
