package main

import (
	"errors"
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"contribhub/internal/backend"
	"contribhub/internal/bookmarks"
	"contribhub/internal/domain"
	"contribhub/internal/issues"
)

type bookmarksView struct {
	app.Compo

	loading bool
	loadErr string
	notice  string
	list    []domain.Issue

	difficulty   string
	showDiffMenu bool
	page         int
}

func (v *bookmarksView) OnInit() {
	v.loading = true
	v.difficulty = issues.FilterAll
	v.page = 1
}

func (v *bookmarksView) OnMount(ctx app.Context) {
	saved.Notify(func() {
		ctx.Dispatch(func(app.Context) {})
	})

	ctx.Async(func() {
		if _, ok := sessions.Current(); !ok {
			if _, ok, err := sessions.Refresh(ctx); err != nil || !ok {
				ctx.Dispatch(func(ctx app.Context) { ctx.Navigate("/login") })
				return
			}
		}

		list, err := saved.Refresh(ctx)
		ctx.Dispatch(func(ctx app.Context) {
			v.loading = false
			switch {
			case err == nil:
				v.list = list
			case errors.Is(err, bookmarks.ErrNotAuthenticated),
				errors.Is(err, backend.ErrUnauthorized):
				ctx.Navigate("/login")
			case errors.Is(err, backend.ErrSuperseded):
			default:
				v.loadErr = "Could not load your bookmarks."
			}
		})
	})
}

func (v *bookmarksView) OnDismount() {
	saved.Notify(nil)
}

func (v *bookmarksView) onRemove(id int) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		e.PreventDefault()
		ctx.Async(func() {
			now, err := saved.Toggle(ctx, id)
			switch {
			case err == nil && !now:
				ctx.Dispatch(func(app.Context) {
					kept := v.list[:0:0]
					for _, is := range v.list {
						if is.ID != id {
							kept = append(kept, is)
						}
					}
					v.list = kept
				})
			case errors.Is(err, bookmarks.ErrToggleInProgress):
			case errors.Is(err, bookmarks.ErrNotAuthenticated):
				ctx.Dispatch(func(ctx app.Context) { ctx.Navigate("/login") })
			case err != nil:
				ctx.Dispatch(func(app.Context) {
					v.notice = "Removing the bookmark failed. Please try again."
				})
			}
		})
	}
}

func (v *bookmarksView) Render() app.UI {
	if v.loading {
		return app.Div().Class("page").Body(
			navbar(true),
			app.Div().Class("loading-overlay").Body(
				app.Div().Class("loading-spinner"),
			),
		)
	}

	// Bookmarks keep their server order; only the difficulty filter applies.
	filtered := issues.Apply(v.list, issues.Query{Difficulty: v.difficulty})
	totalPages := issues.TotalPages(len(filtered))
	page := issues.ClampPage(v.page, totalPages)
	visible := issues.Page(filtered, page)

	return app.Div().Class("page").OnClick(func(ctx app.Context, e app.Event) {
		v.showDiffMenu = false
	}).Body(
		navbar(true),
		app.Main().Class("content").Body(
			app.H1().Text("Your Bookmarks"),
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

			app.Div().Class("toolbar").Body(v.renderDifficultyMenu()),

			app.If(len(filtered) == 0, func() app.UI {
				return app.Div().Class("empty-state").Body(
					app.P().Text("No bookmarks yet."),
					app.A().Class("link").Href("/issues").Text("Browse open issues"),
				)
			}).Else(func() app.UI {
				return app.Div().Class("issue-list").Body(
					app.Range(visible).Slice(func(i int) app.UI {
						return v.renderBookmark(visible[i])
					}),
				)
			}),

			v.renderPagination(page, totalPages),
		),
	)
}

func (v *bookmarksView) renderPagination(page, totalPages int) app.UI {
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

func (v *bookmarksView) renderDifficultyMenu() app.UI {
	label := "All difficulties"
	if v.difficulty != issues.FilterAll {
		label = titleCase(v.difficulty)
	}
	return app.Div().Class("dropdown").Body(
		app.Button().Class("dropdown-toggle").Text(label).
			OnClick(func(ctx app.Context, e app.Event) {
				e.Call("stopPropagation")
				v.showDiffMenu = !v.showDiffMenu
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
					return app.Button().Class(cls).Text(text).
						OnClick(func(ctx app.Context, e app.Event) {
							e.Call("stopPropagation")
							v.difficulty = d
							v.page = 1
							v.showDiffMenu = false
						})
				}),
			)
		}),
	)
}

func (v *bookmarksView) renderBookmark(is domain.Issue) app.UI {
	return app.Div().Class("issue-card glass-card").Body(
		app.Div().Class("issue-header").Body(
			app.A().Class("issue-title").Href(is.URL).Target("_blank").Text(is.Title),
			app.Button().Class("bookmark-btn saved").Text("Remove").OnClick(v.onRemove(is.ID)),
		),
		app.P().Class("issue-description").Text(truncateWords(is.Description, 12)),
		app.Div().Class("issue-meta").Body(
			app.Span().Class("issue-repo").Text(is.Repo),
			app.Span().Class("difficulty difficulty-"+string(is.Difficulty)).Text(string(is.Difficulty)),
			app.Span().Class("issue-comments").Text(fmt.Sprintf("%d comments", is.Comments)),
		),
	)
}
