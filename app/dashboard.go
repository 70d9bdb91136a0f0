package main

import (
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"contribhub/internal/domain"
)

type dashboardView struct {
	app.Compo

	loading       bool
	user          domain.User
	confirmLogout bool
}

func (v *dashboardView) OnInit() {
	v.loading = true
}

func (v *dashboardView) OnMount(ctx app.Context) {
	ctx.Async(func() {
		user, ok, err := sessions.Refresh(ctx)
		ctx.Dispatch(func(ctx app.Context) {
			if err != nil || !ok {
				ctx.Navigate("/login")
				return
			}
			v.loading = false
			v.user = user
		})
	})
}

func (v *dashboardView) onLogout(ctx app.Context, e app.Event) {
	ctx.Async(func() {
		// Local state is already anonymous even if the network call fails.
		_ = sessions.Logout(ctx)
		ctx.Dispatch(func(ctx app.Context) { ctx.Navigate("/") })
	})
}

func (v *dashboardView) Render() app.UI {
	if v.loading {
		return app.Div().Class("page").Body(
			navbar(true),
			app.Div().Class("loading-overlay").Body(
				app.Div().Class("loading-spinner"),
			),
		)
	}

	u := v.user
	return app.Div().Class("page").Body(
		navbar(true),
		app.Main().Class("content").Body(
			app.Div().Class("profile-card glass-card").Body(
				app.Img().Class("profile-avatar").Src(u.AvatarURL).Alt(u.Login),
				app.Div().Class("profile-info").Body(
					app.H1().Text(u.DisplayName()),
					app.P().Class("profile-login").Text("@"+u.Login),
					app.If(u.Bio != "", func() app.UI {
						return app.P().Class("profile-bio").Text(u.Bio)
					}),
					app.Div().Class("profile-details").Body(
						app.If(u.Company != "", func() app.UI {
							return app.Span().Text(u.Company)
						}),
						app.If(u.Location != "", func() app.UI {
							return app.Span().Text(u.Location)
						}),
						app.Span().Text("Joined "+u.JoinedAt.Format("January 2006")),
					),
				),
			),

			app.Div().Class("stats-row").Body(
				statCard("Public repos", u.PublicRepos),
				statCard("Followers", u.Followers),
				statCard("Following", u.Following),
				statCard("Bookmarks", saved.Len()),
			),

			app.Div().Class("dashboard-actions").Body(
				app.If(v.confirmLogout, func() app.UI {
					return app.Div().Class("logout-confirm").Body(
						app.Span().Text("Sign out of ContribHub?"),
						app.Button().Class("btn btn-danger").Text("Sign out").OnClick(v.onLogout),
						app.Button().Class("btn").Text("Cancel").
							OnClick(func(ctx app.Context, e app.Event) { v.confirmLogout = false }),
					)
				}).Else(func() app.UI {
					return app.Button().Class("btn").Text("Sign out").
						OnClick(func(ctx app.Context, e app.Event) { v.confirmLogout = true })
				}),
			),
		),
	)
}

func statCard(label string, value int) app.UI {
	return app.Div().Class("stat-card glass-card").Body(
		app.Div().Class("stat-value").Text(fmt.Sprintf("%d", value)),
		app.Div().Class("stat-label").Text(label),
	)
}
