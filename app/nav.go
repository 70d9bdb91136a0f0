package main

import "github.com/maxence-charriere/go-app/v10/pkg/app"

func navbar(authed bool) app.UI {
	return app.Nav().Class("navbar").Body(
		app.A().Class("navbar-brand").Href("/").Text("ContribHub"),
		app.Div().Class("navbar-links").Body(
			app.A().Href("/issues").Text("Issues"),
			app.If(authed, func() app.UI {
				return app.A().Href("/bookmarks").Text("Bookmarks")
			}),
			app.If(authed, func() app.UI {
				return app.A().Href("/dashboard").Text("Dashboard")
			}).Else(func() app.UI {
				return app.A().Class("navbar-login").Href("/login").Text("Sign in")
			}),
		),
	)
}
