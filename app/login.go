package main

import "github.com/maxence-charriere/go-app/v10/pkg/app"

type loginView struct {
	app.Compo
}

func (v *loginView) OnMount(ctx app.Context) {
	// Already signed in: nothing to do here.
	if _, ok := sessions.Current(); ok {
		ctx.Navigate("/dashboard")
	}
}

func (v *loginView) Render() app.UI {
	return app.Div().Class("page").Body(
		navbar(false),
		app.Main().Class("content login-content").Body(
			app.Div().Class("login-card glass-card").Body(
				app.H1().Text("Sign in to ContribHub"),
				app.P().Text("Bookmark issues and track your open source contributions."),
				app.A().Class("btn btn-github").Href("/auth/github").Text("Continue with GitHub"),
			),
		),
	)
}
