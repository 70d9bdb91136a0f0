package main

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"contribhub/internal/backend"
	"contribhub/internal/bookmarks"
	"contribhub/internal/issues"
	"contribhub/internal/session"
)

// Shared engine state. Views read through these; the synchronizer and
// gate keep them consistent across navigation.
var (
	api      = backend.NewClient("")
	sessions = session.NewGate(api)
	saved    = bookmarks.NewSynchronizer(api, sessions)
	catalog  = issues.NewRepository(api)
)

func main() {
	app.Route("/", func() app.Composer { return &issuesView{} })
	app.Route("/issues", func() app.Composer { return &issuesView{} })
	app.Route("/bookmarks", func() app.Composer { return &bookmarksView{} })
	app.Route("/dashboard", func() app.Composer { return &dashboardView{} })
	app.Route("/login", func() app.Composer { return &loginView{} })
	app.RunWhenOnBrowser()
}
