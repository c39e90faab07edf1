package commands

import (
	"fmt"

	"github.com/gerunddev/orgsocial/internal/feed"
	"github.com/gerunddev/orgsocial/internal/notifications"
	"github.com/gerunddev/orgsocial/internal/styles"
)

// Notifications prints mentions of the user and replies to their posts
func Notifications(args []string) {
	cfg := mustLoadConfig()
	log, cleanup := newLogger(cfg)
	defer cleanup()

	doc := loadUserDocument(cfg)
	fetched := fetchFollows(cfg, doc, log)
	timeline := feed.Combined(doc, fetched)

	nf := notifications.Build(doc.Profile, doc.Posts, timeline.Posts())
	if nf.IsEmpty() {
		fmt.Println(styles.DimStyle.Render("No notifications"))
		return
	}

	limit := argInt(args, "--limit", nf.Len())
	for _, n := range nf.Recent(limit) {
		label := styles.HighlightStyle.Render("[" + n.Kind.String() + "]")
		fmt.Println(label + " " + postHeader(n.Post))
		fmt.Println(n.Post.Summary(120))
		fmt.Println()
	}
}
