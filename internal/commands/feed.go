package commands

import (
	"fmt"

	"github.com/gerunddev/orgsocial/internal/feed"
	"github.com/gerunddev/orgsocial/internal/poll"
	"github.com/gerunddev/orgsocial/internal/styles"
)

// Feed fetches all feeds and prints the merged timeline, newest first
func Feed(args []string) {
	cfg := mustLoadConfig()
	log, cleanup := newLogger(cfg)
	defer cleanup()

	doc := loadUserDocument(cfg)
	fetched := fetchFollows(cfg, doc, log)

	timeline := feed.Combined(doc, fetched)
	log.FeedAssembled(timeline.Len(), len(timeline.Sources()))

	posts := timeline.Posts()
	if source := argValue(args, "--source"); source != "" {
		posts = timeline.FromSource(source)
	}

	limit := argInt(args, "--limit", 20)
	if limit < len(posts) {
		posts = posts[:limit]
	}

	if len(posts) == 0 {
		fmt.Println(styles.DimStyle.Render("No posts"))
		return
	}

	for _, post := range posts {
		fmt.Println(postHeader(post))
		fmt.Println(post.Content())

		if p := poll.ParsePost(post); p != nil {
			fmt.Println(styles.HighlightStyle.Render(p.Summary()))
		}
		fmt.Println()
	}
}
