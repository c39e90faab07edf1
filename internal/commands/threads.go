package commands

import (
	"fmt"
	"strings"

	"github.com/gerunddev/orgsocial/internal/blocks"
	"github.com/gerunddev/orgsocial/internal/feed"
	"github.com/gerunddev/orgsocial/internal/state"
	"github.com/gerunddev/orgsocial/internal/styles"
	"github.com/gerunddev/orgsocial/internal/threading"
)

// Threads fetches all feeds and prints the conversation trees
func Threads(args []string) {
	cfg := mustLoadConfig()
	log, cleanup := newLogger(cfg)
	defer cleanup()

	doc := loadUserDocument(cfg)
	fetched := fetchFollows(cfg, doc, log)

	timeline := feed.Combined(doc, fetched)
	log.FeedAssembled(timeline.Len(), len(timeline.Sources()))

	st, err := state.Load(state.DefaultPath())
	if err != nil {
		log.StateError("load", err)
		st = state.NewState()
	}

	forest := threading.Build(timeline.Posts())
	if forest.Len() == 0 {
		fmt.Println(styles.DimStyle.Render("No conversations yet"))
		return
	}

	limit := argInt(args, "--limit", forest.Len())
	for i, root := range forest.Roots() {
		if i >= limit {
			break
		}
		printThread(root, st)
		fmt.Println()
	}
}

func printThread(node *threading.Node, st *state.State) {
	indent := strings.Repeat("  ", node.Depth)

	if node.IsPlaceholder {
		fmt.Println(indent + styles.PlaceholderStyle.Render(node.Post.Content()))
	} else {
		fmt.Println(indent + postHeader(node.Post))
		content, _ := blocks.ApplyCollapse(node.Post.Content(), st.Overlay(node.Post.Source()))
		for _, line := range strings.Split(content, "\n") {
			if strings.HasPrefix(line, "[+]") {
				fmt.Println(indent + styles.CollapsedStyle.Render(line))
			} else {
				fmt.Println(indent + line)
			}
		}
	}

	for _, child := range node.Children {
		printThread(child, st)
	}
}
