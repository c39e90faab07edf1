package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/gerunddev/orgsocial/internal/compose"
	"github.com/gerunddev/orgsocial/internal/styles"
)

// Post appends a new post to the user's feed file
func Post(args []string) {
	cfg := mustLoadConfig()
	log, cleanup := newLogger(cfg)
	defer cleanup()

	content := argValue(args, "--content")
	if content == "" {
		fmt.Println(styles.ErrorStyle.Render("✗ Missing --content"))
		os.Exit(1)
	}

	opts := compose.Options{
		Mood:    argValue(args, "--mood"),
		Lang:    argValue(args, "--lang"),
		PollEnd: argValue(args, "--poll-end"),
	}
	if tags := argValue(args, "--tags"); tags != "" {
		opts.Tags = strings.Fields(tags)
	}

	post := compose.NewPost(content, cfg.Client, opts)

	appender := compose.NewAppender(cfg.FeedFile, log)
	preview, err := appender.Append(post)
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Failed to save post: " + err.Error()))
		os.Exit(1)
	}

	fmt.Println(styles.SuccessStyle.Render("✓ Posted: " + preview))
	fmt.Println(styles.DimStyle.Render("  id " + post.ID()))
}

// Reply appends a reply to another post
func Reply(args []string) {
	cfg := mustLoadConfig()
	log, cleanup := newLogger(cfg)
	defer cleanup()

	target := argValue(args, "--to")
	if target == "" {
		fmt.Println(styles.ErrorStyle.Render("✗ Missing --to <source#id>"))
		os.Exit(1)
	}
	content := argValue(args, "--content")
	if content == "" {
		fmt.Println(styles.ErrorStyle.Render("✗ Missing --content"))
		os.Exit(1)
	}

	var tags []string
	if t := argValue(args, "--tags"); t != "" {
		tags = strings.Fields(t)
	}

	reply := compose.NewReply(content, cfg.Client, target, tags, argValue(args, "--mood"))

	appender := compose.NewAppender(cfg.FeedFile, log)
	preview, err := appender.Append(reply)
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Failed to save reply: " + err.Error()))
		os.Exit(1)
	}

	fmt.Println(styles.SuccessStyle.Render("✓ Replied: " + preview))
}
