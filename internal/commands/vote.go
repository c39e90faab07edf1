package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/gerunddev/orgsocial/internal/compose"
	"github.com/gerunddev/orgsocial/internal/feed"
	"github.com/gerunddev/orgsocial/internal/poll"
	"github.com/gerunddev/orgsocial/internal/social"
	"github.com/gerunddev/orgsocial/internal/styles"
)

// Vote casts a vote on a poll post, or shows the current tally
func Vote(args []string) {
	cfg := mustLoadConfig()
	log, cleanup := newLogger(cfg)
	defer cleanup()

	target := argValue(args, "--poll")
	if target == "" {
		fmt.Println(styles.ErrorStyle.Render("✗ Missing --poll <source#id>"))
		os.Exit(1)
	}

	doc := loadUserDocument(cfg)
	fetched := fetchFollows(cfg, doc, log)
	timeline := feed.Combined(doc, fetched)

	pollPost := findPost(timeline, target)
	if pollPost == nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Poll post not found: " + target))
		os.Exit(1)
	}

	p := poll.ParsePost(pollPost)
	if p == nil {
		fmt.Println(styles.ErrorStyle.Render("✗ That post is not a poll"))
		os.Exit(1)
	}

	option := argValue(args, "--option")
	if option == "" {
		printTally(timeline, pollPost, target)
		return
	}

	if !p.IsActive() {
		fmt.Println(styles.ErrorStyle.Render("✗ Poll is not active (" + p.Status.String() + ")"))
		os.Exit(1)
	}
	if !p.AddVoteByText(option) {
		fmt.Println(styles.ErrorStyle.Render("✗ No such option: " + option))
		for _, opt := range p.Options {
			fmt.Println(styles.DimStyle.Render("  - " + opt.Text))
		}
		os.Exit(1)
	}

	vote := poll.NewVoteReply(target, option, argValue(args, "--content"))
	vote.SetClient(cfg.Client)

	appender := compose.NewAppender(cfg.FeedFile, log)
	if _, err := appender.Append(vote); err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Failed to save vote: " + err.Error()))
		os.Exit(1)
	}

	fmt.Println(styles.SuccessStyle.Render("✓ Voted for " + option))
}

func printTally(timeline *feed.Feed, pollPost *social.Post, target string) {
	replies := repliesTo(timeline, target)
	tally := poll.CountVotes(pollPost, replies)
	if tally == nil {
		return
	}

	fmt.Println(styles.TitleStyle.Render(tally.Summary()))
	for _, r := range tally.Results() {
		fmt.Printf("  %-30s %3d (%.1f%%)\n", r.Text, r.Votes, r.Percent)
	}
}

func findPost(timeline *feed.Feed, fullID string) *social.Post {
	for _, p := range timeline.Posts() {
		if p.FullID() == fullID {
			return p
		}
	}
	// Fall back to the trailing id segment, matching reply resolution.
	seg := fullID
	if i := strings.LastIndex(fullID, "#"); i >= 0 {
		seg = fullID[i+1:]
	}
	for _, p := range timeline.Posts() {
		if p.ID() == seg {
			return p
		}
	}
	return nil
}

func repliesTo(timeline *feed.Feed, target string) []*social.Post {
	seg := target
	if i := strings.LastIndex(target, "#"); i >= 0 {
		seg = target[i+1:]
	}

	var out []*social.Post
	for _, p := range timeline.Posts() {
		replyTo := p.ReplyTo()
		if replyTo == "" {
			continue
		}
		replySeg := replyTo
		if i := strings.LastIndex(replyTo, "#"); i >= 0 {
			replySeg = replyTo[i+1:]
		}
		if replyTo == target || replySeg == seg {
			out = append(out, p)
		}
	}
	return out
}
