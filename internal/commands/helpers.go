package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gerunddev/orgsocial/internal/config"
	"github.com/gerunddev/orgsocial/internal/logger"
	"github.com/gerunddev/orgsocial/internal/network"
	"github.com/gerunddev/orgsocial/internal/social"
	"github.com/gerunddev/orgsocial/internal/styles"
)

// mustLoadConfig loads configuration or exits with a styled error
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Failed to load config: " + err.Error()))
		os.Exit(1)
	}
	return cfg
}

// newLogger opens the configured log file, falling back to stderr
func newLogger(cfg *config.Config) (*logger.Logger, func()) {
	if cfg.LogFile != "" {
		if l, cleanup, err := logger.NewFileLogger(cfg.LogFile); err == nil {
			return l, cleanup
		}
	}
	return logger.New(os.Stderr), func() {}
}

// loadUserDocument reads and parses the user's feed file
func loadUserDocument(cfg *config.Config) *social.Document {
	data, err := os.ReadFile(cfg.FeedFile)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println(styles.ErrorStyle.Render("✗ Feed file not found: " + cfg.FeedFile))
			fmt.Println(styles.DimStyle.Render("  Create it with 'orgsocial post' or point feed_file at an existing one"))
		} else {
			fmt.Println(styles.ErrorStyle.Render("✗ Failed to read feed file: " + err.Error()))
		}
		os.Exit(1)
	}
	doc := social.ParseDocument(string(data), "")
	if cfg.AutoParse {
		for _, post := range doc.Posts {
			post.SetAutoParse(true)
		}
	}
	return doc
}

// fetchFollows downloads every followed feed
func fetchFollows(cfg *config.Config, doc *social.Document, log *logger.Logger) []*social.Document {
	fetcher := network.NewFetcher(cfg.FetchTimeout, log)
	return fetcher.FetchFollows(context.Background(), doc.Profile)
}

// argValue scans args for "--name value" and returns the value
func argValue(args []string, name string) string {
	for i, arg := range args {
		if arg == name && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// argInt scans args for "--name N", returning fallback when absent
func argInt(args []string, name string, fallback int) int {
	v := argValue(args, name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Invalid value for " + name + ": " + v))
		os.Exit(1)
	}
	return n
}

// hasFlag reports whether a bare "--name" flag is present
func hasFlag(args []string, name string) bool {
	for _, arg := range args {
		if arg == name {
			return true
		}
	}
	return false
}

// postHeader renders the author/timestamp line for a post
func postHeader(post *social.Post) string {
	author := post.Author()
	if author == "" {
		author = "me"
	}
	header := styles.AuthorStyle.Render(author)
	if _, ok := post.Time(); ok {
		header += " " + styles.TimestampStyle.Render(post.ID())
	}
	if len(post.Tags()) > 0 {
		header += " " + styles.TagStyle.Render("#"+strings.Join(post.Tags(), " #"))
	}
	if post.Mood() != "" {
		header += " " + styles.DimStyle.Render("("+post.Mood()+")")
	}
	return header
}
