// Package compose creates new posts and replies and appends them to the
// user's feed file.
package compose

import (
	"fmt"
	"os"

	"github.com/gerunddev/orgsocial/internal/logger"
	"github.com/gerunddev/orgsocial/internal/social"
)

const previewLength = 50

// Options carries the optional properties of a new post.
type Options struct {
	Tags       []string
	Mood       string
	Lang       string
	PollEnd    string
	PollOption string
}

// NewPost builds a post with a fresh timestamp id and the client label.
func NewPost(content, client string, opts Options) *social.Post {
	post := social.NewPost(social.CurrentTimestamp(), content)
	post.SetClient(client)
	post.SetTags(opts.Tags)
	post.SetMood(opts.Mood)
	post.SetLang(opts.Lang)
	post.SetPollEnd(opts.PollEnd)
	post.SetPollOption(opts.PollOption)
	return post
}

// NewReply builds a reply to the post identified by replyTo (a full
// source#id handle).
func NewReply(content, client, replyTo string, tags []string, mood string) *social.Post {
	post := social.NewPost(social.CurrentTimestamp(), content)
	post.SetClient(client)
	post.SetReplyTo(replyTo)
	post.SetTags(tags)
	post.SetMood(mood)
	return post
}

// Appender writes posts to the end of a feed file.
type Appender struct {
	path string
	log  *logger.Logger
}

// NewAppender builds an appender for the feed file at path. A nil log
// discards output.
func NewAppender(path string, log *logger.Logger) *Appender {
	if log == nil {
		log = logger.Discard()
	}
	return &Appender{path: path, log: log}
}

// Append serializes the post and appends it to the feed file, creating the
// file if needed. It returns a short preview of the saved content.
func (a *Appender) Append(post *social.Post) (string, error) {
	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("opening feed file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("\n" + post.ToOrg() + "\n"); err != nil {
		return "", fmt.Errorf("appending post: %w", err)
	}

	a.log.PostSaved(a.path, post.ID())

	return post.Summary(previewLength), nil
}
