// Package notifications finds the posts a user should be told about:
// mentions of them and replies to their posts.
package notifications

import (
	"sort"
	"strings"
	"time"

	"github.com/gerunddev/orgsocial/internal/social"
	"github.com/gerunddev/orgsocial/internal/tokenizer"
)

// Kind classifies why a post triggered a notification.
type Kind int

const (
	// Mention is a post that mentions the user.
	Mention Kind = iota
	// Reply is a reply to one of the user's posts.
	Reply
	// MentionAndReply is a post that does both.
	MentionAndReply
)

func (k Kind) String() string {
	switch k {
	case Mention:
		return "mention"
	case Reply:
		return "reply"
	case MentionAndReply:
		return "mention+reply"
	default:
		return "unknown"
	}
}

// Notification pairs a post with the reason it surfaced.
type Notification struct {
	Post *social.Post
	Kind Kind
}

// Feed is the user's notification list, newest first.
type Feed struct {
	notifications []Notification
}

// Build scans allPosts for mentions of the user and replies to userPosts.
// The user's own posts are skipped, and a post seen twice (same id) only
// notifies once; a post that both mentions and replies gets a single
// MentionAndReply entry.
func Build(profile *social.Profile, userPosts []*social.Post, allPosts []*social.Post) *Feed {
	var notifications []Notification
	seen := make(map[string]bool)

	for _, post := range allPosts {
		if post.Author() == profile.Nick() {
			continue
		}
		if seen[post.ID()] {
			continue
		}

		isMention := mentionsUser(post, profile)
		isReply := repliesToUser(post, userPosts)

		var kind Kind
		switch {
		case isMention && isReply:
			kind = MentionAndReply
		case isMention:
			kind = Mention
		case isReply:
			kind = Reply
		default:
			continue
		}

		notifications = append(notifications, Notification{Post: post, Kind: kind})
		seen[post.ID()] = true
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		it, iok := notifications[i].Post.Time()
		jt, jok := notifications[j].Post.Time()
		if iok != jok {
			return iok
		}
		return it.After(jt)
	})

	return &Feed{notifications: notifications}
}

// mentionsUser reports whether the post mentions the user: a mention token
// naming their nick (with or without an @ prefix) or their source URL, or,
// failing that, the literal @username appearing in the content.
func mentionsUser(post *social.Post, profile *social.Profile) bool {
	nick := profile.Nick()
	source := profile.Source()

	for _, token := range post.Tokens() {
		m, ok := token.(tokenizer.Mention)
		if !ok {
			continue
		}

		if m.Username == nick || "@"+m.Username == nick {
			return true
		}
		if source != "" && m.URL == source {
			return true
		}
		if strings.Contains(post.Content(), "@"+m.Username) {
			return true
		}
	}

	return false
}

// repliesToUser reports whether the post's reply target names any of the
// user's post ids. Only the segment after the last '#' is compared, so the
// source spelling does not matter.
func repliesToUser(post *social.Post, userPosts []*social.Post) bool {
	replyTo := post.ReplyTo()
	if replyTo == "" {
		return false
	}

	replyID := replyTo
	if i := strings.LastIndex(replyTo, "#"); i >= 0 {
		replyID = replyTo[i+1:]
	}

	for _, userPost := range userPosts {
		if userPost.ID() == replyID {
			return true
		}
	}
	return false
}

// All returns every notification, newest first.
func (f *Feed) All() []Notification { return f.notifications }

func (f *Feed) Len() int      { return len(f.notifications) }
func (f *Feed) IsEmpty() bool { return len(f.notifications) == 0 }

// Recent returns at most limit notifications from the top.
func (f *Feed) Recent(limit int) []Notification {
	if limit >= len(f.notifications) {
		return f.notifications
	}
	if limit < 0 {
		limit = 0
	}
	return f.notifications[:limit]
}

// InRange returns notifications whose post time falls within [from, to],
// inclusive. Untimed posts are never included.
func (f *Feed) InRange(from, to time.Time) []Notification {
	var out []Notification
	for _, n := range f.notifications {
		t, ok := n.Post.Time()
		if !ok {
			continue
		}
		if !t.Before(from) && !t.After(to) {
			out = append(out, n)
		}
	}
	return out
}

// ByKind returns notifications of one kind.
func (f *Feed) ByKind(kind Kind) []Notification {
	var out []Notification
	for _, n := range f.notifications {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}
