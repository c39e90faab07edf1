// Package feed merges the user's own posts with fetched follow feeds into a
// single timeline.
package feed

import (
	"sort"
	"time"

	"github.com/gerunddev/orgsocial/internal/social"
)

// Feed is a merged, newest-first timeline.
type Feed struct {
	posts []*social.Post
}

// Combined builds a timeline from the user's document and any fetched follow
// documents. Every post is stamped with its author nick; fetched feeds with
// no nick get "unknown".
func Combined(user *social.Document, fetched []*social.Document) *Feed {
	var posts []*social.Post

	if user != nil {
		for _, p := range user.Posts {
			p.SetAuthor(user.Profile.Nick())
			posts = append(posts, p)
		}
	}

	for _, doc := range fetched {
		nick := doc.Profile.Nick()
		if nick == "" {
			nick = "unknown"
		}
		for _, p := range doc.Posts {
			p.SetAuthor(nick)
			posts = append(posts, p)
		}
	}

	sortNewestFirst(posts)

	return &Feed{posts: posts}
}

// sortNewestFirst orders posts by timestamp descending. Posts without a
// parseable timestamp sort to the end, keeping their relative order.
func sortNewestFirst(posts []*social.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		it, iok := posts[i].Time()
		jt, jok := posts[j].Time()
		if iok != jok {
			return iok
		}
		return it.After(jt)
	})
}

// Posts returns the full timeline, newest first.
func (f *Feed) Posts() []*social.Post { return f.posts }

func (f *Feed) Len() int      { return len(f.posts) }
func (f *Feed) IsEmpty() bool { return len(f.posts) == 0 }

// Recent returns at most limit posts from the top of the timeline.
func (f *Feed) Recent(limit int) []*social.Post {
	if limit >= len(f.posts) {
		return f.posts
	}
	if limit < 0 {
		limit = 0
	}
	return f.posts[:limit]
}

// PostsInRange returns posts whose timestamp falls within [from, to],
// inclusive on both ends. Untimed posts are never included.
func (f *Feed) PostsInRange(from, to time.Time) []*social.Post {
	var out []*social.Post
	for _, p := range f.posts {
		t, ok := p.Time()
		if !ok {
			continue
		}
		if !t.Before(from) && !t.After(to) {
			out = append(out, p)
		}
	}
	return out
}

// FromSource returns the posts that originate from one source document.
func (f *Feed) FromSource(source string) []*social.Post {
	var out []*social.Post
	for _, p := range f.posts {
		if p.Source() == source {
			out = append(out, p)
		}
	}
	return out
}

// Sources returns the distinct post sources, sorted. The user's own posts
// contribute the empty string.
func (f *Feed) Sources() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range f.posts {
		if !seen[p.Source()] {
			seen[p.Source()] = true
			out = append(out, p.Source())
		}
	}
	sort.Strings(out)
	return out
}
