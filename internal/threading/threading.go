// Package threading assembles flat post lists into conversation trees.
//
// Replies name their parent by full id (source#id). Targets that cannot be
// resolved get a placeholder root so the conversation is still visible, and
// trees are ordered by most recent activity anywhere in the tree.
package threading

import (
	"sort"
	"strings"
	"time"

	"github.com/gerunddev/orgsocial/internal/social"
)

const placeholderContent = "[Post not available]"

// Node is one post within a conversation tree.
type Node struct {
	Post     *social.Post
	Children []*Node
	// Depth is the distance from the tree root. It is recomputed after
	// every structural change, so it stays correct for replies that were
	// parsed before their parents.
	Depth int
	// IsPlaceholder marks a synthetic node standing in for a post that
	// could not be resolved.
	IsPlaceholder bool

	activity    time.Time
	hasActivity bool
}

// LatestActivity returns the newest timestamp in the node's subtree. The
// second return is false when no post in the subtree has a parseable time.
func (n *Node) LatestActivity() (time.Time, bool) {
	return n.activity, n.hasActivity
}

// Forest is a set of conversation trees.
type Forest struct {
	roots   []*Node
	bareIDs map[string]string
}

// Roots returns the top-level conversations, newest activity first.
func (f *Forest) Roots() []*Node { return f.roots }

// Len returns the number of top-level conversations.
func (f *Forest) Len() int { return len(f.roots) }

// Build threads a flat post list into a forest. It never fails: replies to
// unknown targets hang off placeholder roots, and malformed reply ids fall
// back to matching the trailing timestamp segment against known posts.
func Build(posts []*social.Post) *Forest {
	f := &Forest{bareIDs: make(map[string]string, len(posts))}

	ordered := make([]*Node, 0, len(posts))
	byFullID := make(map[string]*Node, len(posts))
	for _, p := range posts {
		n := &Node{Post: p}
		ordered = append(ordered, n)
		byFullID[p.FullID()] = n
		f.bareIDs[p.ID()] = p.FullID()
	}

	placeholders := make(map[string]*Node)
	var placeholderOrder []*Node

	for _, n := range ordered {
		replyTo := n.Post.ReplyTo()
		if replyTo == "" {
			f.roots = append(f.roots, n)
			continue
		}

		target := f.resolve(replyTo)
		if parent, ok := byFullID[target]; ok && parent != n {
			parent.Children = append(parent.Children, n)
			continue
		}

		// The target may use a source spelling we do not know. Fall back
		// to the trailing timestamp segment; the first post with that id
		// in input order wins.
		if parent := firstWithID(ordered, idSegment(target)); parent != nil && parent != n {
			parent.Children = append(parent.Children, n)
			continue
		}

		ph, ok := placeholders[target]
		if !ok {
			ph = newPlaceholder(target)
			placeholders[target] = ph
			placeholderOrder = append(placeholderOrder, ph)
		}
		ph.Children = append(ph.Children, n)
	}

	f.roots = append(f.roots, placeholderOrder...)
	f.refresh()

	return f
}

// Add inserts a single post into an existing forest. Reply targets are
// searched across every tree, so a reply to a nested post attaches at the
// right depth. Unknown targets get a fresh placeholder root.
func (f *Forest) Add(post *social.Post) {
	n := &Node{Post: post}
	f.bareIDs[post.ID()] = post.FullID()

	replyTo := post.ReplyTo()
	if replyTo == "" {
		f.roots = append(f.roots, n)
	} else if parent := f.find(f.resolve(replyTo)); parent != nil {
		parent.Children = append(parent.Children, n)
	} else {
		ph := newPlaceholder(f.resolve(replyTo))
		ph.Children = append(ph.Children, n)
		f.roots = append(f.roots, ph)
	}

	f.refresh()
}

// resolve expands a reply target to a full id. Targets containing '#' are
// already full; bare ids are looked up among known posts, later entries
// winning; anything else passes through unchanged.
func (f *Forest) resolve(replyTo string) string {
	if strings.Contains(replyTo, "#") {
		return replyTo
	}
	if full, ok := f.bareIDs[replyTo]; ok {
		return full
	}
	return replyTo
}

func (f *Forest) find(fullID string) *Node {
	for _, r := range f.roots {
		if n := findIn(r, fullID); n != nil {
			return n
		}
	}
	return nil
}

func findIn(n *Node, fullID string) *Node {
	if n.Post.FullID() == fullID {
		return n
	}
	for _, c := range n.Children {
		if m := findIn(c, fullID); m != nil {
			return m
		}
	}
	return nil
}

func firstWithID(ordered []*Node, id string) *Node {
	if id == "" {
		return nil
	}
	for _, n := range ordered {
		if n.Post.ID() == id {
			return n
		}
	}
	return nil
}

func idSegment(target string) string {
	if i := strings.LastIndex(target, "#"); i >= 0 {
		return target[i+1:]
	}
	return target
}

func newPlaceholder(target string) *Node {
	id := target
	var source string
	if i := strings.LastIndex(target, "#"); i >= 0 {
		source = target[:i]
		id = target[i+1:]
	}

	post := social.NewPost(id, placeholderContent)
	post.SetAuthor("unknown")
	if source != "" {
		post.SetSource(source)
	}

	return &Node{Post: post, IsPlaceholder: true}
}

// refresh recomputes depths and activity for every tree and re-sorts. Roots
// go newest activity first; children go oldest activity first, so a thread
// reads top to bottom and a sibling with fresh replies sinks below quieter
// ones. Subtrees without a parseable time sort after timed ones at the same
// level, keeping their relative order.
func (f *Forest) refresh() {
	for _, r := range f.roots {
		setDepth(r, 0)
		computeActivity(r)
	}

	sort.SliceStable(f.roots, func(i, j int) bool {
		a, b := f.roots[i], f.roots[j]
		if a.hasActivity != b.hasActivity {
			return a.hasActivity
		}
		return a.activity.After(b.activity)
	})
	for _, r := range f.roots {
		sortChildren(r)
	}
}

func setDepth(n *Node, depth int) {
	n.Depth = depth
	for _, c := range n.Children {
		setDepth(c, depth+1)
	}
}

func computeActivity(n *Node) (time.Time, bool) {
	t, ok := n.Post.Time()
	for _, c := range n.Children {
		if ct, cok := computeActivity(c); cok && (!ok || ct.After(t)) {
			t, ok = ct, true
		}
	}
	n.activity, n.hasActivity = t, ok
	return t, ok
}

func sortChildren(n *Node) {
	sort.SliceStable(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		if a.hasActivity != b.hasActivity {
			return a.hasActivity
		}
		return a.activity.Before(b.activity)
	})
	for _, c := range n.Children {
		sortChildren(c)
	}
}
