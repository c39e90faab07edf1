package threading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerunddev/orgsocial/internal/social"
)

func makePost(id, source, replyTo string) *social.Post {
	p := social.NewPost(id, "content of "+id)
	p.SetSource(source)
	p.SetReplyTo(replyTo)
	return p
}

func TestBuildSimpleReply(t *testing.T) {
	parent := makePost("2025-05-01T10:00:00+0100", "https://a.example/social.org", "")
	child := makePost("2025-05-01T11:00:00+0100", "https://b.example/social.org",
		"https://a.example/social.org#2025-05-01T10:00:00+0100")

	forest := Build([]*social.Post{parent, child})

	require.Equal(t, 1, forest.Len())
	root := forest.Roots()[0]
	assert.Equal(t, parent, root.Post)
	assert.Equal(t, 0, root.Depth)

	require.Len(t, root.Children, 1)
	assert.Equal(t, child, root.Children[0].Post)
	assert.Equal(t, 1, root.Children[0].Depth)
}

func TestBuildReplyParsedBeforeParent(t *testing.T) {
	// The reply appears first in the input; depth must still be right.
	child := makePost("2025-05-01T11:00:00+0100", "https://b.example/social.org",
		"https://a.example/social.org#2025-05-01T10:00:00+0100")
	parent := makePost("2025-05-01T10:00:00+0100", "https://a.example/social.org", "")

	forest := Build([]*social.Post{child, parent})

	require.Equal(t, 1, forest.Len())
	root := forest.Roots()[0]
	assert.Equal(t, parent, root.Post)
	require.Len(t, root.Children, 1)
	assert.Equal(t, 1, root.Children[0].Depth)
}

func TestBuildNestedDepths(t *testing.T) {
	a := makePost("2025-05-01T10:00:00+0100", "https://a.example/social.org", "")
	b := makePost("2025-05-01T11:00:00+0100", "https://b.example/social.org",
		"https://a.example/social.org#2025-05-01T10:00:00+0100")
	c := makePost("2025-05-01T12:00:00+0100", "https://c.example/social.org",
		"https://b.example/social.org#2025-05-01T11:00:00+0100")

	forest := Build([]*social.Post{c, b, a})

	require.Equal(t, 1, forest.Len())
	root := forest.Roots()[0]
	require.Len(t, root.Children, 1)
	require.Len(t, root.Children[0].Children, 1)
	leaf := root.Children[0].Children[0]
	assert.Equal(t, c, leaf.Post)
	assert.Equal(t, 2, leaf.Depth)
}

func TestBuildPlaceholderForMissingParent(t *testing.T) {
	reply := makePost("2025-05-01T11:00:00+0100", "https://b.example/social.org",
		"https://gone.example/social.org#2025-04-01T09:00:00+0100")

	forest := Build([]*social.Post{reply})

	require.Equal(t, 1, forest.Len())
	root := forest.Roots()[0]
	assert.True(t, root.IsPlaceholder)
	assert.Equal(t, "[Post not available]", root.Post.Content())
	assert.Equal(t, "unknown", root.Post.Author())
	assert.Equal(t, "2025-04-01T09:00:00+0100", root.Post.ID())
	assert.Equal(t, "https://gone.example/social.org", root.Post.Source())

	require.Len(t, root.Children, 1)
	assert.Equal(t, reply, root.Children[0].Post)
	assert.Equal(t, 1, root.Children[0].Depth)
}

func TestBuildMultipleRepliesShareOnePlaceholder(t *testing.T) {
	target := "https://gone.example/social.org#2025-04-01T09:00:00+0100"
	r1 := makePost("2025-05-01T10:00:00+0100", "https://a.example/social.org", target)
	r2 := makePost("2025-05-01T11:00:00+0100", "https://b.example/social.org", target)

	forest := Build([]*social.Post{r1, r2})

	require.Equal(t, 1, forest.Len())
	root := forest.Roots()[0]
	assert.True(t, root.IsPlaceholder)
	assert.Len(t, root.Children, 2)
}

func TestBuildTimestampFallback(t *testing.T) {
	// The reply names the parent under an unknown source spelling; the
	// trailing timestamp segment still matches the real post.
	parent := makePost("2025-05-01T10:00:00+0100", "https://a.example/social.org", "")
	reply := makePost("2025-05-01T11:00:00+0100", "https://b.example/social.org",
		"https://mirror.example/feed.org#2025-05-01T10:00:00+0100")

	forest := Build([]*social.Post{parent, reply})

	require.Equal(t, 1, forest.Len())
	root := forest.Roots()[0]
	assert.Equal(t, parent, root.Post)
	require.Len(t, root.Children, 1)
	assert.Equal(t, reply, root.Children[0].Post)
}

func TestBuildBareIDResolution(t *testing.T) {
	parent := makePost("2025-05-01T10:00:00+0100", "https://a.example/social.org", "")
	reply := makePost("2025-05-01T11:00:00+0100", "https://b.example/social.org",
		"2025-05-01T10:00:00+0100")

	forest := Build([]*social.Post{parent, reply})

	require.Equal(t, 1, forest.Len())
	require.Len(t, forest.Roots()[0].Children, 1)
}

func TestBuildRootsNewestActivityFirst(t *testing.T) {
	// t2's tree gains a very recent reply, so it outranks t3 and t1.
	t1 := makePost("2025-05-03T10:00:00+0100", "https://a.example/social.org", "")
	t2 := makePost("2025-05-01T10:00:00+0100", "https://a.example/social.org", "")
	t3 := makePost("2025-05-02T10:00:00+0100", "https://a.example/social.org", "")
	reply := makePost("2025-05-04T10:00:00+0100", "https://b.example/social.org",
		"https://a.example/social.org#2025-05-01T10:00:00+0100")

	forest := Build([]*social.Post{t1, t2, t3, reply})

	require.Equal(t, 3, forest.Len())
	assert.Equal(t, t2, forest.Roots()[0].Post)
	assert.Equal(t, t1, forest.Roots()[1].Post)
	assert.Equal(t, t3, forest.Roots()[2].Post)
}

func TestBuildUntimedRootsSortLast(t *testing.T) {
	untimed := makePost("not-a-timestamp", "https://a.example/social.org", "")
	timed := makePost("2025-05-01T10:00:00+0100", "https://a.example/social.org", "")

	forest := Build([]*social.Post{untimed, timed})

	require.Equal(t, 2, forest.Len())
	assert.Equal(t, timed, forest.Roots()[0].Post)
	assert.Equal(t, untimed, forest.Roots()[1].Post)
}

func TestBuildChildrenOldestFirst(t *testing.T) {
	parent := makePost("2025-05-01T10:00:00+0100", "https://a.example/social.org", "")
	target := "https://a.example/social.org#2025-05-01T10:00:00+0100"
	late := makePost("2025-05-01T12:00:00+0100", "https://b.example/social.org", target)
	early := makePost("2025-05-01T11:00:00+0100", "https://c.example/social.org", target)

	forest := Build([]*social.Post{parent, late, early})

	children := forest.Roots()[0].Children
	require.Len(t, children, 2)
	assert.Equal(t, early, children[0].Post)
	assert.Equal(t, late, children[1].Post)
}

func TestBuildChildrenOrderByLatestActivity(t *testing.T) {
	// The earlier sibling carries a newer grandchild, so its subtree is the
	// more recent one and it sorts after the quieter later sibling.
	parent := makePost("2025-05-01T10:00:00+0100", "https://a.example/social.org", "")
	target := "https://a.example/social.org#2025-05-01T10:00:00+0100"
	early := makePost("2025-05-01T11:00:00+0100", "https://b.example/social.org", target)
	late := makePost("2025-05-01T12:00:00+0100", "https://c.example/social.org", target)
	grandchild := makePost("2025-05-01T13:00:00+0100", "https://d.example/social.org",
		"https://b.example/social.org#2025-05-01T11:00:00+0100")

	forest := Build([]*social.Post{parent, early, late, grandchild})

	children := forest.Roots()[0].Children
	require.Len(t, children, 2)
	assert.Equal(t, late, children[0].Post)
	assert.Equal(t, early, children[1].Post)
	require.Len(t, children[1].Children, 1)
	assert.Equal(t, grandchild, children[1].Children[0].Post)
}

func TestBuildSortIsStableAcrossRebuilds(t *testing.T) {
	posts := []*social.Post{
		makePost("2025-05-01T10:00:00+0100", "https://a.example/social.org", ""),
		makePost("2025-05-02T10:00:00+0100", "https://b.example/social.org", ""),
	}

	first := Build(posts)
	second := Build(posts)

	require.Equal(t, first.Len(), second.Len())
	for i := range first.Roots() {
		assert.Equal(t, first.Roots()[i].Post, second.Roots()[i].Post)
	}
}

func TestAddRootPost(t *testing.T) {
	forest := Build(nil)
	forest.Add(makePost("2025-05-01T10:00:00+0100", "https://a.example/social.org", ""))

	assert.Equal(t, 1, forest.Len())
	assert.Equal(t, 0, forest.Roots()[0].Depth)
}

func TestAddNestedReply(t *testing.T) {
	a := makePost("2025-05-01T10:00:00+0100", "https://a.example/social.org", "")
	b := makePost("2025-05-01T11:00:00+0100", "https://b.example/social.org",
		"https://a.example/social.org#2025-05-01T10:00:00+0100")
	forest := Build([]*social.Post{a, b})

	c := makePost("2025-05-01T12:00:00+0100", "https://c.example/social.org",
		"https://b.example/social.org#2025-05-01T11:00:00+0100")
	forest.Add(c)

	require.Equal(t, 1, forest.Len())
	leaf := forest.Roots()[0].Children[0].Children[0]
	assert.Equal(t, c, leaf.Post)
	assert.Equal(t, 2, leaf.Depth)
}

func TestAddUpdatesRootOrdering(t *testing.T) {
	older := makePost("2025-05-01T10:00:00+0100", "https://a.example/social.org", "")
	newer := makePost("2025-05-02T10:00:00+0100", "https://b.example/social.org", "")
	forest := Build([]*social.Post{older, newer})
	require.Equal(t, newer, forest.Roots()[0].Post)

	// A fresh reply to the older thread bumps it to the top.
	forest.Add(makePost("2025-05-03T10:00:00+0100", "https://c.example/social.org",
		"https://a.example/social.org#2025-05-01T10:00:00+0100"))

	assert.Equal(t, older, forest.Roots()[0].Post)
}

func TestAddUnknownTargetCreatesPlaceholder(t *testing.T) {
	forest := Build(nil)
	forest.Add(makePost("2025-05-01T10:00:00+0100", "https://a.example/social.org",
		"https://gone.example/social.org#2025-04-01T09:00:00+0100"))

	require.Equal(t, 1, forest.Len())
	root := forest.Roots()[0]
	assert.True(t, root.IsPlaceholder)
	require.Len(t, root.Children, 1)
	assert.Equal(t, 1, root.Children[0].Depth)
}

func TestLatestActivityPropagates(t *testing.T) {
	parent := makePost("2025-05-01T10:00:00+0100", "https://a.example/social.org", "")
	reply := makePost("2025-05-05T10:00:00+0100", "https://b.example/social.org",
		"https://a.example/social.org#2025-05-01T10:00:00+0100")

	forest := Build([]*social.Post{parent, reply})

	got, ok := forest.Roots()[0].LatestActivity()
	require.True(t, ok)
	want, _ := reply.Time()
	assert.True(t, got.Equal(want))
}
