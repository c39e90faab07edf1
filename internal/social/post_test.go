package social

import (
	"testing"
	"time"

	"github.com/gerunddev/orgsocial/internal/tokenizer"
)

func TestPostTime(t *testing.T) {
	tests := []struct {
		id     string
		wantOK bool
	}{
		{"2025-05-01T12:00:00+01:00", true},
		{"2025-05-01T12:00:00+0100", true},
		{"2025-05-01T12:00:00Z", true},
		{"not-a-timestamp", false},
		{"", false},
	}

	for _, tt := range tests {
		post := NewPost(tt.id, "")
		_, ok := post.Time()
		if ok != tt.wantOK {
			t.Errorf("Time() ok = %v for id %q, want %v", ok, tt.id, tt.wantOK)
		}
	}
}

func TestPostTimeValue(t *testing.T) {
	post := NewPost("2025-05-01T12:00:00+0100", "")
	got, ok := post.Time()
	if !ok {
		t.Fatal("expected parseable time")
	}
	want := time.Date(2025, 5, 1, 12, 0, 0, 0, time.FixedZone("", 3600))
	if !got.Equal(want) {
		t.Errorf("Time() = %v, want %v", got, want)
	}
}

func TestPostFullID(t *testing.T) {
	post := NewPost("2025-05-01T12:00:00+0100", "")
	if post.FullID() != "2025-05-01T12:00:00+0100" {
		t.Errorf("FullID without source = %q", post.FullID())
	}

	post.SetSource("https://example.com/social.org")
	want := "https://example.com/social.org#2025-05-01T12:00:00+0100"
	if post.FullID() != want {
		t.Errorf("FullID = %q, want %q", post.FullID(), want)
	}
}

func TestPostSummary(t *testing.T) {
	post := NewPost("id", "short")
	if post.Summary(10) != "short" {
		t.Errorf("Summary = %q", post.Summary(10))
	}

	post = NewPost("id", "a rather long content body")
	if got := post.Summary(8); got != "a rather..." {
		t.Errorf("Summary = %q, want %q", got, "a rather...")
	}

	// Truncation counts runes, not bytes.
	post = NewPost("id", "世界世界世界")
	if got := post.Summary(3); got != "世界世..." {
		t.Errorf("Summary = %q, want %q", got, "世界世...")
	}
}

func TestPostSetContentInvalidates(t *testing.T) {
	post := NewPost("id", "*bold*")
	toks := post.Tokens()
	if len(toks) != 1 {
		t.Fatalf("tokens = %#v", toks)
	}
	if _, ok := toks[0].(tokenizer.Bold); !ok {
		t.Fatalf("expected Bold token, got %#v", toks[0])
	}

	post.SetContent("plain now")
	toks = post.Tokens()
	if len(toks) != 1 {
		t.Fatalf("tokens after SetContent = %#v", toks)
	}
	if pt, ok := toks[0].(tokenizer.PlainText); !ok || pt.Text != "plain now" {
		t.Errorf("stale token cache after SetContent: %#v", toks[0])
	}
}

func TestPostAutoParse(t *testing.T) {
	post := NewPost("id", "")
	post.SetAutoParse(true)
	post.SetContent("/italic/")

	// Caches are already populated without an explicit ParseContent call.
	toks := post.Tokens()
	if len(toks) != 1 {
		t.Fatalf("tokens = %#v", toks)
	}
	if _, ok := toks[0].(tokenizer.Italic); !ok {
		t.Errorf("expected Italic token, got %#v", toks[0])
	}
}

func TestPostElements(t *testing.T) {
	post := NewPost("id", "before\n#+begin_src go\ncode\n#+end_src\nafter")
	els := post.Elements()
	if len(els) != 1 {
		t.Fatalf("elements = %#v", els)
	}
	if els[0].Summary() != "Code block (go)" {
		t.Errorf("Summary = %q", els[0].Summary())
	}
}

func TestPostIsPollVote(t *testing.T) {
	post := NewPost("id", "")
	if post.IsPollVote() {
		t.Error("empty post should not be a poll vote")
	}

	post.SetPollOption("Yes")
	if post.IsPollVote() {
		t.Error("poll option without reply target is not a vote")
	}

	post.SetReplyTo("https://example.com/social.org#2025-05-01T12:00:00+0100")
	if !post.IsPollVote() {
		t.Error("reply with poll option should be a vote")
	}
}

func TestProfileNickFor(t *testing.T) {
	p := &Profile{follows: []Follow{
		{Nick: "alice", URL: "https://alice.example.com/social.org/"},
		{Nick: "bob", URL: "https://bob.example.com/social.org"},
	}}

	if nick, ok := p.NickFor("https://alice.example.com/social.org"); !ok || nick != "alice" {
		t.Errorf("NickFor(alice, trailing slash normalized) = %q, %v", nick, ok)
	}
	if nick, ok := p.NickFor("https://bob.example.com/social.org/"); !ok || nick != "bob" {
		t.Errorf("NickFor(bob) = %q, %v", nick, ok)
	}
	if _, ok := p.NickFor("https://carol.example.com/social.org"); ok {
		t.Error("NickFor should miss for unknown source")
	}
}
