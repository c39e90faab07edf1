package social

import (
	"strings"
	"time"

	"github.com/gerunddev/orgsocial/internal/blocks"
	"github.com/gerunddev/orgsocial/internal/tokenizer"
)

// Post is one entry under the "* Posts" section of an org-social document.
//
// Fields are unexported so that content mutation can keep the derived token
// and block caches consistent. Optional properties use the empty string for
// absence and are omitted on serialization.
type Post struct {
	id         string
	lang       string
	tags       []string
	client     string
	replyTo    string
	pollEnd    string
	pollOption string
	mood       string
	content    string
	source     string
	author     string

	autoParse bool
	tokens    []tokenizer.Token
	elements  []blocks.Element
	parsed    bool
}

// NewPost builds a post with the given id and content. Derived caches start
// empty; call ParseContent (or enable auto-parse) before reading them.
func NewPost(id, content string) *Post {
	return &Post{id: id, content: content}
}

func (p *Post) ID() string         { return p.id }
func (p *Post) Lang() string       { return p.lang }
func (p *Post) Tags() []string     { return p.tags }
func (p *Post) Client() string     { return p.client }
func (p *Post) ReplyTo() string    { return p.replyTo }
func (p *Post) PollEnd() string    { return p.pollEnd }
func (p *Post) PollOption() string { return p.pollOption }
func (p *Post) Mood() string       { return p.mood }
func (p *Post) Content() string    { return p.content }
func (p *Post) Source() string     { return p.source }
func (p *Post) Author() string     { return p.author }

func (p *Post) SetID(id string)             { p.id = id }
func (p *Post) SetLang(lang string)         { p.lang = lang }
func (p *Post) SetTags(tags []string)       { p.tags = tags }
func (p *Post) SetClient(client string)     { p.client = client }
func (p *Post) SetReplyTo(replyTo string)   { p.replyTo = replyTo }
func (p *Post) SetPollEnd(pollEnd string)   { p.pollEnd = pollEnd }
func (p *Post) SetPollOption(option string) { p.pollOption = option }
func (p *Post) SetMood(mood string)         { p.mood = mood }
func (p *Post) SetSource(source string)     { p.source = source }
func (p *Post) SetAuthor(author string)     { p.author = author }

// SetAutoParse makes SetContent re-derive tokens and blocks immediately
// instead of just invalidating them.
func (p *Post) SetAutoParse(on bool) { p.autoParse = on }

// SetContent replaces the post body. The derived caches are invalidated, or
// re-built right away when auto-parse is on.
func (p *Post) SetContent(content string) {
	p.content = content
	p.Invalidate()
	if p.autoParse {
		p.ParseContent()
	}
}

// ParseContent derives the token stream and block elements from the current
// content. It is idempotent and cheap to call again after Invalidate.
func (p *Post) ParseContent() {
	p.tokens = tokenizer.Tokenize(p.content)
	p.elements = blocks.Parse(p.content)
	p.parsed = true
}

// Invalidate drops the derived caches. The next Tokens or Elements call
// rebuilds them.
func (p *Post) Invalidate() {
	p.tokens = nil
	p.elements = nil
	p.parsed = false
}

// Tokens returns the inline token stream for the content, parsing on demand.
func (p *Post) Tokens() []tokenizer.Token {
	if !p.parsed {
		p.ParseContent()
	}
	return p.tokens
}

// Elements returns the fenced block elements of the content, parsing on
// demand.
func (p *Post) Elements() []blocks.Element {
	if !p.parsed {
		p.ParseContent()
	}
	return p.elements
}

// Time parses the post id as a timestamp. The second return is false when
// the id is not a recognized timestamp shape.
func (p *Post) Time() (time.Time, bool) {
	t, err := ParseTimestamp(p.id)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FullID returns source#id when the post has a source, the bare id
// otherwise. It is the globally unique handle used for reply targets.
func (p *Post) FullID() string {
	if p.source != "" {
		return p.source + "#" + p.id
	}
	return p.id
}

// Summary returns the content truncated to max runes, with an ellipsis when
// truncated.
func (p *Post) Summary(max int) string {
	runes := []rune(p.content)
	if len(runes) <= max {
		return p.content
	}
	return string(runes[:max]) + "..."
}

// IsPollVote reports whether the post is a vote on a poll, i.e. a reply that
// carries a poll option.
func (p *Post) IsPollVote() bool {
	return p.pollOption != "" && p.replyTo != ""
}

// ToOrg serializes the post back to its document form: the headline, the
// properties drawer, a blank line, then the content.
func (p *Post) ToOrg() string {
	lines := []string{"**", ":PROPERTIES:"}

	if p.id != "" {
		lines = append(lines, ":ID: "+p.id)
	}
	if p.lang != "" {
		lines = append(lines, ":LANG: "+p.lang)
	}
	if len(p.tags) > 0 {
		lines = append(lines, ":TAGS: "+strings.Join(p.tags, " "))
	}
	if p.client != "" {
		lines = append(lines, ":CLIENT: "+p.client)
	}
	if p.replyTo != "" {
		lines = append(lines, ":REPLY_TO: "+p.replyTo)
	}
	if p.pollEnd != "" {
		lines = append(lines, ":POLL_END: "+p.pollEnd)
	}
	if p.pollOption != "" {
		lines = append(lines, ":POLL_OPTION: "+p.pollOption)
	}
	if p.mood != "" {
		lines = append(lines, ":MOOD: "+p.mood)
	}

	lines = append(lines, ":END:", "", p.content)

	return strings.Join(lines, "\n")
}
