// Package poll parses polls out of posts and tallies votes from replies.
//
// A poll is a post with a POLL_END timestamp whose content carries at least
// two option lines ("- [ ] text"). Votes are replies carrying POLL_OPTION.
package poll

import (
	"fmt"
	"strings"
	"time"

	"github.com/gerunddev/orgsocial/internal/social"
)

// clientLabel is stamped on vote replies created by this client.
const clientLabel = "orgsocial"

// Status is the lifecycle state of a poll.
type Status int

const (
	// Active means the poll end is in the future.
	Active Status = iota
	// Ended means the poll end has passed.
	Ended
	// Invalid means the poll end is missing or unparseable.
	Invalid
)

func (s Status) String() string {
	switch s {
	case Active:
		return "Active"
	case Ended:
		return "Ended"
	case Invalid:
		return "Invalid"
	default:
		return "Invalid"
	}
}

// Option is one poll choice with its running tally.
type Option struct {
	Text  string
	Votes int
}

// Result is one row of a tally: the option, its votes, and its share of the
// total.
type Result struct {
	Text    string
	Votes   int
	Percent float64
}

// Poll is a parsed poll with its options and vote counts.
type Poll struct {
	Options    []Option
	PollEnd    string
	Status     Status
	TotalVotes int
	// StartLine and EndLine bound the option lines within the post content.
	StartLine int
	EndLine   int
}

// New builds a poll from option texts and an end timestamp. Status is
// derived from the timestamp against the current time.
func New(options []string, pollEnd string, startLine, endLine int) *Poll {
	opts := make([]Option, 0, len(options))
	for _, text := range options {
		opts = append(opts, Option{Text: text})
	}

	return &Poll{
		Options:   opts,
		PollEnd:   pollEnd,
		Status:    statusFor(pollEnd),
		StartLine: startLine,
		EndLine:   endLine,
	}
}

func statusFor(pollEnd string) Status {
	if pollEnd == "" {
		return Invalid
	}
	end, err := social.ParseTimestamp(pollEnd)
	if err != nil {
		return Invalid
	}
	if time.Now().After(end) {
		return Ended
	}
	return Active
}

// UpdateStatus re-derives the status against the current time.
func (p *Poll) UpdateStatus() { p.Status = statusFor(p.PollEnd) }

// IsActive reports whether the poll still accepts votes.
func (p *Poll) IsActive() bool { return p.Status == Active }

// AddVote records a vote by option index. It reports false for an index out
// of range.
func (p *Poll) AddVote(index int) bool {
	if index < 0 || index >= len(p.Options) {
		return false
	}
	p.Options[index].Votes++
	p.TotalVotes++
	return true
}

// AddVoteByText records a vote by option text, compared case-insensitively
// after trimming. It reports false when no option matches.
func (p *Poll) AddVoteByText(text string) bool {
	want := strings.ToLower(strings.TrimSpace(text))
	for i := range p.Options {
		if strings.ToLower(strings.TrimSpace(p.Options[i].Text)) == want {
			p.Options[i].Votes++
			p.TotalVotes++
			return true
		}
	}
	return false
}

// AddVoteFromReply records a vote from a reply post. The reply's poll option
// must match an option text exactly before the tally is applied.
func (p *Poll) AddVoteFromReply(reply *social.Post) bool {
	option := reply.PollOption()
	if option == "" {
		return false
	}
	for _, opt := range p.Options {
		if opt.Text == option {
			return p.AddVoteByText(option)
		}
	}
	return false
}

// ClearVotes resets all tallies to zero.
func (p *Poll) ClearVotes() {
	for i := range p.Options {
		p.Options[i].Votes = 0
	}
	p.TotalVotes = 0
}

// Results returns the tally with each option's percentage of the total.
func (p *Poll) Results() []Result {
	results := make([]Result, 0, len(p.Options))
	for _, opt := range p.Options {
		var percent float64
		if p.TotalVotes > 0 {
			percent = float64(opt.Votes) / float64(p.TotalVotes) * 100
		}
		results = append(results, Result{Text: opt.Text, Votes: opt.Votes, Percent: percent})
	}
	return results
}

// Summary returns a one-line label for display.
func (p *Poll) Summary() string {
	return fmt.Sprintf("Poll (%d options, %d votes, %s)", len(p.Options), p.TotalVotes, p.Status)
}

// IsPollPost reports whether the post carries a poll: a POLL_END property
// and at least two consecutive option lines in the content.
func IsPollPost(post *social.Post) bool {
	if post.PollEnd() == "" {
		return false
	}
	return hasOptionLines(post.Content())
}

func hasOptionLines(content string) bool {
	consecutive := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "- [ ]") {
			consecutive++
		} else if consecutive > 0 {
			return consecutive >= 2
		}
	}
	return consecutive >= 2
}

// ParseContent extracts a poll from post content. The option section runs
// from the first option line to the first non-empty non-option line; empty
// option texts are dropped. Fewer than two options yields nil.
func ParseContent(content, pollEnd string) *Poll {
	var options []string
	startLine, endLine := 0, 0
	inSection := false

	for idx, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "- [ ]") {
			if !inSection {
				inSection = true
				startLine = idx
			}
			if text := strings.TrimSpace(trimmed[5:]); text != "" {
				options = append(options, text)
			}
			endLine = idx
		} else if inSection && trimmed != "" {
			break
		}
	}

	if len(options) < 2 {
		return nil
	}
	return New(options, pollEnd, startLine, endLine)
}

// ParsePost extracts a poll from a post, or nil when the post is not a poll.
func ParsePost(post *social.Post) *Poll {
	if !IsPollPost(post) {
		return nil
	}
	return ParseContent(post.Content(), post.PollEnd())
}

// CountVotes parses the poll out of pollPost and tallies every reply that
// carries a poll option. Replies naming unknown options are ignored by the
// tally.
func CountVotes(pollPost *social.Post, replies []*social.Post) *Poll {
	p := ParsePost(pollPost)
	if p == nil {
		return nil
	}
	for _, reply := range replies {
		if option := reply.PollOption(); option != "" {
			p.AddVoteByText(option)
		}
	}
	return p
}

// NewVoteReply builds a reply post that casts a vote for an option of the
// poll identified by pollID. content may be empty.
func NewVoteReply(pollID, option, content string) *social.Post {
	reply := social.NewPost(social.CurrentTimestamp(), content)
	reply.SetReplyTo(pollID)
	reply.SetPollOption(option)
	reply.SetClient(clientLabel)
	return reply
}
