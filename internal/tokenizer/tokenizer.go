// Package tokenizer splits post bodies into typed inline markup tokens.
//
// The scan is a single forward pass over the rune sequence. Every input
// produces a token sequence whose surface forms concatenate back to the
// original text, so malformed markup degrades to plain text instead of
// being dropped.
package tokenizer

import (
	"strings"
	"unicode"
)

// Token is a single typed segment of a post body.
type Token interface {
	// Surface returns the original text this token was scanned from.
	Surface() string

	isToken()
}

// PlainText is the fallback token for text without recognized markup.
type PlainText struct {
	Text string
}

// Bold is text wrapped in single asterisks.
type Bold struct {
	Text string
}

// Italic is text wrapped in single slashes.
type Italic struct {
	Text string
}

// BoldItalic is text wrapped in */ ... /* delimiters.
type BoldItalic struct {
	Text string
}

// InlineCode is text wrapped in tildes. It may span multiple lines.
type InlineCode struct {
	Text string
}

// Link is either a bracketed [[url]] / [[url][description]] link or a bare
// http(s) URL found in running text.
type Link struct {
	URL         string
	Description *string
	// Bare marks links scanned from a bare URL rather than [[...]] syntax.
	Bare bool
}

// Mention is an org-social mention: [[org-social:url][username]].
type Mention struct {
	URL      string
	Username string
}

func (t PlainText) Surface() string  { return t.Text }
func (t Bold) Surface() string       { return "*" + t.Text + "*" }
func (t Italic) Surface() string     { return "/" + t.Text + "/" }
func (t BoldItalic) Surface() string { return "*/" + t.Text + "/*" }
func (t InlineCode) Surface() string { return "~" + t.Text + "~" }

func (t Link) Surface() string {
	if t.Bare {
		return t.URL
	}
	if t.Description != nil {
		return "[[" + t.URL + "][" + *t.Description + "]]"
	}
	return "[[" + t.URL + "]]"
}

func (t Mention) Surface() string {
	return "[[org-social:" + t.URL + "][" + t.Username + "]]"
}

func (PlainText) isToken()  {}
func (Bold) isToken()       {}
func (Italic) isToken()     {}
func (BoldItalic) isToken() {}
func (InlineCode) isToken() {}
func (Link) isToken()       {}
func (Mention) isToken()    {}

const mentionPrefix = "org-social:"

// Tokenize scans content into an ordered token sequence. It never fails;
// unmatched delimiters are emitted as one-character plain-text tokens.
func Tokenize(content string) []Token {
	s := &scanner{input: []rune(content)}
	var tokens []Token
	for s.pos < len(s.input) {
		tokens = append(tokens, s.next())
	}
	return tokens
}

type scanner struct {
	input []rune
	pos   int
}

func (s *scanner) next() Token {
	// Double brackets: mention first, then regular link. If the pair never
	// closes, fall through to the one-character literal below.
	if s.peek(2) == "[[" {
		if tok, ok := s.scanMention(); ok {
			return tok
		}
		if tok, ok := s.scanLink(); ok {
			return tok
		}
	}

	// Bare URLs take precedence over italic so the slashes in
	// http://... are not read as delimiters.
	if end, ok := s.urlAt(s.pos); ok {
		return s.takeURL(end)
	}

	if s.peek(2) == "*/" {
		if tok, ok := s.scanBoldItalic(); ok {
			return tok
		}
	}

	if s.cur() == '*' && s.pos+1 < len(s.input) {
		if tok, ok := s.scanEmphasis('*', false); ok {
			return Bold{Text: tok}
		}
	}

	if s.cur() == '/' && s.pos+1 < len(s.input) {
		if tok, ok := s.scanEmphasis('/', false); ok {
			return Italic{Text: tok}
		}
	}

	if s.cur() == '~' {
		if tok, ok := s.scanEmphasis('~', true); ok {
			return InlineCode{Text: tok}
		}
	}

	return s.scanPlainText()
}

// scanMention parses [[org-social:url][username]]. The scanner position is
// restored when the bracket pair is not a mention.
func (s *scanner) scanMention() (Token, bool) {
	saved := s.pos
	s.pos += 2
	start := s.pos

	for s.pos < len(s.input) {
		if s.peek(2) == "]]" {
			content := string(s.input[start:s.pos])
			if idx := strings.Index(content, "]["); idx >= 0 {
				urlPart := content[:idx]
				username := content[idx+2:]
				if rest, ok := strings.CutPrefix(urlPart, mentionPrefix); ok {
					s.pos += 2
					return Mention{URL: rest, Username: username}, true
				}
			}
			s.pos = saved
			return nil, false
		}
		s.pos++
	}

	s.pos = saved
	return nil, false
}

// scanLink parses [[url]] or [[url][description]]. The position is restored
// when no closing ]] exists so the caller can emit a literal bracket.
func (s *scanner) scanLink() (Token, bool) {
	saved := s.pos
	s.pos += 2
	start := s.pos

	for s.pos < len(s.input) {
		if s.peek(2) == "]]" {
			content := string(s.input[start:s.pos])
			s.pos += 2
			if idx := strings.Index(content, "]["); idx >= 0 {
				desc := content[idx+2:]
				return Link{URL: content[:idx], Description: &desc}, true
			}
			return Link{URL: content}, true
		}
		s.pos++
	}

	s.pos = saved
	return nil, false
}

// urlAt reports whether an http(s) URL starts at pos, returning the index
// one past its end. URLs only begin at an alphabetic rune and end at
// whitespace or one of ) ] > " ' * ~.
func (s *scanner) urlAt(pos int) (int, bool) {
	if pos >= len(s.input) || !isAlphabetic(s.input[pos]) {
		return 0, false
	}

	head := s.input[pos:min(pos+8, len(s.input))]
	var protoLen int
	switch {
	case strings.HasPrefix(string(head), "https://"):
		protoLen = 8
	case strings.HasPrefix(string(head), "http://"):
		protoLen = 7
	default:
		return 0, false
	}

	end := pos + protoLen
	for end < len(s.input) && !terminatesURL(s.input[end]) {
		end++
	}
	return end, true
}

func (s *scanner) takeURL(end int) Token {
	url := string(s.input[s.pos:end])
	s.pos = end
	return Link{URL: url, Bare: true}
}

func (s *scanner) scanBoldItalic() (Token, bool) {
	saved := s.pos
	s.pos += 2
	start := s.pos

	for s.pos < len(s.input)-1 {
		if s.peek(2) == "/*" {
			content := string(s.input[start:s.pos])
			s.pos += 2
			return BoldItalic{Text: content}, true
		}
		s.pos++
	}

	s.pos = saved
	return nil, false
}

// scanEmphasis handles the three single-delimiter forms. Bold and italic
// must stay on one line; inline code may span lines (multiline = true).
func (s *scanner) scanEmphasis(delim rune, multiline bool) (string, bool) {
	saved := s.pos
	s.pos++
	start := s.pos

	for s.pos < len(s.input) {
		if s.input[s.pos] == delim {
			content := string(s.input[start:s.pos])
			if content != "" && (multiline || !strings.ContainsRune(content, '\n')) {
				s.pos++
				return content, true
			}
			break
		}
		s.pos++
	}

	s.pos = saved
	return "", false
}

// scanPlainText accumulates text until a delimiter or the start of a bare
// URL. When the scan starts on a delimiter that failed to parse, the single
// character is consumed as the literal fallback.
func (s *scanner) scanPlainText() Token {
	start := s.pos

	for s.pos < len(s.input) {
		ch := s.input[s.pos]
		if ch == '*' || ch == '/' || ch == '~' || ch == '[' {
			break
		}
		if isAlphabetic(ch) {
			if end, ok := s.urlAt(s.pos); ok {
				if s.pos > start {
					break
				}
				return s.takeURL(end)
			}
		}
		s.pos++
	}

	if s.pos == start {
		s.pos++
	}
	return PlainText{Text: string(s.input[start:s.pos])}
}

func (s *scanner) cur() rune {
	if s.pos >= len(s.input) {
		return 0
	}
	return s.input[s.pos]
}

func (s *scanner) peek(n int) string {
	end := min(s.pos+n, len(s.input))
	return string(s.input[s.pos:end])
}

func isAlphabetic(r rune) bool {
	return unicode.IsLetter(r)
}

func terminatesURL(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case ')', ']', '>', '"', '\'', '*', '~':
		return true
	}
	return false
}
