// Package social parses and serializes org-social documents: a profile
// header followed by a "* Posts" section of timestamped entries.
package social

import "strings"

// Document is a fully parsed org-social feed.
type Document struct {
	Profile *Profile
	Posts   []*Post
}

// ParseDocument parses the text of an org-social feed. source identifies
// where the document came from (usually its URL) and is stamped onto the
// profile and every post; pass "" for the user's own feed.
//
// Parsing never fails: malformed sections degrade to empty metadata or
// plain content rather than errors.
func ParseDocument(text, source string) *Document {
	lines := strings.Split(text, "\n")

	postsStart := len(lines)
	for i, line := range lines {
		if strings.HasPrefix(line, "* Posts") {
			postsStart = i
			break
		}
	}

	profile := parseProfile(lines[:postsStart])
	profile.SetSource(source)

	var posts []*Post
	var current []string
	flush := func() {
		if current != nil {
			if post := parsePost(current); post != nil {
				post.SetSource(source)
				posts = append(posts, post)
			}
			current = nil
		}
	}

	for _, line := range lines[postsStart:] {
		if strings.HasPrefix(line, "**") {
			flush()
		}
		if current != nil || strings.HasPrefix(line, "**") {
			current = append(current, line)
		}
	}
	flush()

	return &Document{Profile: profile, Posts: posts}
}

// parsePost parses one post section: the ** headline, a :PROPERTIES: drawer,
// then the body. Lines before the drawer ends are never content; a section
// with no drawer yields a post with empty metadata and no content.
func parsePost(lines []string) *Post {
	post := &Post{}

	inProperties := false
	propertiesEnded := false
	var content strings.Builder
	hasContent := false

	for _, line := range lines {
		if strings.HasPrefix(line, "** :PROPERTIES:") || strings.HasPrefix(line, ":PROPERTIES:") {
			inProperties = true
			continue
		}
		if strings.HasPrefix(line, ":END:") {
			if inProperties {
				propertiesEnded = true
				inProperties = false
			}
			continue
		}
		if strings.TrimSpace(line) == "**" {
			continue
		}

		if inProperties && strings.HasPrefix(line, ":") {
			key, value, found := strings.Cut(line, ": ")
			if !found {
				continue
			}
			value = strings.TrimSpace(value)

			switch key {
			case ":ID":
				post.id = value
			case ":LANG":
				post.lang = value
			case ":TAGS":
				post.tags = append(post.tags, strings.Fields(value)...)
			case ":CLIENT":
				post.client = value
			case ":REPLY_TO":
				post.replyTo = value
			case ":POLL_END":
				post.pollEnd = value
			case ":POLL_OPTION":
				post.pollOption = value
			case ":MOOD":
				post.mood = value
			}
			continue
		}

		if propertiesEnded && (hasContent || line != "") {
			content.WriteString(line)
			content.WriteString("\n")
			hasContent = true
		}
	}

	// Trailing blank lines are the separators between posts, not content;
	// stripping them keeps parse/serialize a semantic round trip.
	post.content = strings.TrimRight(content.String(), "\n")
	post.ParseContent()

	return post
}

// SerializeDocument renders a document back to org-social text. The output
// is canonical: property order is fixed, empty properties are dropped, and
// sections are separated by single blank lines.
func SerializeDocument(doc *Document) string {
	var sections []string

	if doc.Profile != nil {
		if header := doc.Profile.ToOrg(); header != "" {
			sections = append(sections, header, "")
		}
	}

	if len(doc.Posts) > 0 {
		sections = append(sections, "* Posts")
		for _, post := range doc.Posts {
			sections = append(sections, post.ToOrg(), "")
		}
		sections = sections[:len(sections)-1]
	}

	return strings.Join(sections, "\n")
}
