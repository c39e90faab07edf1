package social

import "strings"

// Follow is one entry of a profile's follow list.
type Follow struct {
	Nick string
	URL  string
}

// Profile holds the metadata header of an org-social document.
//
// Nick may be empty; consumers must supply their own fallback label.
type Profile struct {
	title       string
	nick        string
	description string
	avatar      string
	links       []string
	follows     []Follow
	contacts    []string
	source      string
}

func (p *Profile) Title() string       { return p.title }
func (p *Profile) Nick() string        { return p.nick }
func (p *Profile) Description() string { return p.description }
func (p *Profile) Avatar() string      { return p.avatar }
func (p *Profile) Links() []string     { return p.links }
func (p *Profile) Follows() []Follow   { return p.follows }
func (p *Profile) Contacts() []string  { return p.contacts }
func (p *Profile) Source() string      { return p.source }

// SetSource records the origin document identifier. It is assigned by the
// loader and never parsed from document text.
func (p *Profile) SetSource(source string) { p.source = source }

func (p *Profile) SetNick(nick string) { p.nick = nick }

// NickFor maps a source URL to the followed nick, normalizing trailing
// slashes. The first matching follow entry wins.
func (p *Profile) NickFor(url string) (string, bool) {
	normalized := strings.TrimRight(url, "/")
	for _, f := range p.follows {
		if strings.TrimRight(f.URL, "/") == normalized {
			return f.Nick, true
		}
	}
	return "", false
}

// parseProfile extracts profile metadata from the header section lines.
// Each line splits on its first colon; unrecognized keys are ignored.
func parseProfile(lines []string) *Profile {
	p := &Profile{}

	for _, line := range lines {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.TrimSpace(key) {
		case "#+TITLE":
			p.title = value
		case "#+NICK":
			p.nick = value
		case "#+DESCRIPTION":
			p.description = value
		case "#+AVATAR":
			p.avatar = value
		case "#+LINK":
			p.links = append(p.links, value)
		case "#+FOLLOW":
			nick, url, ok := strings.Cut(value, " ")
			if ok {
				p.follows = append(p.follows, Follow{Nick: nick, URL: url})
			}
		case "#+CONTACT":
			p.contacts = append(p.contacts, value)
		}
	}

	return p
}

// ToOrg serializes the profile back to its document header form.
func (p *Profile) ToOrg() string {
	var lines []string

	if p.title != "" {
		lines = append(lines, "#+TITLE: "+p.title)
	}
	if p.nick != "" {
		lines = append(lines, "#+NICK: "+p.nick)
	}
	if p.description != "" {
		lines = append(lines, "#+DESCRIPTION: "+p.description)
	}
	if p.avatar != "" {
		lines = append(lines, "#+AVATAR: "+p.avatar)
	}
	for _, link := range p.links {
		lines = append(lines, "#+LINK: "+link)
	}
	for _, f := range p.follows {
		lines = append(lines, "#+FOLLOW: "+f.Nick+" "+f.URL)
	}
	for _, contact := range p.contacts {
		lines = append(lines, "#+CONTACT: "+contact)
	}

	return strings.Join(lines, "\n")
}
