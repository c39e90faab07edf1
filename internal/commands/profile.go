package commands

import (
	"fmt"

	"github.com/gerunddev/orgsocial/internal/styles"
)

// Profile prints the user's profile metadata
func Profile() {
	cfg := mustLoadConfig()
	doc := loadUserDocument(cfg)
	p := doc.Profile

	if p.Title() != "" {
		fmt.Println(styles.TitleStyle.Render(p.Title()))
	}
	if p.Nick() != "" {
		fmt.Println(styles.AuthorStyle.Render("@" + p.Nick()))
	}
	if p.Description() != "" {
		fmt.Println(p.Description())
	}
	if p.Avatar() != "" {
		fmt.Println(styles.DimStyle.Render("avatar: " + p.Avatar()))
	}
	for _, link := range p.Links() {
		fmt.Println(styles.MentionStyle.Render(link))
	}
	for _, contact := range p.Contacts() {
		fmt.Println(styles.DimStyle.Render("contact: " + contact))
	}

	if follows := p.Follows(); len(follows) > 0 {
		fmt.Println()
		fmt.Println(styles.HighlightStyle.Render(fmt.Sprintf("Following (%d):", len(follows))))
		for _, f := range follows {
			fmt.Printf("  %s %s\n", styles.AuthorStyle.Render(f.Nick), styles.DimStyle.Render(f.URL))
		}
	}

	fmt.Println()
	fmt.Println(styles.DimStyle.Render(fmt.Sprintf("%d posts in %s", len(doc.Posts), cfg.FeedFile)))
}
