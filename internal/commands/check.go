package commands

import (
	"fmt"
	"os"

	"github.com/gerunddev/orgsocial/internal/diff"
	"github.com/gerunddev/orgsocial/internal/styles"
)

// Check diffs the feed file against its canonical serialization
func Check(args []string) {
	cfg := mustLoadConfig()

	d, err := diff.CheckFile(cfg.FeedFile)
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}

	if d == "" {
		fmt.Println(styles.SuccessStyle.Render("✓ Feed file is canonical"))
		return
	}

	fmt.Println(styles.WarningStyle.Render("Feed file differs from its canonical form:"))
	fmt.Print(d)

	if hasFlag(args, "--fix") {
		data, err := os.ReadFile(cfg.FeedFile)
		if err != nil {
			fmt.Println(styles.ErrorStyle.Render("✗ " + err.Error()))
			os.Exit(1)
		}
		canonical := diff.Canonical(string(data), "")
		if err := os.WriteFile(cfg.FeedFile, []byte(canonical), 0644); err != nil {
			fmt.Println(styles.ErrorStyle.Render("✗ Failed to rewrite feed file: " + err.Error()))
			os.Exit(1)
		}
		fmt.Println(styles.SuccessStyle.Render("✓ Rewrote feed file in canonical form"))
		return
	}

	os.Exit(1)
}
