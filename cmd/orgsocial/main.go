package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/orgsocial/internal/commands"
	"github.com/gerunddev/orgsocial/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "threads":
		commands.Threads(os.Args[2:])
	case "feed", "timeline":
		commands.Feed(os.Args[2:])
	case "notifications", "mentions":
		commands.Notifications(os.Args[2:])
	case "post":
		commands.Post(os.Args[2:])
	case "reply":
		commands.Reply(os.Args[2:])
	case "vote":
		commands.Vote(os.Args[2:])
	case "check":
		commands.Check(os.Args[2:])
	case "profile", "whoami":
		commands.Profile()
	case "version", "-v", "--version":
		fmt.Printf("orgsocial v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`orgsocial - A decentralized social feed in plain org files

Usage:
  orgsocial <command> [options]

Commands:
  threads        Show conversation trees across all followed feeds
  feed           Show the merged timeline (--limit N, --source URL)
  notifications  Show mentions and replies addressed to you
  post           Append a new post (--content, --tags, --mood, --lang, --poll-end)
  reply          Reply to a post (--to <source#id>, --content)
  vote           Vote on a poll (--poll <source#id>, --option text) or show tally
  check          Diff the feed file against its canonical form (--fix rewrites)
  profile        Show your profile and follow list
  version        Show version information
  help           Show this help message

Examples:
  orgsocial post --content "Hello world" --tags "intro"
  orgsocial reply --to "https://alice.example/social.org#2025-05-01T10:00:00+0100" --content "Hi!"
  orgsocial vote --poll "https://bob.example/social.org#2025-05-02T09:00:00+0100" --option "Yes"
  orgsocial feed --limit 10
  orgsocial check --fix

Configuration:
  Config file: %s
`, config.ConfigPath())
	fmt.Print(usage)
}
