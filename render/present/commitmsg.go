// Package present formats commit data for human-facing surfaces: relative
// dates and conventional-commit subject parsing with issue linking.
package present

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ParsedMessage is a commit subject decomposed per the Conventional
// Commits convention: "type(scope): title". Subjects that don't match
// the convention come back with an empty Type/Scope and the full
// subject as Title.
type ParsedMessage struct {
	Type  string
	Scope string
	Title string
}

// ParseMessage parses a commit subject into ParsedMessage.
func ParseMessage(subject string) ParsedMessage {
	colonIdx := strings.Index(subject, ": ")
	if colonIdx < 0 {
		return ParsedMessage{Title: subject}
	}

	prefix := strings.TrimSpace(subject[:colonIdx])
	title := strings.TrimSpace(subject[colonIdx+2:])

	if parenIdx := strings.Index(prefix, "("); parenIdx >= 0 {
		rest := prefix[parenIdx+1:]
		if closeIdx := strings.Index(rest, ")"); closeIdx >= 0 {
			commitType := strings.TrimSpace(prefix[:parenIdx])
			scope := strings.TrimSpace(rest[:closeIdx])
			if strings.Contains(commitType, " ") {
				return ParsedMessage{Title: subject}
			}
			return ParsedMessage{Type: commitType, Scope: scope, Title: title}
		}
	}

	if strings.Contains(prefix, " ") {
		return ParsedMessage{Title: subject}
	}
	return ParsedMessage{Type: prefix, Title: title}
}

var issueRegex = regexp.MustCompile(`(\w+)#(\d+)`)

// LinkIssues rewrites "org#123"-style references in text into GitHub
// issue links scoped to repoSlug ("owner/repo"). If repoSlug is empty,
// text is returned unchanged.
func LinkIssues(text, repoSlug string) string {
	if repoSlug == "" {
		return text
	}
	return issueRegex.ReplaceAllStringFunc(text, func(match string) string {
		parts := issueRegex.FindStringSubmatch(match)
		if len(parts) != 3 {
			return match
		}
		org, num := parts[1], parts[2]
		if strings.HasPrefix(repoSlug, org+"/") {
			return fmt.Sprintf(`<a target="_blank" href="https://github.com/%s/issues/%s">%s#%s</a>`, repoSlug, num, org, num)
		}
		return fmt.Sprintf(`<a target="_blank" href="https://github.com/%s/issues/%s">%s#%s</a>`, org, num, org, num)
	})
}

// RelativeDate renders t relative to now as "2 days ago"-style text.
func RelativeDate(now, t time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return pluralize(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return pluralize(int(diff.Hours()), "hour")
	case diff < 30*24*time.Hour:
		return pluralize(int(diff.Hours()/24), "day")
	case diff < 365*24*time.Hour:
		return pluralize(int(diff.Hours()/(24*30)), "month")
	default:
		return pluralize(int(diff.Hours()/(24*365)), "year")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
