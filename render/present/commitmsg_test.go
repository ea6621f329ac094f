package present

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseMessageConventionalWithScope(t *testing.T) {
	p := ParseMessage("feat(parser): handle invalid dates")
	require.Equal(t, ParsedMessage{Type: "feat", Scope: "parser", Title: "handle invalid dates"}, p)
}

func TestParseMessageConventionalNoScope(t *testing.T) {
	p := ParseMessage("fix: drop malformed records")
	require.Equal(t, ParsedMessage{Type: "fix", Title: "drop malformed records"}, p)
}

func TestParseMessagePlainSubjectHasNoType(t *testing.T) {
	p := ParseMessage("update the readme")
	require.Equal(t, ParsedMessage{Title: "update the readme"}, p)
}

func TestParseMessageColonWithoutConventionalPrefixIsPlain(t *testing.T) {
	p := ParseMessage("this has a colon: but not a type prefix")
	require.Equal(t, ParsedMessage{Title: "this has a colon: but not a type prefix"}, p)
}

func TestLinkIssuesRewritesMatchingOrg(t *testing.T) {
	out := LinkIssues("fixes acme#42", "acme/widgets")
	require.Contains(t, out, `href="https://github.com/acme/widgets/issues/42"`)
	require.Contains(t, out, "acme#42")
}

func TestLinkIssuesEmptySlugIsNoop(t *testing.T) {
	out := LinkIssues("fixes acme#42", "")
	require.Equal(t, "fixes acme#42", out)
}

func TestRelativeDateBuckets(t *testing.T) {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)

	require.Equal(t, "just now", RelativeDate(now, now.Add(-30*time.Second)))
	require.Equal(t, "1 minute ago", RelativeDate(now, now.Add(-1*time.Minute)))
	require.Equal(t, "2 hours ago", RelativeDate(now, now.Add(-2*time.Hour)))
	require.Equal(t, "3 days ago", RelativeDate(now, now.Add(-3*24*time.Hour)))
}
