package gitcore

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
)

const (
	prefixHeads   = "refs/heads/"
	prefixRemotes = "refs/remotes/"
	prefixTags    = "refs/tags/"
)

// ParseRefs tokenizes the output of
// `for-each-ref --format='%(objectname) %(refname) %(objecttype)' refs/heads refs/remotes refs/tags`
// into a sequence of Refs. Lines with an unrecognized refname prefix, and
// the synthetic "<remote>/HEAD" entry, are silently skipped (not errors).
func ParseRefs(buf []byte, headBranch string) []Ref {
	var refs []Ref

	sc := bufio.NewScanner(bytes.NewReader(buf))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		hashStr := lowerHex(fields[0])
		hash, err := ParseHash(hashStr)
		if err != nil {
			continue
		}
		fullName := fields[1]
		objectType := fields[2]

		switch {
		case strings.HasPrefix(fullName, prefixHeads):
			name := strings.TrimPrefix(fullName, prefixHeads)
			refs = append(refs, Ref{
				Name:     name,
				FullName: fullName,
				Target:   hash,
				Kind:     RefLocalBranch,
				IsHead:   name == headBranch,
			})

		case strings.HasPrefix(fullName, prefixRemotes):
			name := strings.TrimPrefix(fullName, prefixRemotes)
			if strings.HasSuffix(name, "/HEAD") {
				continue
			}
			remoteName := name
			if idx := strings.IndexByte(name, '/'); idx >= 0 {
				remoteName = name[:idx]
			}
			refs = append(refs, Ref{
				Name:       name,
				FullName:   fullName,
				Target:     hash,
				Kind:       RefRemoteBranch,
				IsHead:     false,
				RemoteName: remoteName,
			})

		case strings.HasPrefix(fullName, prefixTags):
			name := strings.TrimPrefix(fullName, prefixTags)
			refs = append(refs, Ref{
				Name:        name,
				FullName:    fullName,
				Target:      hash,
				Kind:        RefTag,
				IsAnnotated: objectType == "tag",
			})

		default:
			// Not under refs/heads, refs/remotes, or refs/tags: skip.
		}
	}

	return refs
}

// ParseHead interprets the output of `symbolic-ref --short HEAD` and
// `rev-parse HEAD`. The branch name is returned trimmed, or nil if empty
// (detached HEAD). The commit hash is returned trimmed and lowercased, or
// nil if empty or not a valid 40-hex hash.
func ParseHead(headRefOut, headCommitOut string) (headRef *string, headCommit *Hash) {
	ref := strings.TrimSpace(headRefOut)
	if ref != "" {
		headRef = &ref
	}

	commit := lowerHex(strings.TrimSpace(headCommitOut))
	if h, err := ParseHash(commit); err == nil {
		headCommit = &h
	}

	return headRef, headCommit
}

// ProtectedMatcher matches ref short names against a set of protected
// branch patterns (exact strings, or globs using '*' for any run of
// characters).
type ProtectedMatcher struct {
	patterns []*regexp.Regexp
}

// CompileProtectedPatterns compiles a list of glob/exact patterns into a
// ProtectedMatcher. Regex metacharacters other than '*' are escaped.
func CompileProtectedPatterns(patterns []string) ProtectedMatcher {
	m := ProtectedMatcher{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		m.patterns = append(m.patterns, regexp.MustCompile(globToRegexp(p)))
	}
	return m
}

// Match reports whether name matches any of the matcher's patterns.
func (m ProtectedMatcher) Match(name string) bool {
	for _, re := range m.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

func globToRegexp(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		if r == '*' {
			b.WriteString(".*")
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	b.WriteString("$")
	return b.String()
}
