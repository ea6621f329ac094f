package gitcore

import "time"

// Identity is an author or committer name/email pair. Either may be empty.
type Identity struct {
	Name  string
	Email string
}

// Commit is an immutable commit record. Parent hashes are listed in Git's
// parent order; Parents[0], when present, is the mainline continuation.
type Commit struct {
	Hash        Hash
	Parents     []Hash
	Author      Identity
	Committer   Identity
	AuthoredAt  time.Time
	CommittedAt time.Time
	Subject     string
	Body        string
}

// RefKind tags the three ref varieties Git exposes under refs/.
type RefKind int

const (
	RefLocalBranch RefKind = iota
	RefRemoteBranch
	RefTag
)

func (k RefKind) String() string {
	switch k {
	case RefLocalBranch:
		return "local-branch"
	case RefRemoteBranch:
		return "remote-branch"
	case RefTag:
		return "tag"
	default:
		return "unknown"
	}
}

// Ref is a single Git reference (branch, remote-tracking branch, or tag).
// Only the fields relevant to Kind are meaningful: RemoteName is set only
// for RefRemoteBranch, IsAnnotated only for RefTag.
type Ref struct {
	Name        string // short name, e.g. "main" or "origin/main"
	FullName    string // full path, e.g. "refs/heads/main"
	Target      Hash
	Kind        RefKind
	IsHead      bool
	IsProtected bool
	IsAnnotated bool   // RefTag only
	RemoteName  string // RefRemoteBranch only: prefix before the first '/'
}
