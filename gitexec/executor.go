// Package gitexec is the collaborator boundary spec.md §1 calls external
// to the core: it produces the exact log/ref/HEAD text buffers
// gitcore.ParseLog/ParseRefs/ParseHead consume. Two implementations are
// provided: CLIExecutor shells out to the real `git` binary, GoGitExecutor
// synthesizes the same buffers in-process from a go-git repository
// object, for callers that would rather not depend on a git binary being
// on PATH.
package gitexec

import "context"

// Snapshot is the raw text-buffer contract the core's parsers expect, as
// produced by one invocation of an Executor against a single repository.
type Snapshot struct {
	LogBuf        []byte
	RefBuf        []byte
	HeadRefOutput string
	HeadCommit    string
}

// Executor fetches a Snapshot from a repository at path. Implementations
// must produce buffers byte-compatible with gitcore.ParseLog's and
// gitcore.ParseRefs's format contracts; the core never spawns processes
// or touches a filesystem itself.
type Executor interface {
	Fetch(ctx context.Context, repoPath string) (Snapshot, error)
}
