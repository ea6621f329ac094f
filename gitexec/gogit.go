package gitexec

import (
	"container/heap"
	"context"
	"fmt"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/anton-dovnar/gitrail/internal/rlog"
)

// GoGitExecutor synthesizes the same NUL/SOH-delimited log buffer and
// for-each-ref buffer an Executor owes the core, entirely in-process via
// go-git — no `git` binary required on PATH.
type GoGitExecutor struct {
	All bool

	log *rlog.Logger
}

// NewGoGitExecutor returns a GoGitExecutor. When all is true, remote
// branches are walked and labeled alongside local branches and tags.
func NewGoGitExecutor(all bool) *GoGitExecutor {
	return &GoGitExecutor{All: all, log: rlog.WithPrefix("gitexec/gogit")}
}

// commitHeap is a max-heap of commits ordered by committer date, newest
// first — the same walk-order idea the pack's repository walker uses for
// CommitLog, reused here to approximate Git's `--topo-order` (it is
// exact whenever commit dates increase monotonically from parent to
// child, which holds for ordinary histories; see DESIGN.md).
type commitHeap []*object.Commit

func (h commitHeap) Len() int { return len(h) }
func (h commitHeap) Less(i, j int) bool {
	return h[i].Committer.When.After(h[j].Committer.When)
}
func (h commitHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *commitHeap) Push(x any)   { *h = append(*h, x.(*object.Commit)) }
func (h *commitHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Fetch opens repoPath as a go-git repository and walks every reachable
// commit from local branches, tags, and (if All) remote branches, plus
// any dangling commit still named by a reflog entry — mirroring the
// teacher's collectCommits/ReadReflogNewHashes discovery reach — and
// emits the walk as gitcore's textual log/ref/HEAD contract.
func (e *GoGitExecutor) Fetch(ctx context.Context, repoPath string) (Snapshot, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Snapshot{}, fmt.Errorf("gitexec: open %s: %w", repoPath, err)
	}

	start, err := e.startingHashes(repo)
	if err != nil {
		return Snapshot{}, err
	}

	commits, err := e.walk(ctx, repo, start)
	if err != nil {
		return Snapshot{}, err
	}

	refBuf, err := e.buildRefBuffer(repo)
	if err != nil {
		return Snapshot{}, err
	}

	headRefOut, headCommitOut := e.headStrings(repo)

	e.log.Debug("walked repository", "commits", len(commits), "path", repoPath)
	return Snapshot{
		LogBuf:        buildLogBuffer(commits),
		RefBuf:        refBuf,
		HeadRefOutput: headRefOut,
		HeadCommit:    headCommitOut,
	}, nil
}

// startingHashes collects every ref tip worth walking from: all local
// branches and tags (resolved through annotated-tag objects to their
// target commit, with a lightweight-tag fallback), remote branches when
// All is set, and reflog-only commits for branches (plus untracked
// remotes when All) that current refs no longer point at.
func (e *GoGitExecutor) startingHashes(repo *git.Repository) (mapset.Set[plumbing.Hash], error) {
	start := mapset.NewSet[plumbing.Hash]()

	refIter, err := repo.References()
	if err != nil {
		return nil, fmt.Errorf("gitexec: list references: %w", err)
	}
	defer refIter.Close()

	err = refIter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		switch {
		case name.IsBranch():
			start.Add(ref.Hash())
		case name.IsTag():
			if obj, terr := repo.TagObject(ref.Hash()); terr == nil {
				if commit, cerr := obj.Commit(); cerr == nil {
					start.Add(commit.Hash)
					return nil
				}
			}
			start.Add(ref.Hash())
		case e.All && name.IsRemote():
			start.Add(ref.Hash())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gitexec: walk references: %w", err)
	}

	e.addReflogDiscoveries(repo, start)
	return start, nil
}

func (e *GoGitExecutor) addReflogDiscoveries(repo *git.Repository, start mapset.Set[plumbing.Hash]) {
	wt, err := repo.Worktree()
	if err != nil {
		return
	}
	gitDir, err := resolveGitDir(wt.Filesystem.Root())
	if err != nil {
		e.log.Debug("no git dir for reflog discovery", "error", err)
		return
	}

	tracked := map[string]struct{}{}
	if e.All {
		if m, terr := trackedRemoteRefs(gitDir); terr == nil {
			tracked = m
		}
	}

	refIter, err := repo.References()
	if err != nil {
		return
	}
	defer refIter.Close()

	refIter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		refName := name.String()

		switch {
		case name.IsBranch():
		case e.All && name.IsRemote() && !strings.HasSuffix(refName, "/HEAD"):
			if _, ok := tracked[refName]; ok {
				return nil
			}
		default:
			return nil
		}

		hashes, herr := readReflogNewHashes(gitDir, refName)
		if herr != nil {
			return nil
		}
		for _, h := range hashes {
			start.Add(h)
		}
		return nil
	})
}

// walk pops the highest-committer-date commit from the heap each
// iteration, visiting each hash at most once, discovering parents as
// their children are emitted.
func (e *GoGitExecutor) walk(ctx context.Context, repo *git.Repository, start mapset.Set[plumbing.Hash]) ([]*object.Commit, error) {
	visited := mapset.NewSet[plumbing.Hash]()
	h := &commitHeap{}
	heap.Init(h)

	for hash := range start.Iter() {
		if visited.Contains(hash) {
			continue
		}
		commit, err := repo.CommitObject(hash)
		if err != nil {
			continue
		}
		visited.Add(hash)
		heap.Push(h, commit)
	}

	var result []*object.Commit
	for h.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		commit := heap.Pop(h).(*object.Commit)
		result = append(result, commit)

		for _, parentHash := range commit.ParentHashes {
			if visited.Contains(parentHash) {
				continue
			}
			visited.Add(parentHash)
			if parent, err := repo.CommitObject(parentHash); err == nil {
				heap.Push(h, parent)
			}
		}
	}
	return result, nil
}

func (e *GoGitExecutor) buildRefBuffer(repo *git.Repository) ([]byte, error) {
	var b strings.Builder

	refIter, err := repo.References()
	if err != nil {
		return nil, fmt.Errorf("gitexec: list references: %w", err)
	}
	defer refIter.Close()

	err = refIter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		switch {
		case name.IsBranch():
			fmt.Fprintf(&b, "%s %s commit\n", ref.Hash(), name)
		case name.IsTag():
			objType := "commit"
			if _, terr := repo.TagObject(ref.Hash()); terr == nil {
				objType = "tag"
			}
			fmt.Fprintf(&b, "%s %s %s\n", ref.Hash(), name, objType)
		case e.All && name.IsRemote():
			fmt.Fprintf(&b, "%s %s commit\n", ref.Hash(), name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gitexec: walk references: %w", err)
	}

	return []byte(b.String()), nil
}

func (e *GoGitExecutor) headStrings(repo *git.Repository) (headRef, headCommit string) {
	head, err := repo.Head()
	if err != nil {
		return "", ""
	}
	if head.Name().IsBranch() {
		headRef = head.Name().Short()
	}
	headCommit = head.Hash().String()
	return headRef, headCommit
}

// buildLogBuffer renders commits into the exact field/record contract
// gitcore.ParseLog expects.
func buildLogBuffer(commits []*object.Commit) []byte {
	var b strings.Builder
	for _, c := range commits {
		parents := make([]string, len(c.ParentHashes))
		for i, p := range c.ParentHashes {
			parents[i] = p.String()
		}

		subject, body, _ := strings.Cut(c.Message, "\n")
		body = strings.TrimSpace(strings.TrimPrefix(body, "\n"))

		fmt.Fprintf(&b, "%s\x00%s\x00%s\x00%s\x00%s\x00%s\x00%s\x00%s\x00%s\x00%s\x01",
			c.Hash.String(),
			strings.Join(parents, " "),
			c.Author.Name, c.Author.Email, c.Author.When.Format(time.RFC3339),
			c.Committer.Name, c.Committer.Email, c.Committer.When.Format(time.RFC3339),
			subject, body,
		)
	}
	return []byte(b.String())
}
