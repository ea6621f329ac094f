package gitexec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/anton-dovnar/gitrail/config"
	"github.com/anton-dovnar/gitrail/internal/rlog"
)

// logFormat is the exact format string spec.md §6 mandates:
// hash\x00parents\x00author-name\x00author-email\x00author-date\x00
// committer-name\x00committer-email\x00commit-date\x00subject\x00body\x01
const logFormat = `%H%x00%P%x00%an%x00%ae%x00%aI%x00%cn%x00%ce%x00%cI%x00%s%x00%b%x01`

const refFormat = `%(objectname) %(refname) %(objecttype)`

// CLIExecutor fetches Snapshots by shelling out to the `git` binary,
// running the log fetch, ref fetch, and HEAD fetch concurrently.
type CLIExecutor struct {
	Config  config.Configuration
	All     bool
	Timeout time.Duration

	log *rlog.Logger
}

// NewCLIExecutor returns a CLIExecutor with a default 30s per-command
// timeout.
func NewCLIExecutor(cfg config.Configuration, all bool) *CLIExecutor {
	return &CLIExecutor{
		Config:  cfg,
		All:     all,
		Timeout: 30 * time.Second,
		log:     rlog.WithPrefix("gitexec/cli"),
	}
}

func (e *CLIExecutor) run(ctx context.Context, repoPath string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = repoPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		e.log.Warn("git command failed", "args", args, "stderr", stderr.String(), "error", err)
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, stderr.String())
	}
	return stdout.String(), nil
}

func (e *CLIExecutor) logArgs() []string {
	args := []string{"log", "--topo-order", "--pretty=format:" + logFormat}
	if e.All {
		args = append(args, "--all")
	}
	if e.Config.MaxCommits > 0 {
		args = append(args, "-n", fmt.Sprintf("%d", e.Config.MaxCommits))
	}
	if e.Config.Since != nil {
		args = append(args, "--since="+e.Config.Since.Format(time.RFC3339))
	}
	if e.Config.Until != nil {
		args = append(args, "--until="+e.Config.Until.Format(time.RFC3339))
	}
	return args
}

// Fetch runs `log`, `for-each-ref`, `symbolic-ref --short HEAD`, and
// `rev-parse HEAD` concurrently against repoPath and assembles a
// Snapshot. A failing HEAD lookup (detached HEAD, or an empty repo) is
// tolerated — the corresponding output is simply empty, matching
// gitcore.ParseHead's handling of blank input.
func (e *CLIExecutor) Fetch(ctx context.Context, repoPath string) (Snapshot, error) {
	var snap Snapshot

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out, err := e.run(gctx, repoPath, e.logArgs()...)
		if err != nil {
			return fmt.Errorf("log fetch: %w", err)
		}
		snap.LogBuf = []byte(out)
		return nil
	})

	g.Go(func() error {
		out, err := e.run(gctx, repoPath, "for-each-ref", "--format="+refFormat,
			"refs/heads", "refs/remotes", "refs/tags")
		if err != nil {
			return fmt.Errorf("ref fetch: %w", err)
		}
		snap.RefBuf = []byte(out)
		return nil
	})

	g.Go(func() error {
		out, _ := e.run(gctx, repoPath, "symbolic-ref", "--short", "HEAD")
		snap.HeadRefOutput = out
		return nil
	})

	g.Go(func() error {
		out, _ := e.run(gctx, repoPath, "rev-parse", "HEAD")
		snap.HeadCommit = out
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	e.log.Debug("fetched snapshot", "log_bytes", len(snap.LogBuf), "ref_bytes", len(snap.RefBuf))
	return snap, nil
}
