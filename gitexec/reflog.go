package gitexec

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// resolveGitDir walks startPath's parents looking for a ".git" entry,
// following the "gitdir: <path>" indirection used by worktrees and
// submodules.
func resolveGitDir(startPath string) (string, error) {
	if startPath == "" {
		return "", errors.New("gitexec: empty repo path")
	}

	p := filepath.Clean(startPath)
	for {
		dotgit := filepath.Join(p, ".git")
		fi, err := os.Stat(dotgit)
		if err == nil {
			if fi.IsDir() {
				return dotgit, nil
			}
			b, rerr := os.ReadFile(dotgit)
			if rerr != nil {
				return "", fmt.Errorf("gitexec: read %s: %w", dotgit, rerr)
			}
			s := strings.TrimSpace(string(b))
			gd := strings.TrimSpace(strings.TrimPrefix(s, "gitdir:"))
			if !strings.HasPrefix(s, "gitdir:") || gd == "" {
				return "", fmt.Errorf("gitexec: unrecognized .git file %s", dotgit)
			}
			if !filepath.IsAbs(gd) {
				gd = filepath.Join(p, gd)
			}
			return filepath.Clean(gd), nil
		}

		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		p = parent
	}

	return "", fmt.Errorf("gitexec: no .git found above %s", startPath)
}

// readReflogNewHashes reads a ref's reflog and returns every "new hash"
// column in file order, deduplicated. A missing reflog file is not an
// error — it returns (nil, nil).
func readReflogNewHashes(gitDir, refName string) ([]plumbing.Hash, error) {
	path := filepath.Join(gitDir, "logs", filepath.FromSlash(refName))
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("gitexec: open reflog %s: %w", path, err)
	}
	defer f.Close()

	var out []plumbing.Hash
	seen := make(map[plumbing.Hash]struct{})
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || len(fields[1]) != 40 {
			continue
		}
		h := plumbing.NewHash(fields[1])
		if h.IsZero() {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("gitexec: scan reflog %s: %w", path, err)
	}
	return out, nil
}

// trackedRemoteRefs parses gitDir's config and returns the set of
// "refs/remotes/<remote>/<branch>" names that a local branch's
// branch.<name>.remote/.merge settings already track, so reflog
// discovery doesn't double-label them.
func trackedRemoteRefs(gitDir string) (map[string]struct{}, error) {
	out := make(map[string]struct{})

	b, err := os.ReadFile(filepath.Join(gitDir, "config"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return nil, fmt.Errorf("gitexec: read git config: %w", err)
	}

	type branchCfg struct{ remote, merge string }
	branches := make(map[string]*branchCfg)
	var cur string

	for _, raw := range strings.Split(string(b), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			cur = ""
			sec := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, "["), "]"))
			if name, ok := strings.CutPrefix(sec, "branch "); ok {
				cur = strings.Trim(strings.TrimSpace(name), `"`)
				if cur != "" && branches[cur] == nil {
					branches[cur] = &branchCfg{}
				}
			}
			continue
		}
		if cur == "" {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "remote":
			branches[cur].remote = strings.TrimSpace(val)
		case "merge":
			branches[cur].merge = strings.TrimSpace(val)
		}
	}

	for _, bc := range branches {
		if bc.remote == "" || bc.merge == "" {
			continue
		}
		merge := strings.TrimPrefix(bc.merge, "refs/heads/")
		if merge == "" {
			continue
		}
		out[fmt.Sprintf("refs/remotes/%s/%s", bc.remote, merge)] = struct{}{}
	}
	return out, nil
}
