package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/anton-dovnar/gitrail/config"
	"github.com/anton-dovnar/gitrail/gitcore"
	"github.com/anton-dovnar/gitrail/gitexec"
	"github.com/anton-dovnar/gitrail/internal/rlog"
	"github.com/anton-dovnar/gitrail/layout"
	rsvg "github.com/anton-dovnar/gitrail/render/svg"
)

func main() {
	repoPath := flag.String("path", ".", "Path to Git repository (any subdirectory is OK)")
	all := flag.Bool("all", false, "Include remote refs")
	configPath := flag.String("config", "", "Path to a YAML configuration file (optional)")
	svgOut := flag.String("svg-out", "", "Write rendered SVG to this path (default: stdout)")
	protected := flag.String("protected", "", "Comma-separated protected branch patterns, overriding config")
	useSubprocess := flag.Bool("use-subprocess", true, "Fetch history by shelling out to the git binary; false uses an in-process go-git walk")
	optimize := flag.Bool("optimize", true, "Run the lane-crossing-reduction pass before rendering")
	useCurves := flag.Bool("curves", true, "Render fork/merge edges as curves instead of straight elbows")
	repoSlug := flag.String("repo-slug", "", "GitHub \"owner/repo\" slug, used to link issue references in commit subtitles")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("gitrail: %v", err)
		}
		cfg = loaded
	}
	if *protected != "" {
		cfg.ProtectedBranches = splitAndTrim(*protected, ",")
	}

	var executor gitexec.Executor
	if *useSubprocess {
		executor = gitexec.NewCLIExecutor(cfg, *all)
	} else {
		executor = gitexec.NewGoGitExecutor(*all)
	}

	ctx := context.Background()
	snap, err := executor.Fetch(ctx, *repoPath)
	if err != nil {
		log.Fatalf("gitrail: fetch %s: %v", *repoPath, err)
	}

	logResult := gitcore.ParseLog(snap.LogBuf)
	for _, perr := range logResult.Errors {
		rlog.Default().Warn("dropped log record", "kind", perr.Kind, "field", perr.Field, "error", perr.Message)
	}

	headRef, headCommit := gitcore.ParseHead(snap.HeadRefOutput, snap.HeadCommit)

	headBranch := ""
	if headRef != nil {
		headBranch = *headRef
	}
	refs := gitcore.ParseRefs(snap.RefBuf, headBranch)

	graph := gitcore.BuildGraph(logResult.Commits, refs, headCommit, headRef)
	rlog.Default().Info("loaded repository", "commits", len(graph.Commits), "refs", len(graph.Refs))

	vg := layout.Layout(graph, layout.Options{
		ProtectedBranches: gitcore.CompileProtectedPatterns(cfg.ProtectedBranches),
	})
	if *optimize {
		vg = layout.OptimizeLanes(vg)
	}

	out := os.Stdout
	if *svgOut != "" {
		f, err := os.Create(*svgOut)
		if err != nil {
			log.Fatalf("gitrail: create %s: %v", *svgOut, err)
		}
		defer f.Close()
		out = f
	}

	canvas := svg.New(out)
	opts := rsvg.DefaultOptions()
	opts.UseCurves = *useCurves
	opts.RepoSlug = *repoSlug
	rsvg.Draw(canvas, vg, opts)
}

// splitAndTrim splits s on sep, trims whitespace from each field, and
// drops empty fields.
func splitAndTrim(s, sep string) []string {
	var out []string
	for _, field := range strings.Split(s, sep) {
		field = strings.TrimSpace(field)
		if field != "" {
			out = append(out, field)
		}
	}
	return out
}
