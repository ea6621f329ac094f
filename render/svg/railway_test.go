package svg

import (
	"bytes"
	"testing"
	"time"

	svgo "github.com/ajstarks/svgo"
	"github.com/stretchr/testify/require"

	"github.com/anton-dovnar/gitrail/gitcore"
	"github.com/anton-dovnar/gitrail/layout"
)

func TestDefaultOptionsMatchesTeacherGrid(t *testing.T) {
	opts := DefaultOptions()
	require.Equal(t, float64(stepY), opts.RowHeight)
	require.Equal(t, float64(stepX), opts.LaneWidth)
	require.True(t, opts.UseCurves)
}

func TestRefToColorIsStableAndMemoized(t *testing.T) {
	canvas := svgo.New(&bytes.Buffer{})
	rw := NewRailway(canvas)

	first := rw.refToColor("main")
	second := rw.refToColor("main")
	require.Equal(t, first, second)

	other := rw.refToColor("release/1.0")
	require.NotEqual(t, first, other)
}

func TestColorToHexFormat(t *testing.T) {
	c := hslToRGB(0, 0, 1) // pure white
	require.Equal(t, "#ffffff", colorToHex(c))
}

func TestDrawProducesWellFormedSVG(t *testing.T) {
	var buf bytes.Buffer
	canvas := svgo.New(&buf)

	hash := func(c byte) gitcore.Hash {
		s := make([]byte, gitcore.HashLen)
		for i := range s {
			s[i] = c
		}
		return gitcore.Hash(s)
	}

	committedAt := time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC)
	vg := &layout.VisualGraph{
		Commits: []layout.VisualCommit{
			{Hash: hash('a'), Row: 0, Lane: 0, IsHead: true, Subject: "feat(parser): handle invalid dates", CommittedAt: committedAt},
			{Hash: hash('b'), Row: 1, Lane: 0, Subject: "fixes acme#42"},
		},
		Edges: []layout.VisualEdge{
			{FromHash: hash('a'), FromRow: 0, FromLane: 0, ToHash: hash('b'), ToRow: 1, ToLane: 0, EdgeType: layout.EdgeStraight},
		},
		TotalRows:  2,
		TotalLanes: 1,
	}

	opts := DefaultOptions()
	opts.RepoSlug = "acme/widgets"
	opts.Now = committedAt.Add(2 * 24 * time.Hour)
	Draw(canvas, vg, opts)

	out := buf.String()
	require.Contains(t, out, "<svg")
	require.Contains(t, out, "</svg>")
	require.Contains(t, out, "<circle")
	require.Contains(t, out, "<path")
	require.Contains(t, out, "[feat]")
	require.Contains(t, out, "handle invalid dates")
	require.Contains(t, out, "2 days ago")
	require.Contains(t, out, `href="https://github.com/acme/widgets/issues/42"`)
}
