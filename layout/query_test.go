package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anton-dovnar/gitrail/gitcore"
)

func diamondVisualGraph() *VisualGraph {
	head := hh('d')
	commits := []gitcore.Commit{mkCommit('d', 'b', 'c'), mkCommit('b', 'a'), mkCommit('c', 'a'), mkCommit('a')}
	g := gitcore.BuildGraph(commits, nil, &head, nil)
	return Layout(g, noOptions())
}

func TestVisibleCommitsRange(t *testing.T) {
	vg := diamondVisualGraph()
	visible := vg.VisibleCommits(1, 2)
	require.Len(t, visible, 2)
	for _, c := range visible {
		require.True(t, c.Row >= 1 && c.Row <= 2)
	}
}

func TestVisibleCommitsClampsEnd(t *testing.T) {
	vg := diamondVisualGraph()
	visible := vg.VisibleCommits(0, 1000)
	require.Len(t, visible, vg.TotalRows)
}

func TestVisibleEdgesOverlap(t *testing.T) {
	vg := diamondVisualGraph()
	edges := vg.VisibleEdges(0, 0)
	for _, e := range edges {
		require.True(t, e.FromRow <= 0 || e.ToRow <= 0)
	}
}

func TestBoundingBoxOfDiamond(t *testing.T) {
	vg := diamondVisualGraph()
	bb := BoundingBoxOf(vg.Commits, vg.Edges)
	require.Equal(t, 0, bb.MinRow)
	require.Equal(t, vg.TotalRows-1, bb.MaxRow)
	require.Equal(t, 0, bb.MinLane)
}

func TestBoundingBoxOfEmpty(t *testing.T) {
	bb := BoundingBoxOf(nil, nil)
	require.Equal(t, BoundingBox{}, bb)
}

func TestFindCommitAtPositionWithinTolerance(t *testing.T) {
	vg := diamondVisualGraph()
	c0, _ := vg.CommitAtRow(0)

	found, ok := vg.FindCommitAtPosition(0, float64(c0.Lane)+0.4, 0.5)
	require.True(t, ok)
	require.Equal(t, c0.Hash, found.Hash)

	_, ok = vg.FindCommitAtPosition(0, float64(c0.Lane)+2, 0.5)
	require.False(t, ok)
}

func TestEdgePathSameLaneIsTwoPoints(t *testing.T) {
	e := VisualEdge{FromRow: 0, FromLane: 0, ToRow: 1, ToLane: 0, EdgeType: EdgeStraight}
	path := EdgePath(e)
	require.Equal(t, []Point{{Row: 0, Lane: 0}, {Row: 1, Lane: 0}}, path)
}

func TestEdgePathMergeIsThreePoints(t *testing.T) {
	e := VisualEdge{FromRow: 0, FromLane: 0, ToRow: 2, ToLane: 1, EdgeType: EdgeMerge}
	path := EdgePath(e)
	require.Len(t, path, 3)
	require.Equal(t, Point{Row: 0, Lane: 1}, path[1])
}

func TestEdgePathForkIsFourPoints(t *testing.T) {
	e := VisualEdge{FromRow: 0, FromLane: 1, ToRow: 2, ToLane: 0, EdgeType: EdgeFork}
	path := EdgePath(e)
	require.Len(t, path, 4)
}

func TestEdgePathToSVGStraightIsMLL(t *testing.T) {
	points := []Point{{Row: 0, Lane: 0}, {Row: 1, Lane: 0}}
	d := EdgePathToSVG(points, 30, 24, false)
	require.Equal(t, "M 12.00 15.00 L 12.00 45.00", d)
}

func TestEdgePathToSVGCurveUsesQAndFinalL(t *testing.T) {
	points := []Point{{Row: 0, Lane: 0}, {Row: 1, Lane: 0}, {Row: 1, Lane: 1}, {Row: 2, Lane: 1}}
	d := EdgePathToSVG(points, 30, 24, true)
	require.Contains(t, d, "M ")
	require.Contains(t, d, "Q ")
	require.Contains(t, d, "L ")
	require.NotContains(t, d, "C ")
}
