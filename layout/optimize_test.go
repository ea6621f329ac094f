package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anton-dovnar/gitrail/gitcore"
)

func branchVisualGraph() *VisualGraph {
	head := hh('b')
	commits := []gitcore.Commit{mkCommit('b', 'a'), mkCommit('c', 'a'), mkCommit('a')}
	g := gitcore.BuildGraph(commits, nil, &head, nil)
	return Layout(g, noOptions())
}

func edgeTriples(edges []VisualEdge) map[[3]any]bool {
	out := make(map[[3]any]bool, len(edges))
	for _, e := range edges {
		out[[3]any{e.FromHash, e.ToHash, e.ParentIndex}] = true
	}
	return out
}

func TestOptimizeLanesPreservesCommitsAndEdgeEndpoints(t *testing.T) {
	vg := diamondVisualGraph()
	optimized := OptimizeLanes(vg)

	require.Equal(t, vg.TotalRows, optimized.TotalRows)
	require.Equal(t, vg.TotalLanes, optimized.TotalLanes)

	var beforeHashes, afterHashes []gitcore.Hash
	for _, c := range vg.Commits {
		beforeHashes = append(beforeHashes, c.Hash)
	}
	for _, c := range optimized.Commits {
		afterHashes = append(afterHashes, c.Hash)
	}
	require.ElementsMatch(t, beforeHashes, afterHashes)

	require.Equal(t, edgeTriples(vg.Edges), edgeTriples(optimized.Edges))
}

func TestOptimizeLanesIsFixedPoint(t *testing.T) {
	vg := branchVisualGraph()
	once := OptimizeLanes(vg)
	twice := OptimizeLanes(once)

	require.Equal(t, once.TotalLanes, twice.TotalLanes)
	for i := range once.Commits {
		require.Equal(t, once.Commits[i].Lane, twice.Commits[i].Lane)
	}
}

func TestCrossesStrictInequalityTouchingEdgesDontCross(t *testing.T) {
	// Two opposite-direction edges that share an endpoint row/lane but
	// never overlap strictly should not be counted as crossing.
	a := edgeSpan{rowLo: 0, rowHi: 1, laneLo: 0, laneHi: 1, sign: 1}
	b := edgeSpan{rowLo: 1, rowHi: 2, laneLo: 1, laneHi: 2, sign: -1}
	require.False(t, crosses(a, b))
}

func TestCrossesOppositeDirectionOverlapping(t *testing.T) {
	a := edgeSpan{rowLo: 0, rowHi: 2, laneLo: 0, laneHi: 2, sign: 1}
	b := edgeSpan{rowLo: 0, rowHi: 2, laneLo: 0, laneHi: 2, sign: -1}
	require.True(t, crosses(a, b))
}

func TestCrossesSameSignNeverCrosses(t *testing.T) {
	a := edgeSpan{rowLo: 0, rowHi: 2, laneLo: 0, laneHi: 2, sign: 1}
	b := edgeSpan{rowLo: 0, rowHi: 2, laneLo: 0, laneHi: 2, sign: 1}
	require.False(t, crosses(a, b))
}

func TestCrossesHorizontalOnlyNeverCrosses(t *testing.T) {
	a := edgeSpan{rowLo: 0, rowHi: 0, laneLo: 0, laneHi: 2, sign: 1}
	b := edgeSpan{rowLo: 0, rowHi: 2, laneLo: 0, laneHi: 2, sign: -1}
	require.False(t, crosses(a, b))
}
