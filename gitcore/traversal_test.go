package gitcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func diamondGraph() *Graph {
	commits := []Commit{
		mkCommit('d', 'b', 'c'),
		mkCommit('b', 'a'),
		mkCommit('c', 'a'),
		mkCommit('a'),
	}
	return BuildGraph(commits, nil, nil, nil)
}

func TestAncestorsDiamond(t *testing.T) {
	g := diamondGraph()
	anc := g.Ancestors(Hash(h('d')), 0)
	require.ElementsMatch(t, []Hash{Hash(h('b')), Hash(h('c')), Hash(h('a'))}, anc)
}

func TestAncestorsMaxDepth(t *testing.T) {
	g := diamondGraph()
	anc := g.Ancestors(Hash(h('d')), 1)
	require.ElementsMatch(t, []Hash{Hash(h('b')), Hash(h('c'))}, anc)
}

func TestDescendantsDiamond(t *testing.T) {
	g := diamondGraph()
	desc := g.Descendants(Hash(h('a')), 0)
	require.ElementsMatch(t, []Hash{Hash(h('b')), Hash(h('c')), Hash(h('d'))}, desc)
}

func TestIsAncestor(t *testing.T) {
	g := diamondGraph()
	require.True(t, g.IsAncestor(Hash(h('a')), Hash(h('d'))))
	require.False(t, g.IsAncestor(Hash(h('d')), Hash(h('a'))))
	require.False(t, g.IsAncestor(Hash(h('a')), Hash(h('a'))))
}

func TestMergeBaseDiamond(t *testing.T) {
	g := diamondGraph()
	base := g.MergeBase(Hash(h('b')), Hash(h('c')))
	require.NotNil(t, base)
	require.Equal(t, Hash(h('a')), *base)
}

func TestMergeBaseDirectAncestor(t *testing.T) {
	g := diamondGraph()
	base := g.MergeBase(Hash(h('d')), Hash(h('a')))
	require.NotNil(t, base)
	require.Equal(t, Hash(h('a')), *base)
}

func TestCommitsBetweenExcludesAncestorsOfExclude(t *testing.T) {
	// b=(a), c=(b), d=(c): linear chain.
	commits := []Commit{mkCommit('d', 'c'), mkCommit('c', 'b'), mkCommit('b', 'a'), mkCommit('a')}
	g := BuildGraph(commits, nil, nil, nil)

	between := g.CommitsBetween(Hash(h('d')), Hash(h('b')))
	require.ElementsMatch(t, []Hash{Hash(h('d')), Hash(h('c'))}, between)
}

func TestAncestorsPartialLoad(t *testing.T) {
	// b=(a), c=(b), a missing.
	commits := []Commit{mkCommit('c', 'b'), mkCommit('b', 'a')}
	g := BuildGraph(commits, nil, nil, nil)

	anc := g.Ancestors(Hash(h('c')), 0)
	require.Equal(t, []Hash{Hash(h('b'))}, anc)
}
