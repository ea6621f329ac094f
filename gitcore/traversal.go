package gitcore

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Ancestors returns hash's parents, grandparents, and so on (never hash
// itself), in order of increasing distance, stopping at maxDepth if > 0.
// Parent pointers to commits missing from the graph terminate that
// branch silently rather than erroring.
func (g *Graph) Ancestors(hash Hash, maxDepth int) []Hash {
	return g.bfs(hash, maxDepth, func(h Hash) []Hash {
		c, ok := g.Commits[h]
		if !ok {
			return nil
		}
		present := make([]Hash, 0, len(c.Parents))
		for _, p := range c.Parents {
			if _, ok := g.Commits[p]; ok {
				present = append(present, p)
			}
		}
		return present
	})
}

// Descendants returns hash's children, grandchildren, and so on,
// symmetric to Ancestors over the child map.
func (g *Graph) Descendants(hash Hash, maxDepth int) []Hash {
	return g.bfs(hash, maxDepth, func(h Hash) []Hash {
		return g.Children[h]
	})
}

// bfs walks next from start (exclusive), in order of increasing
// distance, down to maxDepth levels (0 or negative means unbounded).
func (g *Graph) bfs(start Hash, maxDepth int, next func(Hash) []Hash) []Hash {
	var order []Hash
	visited := mapset.NewSet[Hash]()
	visited.Add(start)

	frontier := []Hash{start}
	depth := 0
	for len(frontier) > 0 {
		if maxDepth > 0 && depth >= maxDepth {
			break
		}
		depth++
		var nextFrontier []Hash
		for _, h := range frontier {
			for _, n := range next(h) {
				if visited.Contains(n) {
					continue
				}
				visited.Add(n)
				order = append(order, n)
				nextFrontier = append(nextFrontier, n)
			}
		}
		frontier = nextFrontier
	}
	return order
}

// IsAncestor reports whether candidate is an ancestor of target (false if
// equal), by BFS from target through parents until candidate is found or
// the frontier empties.
func (g *Graph) IsAncestor(candidate, target Hash) bool {
	if candidate == target {
		return false
	}
	visited := mapset.NewSet[Hash]()
	visited.Add(target)
	frontier := []Hash{target}
	for len(frontier) > 0 {
		var nextFrontier []Hash
		for _, h := range frontier {
			c, ok := g.Commits[h]
			if !ok {
				continue
			}
			for _, p := range c.Parents {
				if p == candidate {
					return true
				}
				if visited.Contains(p) {
					continue
				}
				visited.Add(p)
				nextFrontier = append(nextFrontier, p)
			}
		}
		frontier = nextFrontier
	}
	return false
}

// ancestorSet returns the unbounded set of hash and all of its ancestors.
func (g *Graph) ancestorSet(hash Hash) mapset.Set[Hash] {
	set := mapset.NewSet[Hash]()
	set.Add(hash)
	frontier := []Hash{hash}
	for len(frontier) > 0 {
		var nextFrontier []Hash
		for _, h := range frontier {
			c, ok := g.Commits[h]
			if !ok {
				continue
			}
			for _, p := range c.Parents {
				if set.Contains(p) {
					continue
				}
				set.Add(p)
				nextFrontier = append(nextFrontier, p)
			}
		}
		frontier = nextFrontier
	}
	return set
}

// MergeBase computes a's-and-ancestors set; if b lies in it, b is the
// merge base. Otherwise it BFSes b through parents and returns the first
// parent found in a's ancestor set, or nil if none exists.
//
// This returns the first common ancestor encountered under the b-side
// BFS, which is not Git's documented "best common ancestors" algorithm
// for criss-cross merges with multiple lowest common ancestors — it
// matches Git only for linear and simple-branching histories. This is a
// known, intentional limitation (see DESIGN.md), not an oversight.
func (g *Graph) MergeBase(a, b Hash) *Hash {
	aAncestors := g.ancestorSet(a)
	if aAncestors.Contains(b) {
		return &b
	}

	visited := mapset.NewSet[Hash]()
	visited.Add(b)
	frontier := []Hash{b}
	for len(frontier) > 0 {
		var nextFrontier []Hash
		for _, h := range frontier {
			c, ok := g.Commits[h]
			if !ok {
				continue
			}
			for _, p := range c.Parents {
				if aAncestors.Contains(p) {
					return &p
				}
				if visited.Contains(p) {
					continue
				}
				visited.Add(p)
				nextFrontier = append(nextFrontier, p)
			}
		}
		frontier = nextFrontier
	}
	return nil
}

// CommitsBetween returns every commit reachable from include (inclusive)
// through parents, excluding any commit in the ancestor-inclusive set of
// exclude, and without descending past an excluded commit.
func (g *Graph) CommitsBetween(include, exclude Hash) []Hash {
	excluded := g.ancestorSet(exclude)

	var result []Hash
	visited := mapset.NewSet[Hash]()
	if !excluded.Contains(include) {
		result = append(result, include)
	}
	visited.Add(include)
	frontier := []Hash{include}

	if excluded.Contains(include) {
		return result
	}

	for len(frontier) > 0 {
		var nextFrontier []Hash
		for _, h := range frontier {
			c, ok := g.Commits[h]
			if !ok {
				continue
			}
			for _, p := range c.Parents {
				if visited.Contains(p) {
					continue
				}
				visited.Add(p)
				if excluded.Contains(p) {
					continue
				}
				result = append(result, p)
				nextFrontier = append(nextFrontier, p)
			}
		}
		frontier = nextFrontier
	}
	return result
}

// Stats summarizes a graph: ref counts by kind, merge count, max parent
// count, and the oldest/newest committed-at dates.
type Stats struct {
	LocalBranches  int
	RemoteBranches int
	Tags           int
	MergeCommits   int
	MaxParents     int
	RootCount      int
	Oldest         *Commit
	Newest         *Commit
}

// ComputeStats walks the graph's commits once, accumulating Stats.
func (g *Graph) ComputeStats() Stats {
	var s Stats
	s.RootCount = len(g.Roots)

	for _, r := range g.Refs {
		switch r.Kind {
		case RefLocalBranch:
			s.LocalBranches++
		case RefRemoteBranch:
			s.RemoteBranches++
		case RefTag:
			s.Tags++
		}
	}

	for _, c := range g.Commits {
		c := c
		if len(c.Parents) >= 2 {
			s.MergeCommits++
		}
		if len(c.Parents) > s.MaxParents {
			s.MaxParents = len(c.Parents)
		}
		if s.Oldest == nil || c.CommittedAt.Before(s.Oldest.CommittedAt) {
			s.Oldest = &c
		}
		if s.Newest == nil || c.CommittedAt.After(s.Newest.CommittedAt) {
			s.Newest = &c
		}
	}

	return s
}
