package gitcore

// Graph is the canonical indexed snapshot of a repository: every commit
// and ref the caller loaded, indexed for O(1) lookup, plus the
// parent-order topological sequence the caller supplied.
//
// A Graph is built once by BuildGraph and never mutated afterward.
type Graph struct {
	Commits      map[Hash]Commit
	Refs         []Ref
	Head         *Hash
	HeadRef      *string
	Children     map[Hash][]Hash
	CommitsByRef map[string]Hash
	RefsByCommit map[Hash][]Ref
	Roots        []Hash

	// TopoOrder is the commit sequence exactly as BuildGraph received it:
	// Git's `--topo-order` log order, newest commit first, every commit
	// preceding all of its own parents. layout.Layout walks it directly
	// to assign rows (row 0 = newest).
	TopoOrder []Hash
}

// BuildGraph indexes a topo-ordered commit sequence and a ref sequence
// into a Graph, in four linear passes. No ref is rejected even if its
// target commit is absent from commits (supports partial loads).
func BuildGraph(commits []Commit, refs []Ref, head *Hash, headRef *string) *Graph {
	g := &Graph{
		Commits:      make(map[Hash]Commit, len(commits)),
		Refs:         refs,
		Head:         head,
		HeadRef:      headRef,
		Children:     make(map[Hash][]Hash),
		CommitsByRef: make(map[string]Hash, len(refs)*2),
		RefsByCommit: make(map[Hash][]Ref, len(refs)),
		TopoOrder:    make([]Hash, len(commits)),
	}

	// Pass 1: index commits and record the caller's topo order.
	for i, c := range commits {
		g.Commits[c.Hash] = c
		g.TopoOrder[i] = c.Hash
	}

	// Pass 2: invert the parent relation into a child map, in the order
	// children are encountered while walking commits.
	for _, c := range commits {
		for _, p := range c.Parents {
			g.Children[p] = append(g.Children[p], c.Hash)
		}
	}

	// Pass 3: collect roots — no parents, or every parent absent from the
	// loaded commit set.
	for _, c := range commits {
		if isRoot(c, g.Commits) {
			g.Roots = append(g.Roots, c.Hash)
		}
	}

	// Pass 4: register refs by both short and full name, and by target.
	for _, r := range refs {
		g.CommitsByRef[r.Name] = r.Target
		g.CommitsByRef[r.FullName] = r.Target
		g.RefsByCommit[r.Target] = append(g.RefsByCommit[r.Target], r)
	}

	return g
}

func isRoot(c Commit, commits map[Hash]Commit) bool {
	if len(c.Parents) == 0 {
		return true
	}
	for _, p := range c.Parents {
		if _, ok := commits[p]; ok {
			return false
		}
	}
	return true
}
