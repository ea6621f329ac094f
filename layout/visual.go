// Package layout assigns each commit a (row, lane) coordinate, materializes
// edges with routing hints, and answers render-oriented queries over the
// resulting visual graph.
package layout

import (
	"fmt"
	"sort"
	"time"

	"github.com/anton-dovnar/gitrail/gitcore"
)

// EdgeType classifies how a visual edge should be routed.
type EdgeType int

const (
	EdgeStraight EdgeType = iota
	EdgeFork
	EdgeMerge
)

func (t EdgeType) String() string {
	switch t {
	case EdgeStraight:
		return "straight"
	case EdgeFork:
		return "fork"
	case EdgeMerge:
		return "merge"
	default:
		return "unknown"
	}
}

// VisualRef is a ref materialized against layout options (protected flag
// resolved via the active glob matcher).
type VisualRef struct {
	gitcore.Ref
}

// VisualCommit is a commit positioned in the lane graph.
type VisualCommit struct {
	Hash        gitcore.Hash
	Row         int
	Lane        int
	IsMerge     bool
	IsBranchTip bool
	IsRoot      bool
	IsHead      bool
	Refs        []VisualRef
	EdgeIDs     []string
	Subject     string
	CommittedAt time.Time
}

// VisualEdge is a single parent edge, materialized with both endpoints'
// (row, lane) coordinates and a routing-type hint.
type VisualEdge struct {
	ID          string
	FromHash    gitcore.Hash
	FromRow     int
	FromLane    int
	ToHash      gitcore.Hash
	ToRow       int
	ToLane      int
	ParentIndex int
	EdgeType    EdgeType
}

func edgeID(from, to gitcore.Hash, parentIndex int) string {
	return fmt.Sprintf("%s-%s-%d", from, to, parentIndex)
}

// VisualGraph is the fully laid-out, immutable render-ready graph.
type VisualGraph struct {
	Commits    []VisualCommit
	Edges      []VisualEdge
	TotalRows  int
	TotalLanes int

	byHash   map[gitcore.Hash]int
	byRow    map[int]int
	byEdgeID map[string]int

	ActiveLanesAtRow map[int][]int
}

// CommitByHash returns the visual commit with the given hash, if present.
func (vg *VisualGraph) CommitByHash(h gitcore.Hash) (VisualCommit, bool) {
	i, ok := vg.byHash[h]
	if !ok {
		return VisualCommit{}, false
	}
	return vg.Commits[i], true
}

// CommitAtRow returns the visual commit at the given row, if present.
func (vg *VisualGraph) CommitAtRow(row int) (VisualCommit, bool) {
	i, ok := vg.byRow[row]
	if !ok {
		return VisualCommit{}, false
	}
	return vg.Commits[i], true
}

// EdgeByID returns the visual edge with the given id, if present.
func (vg *VisualGraph) EdgeByID(id string) (VisualEdge, bool) {
	i, ok := vg.byEdgeID[id]
	if !ok {
		return VisualEdge{}, false
	}
	return vg.Edges[i], true
}

func (vg *VisualGraph) reindex() {
	vg.byHash = make(map[gitcore.Hash]int, len(vg.Commits))
	vg.byRow = make(map[int]int, len(vg.Commits))
	vg.byEdgeID = make(map[string]int, len(vg.Edges))
	for i, c := range vg.Commits {
		vg.byHash[c.Hash] = i
		vg.byRow[c.Row] = i
	}
	for i, e := range vg.Edges {
		vg.byEdgeID[e.ID] = i
	}
}

// Options controls how refs are materialized during layout.
type Options struct {
	ProtectedBranches gitcore.ProtectedMatcher
}

// laneState tracks lane bookkeeping across a single Layout invocation.
type laneState struct {
	laneByCommit map[gitcore.Hash]int
	activeLanes  map[int]gitcore.Hash
	freeLanes    []int
	maxLane      int // highest lane ever allocated; -1 means none yet
}

// allocate returns the smallest free lane if any, else grows maxLane by
// one. freeLanes is sorted ascending on every call so the lowest free
// lane is always the one reused, keeping layouts compact.
func (s *laneState) allocate() int {
	if len(s.freeLanes) > 0 {
		sort.Ints(s.freeLanes)
		lane := s.freeLanes[0]
		s.freeLanes = s.freeLanes[1:]
		return lane
	}
	s.maxLane++
	return s.maxLane
}

// Layout assigns rows (reverse topo order, newest = row 0) and lanes to
// every commit in g, and materializes the outgoing edges: the first
// parent inherits the commit's lane (mainline continuation); additional
// parents each allocate a fresh lane. A parent whose lane was already
// reserved by an earlier child keeps that lane.
func Layout(g *gitcore.Graph, opts Options) *VisualGraph {
	// Graph.TopoOrder is populated directly from the order Git's
	// `--topo-order` log emits commits in: newest first, a commit always
	// preceding all of its parents. That is already the "children precede
	// parents, newest at row 0" sequence row assignment needs, so it is
	// walked as-is rather than reversed a second time.
	n := len(g.TopoOrder)
	rowOrder := g.TopoOrder

	rowOf := make(map[gitcore.Hash]int, n)
	for row, h := range rowOrder {
		rowOf[h] = row
	}

	st := &laneState{
		laneByCommit: make(map[gitcore.Hash]int),
		activeLanes:  make(map[int]gitcore.Hash),
		maxLane:      -1,
	}

	vg := &VisualGraph{
		Commits:          make([]VisualCommit, 0, n),
		ActiveLanesAtRow: make(map[int][]int, n),
	}

	for row, hash := range rowOrder {
		commit, ok := g.Commits[hash]
		if !ok {
			continue
		}

		lane, reserved := st.laneByCommit[hash]
		if !reserved {
			lane = st.allocate()
			st.laneByCommit[hash] = lane
		}
		st.activeLanes[lane] = hash

		var visualRefs []VisualRef
		for _, r := range g.RefsByCommit[hash] {
			vr := r
			vr.IsProtected = opts.ProtectedBranches.Match(r.Name)
			visualRefs = append(visualRefs, VisualRef{Ref: vr})
		}

		var edgeIDs []string
		var parentLanesThisStep []int
		for pi, parent := range commit.Parents {
			var parentLane int
			if pl, ok := st.laneByCommit[parent]; ok {
				parentLane = pl
			} else if pi == 0 {
				parentLane = lane
				st.laneByCommit[parent] = parentLane
			} else {
				parentLane = st.allocate()
				st.laneByCommit[parent] = parentLane
			}
			parentLanesThisStep = append(parentLanesThisStep, parentLane)
			st.activeLanes[parentLane] = parent

			var edgeType EdgeType
			switch {
			case len(commit.Parents) >= 2 && pi >= 1:
				edgeType = EdgeMerge
			case lane != parentLane:
				edgeType = EdgeFork
			default:
				edgeType = EdgeStraight
			}

			id := edgeID(hash, parent, pi)
			vg.Edges = append(vg.Edges, VisualEdge{
				ID:          id,
				FromHash:    hash,
				FromRow:     row,
				FromLane:    lane,
				ToHash:      parent,
				ToRow:       -1,
				ToLane:      parentLane,
				ParentIndex: pi,
				EdgeType:    edgeType,
			})
			edgeIDs = append(edgeIDs, id)
		}

		freeLaneIfDone(st, g, hash, lane, parentLanesThisStep)

		active := make([]int, 0, len(st.activeLanes))
		for l := range st.activeLanes {
			active = append(active, l)
		}
		sort.Ints(active)
		vg.ActiveLanesAtRow[row] = active

		// Only retire this commit's own active-lanes entry: if a parent
		// reservation above just repointed this lane at a not-yet-visited
		// parent (mainline continuation), that reservation must survive
		// into the rows between here and the parent's own row.
		if st.activeLanes[lane] == hash {
			delete(st.activeLanes, lane)
		}

		isRoot := true
		for _, p := range commit.Parents {
			if _, ok := g.Commits[p]; ok {
				isRoot = false
				break
			}
		}

		isHead := g.Head != nil && *g.Head == hash

		vg.Commits = append(vg.Commits, VisualCommit{
			Hash:        hash,
			Row:         row,
			Lane:        lane,
			IsMerge:     len(commit.Parents) >= 2,
			IsBranchTip: len(visualRefs) > 0,
			IsRoot:      isRoot,
			IsHead:      isHead,
			Refs:        visualRefs,
			EdgeIDs:     edgeIDs,
			Subject:     commit.Subject,
			CommittedAt: commit.CommittedAt,
		})
	}

	// Second pass: fill in ToRow now that every commit's row is known.
	for i, e := range vg.Edges {
		if row, ok := rowOf[e.ToHash]; ok {
			vg.Edges[i].ToRow = row
		}
	}

	vg.TotalRows = len(vg.Commits)
	vg.TotalLanes = st.maxLane + 1
	vg.reindex()

	return vg
}

// freeLaneIfDone implements the lane-freeing policy: free lane if no
// child of hash has been placed in the same lane (or hash has no
// children), no parent reservation just made for hash points back at
// this lane, and lane != 0 (the mainline is never freed).
func freeLaneIfDone(st *laneState, g *gitcore.Graph, hash gitcore.Hash, lane int, parentLanesThisStep []int) {
	if lane == 0 {
		return
	}

	childInSameLane := false
	for _, child := range g.Children[hash] {
		if cl, ok := st.laneByCommit[child]; ok && cl == lane {
			childInSameLane = true
			break
		}
	}

	parentPointsBack := false
	for _, pl := range parentLanesThisStep {
		if pl == lane {
			parentPointsBack = true
			break
		}
	}

	if !childInSameLane && !parentPointsBack {
		st.freeLanes = append(st.freeLanes, lane)
	}
}
