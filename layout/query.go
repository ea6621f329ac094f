package layout

// VisibleCommits returns commits whose row falls in the inclusive range
// [start, min(end, total-rows-1)].
func (vg *VisualGraph) VisibleCommits(start, end int) []VisualCommit {
	if end > vg.TotalRows-1 {
		end = vg.TotalRows - 1
	}
	var out []VisualCommit
	for _, c := range vg.Commits {
		if c.Row >= start && c.Row <= end {
			out = append(out, c)
		}
	}
	return out
}

// VisibleEdges returns edges whose row span overlaps [start, end].
func (vg *VisualGraph) VisibleEdges(start, end int) []VisualEdge {
	var out []VisualEdge
	for _, e := range vg.Edges {
		lo, hi := e.FromRow, e.ToRow
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi >= start && lo <= end {
			out = append(out, e)
		}
	}
	return out
}

// BoundingBox is a componentwise min/max over row and lane.
type BoundingBox struct {
	MinRow  int
	MaxRow  int
	MinLane int
	MaxLane int
}

// BoundingBoxOf computes the bounding box over the given commits and
// edges. An empty commit set yields an all-zero box.
func BoundingBoxOf(commits []VisualCommit, edges []VisualEdge) BoundingBox {
	if len(commits) == 0 {
		return BoundingBox{}
	}

	bb := BoundingBox{
		MinRow:  commits[0].Row,
		MaxRow:  commits[0].Row,
		MinLane: commits[0].Lane,
		MaxLane: commits[0].Lane,
	}
	for _, c := range commits {
		bb.MinRow = min(bb.MinRow, c.Row)
		bb.MaxRow = max(bb.MaxRow, c.Row)
		bb.MinLane = min(bb.MinLane, c.Lane)
		bb.MaxLane = max(bb.MaxLane, c.Lane)
	}
	for _, e := range edges {
		bb.MinRow = min(bb.MinRow, min(e.FromRow, e.ToRow))
		bb.MaxRow = max(bb.MaxRow, max(e.FromRow, e.ToRow))
		bb.MinLane = min(bb.MinLane, min(e.FromLane, e.ToLane))
		bb.MaxLane = max(bb.MaxLane, max(e.FromLane, e.ToLane))
	}
	return bb
}

// FindCommitAtPosition returns the commit at row, if its lane lies within
// tolerance of lane.
func (vg *VisualGraph) FindCommitAtPosition(row int, lane float64, tolerance float64) (VisualCommit, bool) {
	c, ok := vg.CommitAtRow(row)
	if !ok {
		return VisualCommit{}, false
	}
	d := float64(c.Lane) - lane
	if d < 0 {
		d = -d
	}
	if d > tolerance {
		return VisualCommit{}, false
	}
	return c, true
}

// Point is a single (row, lane) coordinate along an edge path.
type Point struct {
	Row  int
	Lane int
}

// EdgePath returns the piecewise path geometry for an edge: a 2-point
// polyline for a same-lane edge; a 3-point horizontal-then-vertical
// L-shape for a merge edge; a 4-point Z-shape with a midpoint row for a
// fork edge.
func EdgePath(e VisualEdge) []Point {
	from := Point{Row: e.FromRow, Lane: e.FromLane}
	to := Point{Row: e.ToRow, Lane: e.ToLane}

	if e.FromLane == e.ToLane {
		return []Point{from, to}
	}

	switch e.EdgeType {
	case EdgeMerge:
		return []Point{from, {Row: e.FromRow, Lane: e.ToLane}, to}
	default:
		mid := (e.FromRow + e.ToRow) / 2
		return []Point{
			from,
			{Row: mid, Lane: e.FromLane},
			{Row: mid, Lane: e.ToLane},
			to,
		}
	}
}
