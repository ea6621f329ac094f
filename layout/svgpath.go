package layout

import (
	"fmt"
	"strings"
)

// coord maps a (row, lane) point to pixel coordinates at the center of
// its cell: (lane*laneWidth + laneWidth/2, row*rowHeight + rowHeight/2).
func coord(p Point, rowHeight, laneWidth float64) (x, y float64) {
	x = float64(p.Lane)*laneWidth + laneWidth/2
	y = float64(p.Row)*rowHeight + rowHeight/2
	return x, y
}

// EdgePathToSVG renders an edge-path point sequence as an SVG path "d"
// attribute value. In straight mode it emits a plain M-L-L polyline.
// In curve mode, with at least 3 points, it emits an M followed by one
// quadratic Q per intermediate point — the point itself as control, the
// midpoint to the next point as anchor — and a final straight L into the
// last point.
func EdgePathToSVG(points []Point, rowHeight, laneWidth float64, useCurves bool) string {
	if len(points) == 0 {
		return ""
	}

	var b strings.Builder
	x0, y0 := coord(points[0], rowHeight, laneWidth)
	fmt.Fprintf(&b, "M %.2f %.2f", x0, y0)

	if !useCurves || len(points) < 3 {
		for _, p := range points[1:] {
			x, y := coord(p, rowHeight, laneWidth)
			fmt.Fprintf(&b, " L %.2f %.2f", x, y)
		}
		return b.String()
	}

	for i := 1; i < len(points)-1; i++ {
		cx, cy := coord(points[i], rowHeight, laneWidth)
		nx, ny := coord(points[i+1], rowHeight, laneWidth)
		mx, my := (cx+nx)/2, (cy+ny)/2
		fmt.Fprintf(&b, " Q %.2f %.2f %.2f %.2f", cx, cy, mx, my)
	}

	lx, ly := coord(points[len(points)-1], rowHeight, laneWidth)
	fmt.Fprintf(&b, " L %.2f %.2f", lx, ly)

	return b.String()
}
