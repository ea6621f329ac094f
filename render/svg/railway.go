// Package svg renders a layout.VisualGraph as an SVG "railway" diagram:
// one stop per commit, one rail per edge, ref labels colored by a stable
// hash of the ref name.
package svg

import (
	"crypto/md5"
	"fmt"
	"image/color"
	"sort"
	"time"

	svgo "github.com/ajstarks/svgo"

	"github.com/anton-dovnar/gitrail/layout"
	"github.com/anton-dovnar/gitrail/render/present"
)

const (
	scale    = 1.5
	stepX    = 24
	stepY    = 30
	paddingX = 50
	paddingY = 8
	stopR    = 5
	railW    = 3
)

// Options controls pixel geometry and whether edge paths are drawn with
// quadratic curves or straight polylines.
type Options struct {
	RowHeight float64
	LaneWidth float64
	UseCurves bool

	// RepoSlug, when set, turns "org#123"-style issue references in
	// commit subtitles into GitHub issue links.
	RepoSlug string
	// Now anchors relative-date subtitles ("2 days ago"). The zero
	// value means time.Now().
	Now time.Time
}

// DefaultOptions mirrors the teacher's original stepX/stepY grid.
func DefaultOptions() Options {
	return Options{RowHeight: stepY, LaneWidth: stepX, UseCurves: true}
}

// Railway wraps an svgo canvas with ref-color memoization.
type Railway struct {
	*svgo.SVG
	colors map[string]color.RGBA
}

func NewRailway(canvas *svgo.SVG) *Railway {
	return &Railway{SVG: canvas, colors: make(map[string]color.RGBA)}
}

func (r *Railway) refToColor(ref string) color.RGBA {
	if c, ok := r.colors[ref]; ok {
		return c
	}
	sum := md5.Sum([]byte(ref))
	h := float64(sum[0]) / 255.0
	s := 0.5 + (float64(sum[1])/255.0)*0.3
	l := 0.6 + (float64(sum[2])/255.0)*0.2
	c := hslToRGB(h, s, l)
	r.colors[ref] = c
	return c
}

func hslToRGB(h, s, l float64) color.RGBA {
	var red, green, blue float64
	if s == 0 {
		red, green, blue = l, l, l
	} else {
		var q, p float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p = 2*l - q
		red = hueToRGB(p, q, h+1.0/3)
		green = hueToRGB(p, q, h)
		blue = hueToRGB(p, q, h-1.0/3)
	}
	return color.RGBA{R: uint8(red * 255), G: uint8(green * 255), B: uint8(blue * 255), A: 255}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func colorToHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Draw renders vg onto canvas: one rail per edge (via layout.EdgePath and
// EdgePathToSVG), one stop per commit, and ref-name labels beside each
// branch-tip or tag commit.
// Draw's own coordinate space matches layout.EdgePathToSVG exactly — no
// extra padding is added to commit/label coordinates, so rails and stops
// stay aligned. The padding constants instead widen the SVG viewBox so
// hash/ref labels drawn to the left of lane 0 are not clipped.
func Draw(canvas *svgo.SVG, vg *layout.VisualGraph, opts Options) {
	contentW := vg.TotalLanes * int(opts.LaneWidth)
	contentH := vg.TotalRows * int(opts.RowHeight)
	vbX, vbY := -paddingX, -paddingY/2
	vbW := contentW + paddingX*2
	vbH := contentH + paddingY

	canvas.Startview(int(float64(vbW)*scale), int(float64(vbH)*scale), vbX, vbY, vbW, vbH)

	rw := NewRailway(canvas)

	for _, e := range vg.Edges {
		if e.ToRow < 0 {
			rw.drawDanglingRail(e, opts)
			continue
		}
		path := layout.EdgePath(e)
		d := layout.EdgePathToSVG(path, opts.RowHeight, opts.LaneWidth, opts.UseCurves)
		stroke := rw.edgeColor(e)
		canvas.Path(d, fmt.Sprintf(`fill="none" stroke="%s" stroke-width="%d"`, colorToHex(stroke), railW))
	}

	commits := make([]layout.VisualCommit, len(vg.Commits))
	copy(commits, vg.Commits)
	sort.Slice(commits, func(i, j int) bool { return commits[i].Row < commits[j].Row })

	for _, c := range commits {
		cx := c.Lane*int(opts.LaneWidth) + int(opts.LaneWidth)/2
		cy := c.Row*int(opts.RowHeight) + int(opts.RowHeight)/2
		fill := color.RGBA{219, 219, 219, 255}
		if c.IsHead {
			fill = color.RGBA{255, 215, 0, 255}
		}
		canvas.Circle(cx, cy, stopR, fmt.Sprintf(`class="stop" fill="%s" id="%s"`, colorToHex(fill), c.Hash))
		rw.drawLabels(cx, cy, c, opts)
	}

	canvas.End()
}

func (rw *Railway) edgeColor(e layout.VisualEdge) color.RGBA {
	switch e.EdgeType {
	case layout.EdgeMerge:
		return rw.refToColor(fmt.Sprintf("merge-%d", e.ToLane))
	case layout.EdgeFork:
		return rw.refToColor(fmt.Sprintf("fork-%d", e.FromLane))
	default:
		return color.RGBA{128, 128, 128, 255}
	}
}

func (rw *Railway) drawDanglingRail(e layout.VisualEdge, opts Options) {
	x := e.FromLane*int(opts.LaneWidth) + int(opts.LaneWidth)/2
	y1 := e.FromRow*int(opts.RowHeight) + int(opts.RowHeight)/2
	y2 := y1 + int(opts.RowHeight)
	rw.Line(x, y1, x, y2, `stroke="#808080" stroke-width="2" stroke-dasharray="2,2"`)
}

func (rw *Railway) drawLabels(cx, cy int, c layout.VisualCommit, opts Options) {
	hashText := string(c.Hash)
	if len(hashText) >= 7 {
		hashText = hashText[:7]
	}
	rw.Text(8, cy+2, hashText, `fill="#c9bcbc" font-family="Ubuntu Mono" font-size="50%"`)

	if c.Subject != "" {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		parsed := present.ParseMessage(c.Subject)
		title := present.LinkIssues(parsed.Title, opts.RepoSlug)
		subtitle := title
		if !c.CommittedAt.IsZero() {
			subtitle = fmt.Sprintf("%s (%s)", title, present.RelativeDate(now, c.CommittedAt))
		}
		if parsed.Type != "" {
			subtitle = fmt.Sprintf("[%s] %s", parsed.Type, subtitle)
		}
		rw.Writer.Write([]byte(fmt.Sprintf(
			`<text x="%d" y="%d"><tspan fill="#9a9a9a" font-family="Ubuntu Mono" font-size="55%%">%s</tspan></text>`,
			8, cy+int(opts.RowHeight)/2, subtitle,
		)))
	}

	offset := 0
	for _, ref := range c.Refs {
		refColor := rw.refToColor(ref.Name)
		weight := "normal"
		if ref.Kind.String() == "tag" {
			weight = "bold"
		}
		rw.Writer.Write([]byte(fmt.Sprintf(
			`<text x="%d" y="%d"><tspan fill="%s" font-family="Ubuntu Mono" font-size="60%%" font-weight="%s">%s </tspan></text>`,
			cx+stopR+offset, cy+2, colorToHex(refColor), weight, ref.Name,
		)))
		offset += len(ref.Name)*6 + 10
	}
}
