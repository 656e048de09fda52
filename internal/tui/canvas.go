package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sierpinski/internal/theme"
	"sierpinski/internal/vdom"
)

// Visible area around the container origin, in CSS pixels after the
// container transform. It holds the whole fractal at peak scale.
const (
	viewHalfW = 720.0
	viewHalfH = 360.0
)

// shape is a positioned, hoverable element in micro-pixel space.
type shape struct {
	path    string
	el      *vdom.Element
	cx, cy  float64 // centre
	rx, ry  float64 // radii
	label   string
	classes []string
}

// scene is the layout of a resolved tree onto a w x h cell canvas.
type scene struct {
	w, h   int
	shapes []shape
}

type transform struct {
	sx, sy float64
}

func buildScene(root vdom.Node, w, h int) scene {
	sc := scene{w: w, h: h}
	if root == nil || w <= 0 || h <= 0 {
		return sc
	}
	wMic, hMic := float64(w*2), float64(h*4)
	fit := min(wMic/2/viewHalfW, hMic/2/viewHalfH)
	ox, oy := wMic/2, hMic/2

	var visit func(n vdom.Node, path string, tr transform)
	visit = func(n vdom.Node, path string, tr transform) {
		e, ok := n.(*vdom.Element)
		if !ok {
			return
		}
		if e.Transform != nil {
			tr = transform{sx: tr.sx * e.Transform.ScaleX, sy: tr.sy * e.Transform.ScaleY}
		}
		left, hasLeft := e.Styles.Px("left")
		top, hasTop := e.Styles.Px("top")
		width, _ := e.Styles.Px("width")
		height, _ := e.Styles.Px("height")
		if hasLeft && hasTop {
			sc.shapes = append(sc.shapes, shape{
				path:    path,
				el:      e,
				cx:      ox + (left+width/2)*tr.sx*fit,
				cy:      oy + (top+height/2)*tr.sy*fit,
				rx:      width / 2 * tr.sx * fit,
				ry:      height / 2 * tr.sy * fit,
				label:   e.TextContent(),
				classes: e.Classes,
			})
		}
		for i, c := range e.Children {
			visit(c, fmt.Sprintf("%s/%d", path, i), tr)
		}
	}
	visit(root, "", transform{sx: 1, sy: 1})
	return sc
}

// hit returns the topmost shape covering cell (x, y), or nil.
func (sc scene) hit(x, y int) *shape {
	if x < 0 || y < 0 || x >= sc.w || y >= sc.h {
		return nil
	}
	x0, y0 := float64(x*2), float64(y*4)
	x1, y1 := x0+2, y0+4
	for i := len(sc.shapes) - 1; i >= 0; i-- {
		s := &sc.shapes[i]
		// nearest point of the cell to the shape centre
		nx := min(max(s.cx, x0), x1)
		ny := min(max(s.cy, y0), y1)
		if nx == s.cx && ny == s.cy {
			return s
		}
		rx, ry := max(s.rx, 0.5), max(s.ry, 0.5)
		dx, dy := (nx-s.cx)/rx, (ny-s.cy)/ry
		if dx*dx+dy*dy <= 1 {
			return s
		}
	}
	return nil
}

// find returns the shape at path in the current layout.
func (sc scene) find(path string) *shape {
	for i := range sc.shapes {
		if sc.shapes[i].path == path {
			return &sc.shapes[i]
		}
	}
	return nil
}

type cell struct {
	r     rune
	style string // key into the style cache; empty means unstyled
}

// render rasterises the scene: shapes become braille discs coloured by their
// theme fill, labels are drawn over their centre when they fit or when the
// shape is hovered.
func (sc scene) render(th *theme.Theme) string {
	if sc.w <= 0 || sc.h <= 0 {
		return ""
	}
	br := newBrailleBuf(sc.w, sc.h)
	for i, s := range sc.shapes {
		br.fillEllipse(s.cx, s.cy, s.rx, s.ry, i)
	}

	grid := make([][]cell, sc.h)
	for y := range grid {
		grid[y] = make([]cell, sc.w)
		for x := range grid[y] {
			c := cell{r: br.glyph(x, y)}
			if o := br.owner[y][x]; o >= 0 {
				c.style = "fill " + strings.Join(sc.shapes[o].classes, " ")
			}
			grid[y][x] = c
		}
	}

	for _, s := range sc.shapes {
		if s.label == "" {
			continue
		}
		runes := []rune(s.label)
		hovered := false
		for _, c := range s.classes {
			if th.Is(c, theme.Hover) {
				hovered = true
			}
		}
		if !hovered && s.rx < float64(len(runes)) {
			continue
		}
		row := floor(s.cy / 4)
		if row < 0 || row >= sc.h {
			continue
		}
		start := floor(s.cx/2) - len(runes)/2
		for i, r := range runes {
			x := start + i
			if x < 0 || x >= sc.w {
				continue
			}
			grid[row][x] = cell{r: r, style: "text " + strings.Join(s.classes, " ")}
		}
	}

	styles := map[string]lipgloss.Style{}
	styleFor := func(key string) lipgloss.Style {
		if st, ok := styles[key]; ok {
			return st
		}
		kind, classes, _ := strings.Cut(key, " ")
		var st lipgloss.Style
		if kind == "fill" {
			st = th.Fill(strings.Fields(classes))
		} else {
			st = th.Style(strings.Fields(classes))
		}
		styles[key] = st
		return st
	}

	lines := make([]string, sc.h)
	for y, row := range grid {
		var b strings.Builder
		for x := 0; x < len(row); {
			end := x
			var run []rune
			for end < len(row) && row[end].style == row[x].style {
				run = append(run, row[end].r)
				end++
			}
			if row[x].style == "" {
				b.WriteString(string(run))
			} else {
				b.WriteString(styleFor(row[x].style).Render(string(run)))
			}
			x = end
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
