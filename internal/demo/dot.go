package demo

import (
	"sierpinski/internal/theme"
	"sierpinski/internal/vdom"
)

// Dot is the leaf of the fractal: a filled circle at (X, Y) whose display
// size is 1.3 times Size. Text is optional.
type Dot struct {
	X    float64
	Y    float64
	Size float64
	Text *string
}

// DisplaySize is the rendered diameter.
func (d Dot) DisplaySize() float64 {
	return d.Size * 1.3
}

func (d Dot) CreateState() vdom.State {
	return &dotState{}
}

type dotState struct {
	hover bool
	ctx   *vdom.Context
}

func (s *dotState) enter() {
	s.hover = true
	s.ctx.Invalidate()
}

func (s *dotState) leave() {
	s.hover = false
	s.ctx.Invalidate()
}

func (s *dotState) Render(ctx *vdom.Context) vdom.Node {
	s.ctx = ctx
	d := vdom.PropsOf[Dot](ctx)
	size := d.DisplaySize()

	hover := ""
	if s.hover {
		hover = theme.Hover
	}
	var children []vdom.Node
	if d.Text != nil {
		text := *d.Text
		if s.hover {
			text = "*" + text + "*"
		}
		children = append(children, vdom.Text(text))
	}
	return vdom.V("div", vdom.Props{
		Classes: ctx.Theme().Classes(theme.Dot, hover),
		Styles: vdom.Styles{
			"width":        vdom.Px(size),
			"height":       vdom.Px(size),
			"left":         vdom.Px(d.X),
			"top":          vdom.Px(d.Y),
			"borderRadius": vdom.Px(size / 2),
			"lineHeight":   vdom.Px(size),
		},
		OnMouseEnter: s.enter,
		OnMouseLeave: s.leave,
	}, children...)
}
