package demo

import (
	"time"

	"sierpinski/internal/vdom"
)

// LeafSize is the size at or below which a triangle stops subdividing and
// renders a single Dot.
const LeafSize = 25.0

// SierpinskiTriangle renders a dot when small enough, otherwise three
// half-size triangles. Its content, a single text node, is forwarded
// unchanged to every child and finally becomes the dot label.
type SierpinskiTriangle struct {
	X     float64
	Y     float64
	S     float64
	Delay time.Duration
}

func (t SierpinskiTriangle) CreateState() vdom.State {
	return triangleState{}
}

// Subdivide returns the descriptor for t without any artificial delay.
func (t SierpinskiTriangle) Subdivide(content []vdom.Node) vdom.Node {
	if t.S <= LeafSize {
		return vdom.W(Dot{
			X:    t.X - LeafSize/2,
			Y:    t.Y - LeafSize/2,
			Size: LeafSize,
			Text: textOf(content),
		})
	}
	s := t.S / 2
	child := func(key string, x, y float64) vdom.Node {
		return vdom.W(SierpinskiTriangle{X: x, Y: y, S: s, Delay: t.Delay}, content...).Keyed(key)
	}
	return vdom.V("div", vdom.Props{},
		child("1", t.X, t.Y-s/2),
		child("2", t.X-s, t.Y+s/2),
		child("3", t.X+s, t.Y+s/2),
	)
}

type triangleState struct{}

func (triangleState) Render(ctx *vdom.Context) vdom.Node {
	t := vdom.PropsOf[SierpinskiTriangle](ctx)
	if t.S > LeafSize {
		BusyWait(t.Delay)
	}
	return t.Subdivide(ctx.Children())
}

func textOf(content []vdom.Node) *string {
	if len(content) == 0 {
		return nil
	}
	t, ok := content[0].(vdom.Text)
	if !ok {
		return nil
	}
	s := string(t)
	return &s
}
