package demo

import (
	"strconv"
	"strings"
	"time"

	"sierpinski/internal/theme"
	"sierpinski/internal/vdom"
)

// RootSize is the size of the outermost triangle.
const RootSize = 1000.0

const period = 10 * time.Second

// Scale is a triangle wave of the elapsed time: 1 at the start of each
// 10 second period, 1.5 at its midpoint.
func Scale(elapsed time.Duration) float64 {
	e := elapsed % period
	if e < 0 {
		e += period
	}
	t := e.Seconds()
	if t > 5 {
		t = 10 - t
	}
	return 1 + t/10
}

// ContainerTransform is the transform applied to the root container for a
// given scale.
func ContainerTransform(scale float64) vdom.Transform {
	return vdom.Transform{ScaleX: scale / 2.1, ScaleY: 0.7, TranslateZ: 0.1}
}

// ExampleApplication is the root widget. Elapsed is supplied by the host on
// every frame; the counter is owned by the instance.
type ExampleApplication struct {
	Elapsed time.Duration
	Options Options
}

func (a ExampleApplication) CreateState() vdom.State {
	return &appState{}
}

// Describe returns the descriptor for a given counter value.
func (a ExampleApplication) Describe(counter int, classes vdom.ClassResolver) vdom.Node {
	tr := ContainerTransform(Scale(a.Elapsed))
	return vdom.V("div", vdom.Props{Transform: &tr, Classes: classes.Classes(theme.Container)},
		vdom.V("div", vdom.Props{},
			vdom.W(SierpinskiTriangle{S: RootSize, Delay: a.Options.nodeDelay()},
				vdom.Text(strconv.Itoa(counter))),
		),
	)
}

type appState struct {
	seconds int
	ctx     *vdom.Context
}

// Next advances a counter through 1..10.
func Next(counter int) int {
	return counter%10 + 1
}

func (s *appState) tick() {
	s.seconds = Next(s.seconds)
	s.ctx.Invalidate()
}

func (s *appState) OnMount(ctx *vdom.Context) {
	s.ctx = ctx
	ctx.Own(ctx.Every(vdom.PropsOf[ExampleApplication](ctx).Options.tick(), s.tick))
}

func (s *appState) Render(ctx *vdom.Context) vdom.Node {
	s.ctx = ctx
	return vdom.PropsOf[ExampleApplication](ctx).Describe(s.seconds, ctx.Theme())
}

// Content returns the label shown by the first dot of a resolved tree, with
// any hover marker removed.
func Content(n vdom.Node) (string, bool) {
	var (
		text  string
		found bool
	)
	vdom.Walk(n, func(_ []int, n vdom.Node) {
		e, ok := n.(*vdom.Element)
		if found || !ok || e.OnMouseEnter == nil {
			return
		}
		text, found = e.TextContent(), true
	})
	if !found {
		return "", false
	}
	return strings.TrimSuffix(strings.TrimPrefix(text, "*"), "*"), true
}
