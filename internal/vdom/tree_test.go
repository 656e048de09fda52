package vdom

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// label renders its text in a span and counts its renders.
type label struct {
	Text string
}

type labelState struct {
	renders int
	ctx     *Context
}

func (l label) CreateState() State { return &labelState{} }

func (s *labelState) Render(ctx *Context) Node {
	s.renders++
	s.ctx = ctx
	return V("span", Props{}, Text(PropsOf[label](ctx).Text))
}

// list renders one keyed label per item.
type list struct {
	Items []string
}

type listState struct{}

func (list) CreateState() State { return listState{} }

func (listState) Render(ctx *Context) Node {
	var children []Node
	for _, it := range PropsOf[list](ctx).Items {
		children = append(children, W(label{Text: it}).Keyed(it))
	}
	return V("ul", Props{}, children...)
}

// lifecycle records mount and cleanup events into a shared log.
type lifecycle struct {
	Name string
	Log  *[]string
}

type lifecycleState struct{}

func (lifecycle) CreateState() State { return lifecycleState{} }

func (lifecycleState) Render(ctx *Context) Node {
	w := PropsOf[lifecycle](ctx)
	return V("div", Props{}, Text(w.Name))
}

func (lifecycleState) OnMount(ctx *Context) {
	w := PropsOf[lifecycle](ctx)
	*w.Log = append(*w.Log, "mount "+w.Name)
	ctx.Own(func() { *w.Log = append(*w.Log, "first cleanup "+w.Name) })
	ctx.Own(func() { *w.Log = append(*w.Log, "second cleanup "+w.Name) })
}

// shell wraps whatever content it is given.
type shell struct {
	Show bool
}

type shellState struct{}

func (shell) CreateState() State { return shellState{} }

func (shellState) Render(ctx *Context) Node {
	if !PropsOf[shell](ctx).Show {
		return V("div", Props{})
	}
	return V("div", Props{}, ctx.Children()...)
}

func TestRenderResolvesWidgets(t *testing.T) {
	tree := New(list{Items: []string{"a", "b"}})
	got := tree.Render()

	want := &Element{Tag: "ul", Children: []Node{
		&Element{Tag: "span", Children: []Node{Text("a")}},
		&Element{Tag: "span", Children: []Node{Text("b")}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved tree mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, tree.Stats().Mounts)
	assert.Equal(t, 3, tree.Stats().Renders)
}

func TestUnchangedChildrenAreReused(t *testing.T) {
	tree := New(list{Items: []string{"a", "b"}})
	tree.Render()

	tree.SetRoot(list{Items: []string{"a", "b"}})
	assert.False(t, tree.Dirty(), "equal snapshot must not invalidate")

	tree.SetRoot(list{Items: []string{"a", "b", "c"}})
	require.True(t, tree.Dirty())
	tree.Render()

	st := tree.Stats()
	assert.Equal(t, 2, st.Renders, "root and the new label")
	assert.Equal(t, 2, st.Reused)
	assert.Equal(t, 1, st.Mounts)
}

func TestKeyedChildrenKeepStateAcrossReorder(t *testing.T) {
	tree := New(list{Items: []string{"a", "b", "c"}})
	tree.Render()
	before := map[string]State{}
	for _, k := range tree.root.kids {
		before[k.key] = k.state
	}

	tree.SetRoot(list{Items: []string{"c", "a", "b"}})
	got := tree.Render()

	for _, k := range tree.root.kids {
		assert.Same(t, before[k.key], k.state, "key %s", k.key)
	}
	assert.Equal(t, 0, tree.Stats().Mounts)
	assert.Equal(t, 0, tree.Stats().Unmounts)
	assert.Equal(t, "c", got.(*Element).Children[0].(*Element).TextContent())
}

func TestInvalidateRendersOnlyThatInstance(t *testing.T) {
	tree := New(list{Items: []string{"a", "b", "c"}})
	tree.Render()

	b := tree.root.kids[1]
	b.ctx.Invalidate()
	require.True(t, tree.Dirty())
	tree.Render()

	assert.Equal(t, 1, tree.Stats().Renders)
	assert.Equal(t, 2, b.state.(*labelState).renders)
	assert.Equal(t, 1, tree.root.kids[0].state.(*labelState).renders)
	assert.False(t, tree.Dirty())
}

func TestRemovedChildrenAreUnmountedWithCleanupsInReverse(t *testing.T) {
	var log []string
	tree := New(shell{Show: true}, WithContent(W(lifecycle{Name: "x", Log: &log})))
	tree.Render()
	assert.Equal(t, []string{"mount x"}, log)

	tree.SetRoot(shell{Show: false})
	tree.Render()
	assert.Equal(t, []string{"mount x", "second cleanup x", "first cleanup x"}, log)
	assert.Equal(t, 1, tree.Stats().Unmounts)

	tree.Unmount()
	assert.Len(t, log, 3, "cleanups run once")
}

func TestUnmountRunsEveryCleanupDespitePanics(t *testing.T) {
	ran := 0
	tree := New(label{Text: "x"})
	tree.Render()
	ctx := tree.root.ctx
	ctx.Own(func() { ran++ })
	ctx.Own(func() { panic("boom") })
	ctx.Own(func() { ran++ })

	assert.NotPanics(t, tree.Unmount)
	assert.Equal(t, 2, ran)

	ctx.Invalidate()
	assert.False(t, tree.Dirty(), "invalidate after unmount is a no-op")

	late := false
	ctx.Own(func() { late = true })
	assert.True(t, late, "cleanup owned after unmount runs immediately")
}

func TestSetRootWithNewTypeReplacesInstance(t *testing.T) {
	var log []string
	tree := New(lifecycle{Name: "a", Log: &log})
	tree.Render()

	tree.SetRoot(label{Text: "b"})
	got := tree.Render()

	assert.Equal(t, []string{"mount a", "second cleanup a", "first cleanup a"}, log)
	assert.Equal(t, "b", got.(*Element).TextContent())
}

func TestRenderPanicIsRecovered(t *testing.T) {
	tree := New(panicky{})
	var got Node
	assert.NotPanics(t, func() { got = tree.Render() })
	assert.Nil(t, got)
}

type panicky struct{}

func (panicky) CreateState() State { return panicky{} }

func (panicky) Render(*Context) Node { panic("render failed") }

func TestDuplicateKeysMatchByOrdinal(t *testing.T) {
	tree := New(list{Items: []string{"a", "a"}})
	tree.Render()
	first, second := tree.root.kids[0].state, tree.root.kids[1].state

	tree.SetRoot(list{Items: []string{"a", "a", "b"}})
	tree.Render()

	assert.Same(t, first, tree.root.kids[0].state)
	assert.Same(t, second, tree.root.kids[1].state)
}

func TestTotalAccumulates(t *testing.T) {
	tree := New(list{Items: []string{"a"}})
	for i := 0; i < 3; i++ {
		tree.SetRoot(list{Items: []string{"a", strconv.Itoa(i)}})
		tree.Render()
	}
	assert.Equal(t, 3, tree.Total().Passes)
	assert.Equal(t, 3+2+2, tree.Total().Renders)
}

func TestPropsOfReturnsCurrentSnapshot(t *testing.T) {
	tree := New(label{Text: "a"})
	tree.Render()
	tree.SetRoot(label{Text: "b"})
	tree.Render()
	assert.Equal(t, label{Text: "b"}, PropsOf[label](tree.root.ctx))
}
