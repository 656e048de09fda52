package vdom

import (
	"log/slog"
	"reflect"
	"time"
)

// Stats counts the work done by render passes.
type Stats struct {
	Passes   int
	Renders  int
	Reused   int
	Mounts   int
	Unmounts int
	Duration time.Duration
}

func (s *Stats) add(o Stats) {
	s.Passes += o.Passes
	s.Renders += o.Renders
	s.Reused += o.Reused
	s.Mounts += o.Mounts
	s.Unmounts += o.Unmounts
	s.Duration += o.Duration
}

// Option configures a Tree.
type Option func(*Tree)

// WithScheduler sets the timer source handed to widgets via Context.Every.
func WithScheduler(s Scheduler) Option {
	return func(t *Tree) { t.scheduler = s }
}

// WithTheme sets the style resolution object handed to widgets.
func WithTheme(r ClassResolver) Option {
	return func(t *Tree) { t.theme = r }
}

// WithContent passes children to the root widget.
func WithContent(children ...Node) Option {
	return func(t *Tree) { t.content = children }
}

// WithLogger sets the logger used for pass statistics and recovered panics.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tree) { t.log = l }
}

// Tree owns the widget instances rooted at a single widget. It is not safe
// for concurrent use; all calls, including timer callbacks, must come from
// one goroutine.
type Tree struct {
	root      *instance
	scheduler Scheduler
	theme     ClassResolver
	log       *slog.Logger
	content   []Node

	dirty bool
	last  Stats
	total Stats
}

// New creates a tree for root. Nothing is rendered until Render is called.
func New(root Widget, opts ...Option) *Tree {
	t := &Tree{
		scheduler: NewManualScheduler(),
		theme:     plainClasses{},
		log:       slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(t)
	}
	t.root = t.newInstance(nil, root, t.content, "")
	t.dirty = true
	return t
}

// SetRoot replaces the root snapshot. A snapshot of the same type updates the
// existing root instance; a different type tears it down.
func (t *Tree) SetRoot(w Widget) {
	if t.root != nil && reflect.TypeOf(t.root.widget) == reflect.TypeOf(w) {
		if equalWidgets(t.root.widget, w) {
			return
		}
		t.root.widget = w
		if t.root.mounted {
			t.root.invalidate()
		}
		return
	}
	if t.root != nil && t.root.mounted {
		t.unmount(t.root)
	}
	t.root = t.newInstance(nil, w, t.content, "")
	t.dirty = true
}

// Dirty reports whether a Render call would do any work.
func (t *Tree) Dirty() bool {
	return t.dirty
}

// Render brings every invalidated instance up to date and returns the
// resolved tree, made only of *Element and Text nodes.
func (t *Tree) Render() Node {
	start := time.Now()
	t.last = Stats{Passes: 1}
	t.dirty = false
	if t.root == nil {
		return nil
	}
	if !t.root.mounted {
		t.mount(t.root)
	} else {
		t.update(t.root)
	}
	t.last.Duration = time.Since(start)
	t.total.add(t.last)
	t.log.Debug("render pass",
		"renders", t.last.Renders,
		"reused", t.last.Reused,
		"mounts", t.last.Mounts,
		"unmounts", t.last.Unmounts,
		"duration", t.last.Duration)
	return t.resolve(t.root)
}

// Unmount tears down every instance, running all owned cleanups. Safe to
// call more than once.
func (t *Tree) Unmount() {
	if t.root != nil && t.root.mounted {
		t.unmount(t.root)
	}
	t.dirty = false
}

// Stats returns the counters of the last pass.
func (t *Tree) Stats() Stats {
	return t.last
}

// Total returns counters accumulated over every pass.
func (t *Tree) Total() Stats {
	return t.total
}

type slot struct {
	typ reflect.Type
	key string
}

type instance struct {
	tree     *Tree
	parent   *instance
	widget   Widget
	children []Node
	key      string
	state    State
	ctx      *Context

	output Node
	bound  map[*WNode]*instance
	kids   []*instance

	mounted    bool
	dirty      bool
	childDirty bool
	cleanups   []func()
}

func (t *Tree) newInstance(parent *instance, w Widget, children []Node, key string) *instance {
	inst := &instance{
		tree:     t,
		parent:   parent,
		widget:   w,
		children: children,
		key:      key,
	}
	inst.ctx = &Context{inst: inst}
	return inst
}

func (i *instance) invalidate() {
	if !i.mounted {
		return
	}
	i.dirty = true
	for p := i.parent; p != nil && !p.childDirty; p = p.parent {
		p.childDirty = true
	}
	i.tree.dirty = true
}

func (i *instance) own(cleanup func()) {
	if cleanup == nil {
		return
	}
	if !i.mounted {
		i.tree.runCleanup(cleanup)
		return
	}
	i.cleanups = append(i.cleanups, cleanup)
}

func (t *Tree) mount(inst *instance) {
	inst.state = inst.widget.CreateState()
	inst.mounted = true
	t.last.Mounts++
	t.rerender(inst)
	if m, ok := inst.state.(Mounter); ok {
		m.OnMount(inst.ctx)
	}
}

func (t *Tree) update(inst *instance) {
	if inst.dirty {
		t.rerender(inst)
		return
	}
	if !inst.childDirty {
		return
	}
	inst.childDirty = false
	for _, k := range inst.kids {
		t.update(k)
	}
}

func (t *Tree) rerender(inst *instance) {
	inst.dirty = false
	inst.childDirty = false
	out := t.safeRender(inst)
	t.last.Renders++

	old := inst.kids
	pool := make(map[slot][]*instance, len(old))
	for _, k := range old {
		s := slot{reflect.TypeOf(k.widget), k.key}
		pool[s] = append(pool[s], k)
	}

	inst.output = out
	inst.bound = make(map[*WNode]*instance)
	inst.kids = nil
	matched := make(map[*instance]bool, len(old))
	collectWidgets(out, func(wn *WNode) {
		s := slot{reflect.TypeOf(wn.Widget), wn.Key}
		var kid *instance
		if c := pool[s]; len(c) > 0 {
			kid, pool[s] = c[0], c[1:]
			matched[kid] = true
			t.reconcile(kid, wn)
		} else {
			kid = t.newInstance(inst, wn.Widget, wn.Children, wn.Key)
			t.mount(kid)
		}
		inst.bound[wn] = kid
		inst.kids = append(inst.kids, kid)
	})
	for i := len(old) - 1; i >= 0; i-- {
		if !matched[old[i]] {
			t.unmount(old[i])
		}
	}
}

func (t *Tree) reconcile(kid *instance, wn *WNode) {
	changed := !equalWidgets(kid.widget, wn.Widget) || !equalNodes(kid.children, wn.Children)
	kid.widget = wn.Widget
	kid.children = wn.Children
	if changed || kid.dirty {
		t.rerender(kid)
		return
	}
	t.last.Reused++
	t.update(kid)
}

func (t *Tree) unmount(inst *instance) {
	for i := len(inst.kids) - 1; i >= 0; i-- {
		t.unmount(inst.kids[i])
	}
	inst.kids = nil
	inst.bound = nil
	inst.mounted = false
	inst.dirty = false
	inst.childDirty = false
	for i := len(inst.cleanups) - 1; i >= 0; i-- {
		t.runCleanup(inst.cleanups[i])
	}
	inst.cleanups = nil
	t.last.Unmounts++
}

func (t *Tree) runCleanup(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			t.log.Error("cleanup panicked", "recovered", r)
		}
	}()
	fn()
}

func (t *Tree) safeRender(inst *instance) (out Node) {
	defer func() {
		if r := recover(); r != nil {
			t.log.Error("render panicked",
				"widget", reflect.TypeOf(inst.widget).String(),
				"recovered", r)
			out = nil
		}
	}()
	return inst.state.Render(inst.ctx)
}

func (t *Tree) resolve(inst *instance) Node {
	return t.resolveNode(inst, inst.output)
}

func (t *Tree) resolveNode(inst *instance, n Node) Node {
	switch n := n.(type) {
	case Text:
		return n
	case *Element:
		cp := *n
		cp.Children = make([]Node, 0, len(n.Children))
		for _, c := range n.Children {
			if r := t.resolveNode(inst, c); r != nil {
				cp.Children = append(cp.Children, r)
			}
		}
		return &cp
	case *WNode:
		if kid := inst.bound[n]; kid != nil {
			return t.resolve(kid)
		}
	}
	return nil
}

// collectWidgets calls fn for each WNode in n in document order. Content
// passed to a widget belongs to that widget and is not descended into.
func collectWidgets(n Node, fn func(*WNode)) {
	switch n := n.(type) {
	case *Element:
		for _, c := range n.Children {
			collectWidgets(c, fn)
		}
	case *WNode:
		fn(n)
	}
}

func equalWidgets(a, b Widget) bool {
	return reflect.DeepEqual(a, b)
}

func equalNodes(a, b []Node) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
