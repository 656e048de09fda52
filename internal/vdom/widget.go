package vdom

import "time"

// Widget is an immutable input snapshot supplied by a parent. Two snapshots
// that compare deeply equal produce the same output for the same state.
type Widget interface {
	CreateState() State
}

// State holds the mutable part of a widget instance. It lives as long as the
// instance stays matched across passes.
type State interface {
	Render(ctx *Context) Node
}

// Mounter is implemented by states that need a hook once their instance has
// rendered for the first time.
type Mounter interface {
	OnMount(ctx *Context)
}

// ClassResolver maps logical style keys to emitted class names.
type ClassResolver interface {
	Classes(keys ...string) []string
}

// Scheduler runs fn every d until cancel is called. Callbacks must be
// delivered on the goroutine that drives the Tree.
type Scheduler interface {
	Every(d time.Duration, fn func()) (cancel func())
}

// Context is the per-instance handle passed to Render and OnMount.
type Context struct {
	inst *instance
}

// Widget returns the snapshot the instance was last rendered with.
func (c *Context) Widget() Widget {
	return c.inst.widget
}

// Children returns the content passed alongside the widget.
func (c *Context) Children() []Node {
	return c.inst.children
}

// Invalidate schedules a re-render of the instance. No-op once unmounted.
func (c *Context) Invalidate() {
	c.inst.invalidate()
}

// Own registers cleanup to run when the instance is torn down.
func (c *Context) Own(cleanup func()) {
	c.inst.own(cleanup)
}

// Every starts a repeating timer on the tree's scheduler. The timer is not
// owned automatically; pass the returned cancel to Own.
func (c *Context) Every(d time.Duration, fn func()) (cancel func()) {
	return c.inst.tree.scheduler.Every(d, fn)
}

// Theme returns the style resolution object of the tree.
func (c *Context) Theme() ClassResolver {
	return c.inst.tree.theme
}

// PropsOf returns the widget snapshot of ctx as W.
func PropsOf[W Widget](ctx *Context) W {
	return ctx.Widget().(W)
}

// plainClasses passes keys through unchanged.
type plainClasses struct{}

func (plainClasses) Classes(keys ...string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
