package scene

import (
	"slices"

	"github.com/go-drift/scene/pkg/config"
	"github.com/go-drift/scene/pkg/errors"
	"github.com/go-drift/scene/pkg/focus"
	"github.com/go-drift/scene/pkg/graphics"
	"github.com/go-drift/scene/pkg/layout"
	"github.com/go-drift/scene/pkg/timer"
	"github.com/go-drift/scene/pkg/units"
	"github.com/go-drift/scene/pkg/update"
)

// fallbackFontPx is used when the configured font size resolves to nothing.
const fallbackFontPx = 13

// Engine owns the windows of one interaction loop together with the
// scheduler and the focus state they share.
type Engine struct {
	cfg     *config.Config
	display *units.Display
	metrics graphics.FontMetrics
	sched   *update.Scheduler
	focus   *focus.Manager
	timers  *timer.Queue
	windows []*Window
}

// NewEngine returns an engine for cfg. A nil cfg uses config.Default.
func NewEngine(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	} else if err := cfg.Resolve(); err != nil {
		return nil, errors.Fail("scene.NewEngine", errors.KindConfig, nil, err)
	}
	if cfg.Log.Verbose {
		errors.SetHandler(&errors.LogHandler{Verbose: true})
	}
	sched := update.NewScheduler(cfg.Scheduler.MaxPasses)
	return &Engine{
		cfg:     cfg,
		display: cfg.NewDisplay(),
		metrics: graphics.DefaultFontMetrics(),
		sched:   sched,
		focus:   focus.NewManager(),
		timers:  timer.NewQueue(sched, nil),
	}, nil
}

// Config returns the resolved configuration.
func (e *Engine) Config() *config.Config { return e.cfg }

// Scheduler returns the update scheduler.
func (e *Engine) Scheduler() *update.Scheduler { return e.sched }

// Timers returns the timer queue. Due callbacks run at the start of the
// next Frame.
func (e *Engine) Timers() *timer.Queue { return e.timers }

// Focus returns the display-state slots.
func (e *Engine) Focus() *focus.Manager { return e.focus }

// Display returns the unit calibration.
func (e *Engine) Display() *units.Display { return e.display }

// Metrics returns the font metrics used for layout.
func (e *Engine) Metrics() graphics.FontMetrics { return e.metrics }

// SetFontMetrics replaces the font metrics and lays every window out again.
func (e *Engine) SetFontMetrics(m graphics.FontMetrics) {
	if m == nil {
		m = graphics.DefaultFontMetrics()
	}
	e.metrics = m
	for _, w := range e.windows {
		w.Resize()
	}
}

// OnNeedsFrame registers fn to be called when work is posted to an idle
// scheduler. Hosts use it to schedule the next Frame.
func (e *Engine) OnNeedsFrame(fn func()) { e.sched.OnRequested = fn }

// Windows returns the open windows.
func (e *Engine) Windows() []*Window { return slices.Clone(e.windows) }

// OpenWindow shows root on surface. The window holds a handle on root until
// it is closed. The first layout happens in the next Drain.
func (e *Engine) OpenWindow(root *Box, surface Surface) (*Window, error) {
	const op = "scene.Engine.OpenWindow"
	if root == nil || surface == nil {
		return nil, errors.Fail(op, errors.KindUsage, nil, errors.ErrNilNode)
	}
	h, err := Retain(root)
	if err != nil {
		return nil, err
	}
	w := &Window{engine: e, root: root, handle: h, surface: surface}
	w.view = newView(root, nil, w, 0, nil)
	e.windows = append(e.windows, w)
	e.sched.Post(root, update.LayoutPaint)
	return w, nil
}

// CreateView realizes the first unrealized occurrence of box below parent
// before the next layout would. If every occurrence already has a view the
// first one is returned. Box must be reachable from parent's box through
// groups only.
func (e *Engine) CreateView(box *Box, parent *View) (*View, error) {
	const op = "scene.Engine.CreateView"
	if box == nil || parent == nil {
		return nil, errors.Fail(op, errors.KindUsage, nil, errors.ErrNilNode)
	}
	if parent.destroyed {
		return nil, errors.Fail(op, errors.KindReplication, parent, errors.ErrDestroyed)
	}
	var first *View
	for _, en := range entries(parent.context(), parent.box, parent) {
		if en.box != box || (en.view == nil && en.hidden) {
			continue
		}
		if en.view != nil {
			if first == nil {
				first = en.view
			}
			continue
		}
		v := newView(box, parent, parent.window, en.index, en.groups)
		parent.children = append(parent.children, v)
		e.sched.Post(parent.box, update.LayoutPaint)
		return v, nil
	}
	if first != nil {
		return first, nil
	}
	return nil, errors.Fail(op, errors.KindReplication, box, errors.ErrNotChild)
}

// DestroyViewsUnder destroys the child views of parent and returns how many
// were destroyed. The next layout of parent creates them again.
func (e *Engine) DestroyViewsUnder(parent *View) int {
	if parent == nil || parent.destroyed {
		return 0
	}
	n := 0
	for _, c := range slices.Clone(parent.children) {
		c.destroy()
		n++
	}
	return n
}

// Post requests kind for box.
func (e *Engine) Post(box *Box, kind update.Kind) {
	e.sched.Post(box, kind)
}

// Drain runs pending layout and paint requests. See update.Scheduler.Drain.
func (e *Engine) Drain() (update.Stats, error) {
	return e.sched.Drain()
}

// Frame drains the scheduler and renders every window. It returns the
// number of display lists produced.
func (e *Engine) Frame() (int, error) {
	e.timers.Fire()
	if _, err := e.Drain(); err != nil {
		return 0, err
	}
	n := 0
	for _, w := range e.windows {
		n += w.Render()
	}
	return n, nil
}

// ViewAt returns the deepest visible view of w containing the window point
// p, or nil. Later children are on top of earlier ones.
func (e *Engine) ViewAt(w *Window, p graphics.Offset) *View {
	if w == nil || w.view == nil || !w.view.Contains(p) {
		return nil
	}
	return hit(w.view, p)
}

func hit(v *View, p graphics.Offset) *View {
	for i := len(v.children) - 1; i >= 0; i-- {
		c := v.children[i]
		if c.destroyed || !c.shown || !c.Contains(p) {
			continue
		}
		return hit(c, p)
	}
	return v
}

// HoverAt moves the hover slot to the view under p and returns it.
func (e *Engine) HoverAt(w *Window, p graphics.Offset) *View {
	v := e.ViewAt(w, p)
	if v == nil {
		e.focus.Clear(focus.SlotHover)
		return nil
	}
	e.focus.Set(focus.SlotHover, v)
	return v
}

// baseContext returns the context every root view is derived from.
func (e *Engine) baseContext() *UpdateContext {
	ctx := &UpdateContext{
		Color:    graphics.ColorBlack,
		Font:     Font{Family: e.cfg.Font.Family, Size: e.cfg.FontSize()},
		HAlign:   layout.AlignStart,
		VAlign:   layout.AlignStart,
		Orient:   Vertical,
		HSpacing: units.Px(0),
		VSpacing: units.Px(0),
		Cursor:   CursorDefault,
		Scale:    e.cfg.Display.Scale,
		Alpha:    1,
		Shown:    true,
		Mode:     LayoutStack,
		ColSpan:  1,
		RowSpan:  1,
		Units: units.Context{
			Display:  e.display,
			FontSize: fallbackFontPx,
			Scale:    e.cfg.Display.Scale,
		},
		metrics: e.metrics,
	}
	px := ctx.Units.Resolve(ctx.Font.Size, fallbackFontPx)
	if px <= 0 {
		px = fallbackFontPx
	}
	ctx.FontPx = px
	ctx.refreshUnits()
	return ctx
}
