package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/scene/pkg/config"
	sceneerrors "github.com/go-drift/scene/pkg/errors"
	"github.com/go-drift/scene/pkg/graphics"
	"github.com/go-drift/scene/pkg/scene"
)

const (
	// DefaultTestWidth is the default width of the test surface.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default height of the test surface.
	DefaultTestHeight = 600
	// DefaultMaxFrames bounds PumpAndSettle.
	DefaultMaxFrames = 16
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its frame budget.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: scheduler did not settle")

// SceneTester drives an engine with one window on a recording surface.
// Every report sent to the global error handler while the tester is alive
// is collected in Errors.
type SceneTester struct {
	engine  *scene.Engine
	window  *scene.Window
	surface *Surface
	clock   *FakeClock
	errs    *sceneerrors.Collector
	restore func()
}

// NewSceneTester creates a tester with default configuration. Call Cleanup
// when done, or use NewSceneTesterWithT instead.
func NewSceneTester() *SceneTester {
	return NewSceneTesterWithConfig(config.Default())
}

// NewSceneTesterWithConfig creates a tester for cfg.
func NewSceneTesterWithConfig(cfg *config.Config) *SceneTester {
	errs, restore := sceneerrors.Capture()
	engine, err := scene.NewEngine(cfg)
	if err != nil {
		restore()
		panic(err) // configuration errors are test bugs
	}
	clock := NewFakeClock()
	engine.Timers().SetClock(clock)
	return &SceneTester{
		engine:  engine,
		surface: NewSurface(DefaultTestWidth, DefaultTestHeight),
		clock:   clock,
		errs:    errs,
		restore: restore,
	}
}

// NewSceneTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewSceneTesterWithT(t *testing.T) *SceneTester {
	tester := NewSceneTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup closes the window and restores the previous error handler.
func (t *SceneTester) Cleanup() {
	if t.window != nil {
		t.window.Close()
		t.window = nil
	}
	if t.restore != nil {
		t.restore()
		t.restore = nil
	}
}

// Engine returns the engine under test.
func (t *SceneTester) Engine() *scene.Engine { return t.engine }

// Window returns the mounted window, nil before Mount.
func (t *SceneTester) Window() *scene.Window { return t.window }

// Surface returns the recording surface.
func (t *SceneTester) Surface() *Surface { return t.surface }

// Clock returns the fake clock driving the engine timers.
func (t *SceneTester) Clock() *FakeClock { return t.clock }

// Advance moves the clock forward by d and pumps one frame, so timers that
// became due run.
func (t *SceneTester) Advance(d time.Duration) error {
	t.clock.Advance(d)
	return t.Pump()
}

// Errors returns the collected error reports.
func (t *SceneTester) Errors() *sceneerrors.Collector { return t.errs }

// SetSize resizes the surface. A mounted window is laid out again on the
// next Pump.
func (t *SceneTester) SetSize(size graphics.Size) {
	t.surface.SetSize(size)
	if t.window != nil {
		t.window.Resize()
	}
}

// Mount opens a window on root, replacing any previous one, and runs one
// frame.
func (t *SceneTester) Mount(root *scene.Box) error {
	if t.window != nil {
		t.window.Close()
		t.window = nil
	}
	w, err := t.engine.OpenWindow(root, t.surface)
	if err != nil {
		return err
	}
	t.window = w
	return t.Pump()
}

// Pump runs a single frame: drain the scheduler, then render.
func (t *SceneTester) Pump() error {
	_, err := t.engine.Frame()
	return err
}

// PumpAndSettle pumps until the scheduler has no pending work.
func (t *SceneTester) PumpAndSettle() error {
	for range DefaultMaxFrames {
		if err := t.Pump(); err != nil {
			return err
		}
		if !t.engine.Scheduler().HasWork() {
			return nil
		}
	}
	return ErrSettleTimeout
}

// Root returns the root view of the mounted window.
func (t *SceneTester) Root() *scene.View {
	if t.window == nil {
		return nil
	}
	return t.window.View()
}

// Find evaluates finder against the mounted view tree.
func (t *SceneTester) Find(finder Finder) FinderResult {
	root := t.Root()
	if root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{views: finder.Evaluate(root), finder: finder}
}
