package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-drift/scene/pkg/graphics"
	"github.com/go-drift/scene/pkg/scene"
	"github.com/go-drift/scene/pkg/units"
)

func box(w, h float64, nodes ...scene.Node) *scene.Box {
	nodes = append([]scene.Node{scene.WidthAttr(units.Px(w)), scene.HeightAttr(units.Px(h))}, nodes...)
	return scene.NewBox(scene.ClassBox, nodes...)
}

func TestNewSceneTester_Defaults(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	size := tester.Surface().Size()
	if size.Width != DefaultTestWidth || size.Height != DefaultTestHeight {
		t.Errorf("expected %vx%v, got %vx%v", DefaultTestWidth, DefaultTestHeight, size.Width, size.Height)
	}
	if tester.Root() != nil {
		t.Error("expected no root view before Mount")
	}
}

func TestMount_LaysOutAndPaints(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	if err := tester.Mount(scene.VBox(box(40, 20))); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	if got := len(tester.Root().Children()); got != 1 {
		t.Fatalf("expected 1 child view, got %d", got)
	}
	if len(tester.Surface().Paints) == 0 {
		t.Error("expected Mount to render a frame")
	}
}

func TestMount_Remount(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	first := scene.VBox()
	tester.Mount(first)
	tester.Mount(scene.HBox())

	if !first.Destroyed() {
		t.Error("expected the previous root to be released")
	}
	if got := len(tester.Engine().Windows()); got != 1 {
		t.Errorf("expected 1 window, got %d", got)
	}
}

func TestSetSize(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	tester.Mount(scene.VBox())
	tester.SetSize(graphics.Size{Width: 300, Height: 200})
	tester.Pump()

	if got := tester.Root().Size(); got.Width != 300 || got.Height != 200 {
		t.Errorf("expected root 300x200, got %vx%v", got.Width, got.Height)
	}
}

func TestPumpAndSettle_Idle(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	tester.Mount(scene.VBox(box(10, 10)))
	if err := tester.PumpAndSettle(); err != nil {
		t.Errorf("expected idle scene to settle, got %v", err)
	}
}

func TestFinders(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	label := scene.NewText("hello world")
	named := box(10, 10)
	named.SetName("target")
	button := scene.Button(scene.NewText("press"))
	tester.Mount(scene.VBox(label, named, button))

	if !tester.Find(ByText("hello world")).Exists() {
		t.Error("expected to find text 'hello world'")
	}
	if tester.Find(ByText("hello")).Exists() {
		t.Error("ByText should match whole strings only")
	}
	if !tester.Find(ByTextContaining("world")).Exists() {
		t.Error("expected to find text containing 'world'")
	}
	if got := tester.Find(ByName("target")).Box(); got != named {
		t.Errorf("ByName returned %v", got)
	}
	if got := tester.Find(ByClass(scene.ClassText)).Count(); got != 2 {
		t.Errorf("expected 2 text views, got %d", got)
	}
	if got := tester.Find(ByBox(button)).FirstOrNil(); got != button.View(0) {
		t.Errorf("ByBox returned %v", got)
	}
	inButton := tester.Find(Descendant(ByClass(scene.ClassButton), ByClass(scene.ClassText)))
	if inButton.Count() != 1 || inButton.Box().AsText().Text() != "press" {
		t.Errorf("Descendant matched %d views", inButton.Count())
	}
	wide := tester.Find(ByPredicate(func(v *scene.View) bool { return v.Size().Width > 60 }))
	if wide.Count() < 2 {
		t.Errorf("expected the root and the label to be wider than 60, got %d", wide.Count())
	}
}

func TestFinderResult_First_PanicsOnEmpty(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	tester.Mount(scene.VBox())

	defer func() {
		if recover() == nil {
			t.Error("expected First to panic on an empty result")
		}
	}()
	tester.Find(ByText("missing")).First()
}

func TestTap_FocusesButton(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	button := scene.Button(scene.NewText("go"))
	tester.Mount(scene.VBox(button))

	if err := tester.Tap(ByText("go")); err != nil {
		t.Fatalf("Tap failed: %v", err)
	}
	if tester.Focused() != button.View(0) {
		t.Errorf("expected the button to take focus, got %v", tester.Focused())
	}
	if button.Interaction() != scene.InteractionIdle {
		t.Errorf("expected the button to be released, got %v", button.Interaction())
	}
}

func TestTap_NoMatch(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	tester.Mount(scene.VBox())
	if err := tester.Tap(ByText("nothing")); err == nil {
		t.Error("expected an error for a finder without matches")
	}
}

func TestHover(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	target := box(50, 50)
	tester.Mount(scene.VBox(target))

	v, err := tester.Hover(ByBox(target))
	if err != nil {
		t.Fatalf("Hover failed: %v", err)
	}
	if v != target.View(0) {
		t.Errorf("expected hover on the box, got %v", v)
	}
}

func TestSerializeOps(t *testing.T) {
	ops := SerializeOps([]graphics.Op{
		graphics.RectOp{Rect: graphics.RectFromLTWH(1, 2, 3, 4), Color: graphics.ColorRed, Fill: true},
		graphics.TextOp{Origin: graphics.Offset{X: 1.234, Y: 5}, Text: "a", Color: graphics.ColorBlack, FontSize: 13},
	})
	if len(ops) != 2 {
		t.Fatalf("expected 2 ops, got %d", len(ops))
	}
	if ops[0].Op != "fillRect" || ops[0].Params["color"] != "0xFFFF0000" {
		t.Errorf("unexpected rect op %+v", ops[0])
	}
	origin := ops[1].Params["origin"].(map[string]any)
	if ops[1].Op != "drawText" || origin["x"] != 1.23 {
		t.Errorf("unexpected text op %+v", ops[1])
	}
}

func TestCaptureSnapshot_ViewTree(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	hidden := box(5, 5)
	tester.Mount(scene.HBox(box(10, 20), box(10, 20), hidden))
	hidden.Hide()
	tester.Pump()

	snap := tester.CaptureSnapshot()
	if snap.ViewTree == nil {
		t.Fatal("expected a view tree")
	}
	if snap.ViewTree.ID != "hbox#0" {
		t.Errorf("expected root id hbox#0, got %s", snap.ViewTree.ID)
	}
	children := snap.ViewTree.Children
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	if children[1].ID != "box#1" || children[1].Offset != [2]float64{10, 0} {
		t.Errorf("unexpected second child %+v", children[1])
	}
	if !children[2].Hidden {
		t.Error("expected the hidden box to be marked")
	}
}

func TestSnapshot_Diff_Equal(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	tester.Mount(scene.VBox(box(50, 50)))

	a := tester.CaptureSnapshot()
	b := tester.CaptureSnapshot()
	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}
}

func TestSnapshot_Diff_Different(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	tester.Mount(scene.VBox(box(50, 50)))
	a := tester.CaptureSnapshot()

	tester.Mount(scene.VBox(box(100, 50)))
	b := tester.CaptureSnapshot()
	if diff := a.Diff(b); diff == "" {
		t.Error("expected diff for different snapshots")
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	t.Setenv("SCENE_UPDATE_SNAPSHOTS", "")
	tester := NewSceneTesterWithT(t)
	tester.Mount(scene.VBox(box(80, 40, scene.BackgroundAttr(graphics.ColorRed))))
	snap := tester.CaptureSnapshot()

	path := filepath.Join(t.TempDir(), "testdata", "box.snapshot.json")
	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}
	snap.MatchesFile(t, path)
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv("SCENE_UPDATE_SNAPSHOTS", "")
	tester := NewSceneTesterWithT(t)
	tester.Mount(scene.VBox(box(50, 50)))
	snap := tester.CaptureSnapshot()

	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(sub, "/nonexistent/path/snap.json")
	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv("SCENE_UPDATE_SNAPSHOTS", "")
	tester := NewSceneTesterWithT(t)
	tester.Mount(scene.VBox(box(50, 50)))
	first := tester.CaptureSnapshot()

	path := filepath.Join(t.TempDir(), "snap.json")
	if err := first.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}

	tester.Mount(scene.VBox(box(99, 99)))
	second := tester.CaptureSnapshot()

	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	second.MatchesFile(sub, path)
	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	tester := NewSceneTesterWithT(t)
	tester.Mount(scene.VBox(box(60, 30)))
	snap := tester.CaptureSnapshot()

	path := filepath.Join(t.TempDir(), "update.snapshot.json")
	t.Setenv("SCENE_UPDATE_SNAPSHOTS", "1")
	snap.MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
