// Package testing provides a scene testing harness.
//
// # Quick Start
//
// Create a tester, mount a root box, and make assertions on its views:
//
//	func TestToolbar(t *testing.T) {
//	    tester := scenetest.NewSceneTesterWithT(t)
//	    ok := scene.Button(scene.NewText("OK"))
//	    tester.Mount(scene.HBox(ok))
//
//	    view := tester.Find(scenetest.ByText("OK")).First()
//	    if view.Size().Width == 0 {
//	        t.Error("expected the label to be measured")
//	    }
//	}
//
// Every frame renders into a recording Surface, so display lists can be
// inspected with Surface.Ops or compared as a Snapshot.
//
// # Snapshot Testing
//
// Capture and compare view tree snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/toolbar.snapshot.json")
//
// Update snapshots with:
//
//	SCENE_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import scenetest "github.com/go-drift/scene/pkg/testing"
package testing
