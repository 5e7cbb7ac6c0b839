package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/scene/pkg/scene"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the view tree structure and the last display lists.
type Snapshot struct {
	ViewTree   *ViewNode   `json:"viewTree"`
	DisplayOps []DisplayOp `json:"displayOps,omitempty"`
}

// ViewNode represents a view in the serialized view tree.
type ViewNode struct {
	ID       string      `json:"id"`
	Class    string      `json:"class"`
	Name     string      `json:"name,omitempty"`
	Text     string      `json:"text,omitempty"`
	Size     [2]float64  `json:"size"`
	Offset   [2]float64  `json:"offset"`
	Hidden   bool        `json:"hidden,omitempty"`
	Children []*ViewNode `json:"children,omitempty"`
}

// CaptureSnapshot captures the current view tree and every display list
// recorded since the surface was last reset.
func (t *SceneTester) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{}
	if root := t.Root(); root != nil {
		snap.ViewTree = captureViewNode(root, &classCounter{})
	}
	snap.DisplayOps = SerializeOps(t.surface.Ops())
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When SCENE_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("SCENE_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: SCENE_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: SCENE_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

// --- Internal ---

// classCounter assigns stable IDs like "hbox#0", "hbox#1".
type classCounter struct {
	counts map[string]int
}

func (c *classCounter) next(class string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[class]
	c.counts[class] = n + 1
	return fmt.Sprintf("%s#%d", class, n)
}

func captureViewNode(v *scene.View, counter *classCounter) *ViewNode {
	b := v.Box()
	rect := v.Rect()
	node := &ViewNode{
		ID:     counter.next(b.Style().Class),
		Class:  b.Style().Class,
		Name:   b.Name(),
		Size:   [2]float64{round2(rect.Width()), round2(rect.Height())},
		Offset: [2]float64{round2(rect.Left), round2(rect.Top)},
		Hidden: !v.Visible(),
	}
	if t := b.AsText(); t != nil {
		node.Text = t.Text()
	}
	for _, c := range v.Children() {
		node.Children = append(node.Children, captureViewNode(c, counter))
	}
	return node
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := range max(len(expectedLines), len(actualLines)) {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
