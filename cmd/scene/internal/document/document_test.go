package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-drift/scene/pkg/graphics"
	"github.com/go-drift/scene/pkg/layout"
	"github.com/go-drift/scene/pkg/scene"
	"github.com/go-drift/scene/pkg/units"
)

const sample = `
class: window
attrs:
  halign: center
  vspacing: 4px
children:
  - class: button
    name: ok
    attrs: { width: 50%, padding: "2 6" }
    children:
      - text: OK
        attrs: { color: "#123456" }
  - class: group
    attrs: { color: red }
    children:
      - ref: ok
  - text: gone
    hidden: true
`

func TestBuild(t *testing.T) {
	n, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root, err := n.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if root.Style().Class != scene.ClassWindow {
		t.Errorf("root class = %q", root.Style().Class)
	}
	if len(root.Attrs()) != 2 || root.ChildCount() != 3 {
		t.Fatalf("expected 2 attributes and 3 children, got %d and %d", len(root.Attrs()), root.ChildCount())
	}

	button, ok := root.Child(0).(*scene.Box)
	if !ok || button.Name() != "ok" {
		t.Fatalf("first child = %v, want the ok button", root.Child(0))
	}
	if button.ParentCount() != 2 {
		t.Errorf("shared button has %d parents, want 2", button.ParentCount())
	}
	group, ok := root.Child(1).(*scene.Element)
	if !ok || group.Child(0) != scene.Node(button) {
		t.Errorf("group should hold the referenced button, got %v", root.Child(1))
	}
	hidden, ok := root.Child(2).(*scene.Text)
	if !ok || !hidden.Hidden() {
		t.Errorf("expected a hidden text leaf, got %v", root.Child(2))
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		prop scene.Prop
		in   string
		want any
	}{
		{scene.PropWidth, "50%c", units.PercentCenter(50)},
		{scene.PropBackground, "navy", graphics.ColorNavy},
		{scene.PropHAlign, "flex", layout.AlignFlex},
		{scene.PropOrient, "horizontal", scene.Horizontal},
		{scene.PropAlpha, "0.5", 0.5},
		{scene.PropShow, "false", false},
		{scene.PropColSpan, "3", 3},
		{scene.PropLayout, "table", scene.LayoutTable},
		{scene.PropPos, "10px 50%c", scene.Position{X: units.Px(10), Y: units.PercentCenter(50)}},
		{scene.PropPadding, "1 2 3 4", scene.Edges{Top: units.Px(1), Right: units.Px(2), Bottom: units.Px(3), Left: units.Px(4)}},
		{scene.PropBorder, "2px red", scene.Border{Width: units.Px(2), Color: graphics.ColorRed}},
		{scene.PropFont, "serif 150% bold", scene.Font{Family: "serif", Size: units.Percent(150), Bold: true}},
		{scene.PropColor, "inherit", scene.Inherit},
	}
	for _, tt := range tests {
		got, err := Value(tt.prop, tt.in)
		if err != nil {
			t.Errorf("Value(%s, %q) error: %v", tt.prop, tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Value(%s, %q) = %v, want %v", tt.prop, tt.in, got, tt.want)
		}
	}
}

func TestValueRejectsMalformed(t *testing.T) {
	tests := []struct {
		prop scene.Prop
		in   string
	}{
		{scene.PropWidth, "12parsecs"},
		{scene.PropHAlign, "middle"},
		{scene.PropColSpan, "0"},
		{scene.PropPos, "10px"},
		{scene.PropPadding, "1 2 3"},
		{scene.PropBorder, ""},
	}
	for _, tt := range tests {
		if _, err := Value(tt.prop, tt.in); err == nil {
			t.Errorf("Value(%s, %q) should fail", tt.prop, tt.in)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	tests := map[string]string{
		"unknown ref":      "children: [{ ref: missing }]",
		"unknown property": "attrs: { colour: red }",
		"text children":    "text: a\nchildren: [{ text: b }]",
		"group root":       "class: group",
		"duplicate name":   "children: [{ name: a }, { name: a }]",
		"hidden group":     "children: [{ class: group, hidden: true }]",
	}
	for name, doc := range tests {
		n, err := Parse([]byte(doc))
		if err != nil {
			t.Fatalf("%s: Parse: %v", name, err)
		}
		if _, err := n.Build(); err == nil {
			t.Errorf("%s: expected Build to fail", name)
		}
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	doc := `class = "hbox"

[[children]]
text = "left"

[[children]]
text = "right"
attrs = { width = "40px" }
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	n, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	root, err := n.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if root.ChildCount() != 2 {
		t.Errorf("ChildCount = %d, want 2", root.ChildCount())
	}
}
