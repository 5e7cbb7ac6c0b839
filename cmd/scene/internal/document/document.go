// Package document reads scene trees described in YAML or TOML.
//
// A document is one node:
//
//	class: window
//	attrs: { background: white, halign: center }
//	children:
//	  - class: button
//	    name: ok
//	    children: [{ text: "OK" }]
//	  - ref: ok
//
// A node with text is a text leaf, class "group" is an element without
// views, and ref attaches a node defined earlier under that name again, so
// it is displayed once per path.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/scene/pkg/graphics"
	"github.com/go-drift/scene/pkg/layout"
	"github.com/go-drift/scene/pkg/scene"
	"github.com/go-drift/scene/pkg/units"
)

// ClassGroup is the class of nodes built as plain elements.
const ClassGroup = "group"

// Node describes one scene node.
type Node struct {
	Class    string            `yaml:"class,omitempty" toml:"class,omitempty"`
	Name     string            `yaml:"name,omitempty" toml:"name,omitempty"`
	Ref      string            `yaml:"ref,omitempty" toml:"ref,omitempty"`
	Text     *string           `yaml:"text,omitempty" toml:"text,omitempty"`
	Hidden   bool              `yaml:"hidden,omitempty" toml:"hidden,omitempty"`
	Selected bool              `yaml:"selected,omitempty" toml:"selected,omitempty"`
	Disabled bool              `yaml:"disabled,omitempty" toml:"disabled,omitempty"`
	Attrs    map[string]string `yaml:"attrs,omitempty" toml:"attrs,omitempty"`
	Children []Node            `yaml:"children,omitempty" toml:"children,omitempty"`
}

// Load reads a document file. The codec is chosen by extension.
func Load(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	var n Node
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &n)
	case ".toml":
		err = toml.Unmarshal(data, &n)
	default:
		return nil, fmt.Errorf("unsupported document format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &n, nil
}

// Parse reads a YAML document.
func Parse(data []byte) (*Node, error) {
	var n Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Build creates the scene tree. The root must be a box.
func (n *Node) Build() (*scene.Box, error) {
	b := &builder{named: map[string]scene.Node{}}
	root, err := b.build(n, "/")
	if err != nil {
		return nil, err
	}
	switch r := root.(type) {
	case *scene.Box:
		return r, nil
	case *scene.Text:
		return &r.Box, nil
	}
	return nil, fmt.Errorf("document root must be a box, got class %q", n.Class)
}

type builder struct {
	named map[string]scene.Node
}

func (b *builder) build(n *Node, path string) (scene.Node, error) {
	if n.Ref != "" {
		target, ok := b.named[n.Ref]
		if !ok {
			return nil, fmt.Errorf("%s: unknown ref %q", path, n.Ref)
		}
		return target, nil
	}

	attrs, err := attributes(n.Attrs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var node scene.Node
	if n.Text != nil {
		if len(n.Children) > 0 {
			return nil, fmt.Errorf("%s: text nodes have no children", path)
		}
		node = scene.NewText(*n.Text, attrs...)
	} else {
		nodes := make([]scene.Node, 0, len(attrs)+len(n.Children))
		for _, a := range attrs {
			nodes = append(nodes, a)
		}
		for i := range n.Children {
			c, err := b.build(&n.Children[i], fmt.Sprintf("%s%d/", path, i))
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, c)
		}
		switch n.Class {
		case ClassGroup:
			node = scene.NewElement(nodes...)
		case "":
			node = scene.NewBox(scene.ClassBox, nodes...)
		default:
			node = scene.NewBox(n.Class, nodes...)
		}
	}

	if err := b.configure(node, n, path); err != nil {
		return nil, err
	}
	return node, nil
}

// configure applies the per-node state flags and records the name.
func (b *builder) configure(node scene.Node, n *Node, path string) error {
	box, isBox := node.(interface {
		Hide()
		SetSelected(bool) error
		SetInteraction(scene.Interaction) error
	})
	if (n.Hidden || n.Selected || n.Disabled) && !isBox {
		return fmt.Errorf("%s: groups cannot be hidden, selected or disabled", path)
	}
	if n.Hidden {
		box.Hide()
	}
	if n.Selected {
		if err := box.SetSelected(true); err != nil {
			return err
		}
	}
	if n.Disabled {
		if err := box.SetInteraction(scene.InteractionDisabled); err != nil {
			return err
		}
	}
	if n.Name != "" {
		if _, dup := b.named[n.Name]; dup {
			return fmt.Errorf("%s: duplicate name %q", path, n.Name)
		}
		node.SetName(n.Name)
		b.named[n.Name] = node
	}
	return nil
}

// attributes converts an attrs table. Keys are sorted so the attribute
// order does not depend on map iteration.
func attributes(m map[string]string) ([]*scene.Attribute, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]*scene.Attribute, 0, len(keys))
	for _, k := range keys {
		p, ok := scene.LookupProp(k)
		if !ok {
			return nil, fmt.Errorf("unknown property %q", k)
		}
		v, err := Value(p, m[k])
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", k, err)
		}
		out = append(out, scene.NewAttr(p, v))
	}
	return out, nil
}

// Value converts the textual form of a property value.
func Value(p scene.Prop, s string) (any, error) {
	s = strings.TrimSpace(s)
	if s == "inherit" {
		return scene.Inherit, nil
	}
	switch p {
	case scene.PropColor, scene.PropBackground:
		return graphics.ParseColor(s)
	case scene.PropFont:
		return parseFont(s)
	case scene.PropHAlign, scene.PropVAlign:
		return parseAlign(s)
	case scene.PropOrient:
		switch s {
		case "horizontal":
			return scene.Horizontal, nil
		case "vertical":
			return scene.Vertical, nil
		}
		return nil, fmt.Errorf("invalid orientation %q", s)
	case scene.PropHSpacing, scene.PropVSpacing, scene.PropWidth, scene.PropHeight:
		return units.ParseLength(s)
	case scene.PropCursor:
		return scene.Cursor(s), nil
	case scene.PropScale, scene.PropAlpha:
		return strconv.ParseFloat(s, 64)
	case scene.PropPadding:
		return parseEdges(s)
	case scene.PropBorder:
		return parseBorder(s)
	case scene.PropPos:
		ls, err := lengths(s)
		if err != nil {
			return nil, err
		}
		if len(ls) != 2 {
			return nil, fmt.Errorf("position needs two lengths, got %q", s)
		}
		return scene.Position{X: ls[0], Y: ls[1]}, nil
	case scene.PropShow:
		return strconv.ParseBool(s)
	case scene.PropLayout:
		switch s {
		case "stack":
			return scene.LayoutStack, nil
		case "flow":
			return scene.LayoutFlow, nil
		case "table":
			return scene.LayoutTable, nil
		}
		return nil, fmt.Errorf("invalid layout %q", s)
	case scene.PropColSpan, scene.PropRowSpan:
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("span must be a positive integer, got %q", s)
		}
		return n, nil
	default:
		return s, nil
	}
}

func parseAlign(s string) (layout.Align, error) {
	for _, a := range []layout.Align{layout.AlignStart, layout.AlignCenter, layout.AlignEnd, layout.AlignFlex} {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("invalid alignment %q", s)
}

// parseFont reads words such as "serif 150% bold".
func parseFont(s string) (scene.Font, error) {
	var f scene.Font
	for _, w := range strings.Fields(s) {
		switch w {
		case "bold":
			f.Bold = true
		case "italic":
			f.Italic = true
		default:
			if l, err := units.ParseLength(w); err == nil {
				f.Size = l
			} else if f.Family == "" {
				f.Family = w
			} else {
				return f, fmt.Errorf("invalid font %q", s)
			}
		}
	}
	return f, nil
}

// parseEdges reads one, two or four lengths in top, right, bottom, left
// order.
func parseEdges(s string) (scene.Edges, error) {
	ls, err := lengths(s)
	if err != nil {
		return scene.Edges{}, err
	}
	switch len(ls) {
	case 1:
		return scene.UniformEdges(ls[0]), nil
	case 2:
		return scene.Edges{Top: ls[0], Bottom: ls[0], Left: ls[1], Right: ls[1]}, nil
	case 4:
		return scene.Edges{Top: ls[0], Right: ls[1], Bottom: ls[2], Left: ls[3]}, nil
	}
	return scene.Edges{}, fmt.Errorf("padding needs 1, 2 or 4 lengths, got %q", s)
}

// parseBorder reads "width [color]".
func parseBorder(s string) (scene.Border, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return scene.Border{}, fmt.Errorf("invalid border %q", s)
	}
	w, err := units.ParseLength(fields[0])
	if err != nil {
		return scene.Border{}, err
	}
	b := scene.Border{Width: w, Color: graphics.ColorBlack}
	if len(fields) == 2 {
		if b.Color, err = graphics.ParseColor(fields[1]); err != nil {
			return scene.Border{}, err
		}
	}
	return b, nil
}

func lengths(s string) ([]units.Length, error) {
	var out []units.Length
	for _, f := range strings.Fields(s) {
		l, err := units.ParseLength(f)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}
