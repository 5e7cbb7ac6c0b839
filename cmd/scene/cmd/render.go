package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-drift/scene/cmd/scene/internal/document"
	"github.com/go-drift/scene/cmd/scene/internal/project"
	"github.com/go-drift/scene/pkg/config"
	"github.com/go-drift/scene/pkg/graphics"
	"github.com/go-drift/scene/pkg/scene"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Lay out a scene document",
		Long: `Lay out a scene document and print the resulting view tree.

The engine configuration is read from --config, or from scene.yaml or
scene.toml at the root of the Go module containing the document.

Flags:
  --size WxH        Window size in pixels (default: 800x600)
  --config FILE     Engine configuration file
  --ops             Print the display list as JSON instead of the view tree`,
		Usage: "scene render [--size WxH] [--config FILE] [--ops] <document>",
		Run:   runRender,
	})
}

type renderOptions struct {
	size       graphics.Size
	configPath string
	ops        bool
}

func parseRenderArgs(args []string) (renderOptions, string, error) {
	opts := renderOptions{size: graphics.Size{Width: 800, Height: 600}}
	var path string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--ops":
			opts.ops = true
		case "--size":
			if i+1 >= len(args) {
				return opts, "", fmt.Errorf("--size requires WxH")
			}
			size, err := parseSize(args[i+1])
			if err != nil {
				return opts, "", err
			}
			opts.size = size
			i++
		case "--config":
			if i+1 >= len(args) {
				return opts, "", fmt.Errorf("--config requires a file path")
			}
			opts.configPath = args[i+1]
			i++
		default:
			if strings.HasPrefix(args[i], "--") {
				return opts, "", fmt.Errorf("unknown flag %s", args[i])
			}
			path = args[i]
		}
	}
	if path == "" {
		return opts, "", fmt.Errorf("document is required\n\nUsage: scene render <document>")
	}
	return opts, path, nil
}

func parseSize(s string) (graphics.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return graphics.Size{}, fmt.Errorf("invalid size %q (want WxH)", s)
	}
	width, err1 := strconv.ParseFloat(w, 64)
	height, err2 := strconv.ParseFloat(h, 64)
	if err1 != nil || err2 != nil || width <= 0 || height <= 0 {
		return graphics.Size{}, fmt.Errorf("invalid size %q (want WxH)", s)
	}
	return graphics.Size{Width: width, Height: height}, nil
}

func runRender(args []string) error {
	opts, path, err := parseRenderArgs(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts.configPath, filepath.Dir(path))
	if err != nil {
		return err
	}
	doc, err := document.Load(path)
	if err != nil {
		return err
	}
	root, err := doc.Build()
	if err != nil {
		return err
	}

	engine, err := scene.NewEngine(cfg)
	if err != nil {
		return err
	}
	surface := &recordingSurface{size: opts.size}
	w, err := engine.OpenWindow(root, surface)
	if err != nil {
		return err
	}
	defer w.Close()
	if _, err := engine.Frame(); err != nil {
		return err
	}

	if opts.ops {
		return writeOps(stdout, surface.ops)
	}
	writeTree(stdout, w.View(), 0)
	return nil
}

// loadConfig reads path, or the configuration of the module around dir.
// Documents outside a module use the defaults.
func loadConfig(path, dir string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	p, err := project.Find(dir)
	if err != nil {
		return config.Default(), nil
	}
	return p.Config()
}

// recordingSurface keeps the primitives of every rendered list.
type recordingSurface struct {
	size graphics.Size
	ops  []graphics.Op
}

func (s *recordingSurface) Size() graphics.Size { return s.size }

func (s *recordingSurface) Paint(_ *scene.View, _ *scene.UpdateContext, list *graphics.DisplayList) {
	s.ops = append(s.ops, list.Ops()...)
}

func writeTree(w io.Writer, v *scene.View, depth int) {
	b := v.Box()
	var line strings.Builder
	line.WriteString(strings.Repeat("  ", depth))
	line.WriteString(b.Style().Class)
	if name := b.Name(); name != "" {
		fmt.Fprintf(&line, " #%s", name)
	}
	if t := b.AsText(); t != nil {
		fmt.Fprintf(&line, " %q", t.Text())
	}
	r := v.Rect()
	fmt.Fprintf(&line, " [%g,%g %gx%g]", r.Left, r.Top, r.Width(), r.Height())
	if !v.Visible() {
		line.WriteString(" hidden")
	}
	fmt.Fprintln(w, line.String())
	for _, c := range v.Children() {
		writeTree(w, c, depth+1)
	}
}

type jsonOp struct {
	Op     string           `json:"op"`
	Rect   *graphics.Rect   `json:"rect,omitempty"`
	From   *graphics.Offset `json:"from,omitempty"`
	To     *graphics.Offset `json:"to,omitempty"`
	Origin *graphics.Offset `json:"origin,omitempty"`
	Text   string           `json:"text,omitempty"`
	Color  string           `json:"color,omitempty"`
	Width  float64          `json:"width,omitempty"`
	Size   float64          `json:"size,omitempty"`
}

func writeOps(w io.Writer, ops []graphics.Op) error {
	out := make([]jsonOp, 0, len(ops))
	for _, op := range ops {
		switch o := op.(type) {
		case graphics.RectOp:
			j := jsonOp{Op: "fillRect", Rect: &o.Rect, Color: o.Color.String()}
			if !o.Fill {
				j.Op, j.Width = "strokeRect", o.StrokeWidth
			}
			out = append(out, j)
		case graphics.LineOp:
			out = append(out, jsonOp{Op: "drawLine", From: &o.From, To: &o.To, Color: o.Color.String(), Width: o.Width})
		case graphics.TextOp:
			out = append(out, jsonOp{Op: "drawText", Origin: &o.Origin, Text: o.Text, Color: o.Color.String(), Size: o.FontSize})
		default:
			r := op.Bounds()
			out = append(out, jsonOp{Op: fmt.Sprintf("%T", op), Rect: &r})
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
