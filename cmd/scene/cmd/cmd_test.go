package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestExecute_Version(t *testing.T) {
	out := capture(t)
	if err := Execute([]string{"--version"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), Version) {
		t.Errorf("version output %q does not mention %s", out.String(), Version)
	}
}

func TestExecute_UnknownCommand(t *testing.T) {
	capture(t)
	if err := Execute([]string{"paint"}); err == nil {
		t.Error("expected an error for an unknown command")
	}
}

func TestRender_Tree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/forms\n")
	writeFile(t, filepath.Join(dir, "scene.yaml"), "display:\n  scale: 2\n")
	doc := filepath.Join(dir, "form.yaml")
	writeFile(t, doc, `
class: vbox
children:
  - name: swatch
    attrs: { width: 10px, height: 5px }
  - text: hi
`)

	out := capture(t)
	if err := Execute([]string{"render", "--size", "100x50", doc}); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `vbox [0,0 100x50]
  box #swatch [0,0 20x10]
  text "hi" [0,10 28x26]
`
	if out.String() != want {
		t.Errorf("render output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestRender_Ops(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "box.yaml")
	writeFile(t, doc, "class: box\nattrs: { background: red }\n")

	out := capture(t)
	if err := Execute([]string{"render", "--ops", "--size", "40x30", doc}); err != nil {
		t.Fatalf("render: %v", err)
	}
	var ops []map[string]any
	if err := json.Unmarshal(out.Bytes(), &ops); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if len(ops) != 1 || ops[0]["op"] != "fillRect" || ops[0]["color"] != "#FFFF0000" {
		t.Errorf("unexpected ops %v", ops)
	}
}

func TestRender_BadArgs(t *testing.T) {
	capture(t)
	for _, args := range [][]string{
		{"render"},
		{"render", "--size", "wide", "a.yaml"},
		{"render", "--frobnicate", "a.yaml"},
		{"render", filepath.Join(t.TempDir(), "missing.yaml")},
	} {
		if err := Execute(args); err == nil {
			t.Errorf("Execute(%v) should fail", args)
		}
	}
}

func TestConfig_TOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/forms\n")
	writeFile(t, filepath.Join(dir, "scene.yaml"), "scheduler:\n  max_passes: 3\n")

	out := capture(t)
	if err := Execute([]string{"config", "--toml", dir}); err != nil {
		t.Fatalf("config: %v", err)
	}
	s := out.String()
	if !strings.HasPrefix(s, "# forms (example.com/forms)\n") {
		t.Errorf("missing project header in %q", s)
	}
	if !strings.Contains(s, "max_passes = 3") {
		t.Errorf("expected max_passes = 3 in %q", s)
	}
}
