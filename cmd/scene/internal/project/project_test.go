package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/demo/v2\n\ngo 1.24\n")
	nested := filepath.Join(root, "scenes", "forms")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	p, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if p.Root != root {
		t.Errorf("Root = %q, want %q", p.Root, root)
	}
	if p.ModulePath != "example.com/demo/v2" {
		t.Errorf("ModulePath = %q", p.ModulePath)
	}
	if p.Name != "demo" {
		t.Errorf("Name = %q, want %q", p.Name, "demo")
	}
}

func TestOpenRejectsMissingModule(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "go 1.24\n")
	if _, err := Open(root); err == nil {
		t.Error("expected an error for a go.mod without module line")
	}
}

func TestConfigDefaultsAndFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/app\n")
	p, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := p.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.Scheduler.MaxPasses != 8 {
		t.Errorf("MaxPasses = %d, want default 8", cfg.Scheduler.MaxPasses)
	}

	writeFile(t, filepath.Join(root, "scene.toml"), "[display]\nscale = 2.0\n")
	cfg, err = p.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.Display.Scale != 2 {
		t.Errorf("Scale = %v, want 2", cfg.Display.Scale)
	}
}
