package cmd

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/scene/cmd/scene/internal/project"
)

func init() {
	RegisterCommand(&Command{
		Name:  "config",
		Short: "Show the resolved engine configuration",
		Long: `Show the engine configuration of a Go module.

The configuration is read from scene.yaml or scene.toml at the module root
and completed with defaults. It is printed as YAML unless --toml is given.`,
		Usage: "scene config [--toml] [dir]",
		Run:   runConfig,
	})
}

func runConfig(args []string) error {
	dir, asTOML := ".", false
	for _, arg := range args {
		switch arg {
		case "--toml":
			asTOML = true
		default:
			dir = arg
		}
	}

	p, err := project.Find(dir)
	if err != nil {
		return err
	}
	cfg, err := p.Config()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var data []byte
	if asTOML {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "# %s (%s)\n", p.Name, p.ModulePath)
	_, err = stdout.Write(data)
	return err
}
