package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nibzard/tasklist-go/internal/config"
)

// initCommand writes an example tasklist.toml into the project root.
func (a *app) initCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasklist init", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	force := fs.Bool("force", false, "Overwrite an existing config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := filepath.Join(cfg.ProjectRoot, "tasklist.toml")
	if _, err := os.Stat(path); err == nil && !*force {
		fmt.Fprintf(a.stdout, "Skipping %s (exists, use -force to overwrite)\n", path)
		return nil
	}

	if err := os.WriteFile(path, []byte(config.ExampleConfig()), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	fmt.Fprintf(a.stdout, "Wrote %s\n", path)
	return nil
}
