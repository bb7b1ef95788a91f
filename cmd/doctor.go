package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/storage"
	"github.com/nibzard/tasklist-go/internal/todo"
)

// doctorCommand checks config, storage, and the stored list.
func (a *app) doctorCommand(ctx context.Context, cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("tasklist doctor", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg := cws.Config
	w := a.stdout

	fmt.Fprintln(w, "tasklist doctor")
	fmt.Fprintln(w, "===============")
	fmt.Fprintln(w)

	allOK := true

	// Config
	fmt.Fprintln(w, "Config:")
	if file := cws.ConfigFile(); file != "" {
		fmt.Fprintf(w, "  File: %s\n", file)
	} else {
		fmt.Fprintln(w, "  File: (none, using defaults)")
	}
	for _, field := range config.Fields() {
		source := cws.Sources[field]
		if source == config.SourceDefault && !*verbose {
			continue
		}
		fmt.Fprintf(w, "  %-15s %s (%s)\n", field+":", cfg.Value(field), source)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(w, "  ❌ %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	// Schema override
	if cfg.SchemaFile != "" {
		fmt.Fprintf(w, "Schema file: %s\n", cfg.SchemaFile)
		if info, err := os.Stat(cfg.SchemaFile); err != nil {
			fmt.Fprintf(w, "  ⚠️  %v (built-in schema will be used)\n", err)
		} else if info.IsDir() {
			fmt.Fprintln(w, "  ❌ Error: path is a directory")
			allOK = false
		} else {
			fmt.Fprintln(w, "  ✅ OK")
		}
		fmt.Fprintln(w)
	}

	// Store and stored value
	if !checkStore(ctx, w, cfg, *verbose) {
		allOK = false
	}

	// Log directory
	fmt.Fprintf(w, "Log directory: %s\n", cfg.LogDir)
	if _, err := os.Stat(cfg.LogDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  ⚠️  Not found (created by the first interactive session)")
		} else {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed. tasklist may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// checkStore opens the store and validates the value under the configured key.
func checkStore(ctx context.Context, w io.Writer, cfg *config.Config, verbose bool) bool {
	defer fmt.Fprintln(w)

	fmt.Fprintf(w, "Store: %s\n", cfg.Store)
	store, err := storage.Open(cfg.Store, cfg.DataDir)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	}
	defer store.Close()
	fmt.Fprintf(w, "  ✅ Location: %s\n", store.Location())

	data, err := store.Get(ctx, cfg.Key)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(w, "  ⚠️  Key %q not set yet (the list starts empty)\n", cfg.Key)
		return true
	}
	if err != nil {
		fmt.Fprintf(w, "  ❌ Read error: %v\n", err)
		return false
	}

	result := todo.Validate(data, todo.ValidationOptions{SchemaPath: cfg.SchemaFile})
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}
	if !result.Valid {
		fmt.Fprintf(w, "  ❌ Key %q is invalid and will load as an empty list:\n", cfg.Key)
		for _, e := range result.Errors {
			fmt.Fprintf(w, "     - %v\n", e)
		}
		return false
	}

	list, _, err := todo.Decode(data, todo.ValidationOptions{SchemaPath: cfg.SchemaFile})
	if err != nil {
		fmt.Fprintf(w, "  ❌ Decode error: %v\n", err)
		return false
	}
	fmt.Fprintf(w, "  ✅ Key %q: %d tasks, %d done\n", cfg.Key, list.Len(), list.Completed())
	if verbose {
		for i, t := range list.Tasks {
			fmt.Fprintf(w, "    %s\n", formatTask(i+1, t, true))
		}
	}
	return true
}
