// Package cmd implements the CLI command structure for tasklist.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/tasklist-go/internal/config"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries the output streams shared by every subcommand.
type app struct {
	stdout io.Writer
	stderr io.Writer
}

// Run executes the tasklist CLI.
func Run(ctx context.Context, args []string) error {
	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	return a.run(ctx, args)
}

func (a *app) run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		printUsage(fs, a.stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, a.stdout)
		return nil
	}
	if *showVersion {
		return a.versionCommand()
	}
	cfg := cws.Config

	// With no subcommand, open the interactive list.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return a.tuiCommand(ctx, cfg, remainingArgs)
	case "ls", "list":
		return a.lsCommand(ctx, cfg, remainingArgs)
	case "add":
		return a.addCommand(ctx, cfg, remainingArgs)
	case "edit":
		return a.editCommand(ctx, cfg, remainingArgs)
	case "done", "toggle":
		return a.doneCommand(ctx, cfg, remainingArgs)
	case "rm", "delete":
		return a.rmCommand(ctx, cfg, remainingArgs)
	case "up":
		return a.moveCommand(ctx, cfg, remainingArgs, moveUp)
	case "down":
		return a.moveCommand(ctx, cfg, remainingArgs, moveDown)
	case "clear":
		return a.clearCommand(ctx, cfg, remainingArgs)
	case "doctor":
		return a.doctorCommand(ctx, cws, remainingArgs)
	case "tail":
		return a.tailCommand(ctx, cfg, remainingArgs)
	case "init":
		return a.initCommand(cfg, remainingArgs)
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(fs, a.stdout)
		return nil
	default:
		fmt.Fprintf(a.stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, a.stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// versionCommand prints version information.
func (a *app) versionCommand() error {
	fmt.Fprintf(a.stdout, "tasklist version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasklist - A persistent, reorderable to-do list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasklist [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui               Open the interactive list (default command)")
	fmt.Fprintln(w, "  ls [-v]           List tasks with their positions")
	fmt.Fprintln(w, "  add <text...>     Add a task at the end of the list")
	fmt.Fprintln(w, "  edit <n> <text>   Replace the text of task n")
	fmt.Fprintln(w, "  done <n>          Toggle completion of task n")
	fmt.Fprintln(w, "  rm <n>            Delete task n")
	fmt.Fprintln(w, "  up <n>            Move task n up one position")
	fmt.Fprintln(w, "  down <n>          Move task n down one position")
	fmt.Fprintln(w, "  clear [-purge]    Delete every task (-purge also removes the stored value)")
	fmt.Fprintln(w, "  doctor            Check config, storage, and the stored list")
	fmt.Fprintln(w, "  tail [-n N] [-f]  Show the latest interactive session log")
	fmt.Fprintln(w, "  init [-force]     Write an example tasklist.toml")
	fmt.Fprintln(w, "  version           Show version information")
	fmt.Fprintln(w, "  help              Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Positions are 1-based, in display order.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
