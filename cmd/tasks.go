package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/todo"
	"github.com/nibzard/tasklist-go/internal/widget"
)

var (
	// ErrPositionRequired indicates no task position was given.
	ErrPositionRequired = errors.New("task position required")
	// ErrTextRequired indicates the task text was missing or blank.
	ErrTextRequired = errors.New("task text required")
)

// parsePosition resolves a 1-based position argument to a task ID.
func parsePosition(w *widget.Widget, arg string) (string, int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return "", 0, fmt.Errorf("invalid task position: %s", arg)
	}
	id, ok := w.IDAt(n - 1)
	if !ok {
		return "", 0, fmt.Errorf("task %d not found", n)
	}
	return id, n, nil
}

// withList opens a session for a one-shot command and closes it afterwards.
func (a *app) withList(ctx context.Context, cfg *config.Config, fn func(*widget.Widget) error) error {
	s, err := openSession(ctx, cfg, a.stderr)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s.widget)
}

// lsCommand prints the list in display order.
func (a *app) lsCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasklist ls", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	verbose := fs.Bool("v", false, "Show task IDs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return a.withList(ctx, cfg, func(w *widget.Widget) error {
		tasks := w.Tasks()
		if len(tasks) == 0 {
			fmt.Fprintln(a.stdout, "No tasks.")
			return nil
		}
		for i, t := range tasks {
			fmt.Fprintln(a.stdout, formatTask(i+1, t, *verbose))
		}
		total, completed := w.Counts()
		fmt.Fprintf(a.stdout, "\n%d done of %d\n", completed, total)
		return nil
	})
}

func formatTask(n int, t todo.Task, verbose bool) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	line := fmt.Sprintf("%3d. %s %s", n, check, t.Text)
	if verbose {
		line += fmt.Sprintf("  (%s)", t.ID)
	}
	return line
}

// addCommand appends a task built from the remaining arguments.
func (a *app) addCommand(ctx context.Context, cfg *config.Config, args []string) error {
	text := strings.Join(args, " ")
	if !todo.ValidText(text) {
		return ErrTextRequired
	}

	return a.withList(ctx, cfg, func(w *widget.Widget) error {
		if err := w.AddTask(ctx, text); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Added task %d: %s\n", w.Len(), text)
		return nil
	})
}

// editCommand replaces the text of one task.
func (a *app) editCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return ErrPositionRequired
	}
	text := strings.Join(args[1:], " ")
	if !todo.ValidText(text) {
		return ErrTextRequired
	}

	return a.withList(ctx, cfg, func(w *widget.Widget) error {
		id, n, err := parsePosition(w, args[0])
		if err != nil {
			return err
		}
		w.StartEdit(id)
		w.SetEditText(text)
		if err := w.SaveEdit(ctx); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Updated task %d: %s\n", n, text)
		return nil
	})
}

// doneCommand toggles completion of one task.
func (a *app) doneCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrPositionRequired
	}

	return a.withList(ctx, cfg, func(w *widget.Widget) error {
		id, n, err := parsePosition(w, args[0])
		if err != nil {
			return err
		}
		if err := w.ToggleComplete(ctx, id); err != nil {
			return err
		}
		t := w.Tasks()[n-1]
		verb := "Reopened"
		if t.Completed {
			verb = "Completed"
		}
		fmt.Fprintf(a.stdout, "%s task %d: %s\n", verb, n, t.Text)
		return nil
	})
}

// rmCommand deletes one task.
func (a *app) rmCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrPositionRequired
	}

	return a.withList(ctx, cfg, func(w *widget.Widget) error {
		id, n, err := parsePosition(w, args[0])
		if err != nil {
			return err
		}
		text := w.Tasks()[n-1].Text
		if err := w.DeleteTask(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Deleted task %d: %s\n", n, text)
		return nil
	})
}

type moveDirection int

const (
	moveUp moveDirection = iota
	moveDown
)

// moveCommand swaps one task with its neighbour. Moving past either end is
// reported but is not an error.
func (a *app) moveCommand(ctx context.Context, cfg *config.Config, args []string, dir moveDirection) error {
	if len(args) != 1 {
		return ErrPositionRequired
	}

	return a.withList(ctx, cfg, func(w *widget.Widget) error {
		id, n, err := parsePosition(w, args[0])
		if err != nil {
			return err
		}
		move, edge := w.MoveUp, "top"
		if dir == moveDown {
			move, edge = w.MoveDown, "bottom"
		}
		if err := move(ctx, id); err != nil {
			return err
		}
		if to := w.Index(id) + 1; to != n {
			fmt.Fprintf(a.stdout, "Moved task %d to position %d\n", n, to)
		} else {
			fmt.Fprintf(a.stdout, "Task %d is already at the %s\n", n, edge)
		}
		return nil
	})
}

// clearCommand deletes every task. With -purge the stored value itself is
// removed instead of being replaced by an empty list.
func (a *app) clearCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasklist clear", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	purge := fs.Bool("purge", false, "Delete the stored value under the key")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return a.withList(ctx, cfg, func(w *widget.Widget) error {
		n := w.Len()
		if *purge {
			if err := w.Purge(ctx); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Purged key %q (%d tasks).\n", w.Key(), n)
			return nil
		}
		if err := w.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Cleared %d tasks.\n", n)
		return nil
	})
}
