package cmd

import (
	"context"
	"fmt"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/logging"
	"github.com/nibzard/tasklist-go/internal/ui"
)

// tuiCommand opens the interactive list. Logs go to a per-run file because
// the UI owns the terminal.
func (a *app) tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	runLog, err := logging.NewRunLogger(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("creating run log: %w", err)
	}
	defer runLog.Close()

	s, err := openSession(ctx, cfg, runLog.Writer())
	if err != nil {
		return err
	}
	defer s.Close()

	return ui.RunTUI(ctx, s.widget,
		ui.WithLocation(s.store.Location()),
		ui.WithLogger(s.logger),
	)
}
