package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/logging"
	"github.com/nibzard/tasklist-go/internal/storage"
	"github.com/nibzard/tasklist-go/internal/todo"
	"github.com/nibzard/tasklist-go/internal/widget"
)

// session is an opened store with a loaded widget.
type session struct {
	store  storage.Store
	widget *widget.Widget
	logger *log.Logger
}

// openSession opens the configured store and loads the list, logging to logw.
func openSession(ctx context.Context, cfg *config.Config, logw io.Writer) (*session, error) {
	logger := logging.NewLogger(logw, cfg.LogOptions())

	store, err := storage.Open(cfg.Store, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Store, err)
	}
	logger.Debug("Opened store", "store", cfg.Store, "location", store.Location())

	w := widget.New(store, cfg.Key,
		widget.WithLogger(logger),
		widget.WithValidation(todo.ValidationOptions{SchemaPath: cfg.SchemaFile}),
	)
	w.Load(ctx)

	return &session{store: store, widget: w, logger: logger}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}
