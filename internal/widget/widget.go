// Package widget owns the task list state and its mutation API.
//
// A Widget holds the ordered list, the pending new-task text, and the edit
// sub-state (target task and pending edit text). Every operation that changes
// the list writes the whole list back to the store before returning. Guard
// failures (blank text, moves past either end, unknown IDs) are silent
// no-ops and write nothing.
//
// A Widget is not safe for concurrent use; it expects a single mutator such
// as a bubbletea Update loop or a one-shot CLI command.
package widget

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/storage"
	"github.com/nibzard/tasklist-go/internal/todo"
)

// DefaultKey is the storage key used when none is configured.
const DefaultKey = "tasks"

// Option configures a Widget.
type Option func(*Widget)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *log.Logger) Option {
	return func(w *Widget) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithValidation sets the options used to validate the stored value on load.
func WithValidation(opts todo.ValidationOptions) Option {
	return func(w *Widget) {
		w.validation = opts
	}
}

// Widget is the task list component.
type Widget struct {
	store      storage.Store
	key        string
	validation todo.ValidationOptions
	logger     *log.Logger

	list     *todo.List
	newText  string
	editID   string
	editText string
}

// New returns a widget backed by store under key. Call Load before use.
func New(store storage.Store, key string, opts ...Option) *Widget {
	if key == "" {
		key = DefaultKey
	}
	w := &Widget{
		store:  store,
		key:    key,
		logger: log.New(io.Discard),
		list:   &todo.List{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Key returns the storage key.
func (w *Widget) Key() string {
	return w.key
}

// Load reads the persisted list. A missing, unreadable, or invalid value
// yields an empty list; the cause is logged and never returned. IDs assigned
// to stored tasks that lacked them are written back so they survive reloads.
func (w *Widget) Load(ctx context.Context) {
	list, assigned := w.read(ctx)
	w.list = list
	w.editID = ""
	w.editText = ""

	if assigned {
		if err := w.persist(ctx); err != nil {
			w.logger.Warn("Failed to store assigned task IDs", "key", w.key, "err", err)
		}
	}
}

func (w *Widget) read(ctx context.Context) (*todo.List, bool) {
	data, err := w.store.Get(ctx, w.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			w.logger.Debug("No stored task list, starting empty", "key", w.key)
		} else {
			w.logger.Warn("Failed to read task list, starting empty", "key", w.key, "err", err)
		}
		return &todo.List{}, false
	}

	list, assigned, err := todo.Decode(data, w.validation)
	if err != nil {
		w.logger.Warn("Stored task list is invalid, starting empty", "key", w.key, "err", err)
		return &todo.List{}, false
	}

	w.logger.Debug("Loaded task list", "key", w.key, "tasks", list.Len(), "assigned_ids", assigned)
	return list, assigned
}

// persist writes the full list under the key.
func (w *Widget) persist(ctx context.Context) error {
	data, err := todo.Encode(w.list)
	if err != nil {
		w.logger.Error("Failed to encode task list", "err", err)
		return err
	}
	if err := w.store.Set(ctx, w.key, data); err != nil {
		w.logger.Error("Failed to save task list", "key", w.key, "err", err)
		return fmt.Errorf("save task list: %w", err)
	}
	return nil
}

// Tasks returns a copy of the list in display order.
func (w *Widget) Tasks() []todo.Task {
	return w.list.Clone().Tasks
}

// Len returns the number of tasks.
func (w *Widget) Len() int {
	return w.list.Len()
}

// IDAt translates a display position to a task ID.
func (w *Widget) IDAt(index int) (string, bool) {
	return w.list.IDAt(index)
}

// Index returns the display position of id, or -1.
func (w *Widget) Index(id string) int {
	return w.list.Index(id)
}

// Counts returns the number of tasks and how many are completed.
func (w *Widget) Counts() (total, completed int) {
	return w.list.Len(), w.list.Completed()
}

// NewText returns the pending new-task text.
func (w *Widget) NewText() string {
	return w.newText
}

// SetNewText replaces the pending new-task text.
func (w *Widget) SetNewText(text string) {
	w.newText = text
}

// Add appends the pending new-task text as a task.
func (w *Widget) Add(ctx context.Context) error {
	return w.AddTask(ctx, w.newText)
}

// AddTask appends an incomplete task and clears the pending new-task text.
// Blank text is a no-op.
func (w *Widget) AddTask(ctx context.Context, text string) error {
	task, ok := w.list.Add(text)
	if !ok {
		return nil
	}
	w.newText = ""
	w.logger.Debug("Added task", "id", task.ID, "position", w.list.Len()-1)
	return w.persist(ctx)
}

// DeleteTask removes a task. Deleting the task being edited ends edit mode.
func (w *Widget) DeleteTask(ctx context.Context, id string) error {
	if !w.list.Remove(id) {
		return nil
	}
	if w.editID == id {
		w.editID = ""
		w.editText = ""
	}
	w.logger.Debug("Deleted task", "id", id)
	return w.persist(ctx)
}

// StartEdit enters edit mode for a task, seeding the edit text with its
// current text. Any unsaved edit of another task is discarded.
func (w *Widget) StartEdit(id string) {
	t := w.list.Get(id)
	if t == nil {
		return
	}
	w.editID = id
	w.editText = t.Text
}

// Editing returns the task being edited, if any.
func (w *Widget) Editing() (string, bool) {
	return w.editID, w.editID != ""
}

// EditText returns the pending edit text.
func (w *Widget) EditText() string {
	return w.editText
}

// SetEditText replaces the pending edit text.
func (w *Widget) SetEditText(text string) {
	w.editText = text
}

// SaveEdit writes the pending edit text to the edited task and leaves edit
// mode. Blank edit text is a no-op and edit mode stays open.
func (w *Widget) SaveEdit(ctx context.Context) error {
	if w.editID == "" || !todo.ValidText(w.editText) {
		return nil
	}
	id := w.editID
	if !w.list.SetText(id, w.editText) {
		return nil
	}
	w.editID = ""
	w.editText = ""
	w.logger.Debug("Edited task", "id", id)
	return w.persist(ctx)
}

// CancelEdit leaves edit mode without saving and clears the edit text.
func (w *Widget) CancelEdit() {
	w.editID = ""
	w.editText = ""
}

// ToggleComplete flips the completion flag of a task.
func (w *Widget) ToggleComplete(ctx context.Context, id string) error {
	if !w.list.Toggle(id) {
		return nil
	}
	w.logger.Debug("Toggled task", "id", id, "completed", w.list.Get(id).Completed)
	return w.persist(ctx)
}

// MoveUp swaps a task with the one above it. No-op at the top.
func (w *Widget) MoveUp(ctx context.Context, id string) error {
	if !w.list.MoveUp(id) {
		return nil
	}
	w.logger.Debug("Moved task up", "id", id, "position", w.list.Index(id))
	return w.persist(ctx)
}

// MoveDown swaps a task with the one below it. No-op at the bottom.
func (w *Widget) MoveDown(ctx context.Context, id string) error {
	if !w.list.MoveDown(id) {
		return nil
	}
	w.logger.Debug("Moved task down", "id", id, "position", w.list.Index(id))
	return w.persist(ctx)
}

// Purge removes every task and deletes the stored value, so the next Load
// starts from a missing key.
func (w *Widget) Purge(ctx context.Context) error {
	w.list = &todo.List{}
	w.editID = ""
	w.editText = ""
	if err := w.store.Delete(ctx, w.key); err != nil {
		w.logger.Error("Failed to delete task list", "key", w.key, "err", err)
		return fmt.Errorf("delete task list: %w", err)
	}
	w.logger.Debug("Purged task list", "key", w.key)
	return nil
}

// Clear removes every task and ends edit mode.
func (w *Widget) Clear(ctx context.Context) error {
	if !w.list.Clear() {
		return nil
	}
	w.editID = ""
	w.editText = ""
	w.logger.Debug("Cleared task list")
	return w.persist(ctx)
}
