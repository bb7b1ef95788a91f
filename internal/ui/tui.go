// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/widget"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	location string
	logger   *log.Logger
	keys     KeyMap
}

// WithLocation sets the storage location shown in the header.
func WithLocation(location string) TUIOption {
	return func(c *tuiConfig) {
		c.location = location
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(keys KeyMap) TUIOption {
	return func(c *tuiConfig) {
		c.keys = keys
	}
}

// RunTUI runs the interactive list editor on w until the user quits or ctx
// is canceled. The widget must already be loaded.
func RunTUI(ctx context.Context, w *widget.Widget, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(ctx, w, opts...)
	model.logger.Info("Started interactive session", "key", w.Key(), "tasks", w.Len())

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	model.logger.Info("Ended interactive session", "tasks", w.Len())
	return nil
}

type inputMode int

const (
	modeBrowse inputMode = iota
	modeAdd
	modeEdit
)

type tuiModel struct {
	ctx      context.Context
	widget   *widget.Widget
	logger   *log.Logger
	keys     KeyMap
	help     help.Model
	input    textinput.Model
	mode     inputMode
	cursor   int
	status   string
	location string
}

func newTUIModel(ctx context.Context, w *widget.Widget, opts ...TUIOption) *tuiModel {
	c := &tuiConfig{
		logger: log.New(io.Discard),
		keys:   DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(c)
	}

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "What needs to be done?"

	return &tuiModel{
		ctx:      ctx,
		widget:   w,
		logger:   c.logger,
		keys:     c.keys,
		help:     help.New(),
		input:    input,
		location: c.location,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-16, 10)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeEdit:
			return m.updateEdit(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m *tuiModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.widget.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.SetValue(m.widget.NewText())
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Edit):
		id, ok := m.widget.IDAt(m.cursor)
		if !ok {
			return m, nil
		}
		m.widget.StartEdit(id)
		m.mode = modeEdit
		m.input.SetValue(m.widget.EditText())
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Toggle):
		m.withSelected(m.widget.ToggleComplete)
	case key.Matches(msg, m.keys.Delete):
		m.withSelected(m.widget.DeleteTask)
	case key.Matches(msg, m.keys.MoveUp):
		m.withSelected(m.widget.MoveUp)
	case key.Matches(msg, m.keys.MoveDown):
		m.withSelected(m.widget.MoveDown)
	}
	return m, nil
}

// withSelected applies op to the task under the cursor, then keeps the cursor
// on that task if it still exists.
func (m *tuiModel) withSelected(op func(context.Context, string) error) {
	id, ok := m.widget.IDAt(m.cursor)
	if !ok {
		return
	}
	m.report(op(m.ctx, id))
	if idx := m.widget.Index(id); idx >= 0 {
		m.cursor = idx
	}
	m.clampCursor()
}

func (m *tuiModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.widget.SetNewText(m.input.Value())
		m.blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.widget.SetNewText(m.input.Value())
		before := m.widget.Len()
		m.report(m.widget.Add(m.ctx))
		if m.widget.Len() > before {
			m.cursor = m.widget.Len() - 1
		}
		m.input.SetValue(m.widget.NewText())
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.widget.SetNewText(m.input.Value())
	return m, cmd
}

func (m *tuiModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.widget.CancelEdit()
		m.blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.widget.SetEditText(m.input.Value())
		m.report(m.widget.SaveEdit(m.ctx))
		if _, editing := m.widget.Editing(); !editing {
			m.blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.widget.SetEditText(m.input.Value())
	return m, cmd
}

func (m *tuiModel) blur() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.SetValue("")
}

// report shows a persistence failure in the status line. The in-memory list
// keeps the change.
func (m *tuiModel) report(err error) {
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}

func (m *tuiModel) clampCursor() {
	if m.cursor >= m.widget.Len() {
		m.cursor = m.widget.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeHeader(&b, m.widget, m.location)
	m.writeTasks(&b)
	m.writeInput(&b)
	writeStatus(&b, m.status)
	m.writeHelp(&b)
	return b.String()
}

func writeHeader(b *strings.Builder, w *widget.Widget, location string) {
	total, completed := w.Counts()
	b.WriteString(titleStyle.Render("Tasks"))
	b.WriteString(" ")
	b.WriteString(countStyle.Render(fmt.Sprintf("%d done of %d", completed, total)))
	if location != "" {
		b.WriteString(countStyle.Render("  " + location))
	}
	b.WriteString("\n\n")
}

func (m *tuiModel) writeTasks(b *strings.Builder) {
	tasks := m.widget.Tasks()
	if len(tasks) == 0 {
		b.WriteString("  " + emptyStyle.Render("No tasks yet. Press a to add one.") + "\n\n")
		return
	}

	editID, editing := m.widget.Editing()
	for i, t := range tasks {
		cursor := "  "
		if i == m.cursor && m.mode != modeAdd {
			cursor = "› "
		}
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}

		var text string
		switch {
		case editing && t.ID == editID:
			text = m.input.View()
		case t.Completed:
			text = completedTaskStyle.Render(t.Text)
		case i == m.cursor:
			text = selectedTaskStyle.Render(t.Text)
		default:
			text = taskStyle.Render(t.Text)
		}
		fmt.Fprintf(b, "%s%s %s\n", cursor, check, text)
	}
	b.WriteString("\n")
}

func (m *tuiModel) writeInput(b *strings.Builder) {
	if m.mode != modeAdd {
		return
	}
	b.WriteString(promptStyle.Render("New task: "))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
}

func writeStatus(b *strings.Builder, status string) {
	if status == "" {
		return
	}
	b.WriteString(errorStyle.Render("Error: "+status) + "\n\n")
}

func (m *tuiModel) writeHelp(b *strings.Builder) {
	if m.mode != modeBrowse {
		b.WriteString(m.help.ShortHelpView(m.keys.inputHelp()))
		b.WriteString("\n")
		return
	}
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
