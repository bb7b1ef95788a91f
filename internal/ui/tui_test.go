package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/nibzard/tasklist-go/internal/storage"
	"github.com/nibzard/tasklist-go/internal/widget"
)

func newTestModel(t *testing.T, texts ...string) (*tuiModel, *storage.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	w := widget.New(store, widget.DefaultKey)
	w.Load(ctx)
	for _, text := range texts {
		if err := w.AddTask(ctx, text); err != nil {
			t.Fatalf("AddTask(%q): %v", text, err)
		}
	}
	return newTUIModel(ctx, w, WithLocation("memory")), store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *tuiModel, msgs ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func typeText(m *tuiModel, text string) {
	for _, r := range text {
		press(m, runes(string(r)))
	}
}

type row struct {
	Text      string
	Completed bool
}

func rows(m *tuiModel) []row {
	var out []row
	for _, t := range m.widget.Tasks() {
		out = append(out, row{t.Text, t.Completed})
	}
	return out
}

func TestAddTaskThroughInput(t *testing.T) {
	m, store := newTestModel(t, "Buy milk")

	press(m, runes("a"))
	if m.mode != modeAdd {
		t.Fatalf("expected add mode, got %v", m.mode)
	}
	typeText(m, "Wash car")
	if m.widget.NewText() != "Wash car" {
		t.Errorf("NewText: got %q", m.widget.NewText())
	}

	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	want := []row{{"Buy milk", false}, {"Wash car", false}}
	if diff := cmp.Diff(want, rows(m)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if m.input.Value() != "" || m.widget.NewText() != "" {
		t.Errorf("input should be cleared, got %q", m.input.Value())
	}
	if m.cursor != 1 {
		t.Errorf("cursor should follow new task, got %d", m.cursor)
	}
	if m.mode != modeAdd {
		t.Error("add mode should stay open for the next task")
	}
	if store.Writes() != 2 {
		t.Errorf("Writes: got %d, want 2", store.Writes())
	}

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeBrowse {
		t.Error("esc should leave add mode")
	}
}

func TestAddBlankKeepsInput(t *testing.T) {
	m, store := newTestModel(t)
	writes := store.Writes()

	press(m, runes("a"))
	typeText(m, "   ")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.widget.Len() != 0 {
		t.Errorf("blank text should not add, Len = %d", m.widget.Len())
	}
	if m.input.Value() != "   " {
		t.Errorf("input should keep blank text, got %q", m.input.Value())
	}
	if store.Writes() != writes {
		t.Error("blank add should not write")
	}
}

func TestTypingDoesNotTriggerBindings(t *testing.T) {
	m, _ := newTestModel(t, "one")

	press(m, runes("a"))
	typeText(m, "qdx")

	if m.widget.Len() != 1 {
		t.Errorf("typing should not delete, Len = %d", m.widget.Len())
	}
	if m.input.Value() != "qdx" {
		t.Errorf("input: got %q", m.input.Value())
	}
}

func TestCursorAndToggle(t *testing.T) {
	m, _ := newTestModel(t, "a", "b", "c")

	press(m, runes("j"), runes("j"), runes("j"))
	if m.cursor != 2 {
		t.Errorf("cursor should stop at bottom, got %d", m.cursor)
	}
	press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 1 {
		t.Errorf("cursor: got %d, want 1", m.cursor)
	}

	press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	want := []row{{"a", false}, {"b", true}, {"c", false}}
	if diff := cmp.Diff(want, rows(m)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	press(m, runes("x"))
	if rows(m)[1].Completed {
		t.Error("x should toggle back")
	}
}

func TestMoveKeepsCursorOnTask(t *testing.T) {
	m, _ := newTestModel(t, "a", "b", "c")

	press(m, runes("J"))
	want := []row{{"b", false}, {"a", false}, {"c", false}}
	if diff := cmp.Diff(want, rows(m)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if m.cursor != 1 {
		t.Errorf("cursor should follow moved task, got %d", m.cursor)
	}

	press(m, tea.KeyMsg{Type: tea.KeyShiftUp}, tea.KeyMsg{Type: tea.KeyShiftUp})
	want = []row{{"a", false}, {"b", false}, {"c", false}}
	if diff := cmp.Diff(want, rows(m)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if m.cursor != 0 {
		t.Errorf("cursor: got %d, want 0", m.cursor)
	}
}

func TestDeleteClampsCursor(t *testing.T) {
	m, _ := newTestModel(t, "a", "b")

	press(m, runes("j"), runes("d"))
	if diff := cmp.Diff([]row{{"a", false}}, rows(m)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if m.cursor != 0 {
		t.Errorf("cursor: got %d, want 0", m.cursor)
	}

	press(m, runes("d"), runes("d"))
	if m.widget.Len() != 0 || m.cursor != 0 {
		t.Errorf("expected empty list with cursor 0, got Len=%d cursor=%d", m.widget.Len(), m.cursor)
	}
}

func TestEditSaveAndCancel(t *testing.T) {
	m, _ := newTestModel(t, "a", "b")

	press(m, runes("j"), runes("e"))
	if m.mode != modeEdit || m.input.Value() != "b" {
		t.Fatalf("expected edit mode seeded with b, got mode=%v value=%q", m.mode, m.input.Value())
	}

	typeText(m, "ee")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if diff := cmp.Diff([]row{{"a", false}, {"bee", false}}, rows(m)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if m.mode != modeBrowse {
		t.Error("save should leave edit mode")
	}

	press(m, runes("e"))
	typeText(m, "zzz")
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if diff := cmp.Diff([]row{{"a", false}, {"bee", false}}, rows(m)); diff != "" {
		t.Errorf("cancel changed the list (-want +got):\n%s", diff)
	}
	if _, editing := m.widget.Editing(); editing {
		t.Error("esc should cancel the edit")
	}
}

func TestEditBlankStaysOpen(t *testing.T) {
	m, _ := newTestModel(t, "a")

	press(m, runes("e"), tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != modeEdit {
		t.Error("blank save should keep edit mode")
	}
	if diff := cmp.Diff([]row{{"a", false}}, rows(m)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}

	press(m, runes("a"))
	cmd = press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit from input mode")
	}
}

type failingStore struct {
	*storage.MemoryStore
}

func (f failingStore) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("read-only file system")
}

func TestStatusLineShowsSaveError(t *testing.T) {
	ctx := context.Background()
	w := widget.New(failingStore{storage.NewMemoryStore()}, widget.DefaultKey)
	w.Load(ctx)
	m := newTUIModel(ctx, w)

	press(m, runes("a"))
	typeText(m, "a")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if !strings.Contains(m.status, "read-only file system") {
		t.Errorf("status: got %q", m.status)
	}
	if !strings.Contains(m.View(), "read-only file system") {
		t.Error("view should show the error")
	}

	press(m, tea.KeyMsg{Type: tea.KeyEsc}, runes("j"))
	if m.status != "" {
		t.Errorf("status should clear on next key, got %q", m.status)
	}
}

func TestView(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		m, _ := newTestModel(t)
		view := m.View()
		if !strings.Contains(view, "No tasks yet") {
			t.Errorf("expected empty hint, got:\n%s", view)
		}
		if !strings.Contains(view, "0 done of 0") {
			t.Errorf("expected counts, got:\n%s", view)
		}
	})

	t.Run("rows and counts", func(t *testing.T) {
		m, _ := newTestModel(t, "Buy milk", "Wash car")
		press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		view := m.View()

		for _, want := range []string{"[x]", "[ ]", "Buy milk", "Wash car", "1 done of 2", "memory", "› "} {
			if !strings.Contains(view, want) {
				t.Errorf("view missing %q:\n%s", want, view)
			}
		}
		if strings.Index(view, "Buy milk") > strings.Index(view, "Wash car") {
			t.Error("rows out of order")
		}
	})

	t.Run("add mode shows input", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, runes("a"))
		if !strings.Contains(m.View(), "New task:") {
			t.Errorf("expected input prompt:\n%s", m.View())
		}
	})

	t.Run("help toggles full view", func(t *testing.T) {
		m, _ := newTestModel(t)
		short := m.View()
		press(m, runes("?"))
		full := m.View()
		if !strings.Contains(full, "move task up") || strings.Contains(short, "move task up") {
			t.Error("? should expand help")
		}
	})
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer is not a TTY")
	}
}
