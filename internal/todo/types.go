package todo

import (
	"strings"

	"github.com/google/uuid"
)

// Task is a single to-do entry.
type Task struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// List is an ordered sequence of tasks. Order is display and storage order.
type List struct {
	Tasks []Task
}

// NewID returns a fresh task ID.
func NewID() string {
	return uuid.NewString()
}

// ValidText reports whether text is acceptable for a new or edited task.
func ValidText(text string) bool {
	return strings.TrimSpace(text) != ""
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.Tasks)
}

// Clone returns a deep copy of the list.
func (l *List) Clone() *List {
	tasks := make([]Task, len(l.Tasks))
	copy(tasks, l.Tasks)
	return &List{Tasks: tasks}
}

// Index returns the position of the task with the given ID, or -1.
func (l *List) Index(id string) int {
	for i := range l.Tasks {
		if l.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the task with the given ID, or nil if not found.
func (l *List) Get(id string) *Task {
	if i := l.Index(id); i >= 0 {
		return &l.Tasks[i]
	}
	return nil
}

// IDAt returns the ID at a display position.
func (l *List) IDAt(index int) (string, bool) {
	if index < 0 || index >= len(l.Tasks) {
		return "", false
	}
	return l.Tasks[index].ID, true
}

// Completed returns the number of completed tasks.
func (l *List) Completed() int {
	n := 0
	for _, t := range l.Tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// Add appends a new incomplete task. Text is stored as given; whitespace-only
// text is rejected.
func (l *List) Add(text string) (Task, bool) {
	if !ValidText(text) {
		return Task{}, false
	}
	task := Task{ID: NewID(), Text: text}
	l.Tasks = append(l.Tasks, task)
	return task, true
}

// Remove deletes the task with the given ID. Later tasks shift down by one.
func (l *List) Remove(id string) bool {
	i := l.Index(id)
	if i < 0 {
		return false
	}
	l.Tasks = append(l.Tasks[:i], l.Tasks[i+1:]...)
	return true
}

// SetText replaces the text of a task, keeping its completion and position.
func (l *List) SetText(id, text string) bool {
	if !ValidText(text) {
		return false
	}
	t := l.Get(id)
	if t == nil {
		return false
	}
	t.Text = text
	return true
}

// Toggle flips the completion flag of a task.
func (l *List) Toggle(id string) bool {
	t := l.Get(id)
	if t == nil {
		return false
	}
	t.Completed = !t.Completed
	return true
}

// MoveUp swaps a task with its predecessor. It is a no-op at the top.
func (l *List) MoveUp(id string) bool {
	i := l.Index(id)
	if i <= 0 {
		return false
	}
	l.Tasks[i-1], l.Tasks[i] = l.Tasks[i], l.Tasks[i-1]
	return true
}

// MoveDown swaps a task with its successor. It is a no-op at the bottom.
func (l *List) MoveDown(id string) bool {
	i := l.Index(id)
	if i < 0 || i >= len(l.Tasks)-1 {
		return false
	}
	l.Tasks[i+1], l.Tasks[i] = l.Tasks[i], l.Tasks[i+1]
	return true
}

// Clear removes every task.
func (l *List) Clear() bool {
	if len(l.Tasks) == 0 {
		return false
	}
	l.Tasks = nil
	return true
}

// ensureIDs assigns IDs to tasks that have none and replaces duplicates. It
// reports whether any ID changed.
func (l *List) ensureIDs() bool {
	changed := false
	seen := make(map[string]bool, len(l.Tasks))
	for i := range l.Tasks {
		id := l.Tasks[i].ID
		if id == "" || seen[id] {
			id = NewID()
			l.Tasks[i].ID = id
			changed = true
		}
		seen[id] = true
	}
	return changed
}
