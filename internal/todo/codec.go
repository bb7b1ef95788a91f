package todo

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Encode serializes the list with 2-space indentation and a trailing newline.
func Encode(l *List) ([]byte, error) {
	tasks := l.Tasks
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal task list: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')
	return data, nil
}

// Decode parses and validates a stored value. Tasks without an ID, or with a
// duplicate ID, are given a fresh one; assigned reports whether that happened,
// in which case the value should be written back to keep the IDs stable.
func Decode(data []byte, opts ValidationOptions) (l *List, assigned bool, err error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false, fmt.Errorf("parse task list: %w", err)
	}

	result := validateValue(raw, opts)
	if !result.Valid {
		return nil, false, fmt.Errorf("invalid task list: %w", errors.Join(result.Errors...))
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, false, fmt.Errorf("parse task list: %w", err)
	}

	l = &List{Tasks: tasks}
	assigned = l.ensureIDs()
	return l, assigned, nil
}
