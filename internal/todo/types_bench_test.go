package todo

import (
	"fmt"
	"testing"
)

// BenchmarkDecode benchmarks decoding and validating a stored value.
func BenchmarkDecode(b *testing.B) {
	data := []byte(`[
  {"id": "a", "text": "Task 1", "completed": false},
  {"id": "b", "text": "Task 2", "completed": true},
  {"id": "c", "text": "Task 3", "completed": false}
]`)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Decode(data, ValidationOptions{}); err != nil {
			b.Fatalf("Decode failed: %v", err)
		}
	}
}

// BenchmarkEncodeLarge benchmarks encoding a list with 100 tasks.
func BenchmarkEncodeLarge(b *testing.B) {
	l := &List{}
	for i := 1; i <= 100; i++ {
		l.Add(fmt.Sprintf("Task %d", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Encode(l); err != nil {
			b.Fatalf("Encode failed: %v", err)
		}
	}
}

// BenchmarkMoveDown benchmarks walking a task from top to bottom.
func BenchmarkMoveDown(b *testing.B) {
	l := &List{}
	for i := 1; i <= 100; i++ {
		l.Add(fmt.Sprintf("Task %d", i))
	}
	id := l.Tasks[0].ID

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !l.MoveDown(id) {
			l.MoveUp(id)
		}
	}
}
