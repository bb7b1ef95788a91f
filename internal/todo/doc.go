// Package todo models the ordered task list and its stored value.
//
// The stored value is a JSON array in display order:
//
//	[
//	  {
//	    "id": "0b6c5e0e-8f1c-4a8a-9d59-2f7b7f3c2a10",
//	    "text": "Buy milk",
//	    "completed": false
//	  }
//	]
//
// # Identity
//
// Every task carries a stable ID assigned when it is created. Values written
// before IDs existed (objects with only text and completed) are accepted and
// get fresh IDs on decode. Display position is derived from the list order
// and is never stored.
//
// # Validation
//
// Decoding validates the value before use:
//
// 1. JSON Schema validation (draft 2020-12):
//   - The embedded tasks.schema.json by default, or a schema file when
//     ValidationOptions.SchemaPath is set
//
// 2. Minimal fallback validation (when the schema cannot be compiled):
//   - Array of objects
//   - "text" is a string, "completed" is a boolean, "id" if present is a string
//
// Text emptiness is not checked on decode. Non-empty text is enforced only
// when a task is created or edited.
//
// # File Format
//
// Encode writes:
//   - 2-space indentation
//   - Trailing newline
//   - Fields in id, text, completed order
package todo
