package todo

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var embeddedSchema string

const embeddedSchemaURL = "https://github.com/nibzard/tasklist-go/tasks.schema.json"

var (
	embeddedOnce     sync.Once
	embeddedCompiled *jsonschema.Schema
	embeddedErr      error
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath is the path to a JSON Schema file.
	// If empty, the embedded schema is used.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// Validate checks a stored value without decoding it into a list.
func Validate(data []byte, opts ValidationOptions) *ValidationResult {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return &ValidationResult{
			Valid:  false,
			Errors: []error{&ValidationError{Err: fmt.Errorf("invalid JSON: %w", err)}},
		}
	}
	return validateValue(raw, opts)
}

func validateValue(raw any, opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	schema, warning := loadSchema(opts.SchemaPath)
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}
	if schema == nil {
		result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")
		validateMinimal(raw, result)
		return result
	}

	result.UsedSchema = true
	if err := schema.Validate(raw); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
	return result
}

// loadSchema returns the compiled schema, or nil and a warning when it is
// unavailable.
func loadSchema(schemaPath string) (*jsonschema.Schema, string) {
	if schemaPath == "" {
		embeddedOnce.Do(func() {
			compiler := jsonschema.NewCompiler()
			compiler.Draft = jsonschema.Draft2020
			if err := compiler.AddResource(embeddedSchemaURL, strings.NewReader(embeddedSchema)); err != nil {
				embeddedErr = err
				return
			}
			embeddedCompiled, embeddedErr = compiler.Compile(embeddedSchemaURL)
		})
		if embeddedErr != nil {
			return nil, fmt.Sprintf("invalid embedded schema: %v", embeddedErr)
		}
		return embeddedCompiled, ""
	}

	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, fmt.Sprintf("invalid schema path: %v", err)
	}

	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Sprintf("schema file not found: %s", absPath)
		}
		return nil, fmt.Sprintf("failed to read schema file: %v", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Sprintf("invalid schema file: %v", err)
	}
	return schema, ""
}

// validateMinimal performs structural checks without JSON Schema.
func validateMinimal(raw any, result *ValidationResult) {
	items, ok := raw.([]any)
	if !ok {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("expected array, got %s", typeName(raw)),
		})
		return
	}

	for i, item := range items {
		path := fmt.Sprintf("[%d]", i)
		if err := validateTaskMinimal(item, path); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, err)
		}
	}
}

func validateTaskMinimal(item any, path string) *ValidationError {
	obj, ok := item.(map[string]any)
	if !ok {
		return &ValidationError{
			Path: path,
			Err:  fmt.Errorf("expected object, got %s", typeName(item)),
		}
	}

	text, ok := obj["text"]
	if !ok {
		return &ValidationError{Path: path + ".text", Err: fmt.Errorf("missing required field")}
	}
	if _, ok := text.(string); !ok {
		return &ValidationError{Path: path + ".text", Err: fmt.Errorf("expected string, got %s", typeName(text))}
	}

	completed, ok := obj["completed"]
	if !ok {
		return &ValidationError{Path: path + ".completed", Err: fmt.Errorf("missing required field")}
	}
	if _, ok := completed.(bool); !ok {
		return &ValidationError{Path: path + ".completed", Err: fmt.Errorf("expected boolean, got %s", typeName(completed))}
	}

	if id, ok := obj["id"]; ok {
		if s, ok := id.(string); !ok || s == "" {
			return &ValidationError{Path: path + ".id", Err: fmt.Errorf("expected non-empty string")}
		}
	}

	return nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func appendSchemaErrors(result *ValidationResult, err error) {
	if err == nil {
		return
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}

	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath turns "/0/text" into "[0].text".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
