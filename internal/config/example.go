package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasklist configuration file
# Values can be overridden by TASKLIST_* environment variables or CLI flags

# Storage backend: file, sqlite, or memory
store = "file"

# Directory holding <key>.json files (file) or tasklist.db (sqlite).
# Relative paths resolve against the working directory.
data_dir = "~/.tasklist/data"

# Storage key for the task list
key = "tasks"

# Optional JSON schema used to validate the stored list on load
# schema_file = "tasks.schema.json"

# Log directory for interactive sessions (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.tasklist/logs"

# Logging
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
