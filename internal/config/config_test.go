package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

var envVars = []string{
	"TASKLIST_STORE",
	"TASKLIST_DATA_DIR",
	"TASKLIST_KEY",
	"TASKLIST_SCHEMA",
	"TASKLIST_LOG_DIR",
	"TASKLIST_LOG_LEVEL",
	"TASKLIST_LOG_FORMAT",
	"TASKLIST_LOG_TIMESTAMPS",
	"TASKLIST_LOG_CALLER",
}

// isolate points HOME and XDG_CONFIG_HOME at empty directories, clears
// TASKLIST_* variables, and changes into a fresh project directory.
func isolate(t *testing.T) (home, project string) {
	t.Helper()
	home = t.TempDir()
	project = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, v := range envVars {
		t.Setenv(v, "")
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(project); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home, project
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaults(t *testing.T) {
	home, project := isolate(t)

	cws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	if cfg.Store != DefaultStore {
		t.Errorf("Store: got %q, want %q", cfg.Store, DefaultStore)
	}
	if want := filepath.Join(home, ".tasklist", "data"); cfg.DataDir != want {
		t.Errorf("DataDir: got %q, want %q", cfg.DataDir, want)
	}
	if want := filepath.Join(home, ".tasklist", "logs"); cfg.LogDir != want {
		t.Errorf("LogDir: got %q, want %q", cfg.LogDir, want)
	}
	if cfg.Key != DefaultKey {
		t.Errorf("Key: got %q, want %q", cfg.Key, DefaultKey)
	}
	if cfg.SchemaFile != "" {
		t.Errorf("SchemaFile: got %q, want empty", cfg.SchemaFile)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("logging: got %s/%s, want info/text", cfg.LogLevel, cfg.LogFormat)
	}
	if resolved, _ := filepath.EvalSymlinks(cfg.ProjectRoot); resolved != mustEval(t, project) {
		t.Errorf("ProjectRoot: got %q, want %q", cfg.ProjectRoot, project)
	}
	for _, field := range Fields() {
		if cws.Sources[field] != SourceDefault {
			t.Errorf("source of %s: got %s, want default", field, cws.Sources[field])
		}
	}
	if cws.ConfigFile() != "" {
		t.Errorf("ConfigFile: got %q, want empty", cws.ConfigFile())
	}
}

func mustEval(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatal(err)
	}
	return resolved
}

func TestLoadPriority(t *testing.T) {
	home, project := isolate(t)

	writeFile(t, filepath.Join(home, ".tasklist", "tasklist.toml"), `
store = "sqlite"
key = "user-key"
log_level = "debug"
`)
	writeFile(t, filepath.Join(project, "tasklist.toml"), `
key = "project-key"
data_dir = "data"
`)
	t.Setenv("TASKLIST_LOG_LEVEL", "warn")
	t.Setenv("TASKLIST_LOG_TIMESTAMPS", "yes")

	cws, err := LoadWithSources(newFlagSet(), []string{"-log-format", "json", "ls"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	tests := []struct {
		field  string
		value  string
		source ConfigSource
	}{
		{"store", "sqlite", SourceUserFile},
		{"key", "project-key", SourceProjFile},
		{"data_dir", filepath.Join(cfg.ProjectRoot, "data"), SourceProjFile},
		{"log_level", "warn", SourceEnv},
		{"log_timestamps", "true", SourceEnv},
		{"log_format", "json", SourceFlag},
		{"log_caller", "false", SourceDefault},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := cfg.Value(tt.field); got != tt.value {
				t.Errorf("value: got %q, want %q", got, tt.value)
			}
			if got := cws.Sources[tt.field]; got != tt.source {
				t.Errorf("source: got %s, want %s", got, tt.source)
			}
		})
	}

	if !strings.HasSuffix(cws.ConfigFile(), "tasklist.toml") || cws.ConfigFile() != cws.ProjectFile {
		t.Errorf("ConfigFile: got %q, want project file", cws.ConfigFile())
	}
}

func TestFlagsLeaveSubcommandArgs(t *testing.T) {
	isolate(t)

	fs := newFlagSet()
	cfg, err := Load(fs, []string{"-store", "memory", "add", "Buy", "milk"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store != "memory" {
		t.Errorf("Store: got %q, want memory", cfg.Store)
	}
	if got := strings.Join(fs.Args(), " "); got != "add Buy milk" {
		t.Errorf("remaining args: got %q", got)
	}
}

func TestDotfileProjectConfig(t *testing.T) {
	_, project := isolate(t)
	writeFile(t, filepath.Join(project, ".tasklist.toml"), `key = "dot"`)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Key != "dot" {
		t.Errorf("Key: got %q, want dot", cfg.Key)
	}
}

func TestXDGUserConfig(t *testing.T) {
	home, _ := isolate(t)
	if osUserConfigDir() != filepath.Join(home, ".config") {
		t.Skip("XDG config dir not used on this platform")
	}
	writeFile(t, filepath.Join(home, ".config", "tasklist", "tasklist.toml"), `store = "memory"`)

	cws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	if cws.Config.Store != "memory" || cws.Sources["store"] != SourceUserFile {
		t.Errorf("store: got %q from %s", cws.Config.Store, cws.Sources["store"])
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		args    []string
		wantErr string
	}{
		{name: "bad toml", file: `store = `, wantErr: "project config file"},
		{name: "unknown key", file: `colour = "blue"`, wantErr: "unknown keys: colour"},
		{name: "bad store", args: []string{"-store", "redis"}, wantErr: `store "redis"`},
		{name: "empty key", args: []string{"-key", " "}, wantErr: "key is empty"},
		{name: "key with space", args: []string{"-key", "my list"}, wantErr: `invalid key: "my list"`},
		{name: "key with slash", file: `key = "../tasks"`, wantErr: "invalid key"},
		{name: "bad log level", args: []string{"-log-level", "loud"}, wantErr: "log_level"},
		{name: "bad log format", file: `log_format = "xml"`, wantErr: "log_format"},
		{name: "unknown flag", args: []string{"-nope"}, wantErr: "parsing flags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, project := isolate(t)
			if tt.file != "" {
				writeFile(t, filepath.Join(project, "tasklist.toml"), tt.file)
			}
			_, err := Load(newFlagSet(), tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestSchemaFileResolvesAgainstProjectRoot(t *testing.T) {
	isolate(t)
	t.Setenv("TASKLIST_SCHEMA", "schemas/tasks.json")

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(cfg.ProjectRoot, "schemas", "tasks.json"); cfg.SchemaFile != want {
		t.Errorf("SchemaFile: got %q, want %q", cfg.SchemaFile, want)
	}
}

func TestBoolFromString(t *testing.T) {
	tests := map[string]bool{
		"1":     true,
		"true":  true,
		"YES":   true,
		"on":    true,
		"0":     false,
		"false": false,
		"maybe": false,
	}
	for in, want := range tests {
		if got := boolFromString(in); got != want {
			t.Errorf("boolFromString(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	root := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TASKLIST_TEST_DIR", "/srv/tasks")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/data", filepath.Join(home, "data")},
		{"$TASKLIST_TEST_DIR/db", "/srv/tasks/db"},
		{"/abs/path", "/abs/path"},
		{"data", filepath.Join(root, "data")},
		{"./logs/../data", filepath.Join(root, "data")},
		{"~user/data", filepath.Join(root, "~user", "data")},
	}
	for _, tt := range tests {
		if got := resolvePath(tt.in, root); got != tt.want {
			t.Errorf("resolvePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	var cfg Config
	md, err := toml.Decode(ExampleConfig(), &cfg)
	if err != nil {
		t.Fatalf("example config does not decode: %v", err)
	}
	if len(md.Undecoded()) > 0 {
		t.Errorf("example config has unknown keys: %v", md.Undecoded())
	}
	if cfg.Store != DefaultStore || cfg.Key != DefaultKey {
		t.Errorf("example disagrees with defaults: %+v", cfg)
	}
}

func TestLogOptions(t *testing.T) {
	cfg := &Config{LogLevel: "debug", LogFormat: "json", LogCaller: true}
	opts := cfg.LogOptions()
	if opts.Level != log.DebugLevel || opts.Formatter != log.JSONFormatter || !opts.ReportCaller {
		t.Errorf("LogOptions: got %+v", opts)
	}
}
