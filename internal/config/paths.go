package config

import (
	"os"
	"path/filepath"
	"strings"
)

// resolvePath expands environment variables and a leading ~ in p, then
// makes the result absolute against root. An empty p stays empty so that
// optional settings such as schema_file remain unset.
func resolvePath(p, root string) string {
	if p == "" {
		return ""
	}
	p = expandHome(os.ExpandEnv(p))
	if filepath.IsAbs(p) || root == "" {
		return p
	}
	return filepath.Join(root, p)
}

// expandHome replaces "~" or a "~/" prefix with the user's home directory.
// The path is returned unchanged when the home directory is unknown.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
