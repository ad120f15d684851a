// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable Load reads the config path
// from.
const EnvironmentVariable = "NOTEPAD_CONFIG"

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Drag modes for the terminal UI.
const (
	// DragPointer moves the dragged task to whichever row is under
	// the mouse.
	DragPointer = "pointer"

	// DragDisplacement moves the dragged task one position each time
	// the mouse travels touch_threshold rows from where the last step
	// happened.
	DragDisplacement = "displacement"
)

var (
	backends     = []string{BackendSQLite, BackendFile, BackendMemory}
	dragModes    = []string{DragPointer, DragDisplacement}
	matchModes   = []string{"substring", "fuzzy"}
	formats      = []string{"json", "cbor"}
	compressions = []string{"none", "lz4", "zstd"}
	keyPattern   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)
)

// Config is the notepad configuration.
type Config struct {
	// Storage selects where the task list is persisted.
	Storage StorageConfig `yaml:"storage"`

	// Reorder tunes drag gestures.
	Reorder ReorderConfig `yaml:"reorder"`

	// View configures search.
	View ViewConfig `yaml:"view"`

	// Export sets the defaults of the export command.
	Export ExportConfig `yaml:"export"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	// Backend is sqlite, file, or memory.
	Backend string `yaml:"backend"`

	// Path is the database file (sqlite) or directory (file). Empty
	// means a default under the user's data directory. ${HOME},
	// ${XDG_DATA_HOME}, ${NOTEPAD_DATA} and ${VAR:-default} are
	// expanded.
	Path string `yaml:"path"`

	// Key is the storage key the list is kept under.
	Key string `yaml:"key"`
}

// ReorderConfig tunes drag gestures.
type ReorderConfig struct {
	// TouchThreshold is the travel per step of a displacement drag, in
	// touch units. The terminal UI counts 16 units per row of mouse
	// travel.
	TouchThreshold float64 `yaml:"touch_threshold"`

	// AbortAfter abandons a gesture that has seen no events for this
	// long. Negative disables the timeout.
	AbortAfter time.Duration `yaml:"abort_after"`

	// DragMode is pointer or displacement.
	DragMode string `yaml:"drag_mode"`
}

// ViewConfig configures search.
type ViewConfig struct {
	// Match is substring or fuzzy.
	Match string `yaml:"match"`
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	// Format is json or cbor.
	Format string `yaml:"format"`

	// Compression is none, lz4, or zstd.
	Compression string `yaml:"compression"`
}

// Default returns the built-in configuration. The notepad runs with no
// config file at all, so unlike a service's defaults these are the
// real production values.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Key:     "todo-list",
		},
		Reorder: ReorderConfig{
			TouchThreshold: 30,
			AbortAfter:     30 * time.Second,
			DragMode:       DragPointer,
		},
		View: ViewConfig{
			Match: "substring",
		},
		Export: ExportConfig{
			Format:      "json",
			Compression: "none",
		},
	}
}

// Load reads the file named by NOTEPAD_CONFIG, or returns the defaults
// when the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		config := Default()
		config.expandVariables()
		return config, nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from path over the defaults. Unknown
// keys are an error, so a misspelled option is reported instead of
// silently ignored.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	config := Default()
	if err := config.decode(data); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	config.expandVariables()
	return config, nil
}

func (c *Config) decode(data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// DataDirectory returns the directory the notepad keeps its data in by
// default: $XDG_DATA_HOME/notepad, falling back to
// ~/.local/share/notepad.
func DataDirectory() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "notepad")
	}
	homeDirectory, _ := os.UserHomeDir()
	return filepath.Join(homeDirectory, ".local", "share", "notepad")
}

// StoragePath returns Storage.Path, or the backend's default location
// when it is empty. The memory backend has no path.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" || c.Storage.Backend == BackendMemory {
		return c.Storage.Path
	}
	if c.Storage.Backend == BackendFile {
		return DataDirectory()
	}
	return filepath.Join(DataDirectory(), "notepad.db")
}

// expandVariables expands ${VAR} and ${VAR:-default} in path fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME":         os.Getenv("HOME"),
		"NOTEPAD_DATA": DataDirectory(),
	}
	c.Storage.Path = expandVars(c.Storage.Path, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(backends, c.Storage.Backend) {
		errs = append(errs, fmt.Errorf("storage.backend must be one of %v, got %q", backends, c.Storage.Backend))
	}
	if !keyPattern.MatchString(c.Storage.Key) {
		errs = append(errs, fmt.Errorf("storage.key %q must match %s", c.Storage.Key, keyPattern))
	}

	if c.Reorder.TouchThreshold <= 0 {
		errs = append(errs, fmt.Errorf("reorder.touch_threshold must be positive, got %v", c.Reorder.TouchThreshold))
	}
	if !slices.Contains(dragModes, c.Reorder.DragMode) {
		errs = append(errs, fmt.Errorf("reorder.drag_mode must be one of %v, got %q", dragModes, c.Reorder.DragMode))
	}

	if !slices.Contains(matchModes, c.View.Match) {
		errs = append(errs, fmt.Errorf("view.match must be one of %v, got %q", matchModes, c.View.Match))
	}

	if !slices.Contains(formats, c.Export.Format) {
		errs = append(errs, fmt.Errorf("export.format must be one of %v, got %q", formats, c.Export.Format))
	}
	if !slices.Contains(compressions, c.Export.Compression) {
		errs = append(errs, fmt.Errorf("export.compression must be one of %v, got %q", compressions, c.Export.Compression))
	}

	return errors.Join(errs...)
}
