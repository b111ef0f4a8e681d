package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

var (
	// ErrConfigNotFound is returned when the file named by -config does not exist.
	ErrConfigNotFound = errors.New("config file not found")
	// ErrInvalidConfig wraps every problem Validate finds.
	ErrInvalidConfig = errors.New("invalid config")
)

// Load builds the effective configuration: defaults, then the config file,
// then command-line flags. A file given with -config must exist; otherwise
// the search locations are tried and a missing file just means defaults.
func Load() (*Config, error) {
	cfg := Default()

	path, explicit := ConfigPath(), true
	if path == "" {
		path, explicit = findConfigFile(), false
	}

	if path != "" {
		err := loadFromFile(cfg, path)
		switch {
		case explicit && errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		case err != nil:
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
		cfg.Source = path
	}

	if err := applyFlags(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings no command can work with. All problems are
// returned together.
func (c *Config) Validate() error {
	var errs error
	if c.Output.OBJ == "" {
		errs = multierr.Append(errs, errors.New("output.obj is empty"))
	}
	if c.Output.Image == "" {
		errs = multierr.Append(errs, errors.New("output.image is empty"))
	}
	if c.Preview.Size <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("preview.size must be positive, got %d", c.Preview.Size))
	}
	if c.Batch.Count < 0 {
		errs = multierr.Append(errs, fmt.Errorf("batch.count must not be negative, got %d", c.Batch.Count))
	}
	if c.Batch.Workers < 0 {
		errs = multierr.Append(errs, fmt.Errorf("batch.workers must not be negative, got %d", c.Batch.Workers))
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errs)
	}
	return nil
}

// findConfigFile returns the first existing file among ./treegen.yaml and
// ConfigDir()/treegen.yaml, or "".
func findConfigFile() string {
	candidates := []string{
		FileName,
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "EzTree")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "EzTree")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "eztree")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "eztree")
	}
}

// loadFromFile merges a YAML file over cfg. Per-level tables merge level by
// level, so a file that sets only children[0] keeps the default for the
// other levels. Unknown keys are rejected so a misspelt setting is not
// silently ignored. An empty file changes nothing.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
