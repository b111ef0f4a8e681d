// Package config handles treegen configuration loading and management.
package config

import "github.com/Faultbox/eztree/pkg/tree"

// FileName is the config file name looked up in the working directory and
// in ConfigDir.
const FileName = "treegen.yaml"

// Config holds all treegen settings.
type Config struct {
	Tree    tree.Options  `yaml:"tree"`
	Output  OutputConfig  `yaml:"output"`
	Preview PreviewConfig `yaml:"preview"`
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`

	// Source is the file the settings were read from, empty for defaults.
	Source string `yaml:"-"`
}

// OutputConfig holds output file paths.
type OutputConfig struct {
	Name  string `yaml:"name"`  // OBJ object name prefix
	OBJ   string `yaml:"obj"`   // Mesh file
	MTL   string `yaml:"mtl"`   // Material library; empty puts it next to the mesh
	Image string `yaml:"image"` // Preview image, .png or .bmp
}

// PreviewConfig holds preview camera settings.
type PreviewConfig struct {
	Size  int     `yaml:"size"`  // Square image edge in pixels
	Yaw   float64 `yaml:"yaw"`   // Degrees around the trunk axis
	Pitch float64 `yaml:"pitch"` // Degrees above the horizon
}

// BatchConfig holds settings for multi-seed runs.
type BatchConfig struct {
	Count   int    `yaml:"count"`
	Dir     string `yaml:"dir"`
	Workers int    `yaml:"workers"` // 0 uses one worker per CPU
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Tree: tree.DefaultOptions(),
		Output: OutputConfig{
			Name:  "tree",
			OBJ:   "tree.obj",
			MTL:   "",
			Image: "tree.png",
		},
		Preview: PreviewConfig{
			Size:  512,
			Yaw:   30,
			Pitch: 15,
		},
		Batch: BatchConfig{
			Count:   8,
			Dir:     "forest",
			Workers: 0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
