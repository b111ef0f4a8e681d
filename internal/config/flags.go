package config

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/Faultbox/eztree/pkg/tree"
)

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagSeed   = flag.String("seed", "", "Random seed")
	flagType   = flag.String("type", "", "Tree type: deciduous or evergreen")
	flagLevels = flag.Int("levels", -1, "Branch levels (0-4)")
	flagLeaves = flag.Int("leaves", -1, "Leaves per terminal branch")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after the global flags: the command and
// its own flags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != "" {
		seed, err := strconv.ParseInt(*flagSeed, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid -seed %q: %w", *flagSeed, err)
		}
		cfg.Tree.Seed = seed
	}
	if *flagType != "" {
		t, err := tree.ParseTreeType(*flagType)
		if err != nil {
			return fmt.Errorf("invalid -type: %w", err)
		}
		cfg.Tree.Type = t
	}
	if *flagLevels >= 0 {
		cfg.Tree.Branch.Levels = *flagLevels
	}
	if *flagLeaves >= 0 {
		cfg.Tree.Leaves.Count = *flagLeaves
	}
	return nil
}
