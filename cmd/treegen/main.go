// treegen is a CLI for growing procedural trees and exporting them as OBJ
// meshes and preview images.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/eztree/internal/batch"
	"github.com/Faultbox/eztree/internal/config"
	"github.com/Faultbox/eztree/internal/logger"
	"github.com/Faultbox/eztree/internal/preview"
	"github.com/Faultbox/eztree/pkg/tree"
)

func main() {
	// Global flags come before the command
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "help", "-h", "--help":
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Source != "" {
		logger.Debug("config loaded", zap.String("path", cfg.Source))
	}
	logger.Sugar.Debugf("Config: %+v", cfg)

	switch command {
	case "generate", "gen":
		err = cmdGenerate(cfg, args)
	case "preview":
		err = cmdPreview(cfg, args)
	case "info":
		err = cmdInfo(cfg, args)
	case "batch":
		err = cmdBatch(cfg, args)
	case "init":
		err = cmdInit(cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		logger.Sync()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`treegen - procedural tree generator

Usage:
  treegen [global options] <command> [options]

Global options:
  -config <file>   Config file (default: ./treegen.yaml, then the user config dir)
  -seed <n>        Random seed
  -type <name>     deciduous or evergreen
  -levels <n>      Branch levels (0-4)
  -leaves <n>      Leaves per terminal branch
  -debug           Debug logging

Commands:
  generate [-o file.obj] [-mtl file.mtl] [-name id]   Export the tree as OBJ + MTL
  preview [-o file.png|.bmp] [-size N] [-yaw deg] [-pitch deg] [-bounds]
                                                      Render a shaded preview
  info [file.obj]                                     Show tree or OBJ statistics
  batch [-n N] [-dir out] [-workers W]                Export N consecutive seeds
  init [-force] [path]                                Write the effective config

Examples:
  treegen generate -o oak.obj
  treegen -type evergreen -seed 7 preview -o pine.png -yaw 45
  treegen -seed 100 batch -n 16 -dir forest
  treegen -levels 2 init my-tree.yaml`)
}

func cmdGenerate(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	out := fs.String("o", cfg.Output.OBJ, "Output OBJ file")
	mtl := fs.String("mtl", cfg.Output.MTL, "Output MTL file (default: next to the OBJ)")
	name := fs.String("name", cfg.Output.Name, "Object name prefix")
	fs.Parse(args)

	t := tree.NewGenerator(cfg.Tree, logger.Named("tree")).Generate()

	mtlPath := *mtl
	if mtlPath == "" {
		mtlPath = siblingPath(*out, ".mtl")
	}
	if err := exportTree(t, *out, mtlPath, *name); err != nil {
		return err
	}
	if err := writeMaterials(mtlPath, t.Options); err != nil {
		return err
	}

	logger.Info("tree exported",
		zap.String("obj", *out),
		zap.String("mtl", mtlPath),
		zap.Int64("seed", t.Options.Seed),
		zap.Int("branches", t.Stats.Branches),
		zap.Int("leaves", t.Stats.Leaves))
	fmt.Printf("Wrote %s and %s\n", *out, mtlPath)
	return nil
}

func cmdPreview(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	out := fs.String("o", cfg.Output.Image, "Output image (.png or .bmp)")
	size := fs.Int("size", cfg.Preview.Size, "Image size in pixels")
	yaw := fs.Float64("yaw", cfg.Preview.Yaw, "Camera yaw in degrees")
	pitch := fs.Float64("pitch", cfg.Preview.Pitch, "Camera pitch in degrees")
	bounds := fs.Bool("bounds", false, "Overlay the bounding box")
	fs.Parse(args)

	// Fail on a bad extension before spending time on the render
	if _, err := preview.FormatFromPath(*out); err != nil {
		return err
	}

	t := tree.NewGenerator(cfg.Tree, logger.Named("tree")).Generate()

	opts := preview.DefaultOptions()
	opts.Size = *size
	opts.Yaw = *yaw
	opts.Pitch = *pitch
	opts.ShowBounds = *bounds

	dc, err := preview.Render(t, opts)
	if err != nil {
		return err
	}
	defer dc.Close()

	if err := preview.Save(*out, dc); err != nil {
		return err
	}

	logger.Info("preview rendered", zap.String("path", *out), zap.Int("size", *size))
	fmt.Printf("Wrote %s\n", *out)
	return nil
}

func cmdBatch(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	count := fs.Int("n", cfg.Batch.Count, "Number of trees")
	dir := fs.String("dir", cfg.Batch.Dir, "Output directory")
	workers := fs.Int("workers", cfg.Batch.Workers, "Worker goroutines (0 = one per CPU)")
	fs.Parse(args)

	if err := os.MkdirAll(*dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	// All seeds share one material library
	mtlPath := filepath.Join(*dir, "tree.mtl")
	if err := writeMaterials(mtlPath, cfg.Tree); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := logger.Named("batch")
	err := batch.Run(ctx, cfg.Tree, *count, *workers, log, func(seed int64, t *tree.Tree) error {
		path := filepath.Join(*dir, fmt.Sprintf("tree_%d.obj", seed))
		if err := exportTree(t, path, mtlPath, fmt.Sprintf("%s_%d", cfg.Output.Name, seed)); err != nil {
			return err
		}
		log.Debug("tree exported", zap.Int64("seed", seed), zap.String("path", path))
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return errors.New("interrupted")
	}
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d trees to %s\n", *count, *dir)
	return nil
}

func cmdInit(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "Overwrite an existing file")
	fs.Parse(args)

	path := config.FileName
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", path)
	}

	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

// siblingPath swaps the extension of path for ext.
func siblingPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
