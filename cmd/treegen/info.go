package main

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Faultbox/eztree/internal/config"
	"github.com/Faultbox/eztree/internal/logger"
	"github.com/Faultbox/eztree/pkg/formats"
	"github.com/Faultbox/eztree/pkg/tree"
)

func cmdInfo(cfg *config.Config, args []string) error {
	p := message.NewPrinter(language.English)
	if len(args) > 0 {
		return printOBJInfo(p, args[0])
	}

	t := tree.NewGenerator(cfg.Tree, logger.Named("tree")).Generate()
	printTreeInfo(p, t)
	return nil
}

func printTreeInfo(p *message.Printer, t *tree.Tree) {
	opts := t.Options
	title := cases.Title(language.English)

	p.Printf("Tree:     %s, seed %d, %d levels\n", title.String(string(opts.Type)), opts.Seed, opts.Branch.Levels)

	levels := make([]string, 0, opts.Branch.Levels+1)
	for level := 0; level <= opts.Branch.Levels; level++ {
		levels = append(levels, p.Sprintf("%d", t.Stats.BranchesByLevel[level]))
	}
	p.Printf("Branches: %d (per level: %s)\n", t.Stats.Branches, strings.Join(levels, " / "))
	p.Printf("Sections: %d\n", t.Stats.Sections)
	p.Printf("Leaves:   %d (%s billboard)\n", t.Stats.Leaves, opts.Leaves.Billboard)
	fmt.Println()

	p.Printf("Branch mesh: %d vertices, %d faces\n", t.Branches.VertexCount(), t.Branches.FaceCount())
	p.Printf("Leaf mesh:   %d vertices, %d faces\n", t.Leaves.VertexCount(), t.Leaves.FaceCount())

	size := t.Bounds().Size()
	p.Printf("Size:        %.2f x %.2f x %.2f\n", size.X, size.Y, size.Z)
}

func printOBJInfo(p *message.Printer, path string) error {
	obj, err := formats.ParseOBJFile(path)
	if err != nil {
		return err
	}

	p.Printf("File:     %s\n", path)
	if obj.MaterialLib != "" {
		p.Printf("Materials: %s\n", obj.MaterialLib)
	}
	p.Printf("Vertices: %d\n", len(obj.Vertices))
	p.Printf("Faces:    %d\n", obj.GetTotalFaceCount())
	fmt.Println()
	fmt.Println("Objects:")
	for _, o := range obj.Objects {
		name := o.Name
		if name == "" {
			name = "(unnamed)"
		}
		p.Printf("  %-24s %-8s %d vertices, %d faces\n", name, o.Material, o.Vertices, len(o.Faces))
	}
	return nil
}
