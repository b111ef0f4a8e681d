package formats

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/eztree/pkg/tree"
)

// BarkTexture returns the texture file name for a bark type.
func BarkTexture(t tree.BarkType) string {
	return "bark_" + string(t) + ".png"
}

// LeafTexture returns the texture file name for a leaf type.
func LeafTexture(t tree.LeafType) string {
	return "leaf_" + string(t) + ".png"
}

// WriteMTL writes the bark and leaf materials. Textures are referenced by
// file name only. Leaves use their texture as an alpha cut-out map.
func WriteMTL(w io.Writer, bark tree.BarkOptions, leaves tree.LeafOptions) error {
	bw := bufio.NewWriter(w)

	r, g, b := bark.Tint.RGB()
	fmt.Fprintf(bw, "newmtl %s\n", BarkMaterial)
	fmt.Fprintf(bw, "Kd %.4f %.4f %.4f\n", r, g, b)
	fmt.Fprintf(bw, "Ks 0.0000 0.0000 0.0000\n")
	fmt.Fprintf(bw, "illum 1\n")
	if bark.Textured {
		fmt.Fprintf(bw, "map_Kd %s\n", BarkTexture(bark.Type))
	}

	r, g, b = leaves.Tint.RGB()
	fmt.Fprintf(bw, "\nnewmtl %s\n", LeafMaterial)
	fmt.Fprintf(bw, "Kd %.4f %.4f %.4f\n", r, g, b)
	fmt.Fprintf(bw, "Ks 0.0000 0.0000 0.0000\n")
	fmt.Fprintf(bw, "illum 1\n")
	// Cut-out threshold for hosts that read it; not part of the MTL standard.
	fmt.Fprintf(bw, "# alpha_test %.2f\n", leaves.AlphaTest)
	fmt.Fprintf(bw, "map_Kd %s\n", LeafTexture(leaves.Type))
	fmt.Fprintf(bw, "map_d %s\n", LeafTexture(leaves.Type))

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing MTL: %w", err)
	}
	return nil
}

// WriteMTLFile writes the materials of opts to path.
func WriteMTLFile(path string, opts tree.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating MTL file: %w", err)
	}
	if err := WriteMTL(f, opts.Bark, opts.Leaves); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
