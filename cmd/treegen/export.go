package main

import (
	"path/filepath"

	"github.com/Faultbox/eztree/pkg/formats"
	"github.com/Faultbox/eztree/pkg/tree"
)

// exportTree writes t as an OBJ that references the material library at
// mtlPath relative to the OBJ's directory.
func exportTree(t *tree.Tree, objPath, mtlPath, name string) error {
	lib, err := filepath.Rel(filepath.Dir(objPath), mtlPath)
	if err != nil {
		lib = filepath.Base(mtlPath)
	}
	return formats.WriteOBJFile(objPath, t, formats.OBJOptions{
		Name:        name,
		MaterialLib: filepath.ToSlash(lib),
	})
}

func writeMaterials(path string, opts tree.Options) error {
	return formats.WriteMTLFile(path, opts)
}
