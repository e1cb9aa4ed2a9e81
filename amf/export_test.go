// Copyright (c) 2020, Gilles Bouissac. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package amf_test

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/GillesBouissac/blender-amf/amf"
	"github.com/GillesBouissac/blender-amf/scene"
	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
)

// flakyMeshes fails conversion for one named object and delegates the
// rest to a static table.
type flakyMeshes struct {
	fail   string
	meshes amf.StaticMeshes
}

func (f *flakyMeshes) Mesh(obj *scene.Object, matrix *math32.Matrix4, applyModifiers bool) (*amf.Mesh, error) {
	if obj.Name == f.fail {
		return nil, errors.New("conversion failed")
	}
	return f.meshes.Mesh(obj, matrix, applyModifiers)
}

// readArchive opens the archive written by Export, checks it holds a
// single document entry under the archive base name and parses it.
func readArchive(t *testing.T, output string) *xmlquery.Node {
	t.Helper()
	zr, err := zip.OpenReader(output)
	assert.NoError(t, err)
	defer zr.Close()
	assert.Len(t, zr.File, 1)
	assert.Equal(t, filepath.Base(output), zr.File[0].Name)
	rc, err := zr.File[0].Open()
	assert.NoError(t, err)
	defer rc.Close()
	root, err := xmlquery.Parse(rc)
	assert.NoError(t, err)
	return root
}

func TestExportArchive(t *testing.T) {
	cube := &scene.Object{Name: "cube"}
	sc := &scene.Scene{Name: "Scene", Objects: []*scene.Object{cube}, Selected: []*scene.Object{cube}}
	cfg := &amf.Config{
		Output:   filepath.Join(t.TempDir(), "out.amf"),
		Unit:     amf.UnitMillimeter,
		Format:   amf.FormatStrict,
		Strategy: amf.SelectSelection,
		Grouping: scene.PolicyNone,
	}

	err := amf.Export(cfg, sc, amf.StaticMeshes{"cube": cubeMesh()})
	assert.NoError(t, err)

	root := readArchive(t, cfg.Output)
	assert.Len(t, query(t, root, "//object"), 1)
	assert.Equal(t, "millimeter", query(t, root, "//amf")[0].SelectAttr("unit"))
	assert.Len(t, query(t, root, "//object/mesh/vertices/vertex"), 8)
}

func TestExportNoOutput(t *testing.T) {
	sc := &scene.Scene{Name: "Scene"}
	err := amf.Export(&amf.Config{}, sc, amf.StaticMeshes{})
	assert.Error(t, err)
}

func TestExportSkipsFailingConversion(t *testing.T) {
	good := &scene.Object{Name: "good"}
	bad := &scene.Object{Name: "bad"}
	sc := &scene.Scene{
		Name:     "Scene",
		Objects:  []*scene.Object{good, bad},
		Selected: []*scene.Object{good, bad},
	}
	cfg := &amf.Config{
		Output:   filepath.Join(t.TempDir(), "out.amf"),
		Unit:     amf.UnitMeter,
		Format:   amf.FormatStrict,
		Strategy: amf.SelectSelection,
		Grouping: scene.PolicyNone,
	}
	meshes := &flakyMeshes{fail: "bad", meshes: amf.StaticMeshes{"good": cubeMesh(), "bad": cubeMesh()}}

	err := amf.Export(cfg, sc, meshes)
	assert.NoError(t, err)

	root := readArchive(t, cfg.Output)
	names := query(t, root, "//object/metadata[@type='name']")
	assert.Len(t, names, 1)
	assert.Equal(t, "good", names[0].InnerText())
}

func TestExportFailureLeavesNothing(t *testing.T) {
	cube := &scene.Object{Name: "cube"}
	sc := &scene.Scene{Name: "Scene", Objects: []*scene.Object{cube}, Selected: []*scene.Object{cube}}
	output := filepath.Join(t.TempDir(), "missing", "out.amf")
	cfg := &amf.Config{
		Output:   output,
		Unit:     amf.UnitMeter,
		Strategy: amf.SelectSelection,
		Grouping: scene.PolicyNone,
	}

	err := amf.Export(cfg, sc, amf.StaticMeshes{"cube": cubeMesh()})
	assert.Error(t, err)
	_, serr := os.Stat(output)
	assert.True(t, os.IsNotExist(serr))
}

func TestExportProgress(t *testing.T) {
	c1 := &scene.Object{Name: "c1"}
	c2 := &scene.Object{Name: "c2"}
	sc := &scene.Scene{Name: "Scene", Objects: []*scene.Object{c1, c2}, Selected: []*scene.Object{c1, c2}}
	var calls [][2]int
	cfg := &amf.Config{
		Output:   filepath.Join(t.TempDir(), "out.amf"),
		Unit:     amf.UnitMeter,
		Strategy: amf.SelectSelection,
		Grouping: scene.PolicyNone,
		Progress: func(i, n int) { calls = append(calls, [2]int{i, n}) },
	}

	err := amf.Export(cfg, sc, amf.StaticMeshes{"c1": cubeMesh(), "c2": cubeMesh()})
	assert.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 2}, {1, 2}}, calls)
}
