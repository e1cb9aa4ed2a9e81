// Copyright (c) 2020, Gilles Bouissac. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/GillesBouissac/blender-amf/amf"
	"github.com/GillesBouissac/blender-amf/scene"
	"github.com/stretchr/testify/assert"
)

func writeScene(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.json")
	assert.NoError(t, os.WriteFile(path, []byte(data), 0666))
	return path
}

func TestLoadScene(t *testing.T) {
	path := writeScene(t, `{
		"name": "Scene",
		"objects": [
			{"name": "top", "hidden": true},
			{"name": "cube", "parent": "top", "selected": true, "material": "PLA",
			 "location": [1, 2, 3],
			 "vertices": [[0,0,0],[1,0,0],[0,1,0]],
			 "triangles": [[0,1,2]]}
		]
	}`)
	sc, meshes, err := loadScene(path)
	assert.NoError(t, err)
	assert.Equal(t, "Scene", sc.Name)
	assert.Len(t, sc.Objects, 2)

	top, cube := sc.Objects[0], sc.Objects[1]
	assert.False(t, top.Visible)
	assert.True(t, top.Viewable)
	assert.Equal(t, top, cube.Parent)
	assert.Equal(t, []*scene.Object{cube}, top.Children)
	assert.Equal(t, []*scene.Object{cube}, sc.Selected)
	assert.Equal(t, "PLA", cube.Material)
	assert.Equal(t, math32.Vec3(1, 2, 3), cube.Location)

	mesh := meshes["cube"]
	assert.NotNil(t, mesh)
	assert.Len(t, mesh.Vertices, 3)
	assert.Equal(t, amf.Triangle{0, 1, 2}, mesh.Triangles[0])
	assert.Nil(t, meshes["top"])
}

func TestLoadSceneUnknownParent(t *testing.T) {
	path := writeScene(t, `{
		"name": "Scene",
		"objects": [{"name": "orphan", "parent": "nowhere"}]
	}`)
	_, _, err := loadScene(path)
	assert.Error(t, err)
}
