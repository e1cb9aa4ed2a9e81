// Copyright (c) 2020, Gilles Bouissac. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package amf

import (
	"cogentcore.org/core/math32"

	"github.com/GillesBouissac/blender-amf/scene"
)

// Triangle references three vertices of a mesh by local 0-based index.
type Triangle [3]int

// Mesh is triangulated geometry ready for emission: an ordered vertex
// list defining implicit local indexes, and triangles referencing it.
type Mesh struct {
	Vertices  []math32.Vector3
	Triangles []Triangle
}

// MeshProvider converts a scene object into an exportable mesh.
// It is the boundary to the host's geometry machinery: tessellation,
// modifier evaluation and coordinate transforms happen behind it.
//
// A (nil, nil) return means the object has no geometry. Errors are
// reported for diagnostics, but an export pass treats any failure the
// same as "no mesh" and continues.
type MeshProvider interface {
	Mesh(obj *scene.Object, matrix *math32.Matrix4, applyModifiers bool) (*Mesh, error)
}

// StaticMeshes is a map-backed [MeshProvider] serving pre-tessellated
// meshes by object name, applying the scaling transform to a copy of
// the vertices. It backs the command line front end and tests; the
// host's live geometry provider stays external.
type StaticMeshes map[string]*Mesh

func (sm StaticMeshes) Mesh(obj *scene.Object, matrix *math32.Matrix4, applyModifiers bool) (*Mesh, error) {
	src := sm[obj.Name]
	if src == nil {
		return nil, nil
	}
	out := &Mesh{
		Vertices:  make([]math32.Vector3, len(src.Vertices)),
		Triangles: src.Triangles,
	}
	for i, v := range src.Vertices {
		out.Vertices[i] = v.MulMatrix4(matrix)
	}
	return out, nil
}
