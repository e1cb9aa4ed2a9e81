// Copyright (c) 2020, Gilles Bouissac. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"cogentcore.org/core/base/iox/jsonx"
	"cogentcore.org/core/math32"

	"github.com/GillesBouissac/blender-amf/amf"
	"github.com/GillesBouissac/blender-amf/scene"
)

// sceneFile is the on-disk scene description: a flat object list in
// enumeration order, referencing parents by name, with per-object
// pre-tessellated meshes.
type sceneFile struct {
	Name    string        `json:"name"`
	Objects []*fileObject `json:"objects"`
}

// fileObject mirrors [scene.Object] with negated visibility flags, so
// a plain object needs no flags at all; mesh data rides along and is
// served to the exporter through [amf.StaticMeshes].
type fileObject struct {
	Name               string       `json:"name"`
	Parent             string       `json:"parent,omitempty"`
	Hidden             bool         `json:"hidden,omitempty"`
	HideViewport       bool         `json:"hideViewport,omitempty"`
	HideRender         bool         `json:"hideRender,omitempty"`
	Selected           bool         `json:"selected,omitempty"`
	Material           string       `json:"material,omitempty"`
	Instancer          bool         `json:"instancer,omitempty"`
	InstanceCollection string       `json:"instanceCollection,omitempty"`
	Location           [3]float32   `json:"location,omitempty"`
	Rotation           [3]float32   `json:"rotation,omitempty"`
	Vertices           [][3]float32 `json:"vertices,omitempty"`
	Triangles          [][3]int     `json:"triangles,omitempty"`
}

// loadScene reads a scene description file and splits it into the
// object forest and the static meshes backing the geometry provider.
func loadScene(path string) (*scene.Scene, amf.StaticMeshes, error) {
	var sf sceneFile
	if err := jsonx.Open(&sf, path); err != nil {
		return nil, nil, err
	}
	sc := &scene.Scene{Name: sf.Name}
	meshes := amf.StaticMeshes{}
	byName := make(map[string]*scene.Object, len(sf.Objects))
	for _, fo := range sf.Objects {
		obj := &scene.Object{
			Name:               fo.Name,
			Visible:            !fo.Hidden,
			Viewable:           !fo.HideViewport,
			Renderable:         !fo.HideRender,
			Instancer:          fo.Instancer,
			InstanceCollection: fo.InstanceCollection,
			Material:           fo.Material,
			Location:           math32.Vec3(fo.Location[0], fo.Location[1], fo.Location[2]),
			Rotation:           math32.Vec3(fo.Rotation[0], fo.Rotation[1], fo.Rotation[2]),
		}
		byName[obj.Name] = obj
		sc.Objects = append(sc.Objects, obj)
		if fo.Selected {
			sc.Selected = append(sc.Selected, obj)
		}
		if len(fo.Vertices) > 0 {
			mesh := &amf.Mesh{}
			for _, v := range fo.Vertices {
				mesh.Vertices = append(mesh.Vertices, math32.Vec3(v[0], v[1], v[2]))
			}
			for _, t := range fo.Triangles {
				mesh.Triangles = append(mesh.Triangles, amf.Triangle(t))
			}
			meshes[obj.Name] = mesh
		}
	}
	for i, fo := range sf.Objects {
		if fo.Parent == "" {
			continue
		}
		parent := byName[fo.Parent]
		if parent == nil {
			return nil, nil, fmt.Errorf("object %q references unknown parent %q", fo.Name, fo.Parent)
		}
		sc.Objects[i].Parent = parent
		parent.Children = append(parent.Children, sc.Objects[i])
	}
	return sc, meshes, nil
}
