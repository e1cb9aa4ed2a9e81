// Copyright (c) 2020, Gilles Bouissac. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package amf

import (
	"cogentcore.org/core/math32"

	"github.com/GillesBouissac/blender-amf/scene"
	"github.com/GillesBouissac/blender-amf/xmlx"
)

// StrictExporter emits documents conforming to the AMF schema: one
// object element with a single-volume mesh per qualifying object, and
// constellations that only express group membership.
type StrictExporter struct {
	exportBase
}

func (e *StrictExporter) ExportDocument(doc *xmlx.Document, sc *scene.Scene, objects []*scene.Object, groups []*scene.Group) error {
	unit, scale, matrix := e.begin()
	root := doc.Element("amf",
		xmlx.Attr{Name: "unit", Value: string(unit)},
		xmlx.Attr{Name: "version", Value: "1.1"})
	defer root.End()
	e.metadata(root, "name", sc.Name)
	e.metadata(root, "scale", ftoa(scale))
	e.exportObjects(root, objects, matrix)
	e.exportConstellations(root, groups)
	return doc.Err()
}

func (e *StrictExporter) exportObjects(root *xmlx.Element, objs []*scene.Object, matrix *math32.Matrix4) {
	for i, obj := range objs {
		e.progress(i, len(objs))
		e.exportObject(root, obj, matrix)
	}
}

// exportObject emits one object if its mesh qualifies; meshes at or
// below the triangle threshold export nothing and allocate no id.
func (e *StrictExporter) exportObject(root *xmlx.Element, obj *scene.Object, matrix *math32.Matrix4) {
	mesh := e.meshOf(obj, matrix)
	if mesh == nil || len(mesh.Triangles) <= minTriangles {
		return
	}
	xobj := root.Element("object", xmlx.Attr{Name: "id", Value: itoa(e.ids.alloc(obj.Name))})
	defer xobj.End()
	e.metadata(xobj, "name", obj.Name)
	xmesh := xobj.Element("mesh")
	defer xmesh.End()
	e.vertices(xmesh, mesh.Vertices)
	e.volume(xmesh, mesh.Triangles, nil, 0)
}

// exportConstellations emits one constellation per group that has at
// least one emitted member. Instances carry zero deltas: this dialect
// does not express placement, only membership.
func (e *StrictExporter) exportConstellations(root *xmlx.Element, groups []*scene.Group) {
	for _, group := range groups {
		var members []int
		for _, obj := range group.Objects {
			if id, ok := e.ids.lookup(obj.Name); ok {
				members = append(members, id)
			}
		}
		if len(members) == 0 {
			continue
		}
		xco := root.Element("constellation", xmlx.Attr{Name: "id", Value: itoa(e.ids.allocAnon())})
		for _, id := range members {
			e.instance(xco, id, math32.Vector3{}, math32.Vector3{})
		}
		xco.End()
	}
}
