// Copyright (c) 2020, Gilles Bouissac. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package amf

import (
	"cogentcore.org/core/math32"

	"github.com/GillesBouissac/blender-amf/scene"
	"github.com/GillesBouissac/blender-amf/xmlx"
)

// SlicerExporter emits the permissive multi-volume dialect: one object
// element per group, whose mesh concatenates the vertex pools of every
// qualifying member, each member contributing its own volume. The AMF
// schema allows a single volume per object; deployed slicers read and
// require this form instead.
type SlicerExporter struct {
	exportBase
	extruders extruderRegistry
}

func (e *SlicerExporter) ExportDocument(doc *xmlx.Document, sc *scene.Scene, objects []*scene.Object, groups []*scene.Group) error {
	unit, scale, matrix := e.begin()
	e.extruders.reset(e.cfg.Extruders)
	root := doc.Element("amf",
		xmlx.Attr{Name: "unit", Value: string(unit)},
		xmlx.Attr{Name: "version", Value: "1.1"})
	defer root.End()
	e.metadata(root, "name", sc.Name)
	e.metadata(root, "scale", ftoa(scale))
	e.exportGroups(root, groups, matrix)
	e.exportConstellations(root, objects)
	return doc.Err()
}

func (e *SlicerExporter) exportGroups(root *xmlx.Element, groups []*scene.Group, matrix *math32.Matrix4) {
	for i, group := range groups {
		e.progress(i, len(groups))
		e.exportGroup(root, group, matrix)
	}
}

// exportGroup emits one object element holding every qualifying member
// of the group. A group with no qualifying member is dropped entirely:
// no object element and no id.
func (e *SlicerExporter) exportGroup(root *xmlx.Element, group *scene.Group, matrix *math32.Matrix4) {
	var objs []*scene.Object
	var meshes []*Mesh
	for _, obj := range group.Objects {
		mesh := e.meshOf(obj, matrix)
		if mesh != nil && len(mesh.Triangles) > minTriangles {
			objs = append(objs, obj)
			meshes = append(meshes, mesh)
		}
	}
	if len(meshes) == 0 {
		return
	}
	xobj := root.Element("object", xmlx.Attr{Name: "id", Value: itoa(e.ids.alloc(group.Name))})
	defer xobj.End()
	e.metadata(xobj, "name", group.Name)
	e.exportMeshes(xobj, objs, meshes)
}

// exportMeshes writes the shared vertex pool and one volume per
// member. Triangle references of each member are offset by the vertex
// count of all members emitted before it, which keeps every reference
// inside the concatenated pool.
func (e *SlicerExporter) exportMeshes(xobj *xmlx.Element, objs []*scene.Object, meshes []*Mesh) {
	xmesh := xobj.Element("mesh")
	defer xmesh.End()
	var pool []math32.Vector3
	offsets := make([]int, len(meshes))
	for i, mesh := range meshes {
		offsets[i] = len(pool)
		pool = append(pool, mesh.Vertices...)
	}
	e.vertices(xmesh, pool)
	for i, mesh := range meshes {
		e.volume(xmesh, mesh.Triangles, e.volumeMetadata(objs[i]), offsets[i])
	}
}

// volumeMetadata tags a member volume with its originating object and
// the fixed source offset hints slicers expect. Objects carrying a
// material identity also get their extruder index.
func (e *SlicerExporter) volumeMetadata(obj *scene.Object) []metadataEntry {
	meta := []metadataEntry{
		{"name", obj.Name},
		{"slic3r.source_offset_x", "0"},
		{"slic3r.source_offset_y", "0"},
		{"slic3r.source_offset_z", "0"},
	}
	if obj.Material != "" {
		meta = append(meta, metadataEntry{"slic3r.extruder", itoa(e.extruders.index(obj.Material))})
	}
	return meta
}

// exportConstellations derives placement records from the caller's
// constellation objects, distinct from the export groups: an instancer
// resolves to its referenced collection, anything else to the object
// itself. Entries whose target was never emitted are skipped. Deltas
// are the object's own translation and rotation, taken verbatim.
func (e *SlicerExporter) exportConstellations(root *xmlx.Element, objects []*scene.Object) {
	for _, obj := range objects {
		name := obj.Name
		if obj.Instancer {
			name = obj.InstanceCollection
		}
		id, ok := e.ids.lookup(name)
		if !ok {
			continue
		}
		xco := root.Element("constellation", xmlx.Attr{Name: "id", Value: itoa(e.ids.allocAnon())})
		e.instance(xco, id, obj.Location, obj.Rotation)
		xco.End()
	}
}
