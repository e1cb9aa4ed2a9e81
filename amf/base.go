// Copyright (c) 2020, Gilles Bouissac. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package amf

import (
	"log/slog"
	"strconv"

	"cogentcore.org/core/math32"

	"github.com/GillesBouissac/blender-amf/scene"
	"github.com/GillesBouissac/blender-amf/xmlx"
)

// minTriangles is the qualification threshold: a mesh must carry more
// triangles than this to be emitted, filtering degenerate and
// placeholder geometry.
const minTriangles = 4

// Exporter writes one complete document for a fixed dialect.
//
// The objects argument is dialect specific: the strict dialect emits
// one object element per entry, while the slicer dialect emits objects
// from groups and reads this list as constellation candidates instead.
//
// All identifier state is reset when ExportDocument starts, so an
// Exporter can be reused for consecutive exports; concurrent exports
// need independent instances. Any failure aborts the whole export and
// a partially written document is never valid output.
type Exporter interface {
	ExportDocument(doc *xmlx.Document, sc *scene.Scene, objects []*scene.Object, groups []*scene.Group) error
}

// NewExporter returns the [Exporter] for cfg.Format, converting
// geometry through the given provider.
func NewExporter(cfg *Config, meshes MeshProvider) Exporter {
	base := exportBase{cfg: cfg, meshes: meshes}
	if cfg.Format == FormatSlicer {
		return &SlicerExporter{exportBase: base}
	}
	return &StrictExporter{exportBase: base}
}

// exportBase carries the state and leaf operations both dialects
// compose: the identifier registry and the metadata, vertex list and
// volume writers.
type exportBase struct {
	cfg    *Config
	meshes MeshProvider
	ids    idRegistry
}

// begin resets per-export state and resolves the unit configuration.
func (e *exportBase) begin() (Unit, float32, *math32.Matrix4) {
	e.ids.reset()
	return Scaling(e.cfg.Unit)
}

// meshOf converts obj through the provider. Conversion failures are
// swallowed: the object simply exports nothing and the pass continues.
func (e *exportBase) meshOf(obj *scene.Object, matrix *math32.Matrix4) *Mesh {
	mesh, err := e.meshes.Mesh(obj, matrix, e.cfg.ApplyModifiers)
	if err != nil {
		slog.Debug("amf: object has no exportable mesh", "object", obj.Name, "err", err)
		return nil
	}
	return mesh
}

func (e *exportBase) progress(i, n int) {
	if e.cfg.Progress != nil {
		e.cfg.Progress(i, n)
	}
}

// metadataEntry is one extra type/value pair emitted on a volume.
type metadataEntry struct {
	kind  string
	value string
}

// metadata writes one labeled metadata entry.
func (e *exportBase) metadata(el *xmlx.Element, kind, value string) {
	meta := el.Inline("metadata", xmlx.Attr{Name: "type", Value: kind})
	defer meta.End()
	meta.Text(value)
}

// vertices writes the ordered vertex list: the position of each vertex
// in it defines the implicit local index volumes refer to.
func (e *exportBase) vertices(el *xmlx.Element, verts []math32.Vector3) {
	xvs := el.Element("vertices")
	defer xvs.End()
	for _, v := range verts {
		xv := xvs.Inline("vertex")
		xc := xv.Inline("coordinates")
		leaf(xc, "x", ftoa(v.X))
		leaf(xc, "y", ftoa(v.Y))
		leaf(xc, "z", ftoa(v.Z))
		xc.End()
		xv.End()
	}
}

// volume writes one colored triangle block. Every vertex reference is
// shifted by vertexIDOffset, which must equal the number of vertices
// emitted before this mesh when several meshes share a vertex pool.
// The red color is a fixed format placeholder, not derived from
// materials.
func (e *exportBase) volume(el *xmlx.Element, tris []Triangle, meta []metadataEntry, vertexIDOffset int) {
	xvo := el.Element("volume")
	defer xvo.End()
	for _, m := range meta {
		e.metadata(xvo, m.kind, m.value)
	}
	xcol := xvo.Inline("color")
	leaf(xcol, "r", "1")
	leaf(xcol, "g", "0")
	leaf(xcol, "b", "0")
	xcol.End()
	for _, t := range tris {
		xt := xvo.Inline("triangle")
		leaf(xt, "v1", itoa(t[0]+vertexIDOffset))
		leaf(xt, "v2", itoa(t[1]+vertexIDOffset))
		leaf(xt, "v3", itoa(t[2]+vertexIDOffset))
		xt.End()
	}
}

// instance writes one constellation instance: the referenced object id
// and six numeric leaves, three translation and three rotation.
func (e *exportBase) instance(el *xmlx.Element, objectID int, delta, rot math32.Vector3) {
	xin := el.Element("instance", xmlx.Attr{Name: "objectid", Value: itoa(objectID)})
	defer xin.End()
	leaf(xin, "deltax", ftoa(delta.X))
	leaf(xin, "deltay", ftoa(delta.Y))
	leaf(xin, "deltaz", ftoa(delta.Z))
	leaf(xin, "rx", ftoa(rot.X))
	leaf(xin, "ry", ftoa(rot.Y))
	leaf(xin, "rz", ftoa(rot.Z))
}

// leaf writes one inline element holding only text.
func leaf(el *xmlx.Element, name, value string) {
	x := el.Inline(name)
	x.Text(value)
	x.End()
}

func itoa(i int) string { return strconv.Itoa(i) }

// ftoa is the locale-independent decimal form used for every numeric
// text node.
func ftoa(f float32) string { return strconv.FormatFloat(float64(f), 'g', -1, 32) }
