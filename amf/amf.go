// Copyright (c) 2020, Gilles Bouissac. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package amf assembles Additive Manufacturing Format documents from
// host scene objects and writes them as single-entry zip archives.
//
// One export pass selects the exported objects, partitions them into
// groups (see [github.com/GillesBouissac/blender-amf/scene]), converts
// each object to a mesh through a [MeshProvider], and streams the
// document through an [Exporter] for the configured [Format].
// [Export] runs the whole pipeline.
package amf

import (
	"github.com/GillesBouissac/blender-amf/scene"
	"github.com/GillesBouissac/blender-amf/xmlx"
)

// Format selects the output dialect.
type Format string

const (
	// FormatStrict emits documents conforming to the AMF schema:
	// one object element with a single-volume mesh per exported object.
	FormatStrict Format = "strict"

	// FormatSlicer emits the permissive convention established by
	// slicer tools: one object element per group, whose mesh holds a
	// shared vertex pool and one volume per member. The schema does
	// not allow multiple volumes; deployed slicers require them.
	FormatSlicer Format = "slicer"
)

// SelectStrategy selects which scene objects one export pass covers.
type SelectStrategy string

const (
	// SelectSelection exports the host's current selection only.
	SelectSelection SelectStrategy = "selection"

	// SelectVisible exports every visible object.
	SelectVisible SelectStrategy = "visible"

	// SelectViewable exports every object not hidden in views.
	SelectViewable SelectStrategy = "viewable"

	// SelectRenderable exports every object not excluded from renders.
	SelectRenderable SelectStrategy = "renderable"
)

// Config is the read-only configuration of one export pass.
// The exporter never mutates it.
type Config struct {

	// Output is the target archive path, conventionally *.amf.
	Output string

	// Unit is the document length unit. An unknown unit falls back to
	// meters with scale 1.
	Unit Unit

	// Format selects the output dialect; unknown values fall back to
	// [FormatStrict].
	Format Format

	// Strategy selects the exported object set; unknown values export
	// the whole scene.
	Strategy SelectStrategy

	// Grouping is the policy partitioning exported objects; unknown
	// policies fall back to per-object singleton groups.
	Grouping scene.Policy

	// ApplyModifiers asks the geometry provider to evaluate host
	// modifiers before tessellation.
	ApplyModifiers bool

	// Extruders maps material identities to explicit extruder indexes
	// for the slicer dialect. Materials without an entry are numbered
	// from 1 in order of first use.
	Extruders map[string]int

	// XML overrides the serializer output options; nil uses
	// [xmlx.DefaultOptions].
	XML *xmlx.Options

	// Progress, when set, is called once per emitted entity with its
	// index and the total count.
	Progress func(i, n int)
}

// SelectObjects returns the objects exported under the given strategy,
// in scene enumeration order.
func SelectObjects(sc *scene.Scene, strategy SelectStrategy) []*scene.Object {
	if strategy == SelectSelection {
		return append([]*scene.Object{}, sc.Selected...)
	}
	var objs []*scene.Object
	for _, obj := range sc.Objects {
		switch strategy {
		case SelectVisible:
			if !obj.Visible {
				continue
			}
		case SelectViewable:
			if !obj.Viewable {
				continue
			}
		case SelectRenderable:
			if !obj.Renderable {
				continue
			}
		}
		objs = append(objs, obj)
	}
	return objs
}
