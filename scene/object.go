// Copyright (c) 2020, Gilles Bouissac. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package scene models the host application's object hierarchy as seen
// by the exporter: a forest of named objects with visibility flags,
// flattening of subtrees, and the grouping engine that partitions
// exported objects for document assembly.
//
// Objects are owned by the host. The exporter only reads them during
// one export pass, never mutates them, and tolerates structures where
// the same child is reachable through several parents.
package scene

import "cogentcore.org/core/math32"

// Object is one node of the host scene graph.
type Object struct {

	// Name is the stable identity of the object, unique per document.
	Name string

	// Parent is a back reference only; it never owns the object.
	Parent *Object

	// Children are the objects directly below this one, in order.
	Children []*Object

	// Visible reports whether the object is visible at all.
	Visible bool

	// Viewable is false when the object is hidden in interactive views.
	Viewable bool

	// Renderable is false when the object is excluded from rendering.
	Renderable bool

	// Instancer marks an object that stands for the members of
	// InstanceCollection instead of carrying geometry of its own.
	Instancer bool

	// InstanceCollection names the collection an Instancer references.
	InstanceCollection string

	// Material is the surface material identity, empty if none.
	Material string

	// Location is the object's translation.
	Location math32.Vector3

	// Rotation is the object's Euler rotation, in the same component
	// order as emitted instance rotations.
	Rotation math32.Vector3
}

// Scene is the host document as consumed by one export pass: a name,
// the full object universe in its natural enumeration order, and the
// host's current selection.
type Scene struct {
	Name     string
	Objects  []*Object
	Selected []*Object
}

// Flatten returns a depth-first, pre-order flat list of every distinct
// object reachable from the given roots through the children relation,
// including the roots themselves. Nil entries are skipped silently.
// An object reachable through several paths appears exactly once, and
// an already-visited subtree is not descended again.
//
// The visited state is private to each call, so Flatten is freely
// restartable; the returned slice is fresh and shares nothing with the
// caller beyond the objects themselves.
func Flatten(roots ...*Object) []*Object {
	visited := map[*Object]bool{}
	var objs []*Object
	for _, root := range roots {
		objs = flatten(root, visited, objs)
	}
	return objs
}

func flatten(obj *Object, visited map[*Object]bool, objs []*Object) []*Object {
	if obj == nil || visited[obj] {
		return objs
	}
	visited[obj] = true
	objs = append(objs, obj)
	for _, child := range obj.Children {
		objs = flatten(child, visited, objs)
	}
	return objs
}
