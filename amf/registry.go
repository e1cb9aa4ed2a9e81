// Copyright (c) 2020, Gilles Bouissac. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package amf

import "cogentcore.org/core/base/ordmap"

// idRegistry allocates the document's dense integer identifier space.
// Objects and constellation records draw from the same counter, so ids
// are unique document wide and handed out in emission order. A name
// keeps its first id for the whole export pass; later references to
// the same name reuse it, never mint a new one.
type idRegistry struct {
	ids  ordmap.Map[string, int]
	next int
}

func (r *idRegistry) reset() {
	r.ids.Reset()
	r.next = 0
}

// alloc returns the id bound to name, binding the next free id on
// first use.
func (r *idRegistry) alloc(name string) int {
	if id, ok := r.ids.ValueByKeyTry(name); ok {
		return id
	}
	id := r.next
	r.next++
	r.ids.Add(name, id)
	return id
}

// allocAnon consumes the next free id without binding a name, for
// records nothing refers back to.
func (r *idRegistry) allocAnon() int {
	id := r.next
	r.next++
	return id
}

// lookup reports the id bound to name, if any.
func (r *idRegistry) lookup(name string) (int, bool) {
	return r.ids.ValueByKeyTry(name)
}

// extruderRegistry maps material identities to integer extruder
// indexes for the slicer dialect: an explicit override wins, otherwise
// the material is assigned the next unused index starting at 1.
type extruderRegistry struct {
	overrides map[string]int
	assigned  ordmap.Map[string, int]
	next      int
}

func (x *extruderRegistry) reset(overrides map[string]int) {
	x.overrides = overrides
	x.assigned.Reset()
	x.next = 1
}

// index returns the extruder index for the given material identity.
func (x *extruderRegistry) index(material string) int {
	if id, ok := x.overrides[material]; ok {
		return id
	}
	if id, ok := x.assigned.ValueByKeyTry(material); ok {
		return id
	}
	id := x.next
	x.next++
	x.assigned.Add(material, id)
	return id
}
