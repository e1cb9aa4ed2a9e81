// Copyright (c) 2020, Gilles Bouissac. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package scene

// Policy selects how exported objects are partitioned into groups.
type Policy string

const (
	// PolicyNone makes each exported object its own singleton group,
	// named after the object.
	PolicyNone Policy = "none"

	// PolicyAll puts every exported object in one group named "all".
	PolicyAll Policy = "all"

	// PolicyParentsAny groups exported objects under their topmost
	// ancestor, whatever its flags.
	PolicyParentsAny Policy = "parents_any"

	// PolicyParentsVisible groups under the topmost visible ancestor.
	PolicyParentsVisible Policy = "parents_visible"

	// PolicyParentsViewable groups under the topmost ancestor not
	// hidden in interactive views.
	PolicyParentsViewable Policy = "parents_viewable"

	// PolicyParentsRenderable groups under the topmost ancestor not
	// excluded from rendering.
	PolicyParentsRenderable Policy = "parents_renderable"

	// PolicyParentsSelected groups under the topmost ancestor that is
	// itself part of the export.
	PolicyParentsSelected Policy = "parents_selected"
)

// Group is an ordered partition of exported objects sharing one
// document-level entity. Groups are created fresh per export pass and
// never alias caller slices.
type Group struct {
	Name    string
	Objects []*Object
}

// BuildGroups partitions the selected objects into groups under the
// given policy. universe is the full scene object list in natural
// enumeration order; the parents_* policies classify every object in
// it exactly once, selected or not. An unknown policy falls back to
// per-object singleton groups, never an error.
func BuildGroups(universe, selected []*Object, policy Policy) []*Group {
	switch policy {
	case PolicyAll:
		return []*Group{{Name: "all", Objects: append([]*Object{}, selected...)}}
	case PolicyParentsAny:
		return parentGroups(universe, selected, func(o *Object) bool { return true })
	case PolicyParentsVisible:
		return parentGroups(universe, selected, func(o *Object) bool { return o.Visible })
	case PolicyParentsViewable:
		return parentGroups(universe, selected, func(o *Object) bool { return o.Viewable })
	case PolicyParentsRenderable:
		return parentGroups(universe, selected, func(o *Object) bool { return o.Renderable })
	case PolicyParentsSelected:
		sel := selectionSet(selected)
		return parentGroups(universe, selected, func(o *Object) bool { return sel[o] })
	}
	groups := make([]*Group, 0, len(selected))
	for _, obj := range selected {
		groups = append(groups, &Group{Name: obj.Name, Objects: []*Object{obj}})
	}
	return groups
}

// parentGroups classifies every object of the universe exactly once.
// Each pass handles the unvisited objects whose parent is absent or
// already visited, in universe order: an object satisfying the root
// predicate seeds a group named after it and holding its exported
// descendants in traversal order; an exported non-root becomes its own
// singleton group; anything else is just marked visited. Because the
// forest has no cycles, a pass over a well-formed universe always
// resolves at least one object; a pass that resolves nothing means the
// universe is truncated (a parent outside the list) and ends the walk.
func parentGroups(universe, selected []*Object, isRoot func(*Object) bool) []*Group {
	sel := selectionSet(selected)
	visited := map[*Object]bool{}
	var groups []*Group
	for {
		progress := false
		for _, obj := range universe {
			if visited[obj] || (obj.Parent != nil && !visited[obj.Parent]) {
				continue
			}
			progress = true
			switch {
			case isRoot(obj):
				group := &Group{Name: obj.Name}
				for _, desc := range Flatten(obj) {
					visited[desc] = true
					if sel[desc] {
						group.Objects = append(group.Objects, desc)
					}
				}
				// a root whose subtree holds nothing exported
				// contributes no output
				if len(group.Objects) > 0 {
					groups = append(groups, group)
				}
			case sel[obj]:
				visited[obj] = true
				groups = append(groups, &Group{Name: obj.Name, Objects: []*Object{obj}})
			default:
				visited[obj] = true
			}
		}
		if !progress {
			return groups
		}
	}
}

func selectionSet(objs []*Object) map[*Object]bool {
	set := make(map[*Object]bool, len(objs))
	for _, o := range objs {
		set[o] = true
	}
	return set
}
