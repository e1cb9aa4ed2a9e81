// Copyright (c) 2020, Gilles Bouissac. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package amf

import "cogentcore.org/core/math32"

// Unit is a document length unit.
type Unit string

const (
	UnitMeter      Unit = "meter"
	UnitMillimeter Unit = "millimeter"
	UnitMicron     Unit = "micron"
	UnitInch       Unit = "inch"
	UnitFeet       Unit = "feet"
)

// unitScale converts host coordinates (meters) to document units.
var unitScale = map[Unit]float32{
	UnitMeter:      1,
	UnitMillimeter: 1e3,
	UnitMicron:     1e6,
	UnitInch:       39.37008,
	UnitFeet:       3.28084,
}

// Scaling resolves the target unit into the unit actually emitted, the
// scale factor from host coordinates, and the scaling transform to
// apply to geometry. An unknown unit falls back to meters, scale 1 and
// an identity transform, never an error.
func Scaling(target Unit) (Unit, float32, *math32.Matrix4) {
	unit, scale := UnitMeter, float32(1)
	if s, ok := unitScale[target]; ok {
		unit, scale = target, s
	}
	m := math32.Identity4()
	m.SetTransform(math32.Vector3{}, math32.Quat{W: 1}, math32.Vec3(scale, scale, scale))
	return unit, scale, m
}
