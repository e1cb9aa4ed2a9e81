// Copyright (c) 2020, Gilles Bouissac. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command amfexport converts a scene description file into an
// Additive Manufacturing Format archive.
package main

import (
	"errors"
	"path/filepath"
	"strings"

	"cogentcore.org/core/cli"

	"github.com/GillesBouissac/blender-amf/amf"
	"github.com/GillesBouissac/blender-amf/scene"
	"github.com/GillesBouissac/blender-amf/xmlx"
)

// config is the command line configuration, settable through flags or
// an amfexport.toml file.
type config struct {

	// the scene description file to export
	Scene string `posarg:"0"`

	// the target .amf archive; defaults to the scene file name
	Output string

	// the document length unit: meter, millimeter, micron, inch or feet
	Unit string `def:"meter"`

	// the output dialect: strict or slicer
	Format string `def:"strict"`

	// the exported object set: selection, visible, viewable or renderable
	Strategy string `def:"selection"`

	// the grouping policy: none, all or one of the parents_* policies
	Grouping string `def:"parents_any"`

	// apply host modifiers before tessellation
	Modifiers bool `def:"true"`

	// pretty print the document inside the archive
	Pretty bool `def:"true"`

	// extruder index overrides keyed by material identity
	Extruders map[string]int
}

// Export converts the configured scene file into an AMF archive.
func Export(c *config) error {
	if c.Scene == "" {
		return errors.New("no scene file given")
	}
	sc, meshes, err := loadScene(c.Scene)
	if err != nil {
		return err
	}
	output := c.Output
	if output == "" {
		output = strings.TrimSuffix(c.Scene, filepath.Ext(c.Scene)) + ".amf"
	}
	opts := xmlx.DefaultOptions()
	opts.Pretty = c.Pretty
	return amf.Export(&amf.Config{
		Output:         output,
		Unit:           amf.Unit(c.Unit),
		Format:         amf.Format(c.Format),
		Strategy:       amf.SelectStrategy(c.Strategy),
		Grouping:       scene.Policy(c.Grouping),
		ApplyModifiers: c.Modifiers,
		Extruders:      c.Extruders,
		XML:            opts,
	}, sc, meshes)
}

func main() {
	opts := cli.DefaultOptions("amfexport", "Exports scene descriptions to Additive Manufacturing Format archives.")
	cli.Run(opts, &config{}, Export)
}
