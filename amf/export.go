// Copyright (c) 2020, Gilles Bouissac. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package amf

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/GillesBouissac/blender-amf/scene"
	"github.com/GillesBouissac/blender-amf/xmlx"
)

// Export runs one full export pass: select the exported objects, group
// them under the configured policy, stream the document to a temporary
// file and package it into the target archive.
//
// The outcome is binary: nil means the archive is complete on disk,
// an error means nothing was left behind. Partial output is always
// removed on failure.
func Export(cfg *Config, sc *scene.Scene, meshes MeshProvider) error {
	if cfg.Output == "" {
		return errors.New("amf: no output path configured")
	}
	objects := SelectObjects(sc, cfg.Strategy)
	groups := scene.BuildGroups(sc.Objects, objects, cfg.Grouping)

	base := filepath.Base(cfg.Output)
	noext := strings.TrimSuffix(base, filepath.Ext(base))
	tmp, err := os.CreateTemp("", noext+"-*.xml")
	if err != nil {
		return fmt.Errorf("amf: cannot create document file: %w", err)
	}
	defer os.Remove(tmp.Name())

	doc := xmlx.NewDocument(tmp, cfg.XML)
	err = NewExporter(cfg, meshes).ExportDocument(doc, sc, objects, groups)
	if cerr := doc.Close(); err == nil {
		err = cerr
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		slog.Error("amf: export aborted", "output", cfg.Output, "err", err)
		return err
	}

	// the on-disk .amf form is a zip holding the document under the
	// archive's own base name
	if err := writeArchive(cfg.Output, base, tmp.Name()); err != nil {
		os.Remove(cfg.Output)
		slog.Error("amf: archive packaging failed", "output", cfg.Output, "err", err)
		return err
	}
	return nil
}
