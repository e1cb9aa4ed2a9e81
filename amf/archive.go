// Copyright (c) 2020, Gilles Bouissac. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package amf

import (
	"archive/zip"
	"io"
	"os"

	"github.com/klauspost/compress/flate"
)

// writeArchive packages the file at src into a fresh single-entry
// deflate zip at target, under the given entry name.
func writeArchive(target, entry, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	w, err := zw.Create(entry)
	if err == nil {
		_, err = io.Copy(w, in)
	}
	if cerr := zw.Close(); err == nil {
		err = cerr
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}
