package writer

import (
	"archive/zip"
	"encoding/gob"
	"os"
	"time"

	"github.com/sleeepyskies/sobj/asset/geometry"
	"github.com/sleeepyskies/sobj/log"
)

const (
	dataFile = "geometry.bin"
)

type zipGeometryWriter struct {
	logger   log.Logger
	geomFile string
}

// Create a new zip geometry writer.
func newZipGeometryWriter(geomFile string) *zipGeometryWriter {
	return &zipGeometryWriter{
		logger:   log.New("zip writer"),
		geomFile: geomFile,
	}
}

// Write geometry data to a zip file.
func (w *zipGeometryWriter) Write(data *geometry.Data) error {
	w.logger.Noticef("writing compiled geometry to %q", w.geomFile)
	start := time.Now()

	zipFile, err := os.Create(w.geomFile)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	zw := zip.NewWriter(zipFile)
	defer zw.Close()

	cw, err := zw.Create(dataFile)
	if err != nil {
		return err
	}
	encoder := gob.NewEncoder(cw)
	if err = encoder.Encode(data); err != nil {
		return err
	}

	w.logger.Noticef("compiled geometry in %d ms", time.Since(start).Nanoseconds()/1000000)
	return nil
}
