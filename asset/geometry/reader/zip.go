package reader

import (
	"archive/zip"
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"time"

	"github.com/sleeepyskies/sobj/asset"
	"github.com/sleeepyskies/sobj/asset/geometry"
	"github.com/sleeepyskies/sobj/log"
)

const (
	dataFile = "geometry.bin"
)

type zipGeometryReader struct {
	logger log.Logger
}

// Create a new zip geometry reader.
func newZipGeometryReader() *zipGeometryReader {
	return &zipGeometryReader{
		logger: log.New("zip reader"),
	}
}

// Read geometry data from a compiled zip file.
func (p *zipGeometryReader) Read(geomRes *asset.Resource) (*geometry.Data, error) {
	p.logger.Noticef("parsing compiled geometry from %q", geomRes.Path())
	start := time.Now()

	// zip package requires a reader implementing ReaderAt. To work around
	// this requirement we read the entire zip file into memory and create
	// a reader from the bytes package that implements ReaderAt
	payload, err := io.ReadAll(geomRes)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return nil, err
	}

	data := &geometry.Data{}
	for _, f := range zr.File {
		switch f.Name {
		case dataFile:
		default:
			p.logger.Warningf("unknown file %s in geometry zip file; skipping", f.Name)
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		decoder := gob.NewDecoder(rc)
		err = decoder.Decode(&data)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("zipGeometryReader: failed to load %s: %s", f.Name, err.Error())
		}
	}

	// Gob flattens pointers so meshes that shared a material before
	// encoding come back with separate copies. Restore sharing by name.
	seenMaterials := make(map[string]*geometry.Material)
	for _, mesh := range data.Meshes {
		if mesh.Material == nil {
			continue
		}
		if shared, exists := seenMaterials[mesh.Material.Name]; exists {
			mesh.Material = shared
			continue
		}
		seenMaterials[mesh.Material.Name] = mesh.Material
	}

	p.logger.Noticef("loaded geometry in %d ms", time.Since(start).Nanoseconds()/1000000)
	return data, nil
}
