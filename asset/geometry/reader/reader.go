package reader

import (
	"fmt"
	"strings"

	"github.com/sleeepyskies/sobj/asset"
	"github.com/sleeepyskies/sobj/asset/geometry"
)

// The Reader interface is implemented by all geometry readers.
type Reader interface {
	// Read geometry data from a resource.
	Read(*asset.Resource) (*geometry.Data, error)
}

// Read geometry from file.
func ReadGeometry(filename string) (*geometry.Data, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	// Select reader based on file extension
	var reader Reader
	if strings.HasSuffix(filename, ".obj") {
		reader = NewWavefrontLoader()
	} else if strings.HasSuffix(filename, ".zip") {
		reader = newZipGeometryReader()
	} else {
		return nil, fmt.Errorf("readGeometry: unsupported file format")
	}
	return reader.Read(res)
}
