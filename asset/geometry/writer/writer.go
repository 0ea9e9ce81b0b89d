package writer

import "github.com/sleeepyskies/sobj/asset/geometry"

// The Writer interface is implemented by all geometry writers.
type Writer interface {
	// Write geometry data
	Write(*geometry.Data) error
}

// Write geometry to binary format.
func WriteGeometry(data *geometry.Data, filename string) error {
	writer := newZipGeometryWriter(filename)
	return writer.Write(data)
}
