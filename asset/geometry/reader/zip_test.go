package reader

import (
	"archive/zip"
	"encoding/gob"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sleeepyskies/sobj/asset/geometry"
	"github.com/sleeepyskies/sobj/asset/geometry/writer"
	"github.com/sleeepyskies/sobj/asset/texture"
	"github.com/sleeepyskies/sobj/types"
)

func makeCompiledData() *geometry.Data {
	mat := geometry.NewMaterial("white")
	mat.Diffuse = types.Vec3{1, 1, 1}
	mat.AlphaMap = &texture.Texture{
		Name:   "alpha.png",
		Format: texture.Rgba8,
		Width:  1,
		Height: 1,
		Data:   []byte{255, 255, 255, 255},
	}

	front := geometry.NewMesh("front")
	front.Material = mat
	front.Faces = append(front.Faces, geometry.Face{PositionIndices: []uint32{0, 1, 2}})

	back := geometry.NewMesh("back")
	back.Material = mat
	back.Faces = append(back.Faces, geometry.Face{PositionIndices: []uint32{2, 1, 0}})

	return &geometry.Data{
		Name: "model.obj",
		Positions: []types.Vec3{
			{0, 0, 0},
			{1, 0, 0},
			{0, 1, 0},
		},
		Meshes: []*geometry.Mesh{front, back},
	}
}

func TestCompiledGeometryRoundtrip(t *testing.T) {
	data := makeCompiledData()

	zipFile := filepath.Join(t.TempDir(), "model.zip")
	if err := writer.WriteGeometry(data, zipFile); err != nil {
		t.Fatal(err)
	}

	out, err := ReadGeometry(zipFile)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(out, data) {
		t.Fatalf("expected roundtripped data to match the original; got %v", out)
	}

	// Gob breaks pointer identity so the reader re-links materials by name.
	if out.Meshes[0].Material != out.Meshes[1].Material {
		t.Fatal("expected meshes to share one material after decoding")
	}
}

func TestZipReaderSkipsUnknownFiles(t *testing.T) {
	data := makeCompiledData()

	zipFile := filepath.Join(t.TempDir(), "model.zip")
	f, err := os.Create(zipFile)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	cw, err := zw.Create("readme.txt")
	if err != nil {
		t.Fatal(err)
	}
	cw.Write([]byte("ignore me"))
	cw, err = zw.Create("geometry.bin")
	if err != nil {
		t.Fatal(err)
	}
	if err = gob.NewEncoder(cw).Encode(data); err != nil {
		t.Fatal(err)
	}
	if err = zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	out, err := ReadGeometry(zipFile)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(out, data) {
		t.Fatalf("expected the unknown entry to be skipped; got %v", out)
	}
}

func TestReadGeometryUnsupportedFormat(t *testing.T) {
	binFile := filepath.Join(t.TempDir(), "model.bin")
	if err := os.WriteFile(binFile, []byte("payload"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadGeometry(binFile)
	expError := "readGeometry: unsupported file format"
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get error: %s; got %v", expError, err)
	}
}
