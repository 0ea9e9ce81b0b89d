package reader

import (
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/sleeepyskies/sobj/asset/texture"
	"github.com/sleeepyskies/sobj/types"
)

func TestMaterialMissingNewMaterial(t *testing.T) {
	payload := `Kd 1.0 1.0 1.0`

	l := NewWavefrontLoader()
	_, err := l.parseMaterials(mockResource(payload))

	expError := `[embedded: 0] error: got "Kd" without a "newmtl"`
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get error: %s; got %v", expError, err)
	}
}

func TestMaterialDuplicateName(t *testing.T) {
	payload := `newmtl foo
Kd 1 1 1
newmtl foo
`

	l := NewWavefrontLoader()
	_, err := l.parseMaterials(mockResource(payload))

	expError := `[embedded: 2] error: material "foo" already defined`
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get error: %s; got %v", expError, err)
	}
}

func TestMaterialInvalidVec3Param(t *testing.T) {
	payload := `newmtl foo
Kd 1.0
`

	l := NewWavefrontLoader()
	_, err := l.parseMaterials(mockResource(payload))

	expError := `[embedded: 1] error: unsupported syntax for "Kd"; expected 3 arguments; got 1`
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get error: %s; got %v", expError, err)
	}
}

func TestMaterialInvalidScalarParam(t *testing.T) {
	payload := `newmtl foo
Ns 1 2
`

	l := NewWavefrontLoader()
	_, err := l.parseMaterials(mockResource(payload))

	expError := `[embedded: 1] error: unsupported syntax for "Ns"; expected 1 argument; got 2`
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get error: %s; got %v", expError, err)
	}
}

func TestMaterialParseSuccess(t *testing.T) {
	payload := `# wavefront material library
newmtl foo
Ka 0.25 0.25 0.25
Kd 1 1 1
Ks 0.1 0.2 0.3
Ns 96.0
d 0.75

newmtl shiny metal
Kd 0 0 1
`

	l := NewWavefrontLoader()
	materials, err := l.parseMaterials(mockResource(payload))
	if err != nil {
		t.Fatal(err)
	}

	if len(materials) != 2 {
		t.Fatalf("expected to parse 2 materials; got %d", len(materials))
	}

	mat := materials["foo"]
	if mat == nil {
		t.Fatalf("expected material %q to be defined; got %v", "foo", materials)
	}
	expVec3 := types.Vec3{0.25, 0.25, 0.25}
	if !reflect.DeepEqual(mat.Ambient, expVec3) {
		t.Fatalf("expected Ka to be %v; got %v", expVec3, mat.Ambient)
	}
	expVec3 = types.Vec3{1, 1, 1}
	if !reflect.DeepEqual(mat.Diffuse, expVec3) {
		t.Fatalf("expected Kd to be %v; got %v", expVec3, mat.Diffuse)
	}
	expVec3 = types.Vec3{0.1, 0.2, 0.3}
	if !reflect.DeepEqual(mat.Specular, expVec3) {
		t.Fatalf("expected Ks to be %v; got %v", expVec3, mat.Specular)
	}
	var expScalar float32 = 96
	if mat.Roughness != expScalar {
		t.Fatalf("expected Ns to be %f; got %f", expScalar, mat.Roughness)
	}
	expScalar = 0.75
	if mat.Alpha != expScalar {
		t.Fatalf("expected d to be %f; got %f", expScalar, mat.Alpha)
	}
	if mat.TextureCount() != 0 {
		t.Fatalf("expected no textures; got %d", mat.TextureCount())
	}

	// Material names keep everything after the keyword, spaces included.
	if materials["shiny metal"] == nil {
		t.Fatalf("expected material %q to be defined; got %v", "shiny metal", materials)
	}
}

func TestMaterialUnknownDirectiveWarns(t *testing.T) {
	payload := `newmtl foo
Ke 1 1 1
`

	l := NewWavefrontLoader()
	materials, err := l.parseMaterials(mockResource(payload))
	if err != nil {
		t.Fatal(err)
	}
	if len(materials) != 1 {
		t.Fatalf("expected to parse 1 material; got %d", len(materials))
	}

	expWarning := `[embedded: 1] warning: skipping unknown directive "Ke"`
	warnings := l.Warnings()
	if len(warnings) != 1 || warnings[0] != expWarning {
		t.Fatalf("expected warning %s; got %v", expWarning, warnings)
	}
}

func TestMaterialTextureSlots(t *testing.T) {
	serverFn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		png.Encode(w, image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	})
	server := httptest.NewServer(serverFn)
	defer server.Close()

	payload := `newmtl foo
map_Ka SERVER/ka.png
map_Kd SERVER/kd.png
map_Ks SERVER/ks.png
map_Ns SERVER/ns.png
map_d SERVER/d.png
`

	l := NewWavefrontLoader()
	materials, err := l.parseMaterials(mockResource(strings.Replace(payload, "SERVER", server.URL, -1)))
	if err != nil {
		t.Fatal(err)
	}

	mat := materials["foo"]
	expTexCount := 5
	if mat.TextureCount() != expTexCount {
		t.Fatalf("expected %d textures to be loaded; got %d", expTexCount, mat.TextureCount())
	}

	type spec struct {
		tex     *texture.Texture
		expName string
	}
	specs := []spec{
		{mat.AmbientMap, "ka.png"},
		{mat.DiffuseMap, "kd.png"},
		{mat.SpecularMap, "ks.png"},
		{mat.RoughnessMap, "ns.png"},
		{mat.AlphaMap, "d.png"},
	}
	for idx, s := range specs {
		if s.tex == nil || s.tex.Name != s.expName {
			t.Fatalf("[spec %d] expected slot to hold texture %q; got %v", idx, s.expName, s.tex)
		}
	}
}

func TestMaterialTextureRedefinitionWarns(t *testing.T) {
	serverFn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		png.Encode(w, image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	})
	server := httptest.NewServer(serverFn)
	defer server.Close()

	payload := `newmtl foo
map_Kd SERVER/first.png
map_Kd SERVER/second.png
`

	l := NewWavefrontLoader()
	materials, err := l.parseMaterials(mockResource(strings.Replace(payload, "SERVER", server.URL, -1)))
	if err != nil {
		t.Fatal(err)
	}

	expWarning := `[embedded: 2] warning: material "foo" defines multiple "map_Kd" entries; the last one wins`
	warnings := l.Warnings()
	if len(warnings) != 1 || warnings[0] != expWarning {
		t.Fatalf("expected warning %s; got %v", expWarning, warnings)
	}

	mat := materials["foo"]
	if mat.DiffuseMap == nil || mat.DiffuseMap.Name != "second.png" {
		t.Fatalf("expected the last map_Kd entry to win; got %v", mat.DiffuseMap)
	}
}

func TestMaterialMissingTextureWarns(t *testing.T) {
	payload := `newmtl foo
map_Kd missing-texture.png
`

	l := NewWavefrontLoader()
	materials, err := l.parseMaterials(mockResource(payload))
	if err != nil {
		t.Fatal(err)
	}

	expWarning := `[embedded: 1] warning: ignoring missing texture "missing-texture.png"`
	warnings := l.Warnings()
	if len(warnings) != 1 || warnings[0] != expWarning {
		t.Fatalf("expected warning %s; got %v", expWarning, warnings)
	}
	if mat := materials["foo"]; mat.DiffuseMap != nil {
		t.Fatalf("expected the missing texture slot to stay empty; got %v", mat.DiffuseMap)
	}
}

func TestMaterialTextureDecodeFailure(t *testing.T) {
	serverFn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not an image"))
	})
	server := httptest.NewServer(serverFn)
	defer server.Close()

	payload := `newmtl foo
map_Kd SERVER/kd.png
`

	l := NewWavefrontLoader()
	_, err := l.parseMaterials(mockResource(strings.Replace(payload, "SERVER", server.URL, -1)))
	if err == nil || !strings.Contains(err.Error(), "could not decode") {
		t.Fatalf("expected a decode error for the bad texture; got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "[embedded: 1] error:") {
		t.Fatalf("expected error to point at the map_Kd line; got %s", err.Error())
	}
}
