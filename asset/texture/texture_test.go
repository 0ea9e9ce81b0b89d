package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/sleeepyskies/sobj/asset"
)

func TestRgba8Texture(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{G: 255, A: 255})

	imgRes, err := mockImage(img)
	if err != nil {
		t.Fatal(err)
	}
	defer imgRes.Close()
	defer os.Remove(imgRes.Path())

	tex, err := New(imgRes)
	if err != nil {
		t.Fatal(err)
	}

	if tex.Format != Rgba8 {
		t.Fatalf("expected tex format to be Rgba8; got %d", tex.Format)
	}
	if tex.Channels() != 4 {
		t.Fatalf("expected tex channel count to be 4; got %d", tex.Channels())
	}
	if tex.Width != 1 || tex.Height != 2 {
		t.Fatalf("expected tex dims to be 1x2; got %dx%d", tex.Width, tex.Height)
	}
	if exp := "test.png"; tex.Name != exp {
		t.Fatalf("expected tex name to be %s; got %s", exp, tex.Name)
	}

	// The first packed row should contain the bottom image row
	expData := []byte{0, 255, 0, 255, 255, 0, 0, 255}
	if !bytes.Equal(tex.Data, expData) {
		t.Fatalf("expected tex data to be %v; got %v", expData, tex.Data)
	}
}

func TestLuminance8Texture(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 2))
	img.SetGray(0, 0, color.Gray{Y: 10})
	img.SetGray(0, 1, color.Gray{Y: 200})

	imgRes, err := mockImage(img)
	if err != nil {
		t.Fatal(err)
	}
	defer imgRes.Close()
	defer os.Remove(imgRes.Path())

	tex, err := New(imgRes)
	if err != nil {
		t.Fatal(err)
	}

	if tex.Format != Luminance8 {
		t.Fatalf("expected tex format to be Luminance8; got %d", tex.Format)
	}
	if tex.Channels() != 1 {
		t.Fatalf("expected tex channel count to be 1; got %d", tex.Channels())
	}

	expData := []byte{200, 10}
	if !bytes.Equal(tex.Data, expData) {
		t.Fatalf("expected tex data to be %v; got %v", expData, tex.Data)
	}
}

func TestTgaTexture(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	var buf bytes.Buffer
	if err := tga.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	tex, err := New(asset.NewResourceFromStream("texture.tga", &buf))
	if err != nil {
		t.Fatal(err)
	}

	if tex.Format != Rgba8 {
		t.Fatalf("expected tex format to be Rgba8; got %d", tex.Format)
	}
	expData := []byte{1, 2, 3, 255}
	if !bytes.Equal(tex.Data, expData) {
		t.Fatalf("expected tex data to be %v; got %v", expData, tex.Data)
	}
}

func TestStreamHttpTexture(t *testing.T) {
	serverFn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/texture.png" {
			png.Encode(w, image.NewRGBA64(image.Rect(0, 0, 2, 2)))
		} else {
			http.NotFound(w, r)
		}
	})
	server := httptest.NewServer(serverFn)
	defer server.Close()

	res, err := asset.NewResource(server.URL+"/texture.png", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	tex, err := New(res)
	if err != nil {
		t.Fatal(err)
	}

	expLen := 2 * 2 * 4
	if len(tex.Data) != expLen {
		t.Fatalf("expected tex data len to be %d; got %d", expLen, len(tex.Data))
	}
}

func TestTextureDecodeError(t *testing.T) {
	res := asset.NewResourceFromStream("bogus.png", bytes.NewReader([]byte{1, 2, 3}))

	_, err := New(res)
	if err == nil {
		t.Fatal("expected texture decode to fail")
	}
}

func mockImage(img image.Image) (res *asset.Resource, err error) {
	imgFile := os.TempDir() + "/" + "test.png"
	f, err := os.Create(imgFile)
	if err != nil {
		return nil, err
	}

	err = png.Encode(f, img)
	if err != nil {
		f.Close()
		os.Remove(imgFile)
		return nil, err
	}
	f.Close()

	return asset.NewResource(imgFile, nil)
}
