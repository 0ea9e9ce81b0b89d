package texture

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/sleeepyskies/sobj/asset"

	// Image formats supported by the texture loader.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// A texture image and its metadata.
type Texture struct {
	Name   string
	Format Format

	Width  uint32
	Height uint32

	// Pixel rows packed bottom to top to match the uv origin used by obj files.
	Data []byte
}

// Get the number of channels for this texture.
func (t *Texture) Channels() uint32 {
	return t.Format.Channels()
}

// Create a new texture from a Resource. Grayscale images map to Luminance8
// textures with 1 byte per pixel; everything else is expanded to Rgba8.
func New(res *asset.Resource) (*Texture, error) {
	img, err := decode(res)
	if err != nil {
		return nil, fmt.Errorf("texture: could not decode %s: %s", res.Path(), err.Error())
	}

	bounds := img.Bounds()
	tex := &Texture{
		Name:   filepath.Base(res.Path()),
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}

	switch t := img.(type) {
	case *image.Gray:
		tex.Format = Luminance8
		rowLen := bounds.Dx()
		tex.Data = make([]byte, rowLen*bounds.Dy())

		wOffset := 0
		for y := bounds.Max.Y - 1; y >= bounds.Min.Y; y-- {
			rOffset := t.PixOffset(bounds.Min.X, y)
			copy(tex.Data[wOffset:wOffset+rowLen], t.Pix[rOffset:rOffset+rowLen])
			wOffset += rowLen
		}
	default:
		tex.Format = Rgba8
		tex.Data = make([]byte, bounds.Dx()*bounds.Dy()*4)

		wOffset := 0
		for y := bounds.Max.Y - 1; y >= bounds.Min.Y; y-- {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				tex.Data[wOffset] = c.R
				tex.Data[wOffset+1] = c.G
				tex.Data[wOffset+2] = c.B
				tex.Data[wOffset+3] = c.A
				wOffset += 4
			}
		}
	}

	return tex, nil
}

// Decode an image stream selecting a decoder based on the resource extension.
// Tga images lack a magic header so they cannot be sniffed by image.Decode.
func decode(res *asset.Resource) (image.Image, error) {
	if strings.ToLower(filepath.Ext(res.Path())) == ".tga" {
		return tga.Decode(res)
	}

	img, _, err := image.Decode(res)
	return img, err
}
