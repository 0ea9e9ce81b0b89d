package geometry

import (
	"github.com/sleeepyskies/sobj/asset/texture"
	"github.com/sleeepyskies/sobj/types"
)

// Material holds the surface attributes parsed out of a wavefront material
// library. A single Material instance may be shared by multiple meshes.
// Attributes that were not present in the library keep their -1 sentinels.
type Material struct {
	Name string

	Ambient  types.Vec3
	Diffuse  types.Vec3
	Specular types.Vec3

	Roughness float32
	Alpha     float32

	AmbientMap   *texture.Texture
	DiffuseMap   *texture.Texture
	SpecularMap  *texture.Texture
	RoughnessMap *texture.Texture
	AlphaMap     *texture.Texture
}

// Create a new material with all attributes flagged as unset.
func NewMaterial(name string) *Material {
	return &Material{
		Name:      name,
		Ambient:   types.XYZ(-1, -1, -1),
		Diffuse:   types.XYZ(-1, -1, -1),
		Specular:  types.XYZ(-1, -1, -1),
		Roughness: -1,
		Alpha:     -1,
	}
}

// Get the number of texture maps attached to this material.
func (m *Material) TextureCount() int {
	count := 0
	for _, tex := range []*texture.Texture{m.AmbientMap, m.DiffuseMap, m.SpecularMap, m.RoughnessMap, m.AlphaMap} {
		if tex != nil {
			count++
		}
	}
	return count
}
