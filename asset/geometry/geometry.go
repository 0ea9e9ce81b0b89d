package geometry

import (
	"fmt"

	"github.com/sleeepyskies/sobj/types"
)

// Face references the vertex attributes that make up a single polygon. Index
// sequences other than the position sequence are either empty or have the
// same length as the position sequence.
type Face struct {
	PositionIndices []uint32
	NormalIndices   []uint32
	UVIndices       []uint32
	ColorIndices    []uint32
}

// Get the number of vertices referenced by this face.
func (f *Face) VertexCount() int {
	return len(f.PositionIndices)
}

func (f Face) clone() Face {
	return Face{
		PositionIndices: append([]uint32(nil), f.PositionIndices...),
		NormalIndices:   append([]uint32(nil), f.NormalIndices...),
		UVIndices:       append([]uint32(nil), f.UVIndices...),
		ColorIndices:    append([]uint32(nil), f.ColorIndices...),
	}
}

// Mesh groups a set of faces that share a common material.
type Mesh struct {
	Name     string
	Faces    []Face
	Material *Material
}

// Create a new empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// Data contains the vertex attributes and meshes parsed out of a wavefront
// object file. Face indices are 0-based offsets into the attribute lists.
type Data struct {
	Name string

	Positions []types.Vec3
	Normals   []types.Vec3
	UVs       []types.Vec2
	Colors    []types.Vec3

	Meshes []*Mesh
}

// Get the total face count across all meshes.
func (d *Data) FaceCount() int {
	total := 0
	for _, mesh := range d.Meshes {
		total += len(mesh.Faces)
	}
	return total
}

// Calculate the axis-aligned bounding box that encloses all positions.
func (d *Data) BBox() [2]types.Vec3 {
	if len(d.Positions) == 0 {
		return [2]types.Vec3{}
	}

	min, max := d.Positions[0], d.Positions[0]
	for _, v := range d.Positions[1:] {
		min = types.MinVec3(min, v)
		max = types.MaxVec3(max, v)
	}
	return [2]types.Vec3{min, max}
}

// Check that mesh names are unique, that every face defines a valid attribute
// index layout and that all indices point inside the attribute lists.
func (d *Data) Validate() error {
	meshNames := make(map[string]struct{}, len(d.Meshes))
	for _, mesh := range d.Meshes {
		if _, exists := meshNames[mesh.Name]; exists {
			return fmt.Errorf("geometry: duplicate mesh name %q", mesh.Name)
		}
		meshNames[mesh.Name] = struct{}{}

		for faceIndex, face := range mesh.Faces {
			vertexCount := face.VertexCount()
			if vertexCount == 0 {
				return fmt.Errorf("geometry: mesh %q: face %d does not define any vertices", mesh.Name, faceIndex)
			}

			for _, attr := range []struct {
				kind    string
				indices []uint32
				listLen int
			}{
				{"position", face.PositionIndices, len(d.Positions)},
				{"normal", face.NormalIndices, len(d.Normals)},
				{"uv", face.UVIndices, len(d.UVs)},
				{"color", face.ColorIndices, len(d.Colors)},
			} {
				if len(attr.indices) == 0 && attr.kind != "position" {
					continue
				}
				if len(attr.indices) != vertexCount {
					return fmt.Errorf("geometry: mesh %q: face %d defines %d %s indices for %d vertices", mesh.Name, faceIndex, len(attr.indices), attr.kind, vertexCount)
				}
				for _, index := range attr.indices {
					if index >= uint32(attr.listLen) {
						return fmt.Errorf("geometry: mesh %q: face %d references out of range %s index %d", mesh.Name, faceIndex, attr.kind, index)
					}
				}
			}
		}
	}
	return nil
}

// Create a deep copy of the geometry data. Materials are not copied; the
// clone's meshes reference the same shared Material instances.
func (d *Data) Clone() *Data {
	out := &Data{
		Name:      d.Name,
		Positions: append([]types.Vec3(nil), d.Positions...),
		Normals:   append([]types.Vec3(nil), d.Normals...),
		UVs:       append([]types.Vec2(nil), d.UVs...),
		Colors:    append([]types.Vec3(nil), d.Colors...),
	}

	if d.Meshes != nil {
		out.Meshes = make([]*Mesh, len(d.Meshes))
		for meshIndex, mesh := range d.Meshes {
			meshCopy := &Mesh{
				Name:     mesh.Name,
				Material: mesh.Material,
			}
			if mesh.Faces != nil {
				meshCopy.Faces = make([]Face, len(mesh.Faces))
				for faceIndex, face := range mesh.Faces {
					meshCopy.Faces[faceIndex] = face.clone()
				}
			}
			out.Meshes[meshIndex] = meshCopy
		}
	}

	return out
}

// Get the list of unique materials referenced by the meshes. Materials are
// reported in first-use order.
func (d *Data) Materials() []*Material {
	var out []*Material
	seen := make(map[*Material]struct{})
	for _, mesh := range d.Meshes {
		if mesh.Material == nil {
			continue
		}
		if _, exists := seen[mesh.Material]; exists {
			continue
		}
		seen[mesh.Material] = struct{}{}
		out = append(out, mesh.Material)
	}
	return out
}

// UnsupportedPolygonError is returned when a face defines a vertex count that
// the triangulator cannot handle.
type UnsupportedPolygonError struct {
	VertexCount int
}

func (e *UnsupportedPolygonError) Error() string {
	return fmt.Sprintf("unsupported polygon with %d vertices; only triangular and quad faces are supported", e.VertexCount)
}
