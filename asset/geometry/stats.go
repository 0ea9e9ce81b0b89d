package geometry

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/sleeepyskies/sobj/asset/texture"
)

// Build a tabular representation of the geometry statistics.
func (d *Data) Stats() string {
	var meshBytes float32
	for _, mesh := range d.Meshes {
		meshBytes += meshIndexBytes(mesh)
	}

	materials := d.Materials()
	var materialBytes float32
	for _, mat := range materials {
		materialBytes += textureBytes(mat)
	}
	attrBytes := sizeOf(d.Positions, d.Normals, d.UVs, d.Colors)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Data", "Item", "Size"})
	table.Append([]string{"Attributes", "---", fmtBytes(attrBytes)})
	table.Append([]string{"", fmt.Sprintf("Positions (%d)", len(d.Positions)), fmtSize(d.Positions)})
	table.Append([]string{"", fmt.Sprintf("Normals (%d)", len(d.Normals)), fmtSize(d.Normals)})
	table.Append([]string{"", fmt.Sprintf("UVs (%d)", len(d.UVs)), fmtSize(d.UVs)})
	table.Append([]string{"", fmt.Sprintf("Colors (%d)", len(d.Colors)), fmtSize(d.Colors)})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Meshes", "---", fmtBytes(meshBytes)})
	for _, mesh := range d.Meshes {
		table.Append([]string{"", fmt.Sprintf("%s (%d faces)", mesh.Name, len(mesh.Faces)), fmtBytes(meshIndexBytes(mesh))})
	}
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Materials", "---", fmtBytes(materialBytes)})
	for _, mat := range materials {
		table.Append([]string{"", fmt.Sprintf("%s (%d textures)", mat.Name, mat.TextureCount()), fmtBytes(textureBytes(mat))})
	}
	table.SetFooter([]string{"Total", " ", strings.TrimLeft(fmtBytes(attrBytes+meshBytes+materialBytes), " ")})

	table.Render()
	return buf.String()
}

// Sum the index storage used by a mesh.
func meshIndexBytes(mesh *Mesh) float32 {
	var total int
	for _, face := range mesh.Faces {
		total += 4 * (len(face.PositionIndices) + len(face.NormalIndices) + len(face.UVIndices) + len(face.ColorIndices))
	}
	return float32(total)
}

// Sum the texture storage used by a material.
func textureBytes(mat *Material) float32 {
	var total int
	for _, tex := range []*texture.Texture{mat.AmbientMap, mat.DiffuseMap, mat.SpecularMap, mat.RoughnessMap, mat.AlphaMap} {
		if tex != nil {
			total += len(tex.Data)
		}
	}
	return float32(total)
}

// Sum the total space used by a set of slices.
func sizeOf(items ...interface{}) float32 {
	var totalBytes float32
	for _, item := range items {
		t := reflect.TypeOf(item)
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += float32(int(t.Elem().Size()) * v.Len())
	}
	return totalBytes
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	return fmtBytes(sizeOf(items...))
}

func fmtBytes(totalBytes float32) string {
	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}
