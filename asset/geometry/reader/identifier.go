package reader

import "strings"

// The line kinds that can appear inside a wavefront object file. Lines are
// classified by their keyword prefix; a keyword with no trailing content
// does not match and classifies as unknown.
type objIdentifier int

const (
	objUnknown objIdentifier = iota
	objBlank
	objComment
	objPosition      // v
	objNormal        // vn
	objUV            // vt
	objFace          // f
	objGroup         // g
	objNamedObject   // o
	objSmoothShading // s
	objMaterialLib   // mtllib
	objUseMaterial   // usemtl
)

var objKeywords = []struct {
	id      objIdentifier
	keyword string
}{
	{objPosition, "v"},
	{objNormal, "vn"},
	{objUV, "vt"},
	{objFace, "f"},
	{objGroup, "g"},
	{objNamedObject, "o"},
	{objSmoothShading, "s"},
	{objMaterialLib, "mtllib"},
	{objUseMaterial, "usemtl"},
}

func (id objIdentifier) String() string {
	for _, entry := range objKeywords {
		if entry.id == id {
			return entry.keyword
		}
	}
	return "unknown"
}

// Classify a whitespace-trimmed object file line.
func identifyObjLine(line string) objIdentifier {
	if line == "" {
		return objBlank
	}
	if strings.HasPrefix(line, "#") {
		return objComment
	}

	for _, entry := range objKeywords {
		if strings.HasPrefix(line, entry.keyword+" ") {
			return entry.id
		}
	}
	return objUnknown
}

// The line kinds that can appear inside a wavefront material library.
type mtlIdentifier int

const (
	mtlUnknown mtlIdentifier = iota
	mtlBlank
	mtlComment
	mtlNewMaterial  // newmtl
	mtlAmbientMap   // map_Ka
	mtlDiffuseMap   // map_Kd
	mtlSpecularMap  // map_Ks
	mtlRoughnessMap // map_Ns
	mtlAlphaMap     // map_d
	mtlAmbient      // Ka
	mtlDiffuse      // Kd
	mtlSpecular     // Ks
	mtlRoughness    // Ns
	mtlAlpha        // d
)

var mtlKeywords = []struct {
	id      mtlIdentifier
	keyword string
}{
	{mtlNewMaterial, "newmtl"},
	{mtlAmbientMap, "map_Ka"},
	{mtlDiffuseMap, "map_Kd"},
	{mtlSpecularMap, "map_Ks"},
	{mtlRoughnessMap, "map_Ns"},
	{mtlAlphaMap, "map_d"},
	{mtlAmbient, "Ka"},
	{mtlDiffuse, "Kd"},
	{mtlSpecular, "Ks"},
	{mtlRoughness, "Ns"},
	{mtlAlpha, "d"},
}

func (id mtlIdentifier) String() string {
	for _, entry := range mtlKeywords {
		if entry.id == id {
			return entry.keyword
		}
	}
	return "unknown"
}

// Classify a whitespace-trimmed material library line.
func identifyMtlLine(line string) mtlIdentifier {
	if line == "" {
		return mtlBlank
	}
	if strings.HasPrefix(line, "#") {
		return mtlComment
	}

	for _, entry := range mtlKeywords {
		if strings.HasPrefix(line, entry.keyword+" ") {
			return entry.id
		}
	}
	return mtlUnknown
}

// Get the content that follows a line's keyword prefix.
func lineRemainder(line, keyword string) string {
	return strings.TrimSpace(line[len(keyword):])
}
