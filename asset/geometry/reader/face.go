package reader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sleeepyskies/sobj/asset/geometry"
)

// The vertex argument layouts allowed inside a face definition.
type faceSyntax int

const (
	syntaxInvalid faceSyntax = iota
	syntaxPosition
	syntaxPositionUV
	syntaxPositionNormal
	syntaxPositionUVNormal
)

func (s faceSyntax) String() string {
	switch s {
	case syntaxPosition:
		return "v"
	case syntaxPositionUV:
		return "v/vt"
	case syntaxPositionNormal:
		return "v//vn"
	case syntaxPositionUVNormal:
		return "v/vt/vn"
	}
	return "invalid"
}

// Detect which layout a face vertex argument uses by counting its slash
// separated parts.
func classifyFaceArg(arg string) faceSyntax {
	parts := strings.Split(arg, "/")
	switch len(parts) {
	case 1:
		return syntaxPosition
	case 2:
		return syntaxPositionUV
	case 3:
		if parts[1] == "" {
			return syntaxPositionNormal
		}
		return syntaxPositionUVNormal
	default:
		return syntaxInvalid
	}
}

// Parse the vertex arguments of a face line into a face with resolved
// 0-based attribute indices. The first argument selects the layout for the
// whole face; arguments that do not follow it are skipped with a warning.
func (l *WavefrontLoader) parseFace(file string, lineNum int, args []string) (geometry.Face, error) {
	var face geometry.Face
	syntax := syntaxInvalid

	for argIndex, arg := range args {
		argSyntax := classifyFaceArg(arg)
		if argSyntax == syntaxInvalid {
			l.emitWarning(file, lineNum, "skipping malformed face argument %q", arg)
			continue
		}
		if syntax == syntaxInvalid {
			syntax = argSyntax
		}
		if argSyntax != syntax {
			l.emitWarning(file, lineNum, "skipping face argument %q; expected the %q layout", arg, syntax)
			continue
		}

		parts := strings.Split(arg, "/")
		if parts[0] == "" {
			return geometry.Face{}, fmt.Errorf("face argument %d does not include a vertex index", argIndex)
		}

		if syntax == syntaxPositionUV || syntax == syntaxPositionUVNormal {
			if parts[1] == "" {
				l.emitWarning(file, lineNum, "skipping face argument %q; expected the %q layout", arg, syntax)
				continue
			}
		}
		if syntax == syntaxPositionNormal || syntax == syntaxPositionUVNormal {
			if parts[2] == "" {
				l.emitWarning(file, lineNum, "skipping face argument %q; expected the %q layout", arg, syntax)
				continue
			}
		}

		posIndex, err := resolveIndex(parts[0], len(l.positions))
		if err != nil {
			return geometry.Face{}, err
		}
		face.PositionIndices = append(face.PositionIndices, posIndex)

		if syntax == syntaxPositionUV || syntax == syntaxPositionUVNormal {
			uvIndex, err := resolveIndex(parts[1], len(l.uvs))
			if err != nil {
				return geometry.Face{}, err
			}
			face.UVIndices = append(face.UVIndices, uvIndex)
		}

		if syntax == syntaxPositionNormal || syntax == syntaxPositionUVNormal {
			normalIndex, err := resolveIndex(parts[2], len(l.normals))
			if err != nil {
				return geometry.Face{}, err
			}
			face.NormalIndices = append(face.NormalIndices, normalIndex)
		}
	}

	return face, nil
}

// Resolve a wavefront attribute index into a 0-based list offset. Indices
// are 1-based; negative values select relative to the current end of the
// attribute list. No bounds check happens here; snapshot validation rejects
// out of range offsets.
func resolveIndex(token string, listLen int) (uint32, error) {
	index, err := strconv.Atoi(token)
	if err != nil {
		return 0, err
	}

	switch {
	case index == 0:
		return 0, fmt.Errorf("wavefront indices are 1-based and must not be 0")
	case index < 0:
		return uint32(listLen + index), nil
	default:
		return uint32(index - 1), nil
	}
}

// Split a quad face into two triangles sharing the quad's first vertex.
// Triangular faces pass through untouched; any other vertex count yields an
// UnsupportedPolygonError.
func triangulateFace(face geometry.Face) ([]geometry.Face, error) {
	switch face.VertexCount() {
	case 3:
		return []geometry.Face{face}, nil
	case 4:
		return []geometry.Face{
			subFace(face, [3]int{0, 1, 2}),
			subFace(face, [3]int{0, 2, 3}),
		}, nil
	default:
		return nil, &geometry.UnsupportedPolygonError{VertexCount: face.VertexCount()}
	}
}

// Copy the selected vertices of a face into a new triangular face.
func subFace(face geometry.Face, indices [3]int) geometry.Face {
	var out geometry.Face
	for _, index := range indices {
		out.PositionIndices = append(out.PositionIndices, face.PositionIndices[index])
		if len(face.NormalIndices) != 0 {
			out.NormalIndices = append(out.NormalIndices, face.NormalIndices[index])
		}
		if len(face.UVIndices) != 0 {
			out.UVIndices = append(out.UVIndices, face.UVIndices[index])
		}
		if len(face.ColorIndices) != 0 {
			out.ColorIndices = append(out.ColorIndices, face.ColorIndices[index])
		}
	}
	return out
}
