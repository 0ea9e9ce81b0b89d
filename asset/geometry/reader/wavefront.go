package reader

import (
	"bufio"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sleeepyskies/sobj/asset"
	"github.com/sleeepyskies/sobj/asset/geometry"
	"github.com/sleeepyskies/sobj/log"
	"github.com/sleeepyskies/sobj/types"
)

// The group that receives faces parsed before any group directive.
const defaultGroupName = "default"

// The prefix used when naming the anonymous groups cut by smooth shading
// toggles.
const anonymousGroupPrefix = "group"

// WavefrontLoader parses wavefront object files and their referenced
// material libraries into geometry data. Loaders are not safe for
// concurrent use; create one loader per goroutine instead.
type WavefrontLoader struct {
	logger *log.Recorder

	// When set, quad faces are split into two triangles as they are parsed.
	triangulate bool

	name string

	positions []types.Vec3
	normals   []types.Vec3
	uvs       []types.Vec2
	colors    []types.Vec3

	meshes    []*geometry.Mesh
	meshIndex map[string]int

	// The group currently receiving parsed faces.
	curMesh string

	// The material table produced by the most recent mtllib directive.
	materials map[string]*geometry.Material

	smoothShading bool
	groupSeq      int

	// An error stack that provides additional error information when object
	// files reference material libraries.
	errStack []string
}

// Create a new wavefront loader with triangulation enabled.
func NewWavefrontLoader() *WavefrontLoader {
	l := &WavefrontLoader{
		logger:      log.NewRecorder(log.New("wavefront loader")),
		triangulate: true,
	}
	l.Reset()
	return l
}

// Toggle quad triangulation for subsequent loads.
func (l *WavefrontLoader) SetTriangulate(enabled bool) {
	l.triangulate = enabled
}

// Load parses the object file at the given path. Parsed state stays inside
// the loader and can be retrieved with Steal or Share; state and diagnostics
// from a previous load are discarded first.
func (l *WavefrontLoader) Load(pathToFile string) error {
	l.Reset()

	pathToFile = strings.TrimSpace(pathToFile)
	if !strings.HasSuffix(pathToFile, ".obj") {
		return l.emitError("", 0, "file %q does not have the .obj extension", pathToFile)
	}

	res, err := asset.NewResource(pathToFile, nil)
	if err != nil {
		return l.emitError("", 0, err.Error())
	}
	defer res.Close()

	return l.load(res)
}

// Read implements Reader by parsing the resource and handing the validated
// geometry to the caller.
func (l *WavefrontLoader) Read(res *asset.Resource) (*geometry.Data, error) {
	l.Reset()
	if err := l.load(res); err != nil {
		return nil, err
	}
	return l.Steal()
}

// Steal validates the parsed geometry and transfers ownership of it to the
// caller, resetting the loader. When validation fails the loader state is
// left untouched so that the caller can still inspect diagnostics or retry.
func (l *WavefrontLoader) Steal() (*geometry.Data, error) {
	data := l.snapshot()
	if err := data.Validate(); err != nil {
		return nil, l.emitError("", 0, err.Error())
	}

	l.Reset()
	return data, nil
}

// Share validates the parsed geometry and returns a deep copy of it. The
// loader keeps its state so that additional snapshots can be produced.
func (l *WavefrontLoader) Share() (*geometry.Data, error) {
	data := l.snapshot()
	if err := data.Validate(); err != nil {
		return nil, l.emitError("", 0, err.Error())
	}
	return data.Clone(), nil
}

// Reset returns the loader to its pristine state, dropping parsed data and
// recorded diagnostics.
func (l *WavefrontLoader) Reset() {
	l.name = ""
	l.positions = nil
	l.normals = nil
	l.uvs = nil
	l.colors = nil
	l.meshes = nil
	l.meshIndex = make(map[string]int)
	l.curMesh = ""
	l.materials = make(map[string]*geometry.Material)
	l.smoothShading = false
	l.groupSeq = 0
	l.errStack = nil
	l.logger.Clear()
}

// Check whether the most recent load recorded any errors.
func (l *WavefrontLoader) HasErrors() bool {
	return l.logger.HasErrors()
}

// Check whether the most recent load recorded any warnings.
func (l *WavefrontLoader) HasWarnings() bool {
	return l.logger.HasWarnings()
}

// Get the errors recorded by the most recent load.
func (l *WavefrontLoader) Errors() []string {
	return l.logger.Errors()
}

// Get the warnings recorded by the most recent load.
func (l *WavefrontLoader) Warnings() []string {
	return l.logger.Warnings()
}

// Get the info entries recorded by the most recent load.
func (l *WavefrontLoader) Infos() []string {
	return l.logger.Infos()
}

func (l *WavefrontLoader) load(res *asset.Resource) error {
	l.logger.Noticef("parsing geometry from %q", res.Path())
	start := time.Now()

	l.name = filepath.Base(res.Path())
	if err := l.parse(res); err != nil {
		return err
	}
	l.shrink()

	l.logger.Infof("parsed %d positions and %d faces from %q", len(l.positions), l.faceCount(), res.Path())
	l.logger.Noticef("parsed geometry in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}

// Parse wavefront object content line by line. Line numbers in diagnostics
// are 0-based.
func (l *WavefrontLoader) parse(res *asset.Resource) error {
	var lineNum int

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		lineTokens := strings.Fields(line)

		id := identifyObjLine(line)
		switch id {
		case objBlank, objComment:
		case objPosition:
			v, err := parseVec3(lineTokens)
			if err != nil {
				return l.emitError(res.Path(), lineNum, err.Error())
			}
			l.positions = append(l.positions, v)
		case objNormal:
			v, err := parseVec3(lineTokens)
			if err != nil {
				return l.emitError(res.Path(), lineNum, err.Error())
			}
			l.normals = append(l.normals, v)
		case objUV:
			v, err := parseVec2(lineTokens)
			if err != nil {
				return l.emitError(res.Path(), lineNum, err.Error())
			}
			l.uvs = append(l.uvs, v)
		case objFace:
			if err := l.parseFaceLine(res.Path(), lineNum, lineTokens); err != nil {
				return err
			}
		case objGroup, objNamedObject:
			l.selectGroup(lineRemainder(line, id.String()))
		case objSmoothShading:
			l.parseSmoothShading(res.Path(), lineNum, lineTokens)
		case objMaterialLib:
			if err := l.loadMaterialLibrary(res.Path(), lineNum, lineRemainder(line, id.String()), res); err != nil {
				return err
			}
		case objUseMaterial:
			if err := l.useMaterial(res.Path(), lineNum, lineRemainder(line, id.String())); err != nil {
				return err
			}
		default:
			l.emitWarning(res.Path(), lineNum, "skipping unknown directive %q", lineTokens[0])
		}

		lineNum++
	}
	if err := scanner.Err(); err != nil {
		return l.emitError(res.Path(), lineNum, err.Error())
	}

	if len(l.positions) == 0 {
		return l.emitError(res.Path(), lineNum, "object file must include at least one position")
	}
	return nil
}

// Parse a face line and append the resulting faces to the active mesh.
func (l *WavefrontLoader) parseFaceLine(file string, lineNum int, lineTokens []string) error {
	args := lineTokens[1:]
	if len(args) != 3 && len(args) != 4 {
		polyErr := geometry.UnsupportedPolygonError{VertexCount: len(args)}
		return l.emitError(file, lineNum, polyErr.Error())
	}

	face, err := l.parseFace(file, lineNum, args)
	if err != nil {
		return l.emitError(file, lineNum, err.Error())
	}

	// Skipped arguments reduce the usable vertex count; drop faces that no
	// longer form a triangle or a quad.
	if face.VertexCount() != len(args) && face.VertexCount() != 3 {
		l.emitWarning(file, lineNum, "ignoring face with %d usable vertex arguments", face.VertexCount())
		return nil
	}

	if !l.triangulate {
		return l.pushFace(file, lineNum, face)
	}

	faces, err := triangulateFace(face)
	if err != nil {
		return l.emitError(file, lineNum, err.Error())
	}
	for _, tri := range faces {
		if err = l.pushFace(file, lineNum, tri); err != nil {
			return err
		}
	}
	return nil
}

// Append a face to the mesh of the active group, allocating the default
// group when no group directive has been seen yet.
func (l *WavefrontLoader) pushFace(file string, lineNum int, face geometry.Face) error {
	if l.curMesh == "" {
		l.selectGroup(defaultGroupName)
	}

	meshIndex, exists := l.meshIndex[l.curMesh]
	if !exists {
		return l.emitError(file, lineNum, "no mesh allocated for group %q", l.curMesh)
	}
	l.meshes[meshIndex].Faces = append(l.meshes[meshIndex].Faces, face)
	return nil
}

// Select the group receiving subsequently parsed faces, allocating its mesh
// the first time the group name is seen. Reselecting a known group
// accumulates additional faces into its existing mesh.
func (l *WavefrontLoader) selectGroup(name string) {
	l.curMesh = name
	if _, exists := l.meshIndex[name]; exists {
		return
	}

	l.meshes = append(l.meshes, geometry.NewMesh(name))
	l.meshIndex[name] = len(l.meshes) - 1
}

// Toggle smooth shading based on an on/off word or a numeric group id. A
// state change cuts subsequent faces into a fresh anonymous group.
func (l *WavefrontLoader) parseSmoothShading(file string, lineNum int, lineTokens []string) {
	var enabled bool
	switch word := lineTokens[1]; word {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		group, err := strconv.Atoi(word)
		if err != nil {
			l.emitWarning(file, lineNum, "skipping smooth shading toggle %q", word)
			return
		}
		enabled = group != 0
	}

	if enabled == l.smoothShading {
		return
	}
	l.cutSmoothingGroup()
	l.smoothShading = enabled
}

// Start a fresh anonymous group so that faces parsed after a smooth shading
// change do not share a mesh with the faces parsed before it. Nothing
// happens when the active group holds no faces yet.
func (l *WavefrontLoader) cutSmoothingGroup() {
	if l.curMesh == "" {
		return
	}
	if meshIndex := l.meshIndex[l.curMesh]; len(l.meshes[meshIndex].Faces) == 0 {
		return
	}

	var name string
	for {
		name = fmt.Sprintf("%s%d", anonymousGroupPrefix, l.groupSeq)
		l.groupSeq++
		if _, exists := l.meshIndex[name]; !exists {
			break
		}
	}
	l.selectGroup(name)
}

// Attach a previously parsed material to the mesh of the active group.
func (l *WavefrontLoader) useMaterial(file string, lineNum int, name string) error {
	if l.curMesh == "" {
		return l.emitError(file, lineNum, "cannot use material %q; no mesh has been defined", name)
	}

	mat, exists := l.materials[name]
	if !exists {
		return l.emitError(file, lineNum, "undefined material with name %q", name)
	}

	l.meshes[l.meshIndex[l.curMesh]].Material = mat
	return nil
}

// Parse the material library referenced by an mtllib directive. The parsed
// table replaces any table produced by an earlier mtllib directive.
func (l *WavefrontLoader) loadMaterialLibrary(file string, lineNum int, pathToLib string, relTo *asset.Resource) error {
	if !strings.HasSuffix(pathToLib, ".mtl") {
		return l.emitError(file, lineNum, "file %q does not have the .mtl extension", pathToLib)
	}

	l.pushFrame(fmt.Sprintf("referenced from %s:%d [mtllib]", file, lineNum))

	res, err := asset.NewResource(pathToLib, relTo)
	if err != nil {
		return l.emitError(file, lineNum, err.Error())
	}
	defer res.Close()

	materials, err := l.parseMaterials(res)
	if err != nil {
		return err
	}
	l.popFrame()

	l.materials = materials
	return nil
}

// Wrap the loader state into a Data value without copying.
func (l *WavefrontLoader) snapshot() *geometry.Data {
	return &geometry.Data{
		Name:      l.name,
		Positions: l.positions,
		Normals:   l.normals,
		UVs:       l.uvs,
		Colors:    l.colors,
		Meshes:    l.meshes,
	}
}

func (l *WavefrontLoader) faceCount() int {
	total := 0
	for _, mesh := range l.meshes {
		total += len(mesh.Faces)
	}
	return total
}

// Release the excess slice capacity left over from parsing.
func (l *WavefrontLoader) shrink() {
	l.positions = shrinkVec3(l.positions)
	l.normals = shrinkVec3(l.normals)
	l.uvs = shrinkVec2(l.uvs)
	l.colors = shrinkVec3(l.colors)
	for _, mesh := range l.meshes {
		if cap(mesh.Faces) > len(mesh.Faces) {
			mesh.Faces = append(make([]geometry.Face, 0, len(mesh.Faces)), mesh.Faces...)
		}
	}
}

func shrinkVec3(in []types.Vec3) []types.Vec3 {
	if cap(in) == len(in) {
		return in
	}
	out := make([]types.Vec3, len(in))
	copy(out, in)
	return out
}

func shrinkVec2(in []types.Vec2) []types.Vec2 {
	if cap(in) == len(in) {
		return in
	}
	out := make([]types.Vec2, len(in))
	copy(out, in)
	return out
}

// Generate an error that carries positional information and any frames on
// the error stack. The error is also recorded on the loader's logger.
func (l *WavefrontLoader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)

	var errMsg string
	if file != "" {
		errMsg = strings.Trim(
			fmt.Sprintf("[%s: %d] error: %s\n%s", file, line, msg, strings.Join(l.errStack, "\n")),
			"\n",
		)
	} else {
		errMsg = strings.Trim(
			fmt.Sprintf("error: %s\n%s", msg, strings.Join(l.errStack, "\n")),
			"\n",
		)
	}

	l.logger.Error(errMsg)
	return errors.New(errMsg)
}

// Record a warning that carries positional information.
func (l *WavefrontLoader) emitWarning(file string, line int, msgFormat string, args ...interface{}) {
	l.logger.Warningf("[%s: %d] warning: %s", file, line, fmt.Sprintf(msgFormat, args...))
}

// Push a frame to the error stack.
func (l *WavefrontLoader) pushFrame(msg string) {
	l.errStack = append([]string{msg}, l.errStack...)
}

// Pop a frame from the error stack.
func (l *WavefrontLoader) popFrame() {
	l.errStack = l.errStack[1:]
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) != 4 {
		return types.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}

// Parse a Vec2 row.
func parseVec2(lineTokens []string) (types.Vec2, error) {
	if len(lineTokens) != 3 {
		return types.Vec2{}, fmt.Errorf(`unsupported syntax for "%s"; expected 2 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec2{}
	for tokIdx := 1; tokIdx <= 2; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}

// Parse a float scalar row.
func parseFloat32(lineTokens []string) (float32, error) {
	if len(lineTokens) != 2 {
		return 0, fmt.Errorf(`unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	val, err := strconv.ParseFloat(lineTokens[1], 32)
	if err != nil {
		return 0, err
	}
	return float32(val), nil
}
