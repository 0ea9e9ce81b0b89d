package reader

import (
	"bufio"
	"os"
	"strings"

	"github.com/sleeepyskies/sobj/asset"
	"github.com/sleeepyskies/sobj/asset/geometry"
	"github.com/sleeepyskies/sobj/asset/texture"
	"github.com/sleeepyskies/sobj/types"
)

// Parse a wavefront material library into a material table keyed by
// material name. Line numbers in diagnostics are 0-based and local to the
// library file.
func (l *WavefrontLoader) parseMaterials(res *asset.Resource) (map[string]*geometry.Material, error) {
	l.logger.Infof("parsing material library %q", res.Path())

	var (
		lineNum     int
		materials   = make(map[string]*geometry.Material)
		curMaterial *geometry.Material
	)

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		lineTokens := strings.Fields(line)

		id := identifyMtlLine(line)
		switch id {
		case mtlBlank, mtlComment:
		case mtlUnknown:
			l.emitWarning(res.Path(), lineNum, "skipping unknown directive %q", lineTokens[0])
		case mtlNewMaterial:
			name := lineRemainder(line, id.String())
			if _, exists := materials[name]; exists {
				return nil, l.emitError(res.Path(), lineNum, "material %q already defined", name)
			}
			curMaterial = geometry.NewMaterial(name)
			materials[name] = curMaterial
		default:
			if curMaterial == nil {
				return nil, l.emitError(res.Path(), lineNum, `got %q without a "newmtl"`, lineTokens[0])
			}

			switch id {
			case mtlAmbient, mtlDiffuse, mtlSpecular:
				var target *types.Vec3
				switch id {
				case mtlAmbient:
					target = &curMaterial.Ambient
				case mtlDiffuse:
					target = &curMaterial.Diffuse
				case mtlSpecular:
					target = &curMaterial.Specular
				}
				v, err := parseVec3(lineTokens)
				if err != nil {
					return nil, l.emitError(res.Path(), lineNum, err.Error())
				}
				*target = v
			case mtlRoughness:
				val, err := parseFloat32(lineTokens)
				if err != nil {
					return nil, l.emitError(res.Path(), lineNum, err.Error())
				}
				curMaterial.Roughness = val
			case mtlAlpha:
				val, err := parseFloat32(lineTokens)
				if err != nil {
					return nil, l.emitError(res.Path(), lineNum, err.Error())
				}
				curMaterial.Alpha = val
			case mtlAmbientMap, mtlDiffuseMap, mtlSpecularMap, mtlRoughnessMap, mtlAlphaMap:
				if err := l.setTextureSlot(res, lineNum, id, curMaterial, lineRemainder(line, id.String())); err != nil {
					return nil, err
				}
			}
		}

		lineNum++
	}
	if err := scanner.Err(); err != nil {
		return nil, l.emitError(res.Path(), lineNum, err.Error())
	}

	return materials, nil
}

// Load the texture referenced by a map directive and assign it to the slot
// the directive selects. Missing texture files are skipped with a warning;
// a texture that exists but cannot be decoded is an error.
func (l *WavefrontLoader) setTextureSlot(res *asset.Resource, lineNum int, id mtlIdentifier, material *geometry.Material, pathToTexture string) error {
	var target **texture.Texture
	switch id {
	case mtlAmbientMap:
		target = &material.AmbientMap
	case mtlDiffuseMap:
		target = &material.DiffuseMap
	case mtlSpecularMap:
		target = &material.SpecularMap
	case mtlRoughnessMap:
		target = &material.RoughnessMap
	case mtlAlphaMap:
		target = &material.AlphaMap
	}

	texRes, err := asset.NewResource(pathToTexture, res)
	if err != nil {
		if os.IsNotExist(err) {
			l.emitWarning(res.Path(), lineNum, "ignoring missing texture %q", pathToTexture)
			return nil
		}
		return l.emitError(res.Path(), lineNum, err.Error())
	}
	defer texRes.Close()

	tex, err := texture.New(texRes)
	if err != nil {
		return l.emitError(res.Path(), lineNum, err.Error())
	}

	if *target != nil {
		l.emitWarning(res.Path(), lineNum, "material %q defines multiple %q entries; the last one wins", material.Name, id.String())
	}
	*target = tex
	return nil
}
