package cmd

import (
	"strings"

	"github.com/sleeepyskies/sobj/asset/geometry/reader"
	"github.com/urfave/cli"
)

// Parse wavefront object files and display a summary of their contents.
func Inspect(ctx *cli.Context) error {
	setupLogging(ctx)

	for idx := 0; idx < ctx.NArg(); idx++ {
		objFile := ctx.Args().Get(idx)
		if !strings.HasSuffix(objFile, ".obj") {
			logger.Warningf("skipping unsupported file %s", objFile)
			continue
		}

		loader := reader.NewWavefrontLoader()
		loader.SetTriangulate(!ctx.Bool("no-triangulate"))
		if err := loader.Load(objFile); err != nil {
			return err
		}

		// Steal resets the loader so grab diagnostics first.
		warnings := loader.Warnings()
		data, err := loader.Steal()
		if err != nil {
			return err
		}

		logger.Noticef("geometry information:\n%s", data.Stats())
		bbox := data.BBox()
		logger.Noticef("bounding box: min %v; max %v", bbox[0], bbox[1])
		if len(warnings) > 0 {
			logger.Noticef("parsed %s with %d warnings", objFile, len(warnings))
		}
	}

	return nil
}
