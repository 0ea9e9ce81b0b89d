package cmd

import (
	"errors"
	"strings"

	"github.com/sleeepyskies/sobj/asset/geometry/reader"
	"github.com/sleeepyskies/sobj/asset/geometry/writer"
	"github.com/urfave/cli"
)

// Compile geometry to binary format.
func Compile(ctx *cli.Context) error {
	setupLogging(ctx)

	for idx := 0; idx < ctx.NArg(); idx++ {
		objFile := ctx.Args().Get(idx)
		if !strings.HasSuffix(objFile, ".obj") {
			logger.Warningf("skipping unsupported file %s", objFile)
			continue
		}

		logger.Noticef("parsing and compiling geometry: %s", objFile)
		data, err := reader.ReadGeometry(objFile)
		if err != nil {
			return err
		}

		// Display compiled geometry info
		logger.Noticef("geometry information:\n%s", data.Stats())

		zipFile := strings.Replace(objFile, ".obj", ".zip", -1)
		err = writer.WriteGeometry(data, zipFile)
		if err != nil {
			return err
		}
	}

	return nil
}

// Display compiled geometry info.
func ShowGeometryInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing compiled geometry zip file")
	}

	zipFile := ctx.Args().First()
	if !strings.HasSuffix(zipFile, ".zip") {
		return errors.New("only compiled geometry files with a .zip extension are supported")
	}

	data, err := reader.ReadGeometry(zipFile)
	if err != nil {
		return err
	}

	// Display compiled geometry info
	logger.Noticef("geometry information:\n%s", data.Stats())

	return nil
}
