package main

import (
	"os"

	"github.com/sleeepyskies/sobj/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "sobj"
	app.Usage = "parse wavefront object files into geometry data"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "inspect",
			Usage: "parse wavefront object files and display their contents",
			Description: `
Parse a wavefront object file together with any material libraries it
references and display a summary of the parsed geometry: attribute lists,
meshes, materials and the bounding box that encloses all positions.

Parse warnings are reported without aborting the run; malformed content
that cannot be recovered from aborts with an error that points at the
offending file and line.`,
			ArgsUsage: "file1.obj file2.obj ...",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "no-triangulate",
					Usage: "keep quad faces instead of splitting them into triangles",
				},
			},
			Action: cmd.Inspect,
		},
		{
			Name:  "compile",
			Usage: "compile wavefront object files into a binary compressed format",
			Description: `
Parse geometry from a wavefront obj file and package the attribute lists,
meshes and materials into a zip archive which can be loaded back without
re-parsing the original text files.`,
			ArgsUsage: "file1.obj file2.obj ...",
			Action:    cmd.Compile,
		},
		{
			Name:      "info",
			Usage:     "display information about a compiled geometry file",
			ArgsUsage: "file.zip",
			Action:    cmd.ShowGeometryInfo,
		},
	}

	app.Run(os.Args)
}
