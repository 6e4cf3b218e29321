package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"flip/batch"
	"flip/convert"
	"flip/geometry"
	"flip/logger"
)

var Cmd = &cli.Command{
	Name:      "flip",
	Usage:     "Flip still images into single-frame gifs",
	ArgsUsage: "<glob pattern>",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "destroy",
			Usage:   "Delete source files after their successful conversion",
			Aliases: []string{"d"},
		},
		&cli.FloatFlag{
			Name:    "scale",
			Usage:   "Uniform scale factor, capped at 10.0",
			Aliases: []string{"s"},
			Value:   1.0,
		},
		&cli.StringFlag{
			Name:  "filter",
			Usage: "Resampling filter: nearest, triangle, catmull-rom, gaussian or lanczos3",
			Value: "lanczos3",
		},
		&cli.UintFlag{
			Name:    "crop",
			Usage:   "Pixels to crop off each of the four edges before scaling",
			Aliases: []string{"c"},
		},
		&cli.StringFlag{
			Name:    "output",
			Usage:   "Output file path, only valid when the pattern matches a single file",
			Aliases: []string{"o"},
		},
	},
	Action: action,
}

func action(ctx context.Context, c *cli.Command) (err error) {
	args := c.Args().Slice()
	if len(args) == 0 {
		cli.ShowAppHelpAndExit(c, 1)
	}
	pattern := args[0]

	console := logger.NewConsole(logger.DefaultOptions())

	filter, err := geometry.ParseFilter(c.String("filter"))
	if err != nil {
		return err
	}

	scale := c.Float("scale")
	if scale <= 0 {
		return fmt.Errorf("scale factor must be positive, got %g", scale)
	}
	if scale > geometry.MaxScale {
		console.Warn("scale %g capped at %g", scale, geometry.MaxScale)
		scale = geometry.ClampScale(scale)
	}

	req := convert.Request{
		Scale:  scale,
		Crop:   int(c.Uint("crop")),
		Filter: filter,
		Output: c.String("output"),
	}

	summary, err := batch.Run(pattern, req, batch.Options{
		Destroy:  c.Bool("destroy"),
		Reporter: &consoleReporter{out: os.Stdout, console: console},
	})
	if err != nil {
		return err
	}

	if summary.Matched == 0 {
		console.Info("no files matched '%s'", pattern)
	}
	fmt.Printf("converted %d image(s) in %s\n",
		summary.Converted, summary.Elapsed.Round(time.Millisecond))
	return nil
}
