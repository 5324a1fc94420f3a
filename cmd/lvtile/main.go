package main

import (
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"runtime"

	"github.com/bodgit/lvtile"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "lvtile"
	app.Usage = "Convert slippy map tiles into LVGL binary images"
	app.ArgsUsage = "INPUT OUTPUT"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Value:   runtime.NumCPU(),
			Usage:   "number of worker threads",
		},
		&cli.BoolFlag{
			Name:    "force",
			Aliases: []string{"f"},
			Usage:   "rebuild tiles even if the output file already exists",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "suppress per-tile progress output",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() < 2 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		input, output := c.Args().Get(0), c.Args().Get(1)

		// The output root is created even when the input root turns
		// out to be unusable.
		if err := os.MkdirAll(output, 0755); err != nil {
			return cli.NewExitError(err, 1)
		}

		if info, err := os.Stat(input); err != nil || !info.IsDir() {
			return cli.NewExitError(fmt.Sprintf("input folder not found or not a directory: %s", input), 1)
		}

		logger := log.New(os.Stderr, "", 0)
		if c.Bool("quiet") {
			logger.SetOutput(ioutil.Discard)
		}

		jobs := c.Int("jobs")
		if jobs < 1 {
			jobs = 1
		}

		conv := lvtile.New(lvtile.Config{
			InputRoot:  input,
			OutputRoot: output,
			Jobs:       jobs,
			Force:      c.Bool("force"),
		}, logger)

		if _, err := conv.Convert(); err != nil {
			return cli.NewExitError(err, 1)
		}

		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
