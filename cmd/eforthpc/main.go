package main

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v2"

	"github.com/smemsky/eforthpc/floppy"
	"github.com/smemsky/eforthpc/machine"
)

func main() {
	app := &cli.App{
		Name:  "eforthpc",
		Usage: "run an EForthPC floppy image in a terminal console",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "boot",
				Aliases: []string{"b"},
				Usage:   "boot ROM image loaded at cold boot",
				Value:   "resources/rpcboot.bin",
			},
			&cli.IntFlag{
				Name:    "banks",
				Aliases: []string{"m"},
				Usage:   "memory bank count (8KiB each, max 8)",
				Value:   8,
			},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 1 {
				cli.ShowAppHelp(c)
				return cli.Exit("missing disk image argument", 1)
			}

			diskPath := c.Args().Get(0)
			diskImage, err := os.ReadFile(diskPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("reading disk image: %v", err), 1)
			}

			m := machine.New(c.Int("banks"))
			m.SetLogger(stderrLogger{})

			bootImage, err := os.ReadFile(c.String("boot"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "no boot image at %s, starting with a blank boot window\n", c.String("boot"))
				bootImage = nil
			}
			m.LoadBootImage(bootImage)
			m.InsertDisk(floppy.Medium{Name: diskPath, Image: diskImage})
			m.Boot()

			return runUI(m)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type stderrLogger struct{}

func (stderrLogger) Log(msg string) { fmt.Fprintln(os.Stderr, msg) }
