package main

import (
	"context"
	"os"

	"github.com/reconquest/pkg/log"
	"github.com/urfave/cli/v3"
	"github.com/vaneui/md/util"
)

const (
	version     = "1.0.0"
	usage       = "A tool for rendering markdown into design-system HTML."
	description = `md renders markdown files into HTML built from design-system primitives: titles, text, links, lists, badges, cards and dividers. Documentation is available here: https://github.com/vaneui/md`
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:                  "md",
		Usage:                 usage,
		Description:           description,
		Version:               version,
		Flags:                 util.Flags,
		EnableShellCompletion: true,
		HideHelpCommand:       true,
		Before:                util.CheckMutuallyExclusiveTitleFlags,
		Action:                util.RunMd,
	}
}

func main() {
	if err := newCommand().Run(context.TODO(), os.Args); err != nil {
		log.Fatal(err)
	}
}
