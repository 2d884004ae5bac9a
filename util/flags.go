package util

import (
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	altsrctoml "github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

var filename string

// sources reads a flag from the MD_<NAME> environment variable, then from the
// key of the same name in the configuration file.
func sources(name string) cli.ValueSourceChain {
	env := "MD_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))

	return cli.NewValueSourceChain(
		cli.EnvVar(env),
		altsrctoml.TOML(name, altsrc.NewStringPtrSourcer(&filename)),
	)
}

var Flags = []cli.Flag{
	&cli.StringFlag{
		Name:      "files",
		Aliases:   []string{"f"},
		Value:     "",
		Usage:     "use specified markdown file(s) for converting to html. Supports file globbing patterns (needs to be quoted).",
		TakesFile: true,
		Sources:   sources("files"),
	},
	&cli.StringFlag{
		Name:      "output-dir",
		Aliases:   []string{"o"},
		Value:     "",
		Usage:     "write <name>.html and rendered diagrams into the directory instead of printing html to stdout.",
		TakesFile: true,
		Sources:   sources("output-dir"),
	},
	&cli.BoolFlag{
		Name:    "standalone",
		Value:   false,
		Usage:   "wrap the output into a complete html page.",
		Sources: sources("standalone"),
	},
	&cli.StringFlag{
		Name:      "theme",
		Value:     "",
		Usage:     "merge the YAML theme file over the built-in theme.",
		TakesFile: true,
		Sources:   sources("theme"),
	},
	&cli.StringFlag{
		Name:      "templates",
		Value:     "",
		Usage:     "load *.html template overrides from the directory.",
		TakesFile: true,
		Sources:   sources("templates"),
	},
	&cli.StringFlag{
		Name:      "include-path",
		Value:     "",
		Usage:     "Path for shared includes, used as a fallback if the include doesn't exist in the current directory.",
		TakesFile: true,
		Sources:   sources("include-path"),
	},
	&cli.BoolFlag{
		Name:    "continue-on-error",
		Value:   false,
		Usage:   "don't exit if an error occurs while processing a file, continue processing remaining files.",
		Sources: sources("continue-on-error"),
	},
	&cli.BoolFlag{
		Name:    "changes-only",
		Value:   false,
		Usage:   "don't rewrite output files whose content didn't change.",
		Sources: sources("changes-only"),
	},
	&cli.BoolFlag{
		Name:    "drop-h1",
		Value:   false,
		Usage:   "don't include the first H1 heading in the output.",
		Sources: sources("drop-h1"),
	},
	&cli.BoolFlag{
		Name:    "title-from-h1",
		Value:   false,
		Usage:   "extract page title from a leading H1 heading when the metadata doesn't set one.",
		Sources: sources("title-from-h1"),
	},
	&cli.BoolFlag{
		Name:    "title-from-filename",
		Value:   false,
		Usage:   "use the file name as page title when the metadata doesn't set one.",
		Sources: sources("title-from-filename"),
	},
	&cli.BoolFlag{
		Name:    "sanitize",
		Value:   false,
		Usage:   "pass the output through an html sanitizer.",
		Sources: sources("sanitize"),
	},
	&cli.BoolFlag{
		Name:    "unsafe",
		Value:   false,
		Usage:   "keep raw html and dangerous link destinations.",
		Sources: sources("unsafe"),
	},
	&cli.BoolFlag{
		Name:    "watch",
		Aliases: []string{"w"},
		Value:   false,
		Usage:   "render files again when they change.",
		Sources: sources("watch"),
	},
	&cli.StringFlag{
		Name:    "color",
		Value:   "auto",
		Usage:   "display logs in color. Possible values: auto, never.",
		Sources: sources("color"),
	},
	&cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		Usage:   "set the log level. Possible values: TRACE, DEBUG, INFO, WARNING, ERROR, FATAL.",
		Sources: sources("log-level"),
	},
	&cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Value:       ConfigFilePath(),
		Usage:       "use the specified configuration file.",
		TakesFile:   true,
		Sources:     cli.NewValueSourceChain(cli.EnvVar("MD_CONFIG")),
		Destination: &filename,
	},
	&cli.BoolFlag{
		Name:    "ci",
		Value:   false,
		Usage:   "run on CI mode. It won't fail if files are not found.",
		Sources: sources("ci"),
	},
	&cli.StringFlag{
		Name:    "mermaid-provider",
		Value:   "browser",
		Usage:   "defines the mermaid provider to use. Supported options are: browser, mermaid-go.",
		Sources: sources("mermaid-provider"),
	},
	&cli.FloatFlag{
		Name:    "mermaid-scale",
		Value:   1.0,
		Usage:   "defines the scaling factor for mermaid renderings.",
		Sources: sources("mermaid-scale"),
	},
	&cli.FloatFlag{
		Name:    "d2-scale",
		Value:   1.0,
		Usage:   "defines the scaling factor for d2 renderings.",
		Sources: sources("d2-scale"),
	},
	&cli.StringFlag{
		Name:    "d2-format",
		Value:   "svg",
		Usage:   "defines the output of d2 renderings. Supported options are: svg, png.",
		Sources: sources("d2-format"),
	},
	&cli.StringFlag{
		Name:    "highlight-style",
		Value:   "github",
		Usage:   "chroma style used for the highlighting stylesheet of standalone pages.",
		Sources: sources("highlight-style"),
	},
	&cli.StringSliceFlag{
		Name:    "features",
		Value:   []string{"mermaid", "highlight"},
		Usage:   "Enables optional features. Current features: anchors, d2, highlight, mermaid, mkdocsadmonitions",
		Sources: sources("features"),
	},
}
