package util

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/kovetskiy/lorg"
	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"
	"github.com/urfave/cli/v3"
	"github.com/vaneui/md/attachment"
	"github.com/vaneui/md/includes"
	"github.com/vaneui/md/markdown"
	"github.com/vaneui/md/metadata"
	"github.com/vaneui/md/renderer"
	"github.com/vaneui/md/stdlib"
	"github.com/vaneui/md/ui"
)

func RunMd(ctx context.Context, cmd *cli.Command) error {
	if err := SetLogLevel(cmd); err != nil {
		return err
	}

	if cmd.String("color") == "never" {
		log.GetLogger().SetFormat(
			lorg.NewFormat(
				`${time:2006-01-02 15:04:05.000} ${level:%s:left:true} ${prefix}%s`,
			),
		)
		log.GetLogger().SetOutput(os.Stderr)
	}

	files, err := doublestar.FilepathGlob(cmd.String("files"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		msg := "No files matched"
		if cmd.Bool("ci") {
			log.Warning(msg)
		} else {
			log.Fatal(msg)
		}
	}

	log.Debug("config:")
	for _, f := range cmd.Flags {
		flag := f.Names()
		log.Debugf(nil, "%20s: %v", flag[0], cmd.Value(flag[0]))
	}

	opts, err := Options(cmd)
	if err != nil {
		return err
	}

	fatalErrorHandler := NewErrorHandler(cmd.Bool("continue-on-error"))

	// Loop through files matched by glob pattern
	for _, file := range files {
		log.Infof(
			nil,
			"processing %s",
			file,
		)

		processFile(file, cmd, opts, fatalErrorHandler)
	}

	if !cmd.Bool("watch") {
		return nil
	}

	// A broken file must not stop watching.
	fatalErrorHandler.ContinueOnError = true

	return Watch(ctx, files, func(file string) {
		log.Infof(nil, "file changed, processing %s", file)

		processFile(file, cmd, opts, fatalErrorHandler)
	})
}

// Options builds the compile options from command line flags.
func Options(cmd *cli.Command) (markdown.Options, error) {
	opts := markdown.Options{
		DropFirstH1:     cmd.Bool("drop-h1"),
		Features:        cmd.StringSlice("features"),
		MermaidProvider: cmd.String("mermaid-provider"),
		MermaidScale:    cmd.Float("mermaid-scale"),
		D2Scale:         cmd.Float("d2-scale"),
		D2Format:        cmd.String("d2-format"),
		HighlightStyle:  cmd.String("highlight-style"),
		Sanitize:        cmd.Bool("sanitize"),
		Unsafe:          cmd.Bool("unsafe"),
		TemplatesDir:    cmd.String("templates"),
		// Rasterized diagrams are written next to the page and referenced
		// by name; on stdout there is nowhere to put them.
		LinkAttachments: cmd.String("output-dir") != "",
	}

	if path := cmd.String("theme"); path != "" {
		theme, err := ui.LoadTheme(path)
		if err != nil {
			return opts, err
		}

		opts.Theme = theme
	}

	if cmd.Bool("drop-h1") {
		log.Info(
			"the leading H1 heading will be excluded from the output",
		)
	}

	return opts, nil
}

// processFile renders a single file and returns the path it was written to,
// or an empty string when it was printed or failed.
func processFile(
	file string,
	cmd *cli.Command,
	opts markdown.Options,
	fatalErrorHandler *FatalErrorHandler,
) string {
	data, err := os.ReadFile(file)
	if err != nil {
		fatalErrorHandler.Handle(err, "unable to read file %q", file)
		return ""
	}

	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))

	meta, body, err := metadata.ExtractMeta(
		data,
		cmd.Bool("title-from-h1"),
		cmd.Bool("title-from-filename"),
		file,
	)
	if err != nil {
		fatalErrorHandler.Handle(err, "unable to extract metadata from file %q", file)
		return ""
	}

	body, err = includes.New(filepath.Dir(file), cmd.String("include-path")).Process(body)
	if err != nil {
		fatalErrorHandler.Handle(err, "unable to process includes in file %q", file)
		return ""
	}

	result, err := markdown.Compile(body, meta.Raw, nil, opts)
	if err != nil {
		fatalErrorHandler.Handle(err, "unable to compile file %q", file)
		return ""
	}

	for _, validationError := range result.Errors {
		log.Warningf(nil, "%s: %s", file, validationError.Error())
	}

	html := result.HTML

	if cmd.Bool("standalone") {
		html, err = Page(html, meta, opts)
		if err != nil {
			fatalErrorHandler.Handle(err, "unable to render page for file %q", file)
			return ""
		}
	}

	outputDir := cmd.String("output-dir")
	if outputDir == "" {
		fmt.Println(html)
		return ""
	}

	path, err := writeOutput(outputDir, file, html, cmd.Bool("changes-only"))
	if err != nil {
		fatalErrorHandler.Handle(err, "unable to write output for file %q", file)
		return ""
	}

	err = attachment.Save(outputDir, result.Attachments)
	if err != nil {
		fatalErrorHandler.Handle(err, "unable to save attachments for file %q", file)
		return ""
	}

	return path
}

// Page wraps a rendered document into the md:page template.
func Page(body string, meta *metadata.Meta, opts markdown.Options) (string, error) {
	lib, err := stdlib.New(nil)
	if err != nil {
		return "", err
	}

	if opts.TemplatesDir != "" {
		err = lib.Load(opts.TemplatesDir)
		if err != nil {
			return "", err
		}
	}

	var styles template.CSS
	if slices.Contains(opts.Features, "highlight") {
		styles, err = renderer.HighlightCSS(opts.HighlightStyle)
		if err != nil {
			return "", err
		}
	}

	var buffer bytes.Buffer

	err = lib.Execute(&buffer, "md:page", struct {
		Lang        string
		Title       string
		Stylesheets []string
		Styles      template.CSS
		Mermaid     bool
		Body        template.HTML
	}{
		Lang:        meta.Lang,
		Title:       meta.Title,
		Stylesheets: meta.Stylesheets,
		Styles:      styles,
		Mermaid: slices.Contains(opts.Features, "mermaid") &&
			opts.MermaidProvider != "mermaid-go",
		Body: template.HTML(body),
	})
	if err != nil {
		return "", err
	}

	return buffer.String(), nil
}

func writeOutput(dir, file, html string, changesOnly bool) (string, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return "", karma.Format(err, "unable to create output directory: %s", dir)
	}

	base := filepath.Base(file)
	path := filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+".html")

	if changesOnly {
		contentHash := getSHA1Hash(html)

		log.Debugf(
			nil,
			"content hash: %s",
			contentHash,
		)

		existing, err := os.ReadFile(path)
		if err == nil && getSHA1Hash(string(existing)) == contentHash {
			log.Infof(
				nil,
				"page %q is already up to date",
				path,
			)

			return path, nil
		}
	}

	err = os.WriteFile(path, []byte(html), 0o644)
	if err != nil {
		return "", karma.Format(err, "unable to write %s", path)
	}

	log.Infof(nil, "page written: %s", path)

	return path, nil
}

// CheckMutuallyExclusiveTitleFlags rejects --title-from-h1 together with
// --title-from-filename.
func CheckMutuallyExclusiveTitleFlags(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("title-from-h1") && cmd.Bool("title-from-filename") {
		return ctx, fmt.Errorf("--title-from-h1 and --title-from-filename are mutually exclusive")
	}

	return ctx, nil
}

func ConfigFilePath() string {
	fp, err := os.UserConfigDir()
	if err != nil {
		log.Fatal(err)
	}
	return filepath.Join(fp, "md.toml")
}

func SetLogLevel(cmd *cli.Command) error {
	logLevel := cmd.String("log-level")
	switch strings.ToUpper(logLevel) {
	case lorg.LevelTrace.String():
		log.SetLevel(lorg.LevelTrace)
	case lorg.LevelDebug.String():
		log.SetLevel(lorg.LevelDebug)
	case lorg.LevelInfo.String():
		log.SetLevel(lorg.LevelInfo)
	case lorg.LevelWarning.String():
		log.SetLevel(lorg.LevelWarning)
	case lorg.LevelError.String():
		log.SetLevel(lorg.LevelError)
	case lorg.LevelFatal.String():
		log.SetLevel(lorg.LevelFatal)
	default:
		return fmt.Errorf("unknown log level: %s", logLevel)
	}

	return nil
}

func getSHA1Hash(input string) string {
	hash := sha1.New()
	hash.Write([]byte(input))
	return hex.EncodeToString(hash.Sum(nil))
}
