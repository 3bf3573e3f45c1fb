// Пакет params описывает параметры командной строки
package params

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gh0st17/upkextract/arc"
	"github.com/gh0st17/upkextract/errtype"
	"github.com/gh0st17/upkextract/userinput"
	"github.com/urfave/cli/v2"
)

type Params struct {
	PackagePath string
	OutputDir   string // Абсолютный путь
	EmitMeta    bool
	EmitPreview bool
	Workers     int
	PrintStat   bool
	PrintList   bool
	Logging     bool
	KeepStaging bool
}

// Интерактивен ли ввод, подменяется в тестах
var isInteractive = func() bool { return !userinput.IsNonInteractive() }

var flags = []cli.Flag{
	&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: outputDirDesc},
	&cli.BoolFlag{Name: "meta", Aliases: []string{"outputMeta"}, Usage: metaDesc},
	&cli.BoolFlag{Name: "no-preview", Aliases: []string{"noPreview"}, Usage: noPreviewDesc},
	&cli.IntFlag{Name: "jobs", Aliases: []string{"j"}, Value: runtime.NumCPU(), Usage: jobsDesc},
	&cli.BoolFlag{Name: "stat", Aliases: []string{"s"}, Usage: statDesc},
	&cli.BoolFlag{Name: "list", Aliases: []string{"l"}, Usage: listDesc},
	&cli.BoolFlag{Name: "log", Usage: logDesc},
	&cli.BoolFlag{Name: "keep-staging", Usage: keepDesc},
}

// Возвращает приложение, которое разбирает аргументы
// и передает полученные [Params] в run
func NewApp(run func(*Params) error) *cli.App {
	cli.VersionFlag = &cli.BoolFlag{Name: "version", Aliases: []string{"V"}, Usage: versionDesc}
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(c.App.Writer, versionText, c.App.Version)
	}

	app := cli.NewApp()
	app.Name = appName
	app.Usage = appUsage
	app.UsageText = usageText
	app.Version = version
	app.HideHelpCommand = true
	app.Flags = flags
	app.Action = func(c *cli.Context) error {
		p, err := parse(c)
		if err != nil {
			return err
		}
		return run(p)
	}

	return app
}

// Переносит флаги, указанные после пути к пакету, в начало,
// чтобы работал порядок `upkextract <пакет> [Флаги]`.
// Аргументы после "--" не трогаются
func NormalizeArgs(args []string) []string {
	if len(args) < 2 {
		return args
	}

	var (
		valued   = valueFlags()
		flagArgs []string
		posArgs  []string
		rest     = args[1:]
	)

	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		switch {
		case arg == "--":
			posArgs = append(posArgs, rest[i:]...)
			i = len(rest)
		case len(arg) > 1 && arg[0] == '-':
			flagArgs = append(flagArgs, arg)

			// Значение в форме --name=value остается в том же аргументе
			if _, ok := valued[strings.TrimLeft(arg, "-")]; ok && i+1 < len(rest) {
				i++
				flagArgs = append(flagArgs, rest[i])
			}
		default:
			posArgs = append(posArgs, arg)
		}
	}

	out := make([]string, 0, len(args))
	out = append(out, args[0])
	out = append(out, flagArgs...)
	return append(out, posArgs...)
}

// Имена флагов, которые принимают значение
func valueFlags() map[string]struct{} {
	names := map[string]struct{}{}
	for _, f := range flags {
		if _, ok := f.(*cli.BoolFlag); ok {
			continue
		}
		for _, name := range f.Names() {
			names[name] = struct{}{}
		}
	}
	return names
}

// Собирает Params из контекста cli
func parse(c *cli.Context) (*Params, error) {
	p := &Params{
		EmitMeta:    c.Bool("meta"),
		EmitPreview: !c.Bool("no-preview"),
		Workers:     c.Int("jobs"),
		PrintStat:   c.Bool("stat"),
		PrintList:   c.Bool("list"),
		Logging:     c.Bool("log"),
		KeepStaging: c.Bool("keep-staging"),
	}

	if p.Workers < 1 {
		return nil, errtype.ErrRuntime(ErrJobs.Error(), nil)
	}

	if err := checkPaths(c, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Проверяет путь к пакету и определяет директорию
// для распаковки
func checkPaths(c *cli.Context, p *Params) error {
	switch c.NArg() {
	case 0:
	case 1:
		p.PackagePath = c.Args().First()
	default:
		return errtype.ErrRuntime(ErrTooManyArgs.Error(), nil)
	}

	if p.PackagePath == "" || userinput.CheckPackage(p.PackagePath) != nil {
		if !isInteractive() {
			if p.PackagePath == "" {
				return errtype.ErrRuntime(ErrArchivePath.Error(), nil)
			}
			return errtype.ErrRuntime(p.PackagePath, userinput.CheckPackage(p.PackagePath))
		}

		path, err := userinput.PackagePath(c.App.Reader, c.App.Writer, userinput.CheckPackage)
		if err != nil {
			return errtype.ErrRuntime(ErrArchivePath.Error(), err)
		}
		p.PackagePath = path
	}

	outputDir := c.String("output")
	if outputDir == "" {
		outputDir = filepath.Dir(p.PackagePath)
	}

	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return errtype.ErrRuntime(ErrOutputDir.Error(), err)
	}
	p.OutputDir = abs

	return nil
}

// Возвращает параметры распаковки
func (p Params) ToOptions() arc.Options {
	return arc.Options{
		OutputDir:   p.OutputDir,
		EmitMeta:    p.EmitMeta,
		EmitPreview: p.EmitPreview,
		Workers:     p.Workers,
		KeepStaging: p.KeepStaging,
	}
}
