package main

import (
	"os"

	"github.com/gh0st17/upkextract/arc"
	"github.com/gh0st17/upkextract/console"
	"github.com/gh0st17/upkextract/errtype"
	"github.com/gh0st17/upkextract/params"
	"github.com/spf13/afero"
)

func main() {
	app := params.NewApp(run)
	if err := app.Run(params.NormalizeArgs(os.Args)); err != nil {
		errtype.HandleError(err)
	}
}

func run(p *params.Params) (err error) {
	out := console.NewPrinter(os.Stdout)
	defer out.Close()
	console.SetupLogger(out, p.Logging)

	a, err := arc.NewArc(p.ToOptions(), afero.NewOsFs(), out)
	if err != nil {
		return err
	}

	f, err := os.Open(p.PackagePath)
	if err != nil {
		return errtype.ErrRuntime(p.PackagePath, err)
	}
	defer f.Close()

	switch {
	case p.PrintStat:
		return a.ViewStat(f)
	case p.PrintList:
		return a.ViewList(f)
	}

	rep, err := a.Extract(f)
	if err != nil {
		return err
	}
	rep.Print(out)

	if n := len(rep.Failures); n > 0 {
		return errtype.ErrPartial(n, rep.Assets)
	}
	return nil
}
