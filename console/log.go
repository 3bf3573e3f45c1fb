package console

import (
	"io"

	"github.com/op/go-logging"
)

const module = "upkextract"

var Log = logging.MustGetLogger(module)

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:.4s} %{shortfunc}: %{message}`,
)

// Направляет логгер в w. Без debug печатаются
// только предупреждения и ошибки
func SetupLogger(w io.Writer, debug bool) {
	backend := logging.NewLogBackend(w, "", 0)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))

	if debug {
		leveled.SetLevel(logging.DEBUG, module)
	} else {
		leveled.SetLevel(logging.WARNING, module)
	}

	logging.SetBackend(leveled)
}
