package arc

import (
	"github.com/dustin/go-humanize"
	"github.com/gh0st17/upkextract/arc/internal/result"
	"github.com/gh0st17/upkextract/console"
)

// Итог распаковки
type Report struct {
	Assets   int // Найдено директорий ассетов
	Written  int // Успешно собрано ассетов
	Failures []result.Result
	Bytes    int64 // Всего записано байт
}

func (rep *Report) collect(results []result.Result) {
	for _, r := range results {
		rep.Bytes += r.Bytes
		if r.OK() {
			rep.Written++
		}
	}
	rep.Failures = result.Failures(results)
}

// Печатает ошибки ассетов, затем итог
func (rep Report) Print(out *console.Printer) {
	if len(rep.Failures) > 0 {
		out.Printf("\nОшибки (%d):\n", len(rep.Failures))
		result.PrintFailures(out, rep.Failures)
	}

	out.Printf(
		"\nАссетов: %d, распаковано: %d, ошибок: %d, записано: %s\n",
		rep.Assets, rep.Written, len(rep.Failures), humanize.Bytes(uint64(rep.Bytes)),
	)
}
