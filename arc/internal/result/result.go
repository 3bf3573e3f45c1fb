// Пакет result собирает результаты обработки ассетов
package result

import (
	"github.com/gh0st17/upkextract/console"
)

// Результат обработки одного ассета
type Result struct {
	Dir   string // Идентификатор директории ассета
	Path  string // Итоговый путь, если он был определен
	Bytes int64
	Err   error
}

func (r Result) OK() bool { return r.Err == nil }

// Сборщик результатов. Работники отправляют результаты в
// канал, единственная горутина добавляет их в список и
// сразу печатает успешные. Ошибки печатаются после
// завершения всех работников
type Aggregator struct {
	in      chan Result
	done    chan struct{}
	results []Result
	out     *console.Printer
}

// Возвращает новый сборщик. При size равном числу
// ассетов отправка никогда не блокирует работника
func NewAggregator(out *console.Printer, size int) *Aggregator {
	a := &Aggregator{
		in:   make(chan Result, size),
		done: make(chan struct{}),
		out:  out,
	}

	go a.collect()

	return a
}

func (a *Aggregator) collect() {
	defer close(a.done)
	for r := range a.in {
		if r.OK() {
			a.out.Println(r.Path)
		}
		a.results = append(a.results, r)
	}
}

func (a *Aggregator) Add(r Result) { a.in <- r }

// Дожидается обработки всех результатов и возвращает
// их в порядке завершения
func (a *Aggregator) Close() []Result {
	close(a.in)
	<-a.done
	return a.results
}

// Возвращает только неудачные результаты
func Failures(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}

// Печатает ошибки: идентификатор директории и сообщение
func PrintFailures(out *console.Printer, results []Result) {
	for _, r := range Failures(results) {
		out.Printf("%s: %v\n", r.Dir, r.Err)
	}
}
