// Пакет dispatch распределяет директории ассетов
// между фиксированным числом работников
package dispatch

import (
	"fmt"
	"sync/atomic"

	"github.com/gh0st17/upkextract/arc/internal/errors"
	"github.com/gh0st17/upkextract/arc/internal/result"
	"github.com/gh0st17/upkextract/arc/internal/scan"
	"github.com/gh0st17/upkextract/console"
	"github.com/gh0st17/upkextract/errtype"
	"github.com/remeh/sizedwaitgroup"
)

// Очередь директорий с общим курсором. Курсор только
// растет, каждый индекс достается ровно одному работнику
type WorkQueue struct {
	dirs   []scan.AssetDir
	cursor atomic.Int64
}

func NewWorkQueue(dirs []scan.AssetDir) *WorkQueue {
	return &WorkQueue{dirs: dirs}
}

// Забирает следующую директорию. Возвращает false,
// если очередь исчерпана
func (q *WorkQueue) Claim() (scan.AssetDir, bool) {
	i := q.cursor.Add(1) - 1
	if i >= int64(len(q.dirs)) {
		return scan.AssetDir{}, false
	}
	return q.dirs[i], true
}

func (q *WorkQueue) Len() int { return len(q.dirs) }

// Обработчик одной директории
type Handler func(dir scan.AssetDir) (path string, n int64, err error)

// Число работников для n директорий: не больше n и не меньше 1
func Workers(requested, n int) int {
	if requested > n {
		requested = n
	}
	if requested < 1 {
		requested = 1
	}
	return requested
}

// Запускает работников, которые забирают директории из q
// и передают их handle. Ошибка одного ассета не
// останавливает остальных. Блокируется до завершения всех
// работников и возвращает результаты в порядке завершения
func Run(q *WorkQueue, workers int, handle Handler, agg *result.Aggregator) []result.Result {
	workers = Workers(workers, q.Len())
	console.Log.Debugf("работников: %d, ассетов: %d", workers, q.Len())

	// Работники сами забирают директории до опустошения
	// очереди, группа только дожидается их завершения
	swg := sizedwaitgroup.New(workers)
	for id := 0; id < workers; id++ {
		swg.Add()
		go func(id int) {
			defer swg.Done()
			work(id, q, handle, agg)
		}(id)
	}
	swg.Wait()

	return agg.Close()
}

func work(id int, q *WorkQueue, handle Handler, agg *result.Aggregator) {
	var done int
	for {
		dir, ok := q.Claim()
		if !ok {
			console.Log.Debugf("работник %d завершен, обработано %d", id, done)
			return
		}

		agg.Add(safeHandle(dir, handle))
		done++
	}
}

// Вызывает handle, превращая панику в ошибку ассета
func safeHandle(dir scan.AssetDir, handle Handler) (r result.Result) {
	r.Dir = dir.Name

	defer func() {
		if p := recover(); p != nil {
			r.Err = errtype.ErrAssetWrite(dir.Name,
				errtype.Join(errors.ErrWorkerPanic, fmt.Errorf("%v", p)))
		}
	}()

	r.Path, r.Bytes, r.Err = handle(dir)
	return r
}
