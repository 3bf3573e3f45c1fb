package dispatch_test

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gh0st17/upkextract/arc/internal/dispatch"
	"github.com/gh0st17/upkextract/arc/internal/result"
	"github.com/gh0st17/upkextract/arc/internal/scan"
	"github.com/gh0st17/upkextract/errtype"
)

func makeDirs(n int) []scan.AssetDir {
	dirs := make([]scan.AssetDir, n)
	for i := range dirs {
		dirs[i] = scan.AssetDir{Name: fmt.Sprintf("%04x", i), Path: fmt.Sprint("/stage/", i)}
	}
	return dirs
}

func run(dirs []scan.AssetDir, workers int, handle dispatch.Handler) []result.Result {
	q := dispatch.NewWorkQueue(dirs)
	return dispatch.Run(q, workers, handle, result.NewAggregator(nil, len(dirs)))
}

func TestRunEachDirOnce(t *testing.T) {
	const n = 500

	var (
		mu   sync.Mutex
		seen = map[string]int{}
	)

	results := run(makeDirs(n), 8, func(dir scan.AssetDir) (string, int64, error) {
		mu.Lock()
		seen[dir.Name]++
		mu.Unlock()
		return "out/" + dir.Name, 1, nil
	})

	if len(results) != n {
		t.Fatalf("expected %d results got %d", n, len(results))
	}
	if len(seen) != n {
		t.Fatalf("expected %d distinct dirs got %d", n, len(seen))
	}
	for name, count := range seen {
		if count != 1 {
			t.Errorf("'%s' handled %d times", name, count)
		}
	}
}

func TestRunFailuresDoNotStopPool(t *testing.T) {
	const n = 64

	results := run(makeDirs(n), 4, func(dir scan.AssetDir) (string, int64, error) {
		if dir.Name[len(dir.Name)-1]%2 == 0 {
			return "", 0, errtype.ErrMissingPath(dir.Name)
		}
		return dir.Name, 0, nil
	})

	if len(results) != n {
		t.Fatalf("expected %d results got %d", n, len(results))
	}

	failed := result.Failures(results)
	if len(failed) != n/2 {
		t.Errorf("expected %d failures got %d", n/2, len(failed))
	}
	for _, r := range failed {
		if !errors.Is(r.Err, errtype.MissingPathError) {
			t.Errorf("%s: unexpected error %v", r.Dir, r.Err)
		}
	}
}

func TestRunPanicBecomesFailure(t *testing.T) {
	results := run(makeDirs(3), 2, func(dir scan.AssetDir) (string, int64, error) {
		if dir.Name == "0001" {
			panic("boom")
		}
		return dir.Name, 0, nil
	})

	if len(results) != 3 {
		t.Fatalf("expected 3 results got %d", len(results))
	}

	failed := result.Failures(results)
	if len(failed) != 1 || failed[0].Dir != "0001" {
		t.Fatalf("expected single failure for 0001, got %v", failed)
	}
	if !errors.Is(failed[0].Err, errtype.AssetWriteError) {
		t.Errorf("expected AssetWriteError, got %v", failed[0].Err)
	}
}

func TestRunMoreWorkersThanDirs(t *testing.T) {
	var calls atomic.Int32

	results := run(makeDirs(2), 64, func(dir scan.AssetDir) (string, int64, error) {
		calls.Add(1)
		return dir.Name, 0, nil
	})

	if len(results) != 2 || calls.Load() != 2 {
		t.Errorf("expected 2 results and calls, got %d and %d", len(results), calls.Load())
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	const workers = 3

	var inFlight, peak atomic.Int32

	results := run(makeDirs(200), workers, func(dir scan.AssetDir) (string, int64, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		runtime.Gosched()
		inFlight.Add(-1)
		return dir.Name, 0, nil
	})

	if len(results) != 200 {
		t.Fatalf("expected 200 results got %d", len(results))
	}
	if peak.Load() > workers {
		t.Errorf("expected at most %d concurrent handlers, got %d", workers, peak.Load())
	}
}

func TestWorkers(t *testing.T) {
	cases := []struct{ requested, n, want int }{
		{8, 100, 8},
		{8, 3, 3},
		{0, 10, 1},
		{-5, 10, 1},
		{4, 0, 1},
	}

	for _, c := range cases {
		if got := dispatch.Workers(c.requested, c.n); got != c.want {
			t.Errorf("Workers(%d, %d): expected %d got %d", c.requested, c.n, c.want, got)
		}
	}
}

func TestClaimConcurrent(t *testing.T) {
	const n = 1000

	var (
		q       = dispatch.NewWorkQueue(makeDirs(n))
		claimed atomic.Int32
		wg      sync.WaitGroup
	)

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if _, ok := q.Claim(); !ok {
					return
				}
				claimed.Add(1)
			}
		}()
	}
	wg.Wait()

	if claimed.Load() != n {
		t.Errorf("expected %d claims got %d", n, claimed.Load())
	}
	if _, ok := q.Claim(); ok {
		t.Error("exhausted queue returned a dir")
	}
}
