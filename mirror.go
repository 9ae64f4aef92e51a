package bitmap

import (
	"runtime"
	"sync/atomic"

	"github.com/gogpu/bitmap/internal/parallel"
)

// minParallelRows is the smallest band handed to one worker.
const minParallelRows = 16

// maxWorkers holds the worker setting only. Pools are owned by the call
// that runs them, so no pool state is shared between goroutines.
var maxWorkers atomic.Int64

// SetMaxWorkers sets the number of goroutines used by parallel mirroring.
// n <= 0 selects GOMAXPROCS. Calls already running keep their workers.
func SetMaxWorkers(n int) {
	maxWorkers.Store(int64(max(n, 0)))
}

// MaxWorkers returns the number of goroutines parallel mirroring will use.
func MaxWorkers() int {
	if n := int(maxWorkers.Load()); n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// newRowPool returns a pool for splitting n rows, or nil when n rows are
// better handled on the caller.
func newRowPool(n int, parallelOK bool) *parallel.Pool {
	workers := MaxWorkers()
	if !parallelOK || n < 2*minParallelRows || workers < 2 {
		return nil
	}
	workers = min(workers, n/minParallelRows)
	Logger().Debug("bitmap: parallel rows", "rows", n, "workers", workers)
	return parallel.NewPool(workers)
}

// forRows calls fn over bands of [0, n), on p when it is set and on the
// caller otherwise.
func forRows(p *parallel.Pool, n int, fn func(lo, hi int)) {
	if p == nil || n < 2*minParallelRows {
		fn(0, n)
		return
	}
	p.Rows(n, minParallelRows, fn)
}

// Mirror flips the view in place: vertical reverses the row order and
// horizontal reverses the pixel order inside every row. With allowParallel
// the rows are split across the worker pool; the call returns only after
// every row is done.
func (v View) Mirror(horizontal, vertical bool, allowParallel bool) error {
	if err := v.checkWritable(); err != nil {
		return err
	}
	if v.layout.IsEmpty() {
		return nil
	}
	h := v.layout.height
	p := newRowPool(h, allowParallel && (horizontal || vertical))
	if p != nil {
		defer p.Close()
	}

	if vertical {
		forRows(p, h/2, func(lo, hi int) {
			for y := lo; y < hi; y++ {
				top, _ := v.layout.Scanline(v.data, y)
				bottom, _ := v.layout.Scanline(v.data, h-1-y)
				swapBytes(top, bottom)
			}
		})
	}
	if horizontal {
		pbs := v.layout.pixelByteSize
		w := v.layout.width
		forRows(p, h, func(lo, hi int) {
			for y := lo; y < hi; y++ {
				row, _ := v.layout.Scanline(v.data, y)
				for l, r := 0, w-1; l < r; l, r = l+1, r-1 {
					swapBytes(row[l*pbs:l*pbs+pbs], row[r*pbs:r*pbs+pbs])
				}
			}
		})
	}
	return nil
}

func swapBytes(a, b []byte) {
	for i := range a {
		a[i], b[i] = b[i], a[i]
	}
}

// Mirror flips t in place.
func (t TypedView[P]) Mirror(horizontal, vertical bool, allowParallel bool) error {
	return t.View.Mirror(horizontal, vertical, allowParallel)
}
