package atomicx

import (
	"math"
	"sync/atomic"
)

// Float64 is a float64 updated through atomic operations. The zero value
// holds 0 and is ready to use.
type Float64 struct {
	bits uint64
}

// Load returns the current value.
func (f *Float64) Load() float64 {
	return math.Float64frombits(atomic.LoadUint64(&f.bits))
}

// Store replaces the current value.
func (f *Float64) Store(v float64) {
	atomic.StoreUint64(&f.bits, math.Float64bits(v))
}

// Add accumulates delta with a compare-and-swap retry loop and returns
// the new value. Safe under arbitrary concurrent callers.
func (f *Float64) Add(delta float64) float64 {
	for {
		old := atomic.LoadUint64(&f.bits)
		next := math.Float64frombits(old) + delta
		if atomic.CompareAndSwapUint64(&f.bits, old, math.Float64bits(next)) {
			return next
		}
	}
}
