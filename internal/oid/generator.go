package oid

import "sync/atomic"

// Generator issues process-wide monotonically increasing order IDs.
// One instance is created at engine startup and shared by every strategy.
type Generator struct {
	next uint64
}

// NewGenerator returns a generator whose first ID is 1.
func NewGenerator() *Generator {
	return &Generator{}
}

// Next returns the next order ID.
func (g *Generator) Next() uint64 {
	if g == nil {
		return 0
	}
	return atomic.AddUint64(&g.next, 1)
}
