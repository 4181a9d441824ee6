// Package strategy holds the signal generators. Each strategy consumes
// ticks on the engine loop goroutine while report and control readers
// poll its counters, so all mutable state lives in atomics.
package strategy

import (
	"sync/atomic"
	"time"

	"github.com/iamsayanmandal/High-Frequency-Trading/internal/book"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model/enum"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/oid"
	"github.com/iamsayanmandal/High-Frequency-Trading/pkg/atomicx"
)

const _tickSize = 0.01

// Strategy turns a market tick into zero or more orders. OnTick is
// called from a single goroutine; every other method may be called
// concurrently with it.
type Strategy interface {
	Name() string

	// OnTick returns the orders triggered by the tick. An inactive
	// strategy returns nil without inspecting the tick.
	OnTick(tick model.Tick, bk *book.Book) []model.Order

	Active() bool
	SetActive(active bool)

	PnL() float64
	Trades() uint64
}

// Core carries the state shared by every strategy implementation.
type Core struct {
	kind   enum.StrategyKind
	ids    *oid.Generator
	active uint32
	pnl    atomicx.Float64
	trades uint64
}

func newCore(kind enum.StrategyKind, ids *oid.Generator) Core {
	return Core{kind: kind, ids: ids, active: 1}
}

func (c *Core) Name() string {
	return c.kind.String()
}

func (c *Core) Active() bool {
	return atomic.LoadUint32(&c.active) == 1
}

func (c *Core) SetActive(active bool) {
	var v uint32
	if active {
		v = 1
	}
	atomic.StoreUint32(&c.active, v)
}

func (c *Core) PnL() float64 {
	return c.pnl.Load()
}

func (c *Core) Trades() uint64 {
	return atomic.LoadUint64(&c.trades)
}

func (c *Core) addPnL(delta float64) {
	c.pnl.Add(delta)
}

func (c *Core) countTrades(n uint64) {
	atomic.AddUint64(&c.trades, n)
}

func (c *Core) order(symbol string, side enum.Side, price, qty float64) model.Order {
	return model.Order{
		ID:       c.ids.Next(),
		Strategy: c.kind.String(),
		Symbol:   symbol,
		Side:     side,
		Price:    price,
		Qty:      qty,
		Status:   enum.OrderStatusPending,
		Ts:       time.Now().UnixNano(),
	}
}
