// Package book maintains a per-symbol limit order book aggregated by
// price level. Bids are ordered best (highest) first, asks best
// (lowest) first.
package book

import (
	"sync"

	"github.com/google/btree"
)

const _degree = 32

// Level is one aggregated price level.
type Level struct {
	Price float64
	Qty   float64
}

func bidLess(a, b Level) bool { return a.Price > b.Price }
func askLess(a, b Level) bool { return a.Price < b.Price }

// Book holds both sides of the order book for a single symbol.
// All methods are safe for concurrent use.
type Book struct {
	symbol string

	mu   sync.RWMutex
	bids *btree.BTreeG[Level]
	asks *btree.BTreeG[Level]
}

func New(symbol string) *Book {
	return &Book{
		symbol: symbol,
		bids:   btree.NewG(_degree, bidLess),
		asks:   btree.NewG(_degree, askLess),
	}
}

func (b *Book) Symbol() string {
	return b.symbol
}

// UpdateBid sets the resting quantity at a bid price level. A quantity
// of zero or less removes the level.
func (b *Book) UpdateBid(price, qty float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if qty <= 0 {
		b.bids.Delete(Level{Price: price})
		return
	}
	b.bids.ReplaceOrInsert(Level{Price: price, Qty: qty})
}

// UpdateAsk sets the resting quantity at an ask price level. A quantity
// of zero or less removes the level.
func (b *Book) UpdateAsk(price, qty float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if qty <= 0 {
		b.asks.Delete(Level{Price: price})
		return
	}
	b.asks.ReplaceOrInsert(Level{Price: price, Qty: qty})
}

// BestBidAsk returns the top of book. A side with no levels reports 0.
func (b *Book) BestBidAsk() (bid, ask float64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if top, ok := b.bids.Min(); ok {
		bid = top.Price
	}
	if top, ok := b.asks.Min(); ok {
		ask = top.Price
	}
	return bid, ask
}

// Spread returns best ask minus best bid, or 0 when either side is
// empty.
func (b *Book) Spread() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	bestBid, okBid := b.bids.Min()
	bestAsk, okAsk := b.asks.Min()
	if !okBid || !okAsk {
		return 0
	}
	return bestAsk.Price - bestBid.Price
}

// Depth returns up to n best levels per side, captured under a single
// lock so the two sides are consistent with each other.
func (b *Book) Depth(n int) (bids, asks []Level) {
	if n <= 0 {
		return nil, nil
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	bids = make([]Level, 0, n)
	b.bids.Ascend(func(lv Level) bool {
		bids = append(bids, lv)
		return len(bids) < n
	})

	asks = make([]Level, 0, n)
	b.asks.Ascend(func(lv Level) bool {
		asks = append(asks, lv)
		return len(asks) < n
	})
	return bids, asks
}

// Levels reports the number of price levels on each side.
func (b *Book) Levels() (bids, asks int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bids.Len(), b.asks.Len()
}
