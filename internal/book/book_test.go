package book

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookBestBidAsk(t *testing.T) {
	b := New("BTC/USD")

	bid, ask := b.BestBidAsk()
	assert.Zero(t, bid)
	assert.Zero(t, ask)

	b.UpdateBid(100.00, 10)
	b.UpdateBid(99.95, 20)
	b.UpdateAsk(100.10, 10)
	b.UpdateAsk(100.20, 15)

	bid, ask = b.BestBidAsk()
	assert.Equal(t, 100.00, bid)
	assert.Equal(t, 100.10, ask)
}

func TestBookSpread(t *testing.T) {
	b := New("BTC/USD")
	assert.Zero(t, b.Spread())

	b.UpdateBid(100.00, 10)
	assert.Zero(t, b.Spread())

	b.UpdateAsk(100.10, 10)
	assert.InDelta(t, 0.10, b.Spread(), 1e-9)
}

func TestBookRemoveLevel(t *testing.T) {
	b := New("BTC/USD")
	b.UpdateBid(100.00, 10)
	b.UpdateBid(99.90, 5)

	b.UpdateBid(100.00, 0)
	bid, _ := b.BestBidAsk()
	assert.Equal(t, 99.90, bid)

	b.UpdateBid(99.90, -1)
	bid, _ = b.BestBidAsk()
	assert.Zero(t, bid)

	bids, asks := b.Levels()
	assert.Zero(t, bids)
	assert.Zero(t, asks)
}

func TestBookUpdateReplacesQty(t *testing.T) {
	b := New("BTC/USD")
	b.UpdateAsk(100.10, 10)
	b.UpdateAsk(100.10, 25)

	_, asks := b.Depth(1)
	require.Len(t, asks, 1)
	assert.Equal(t, 25.0, asks[0].Qty)
}

func TestBookDepthOrdering(t *testing.T) {
	b := New("BTC/USD")
	b.UpdateBid(99.90, 1)
	b.UpdateBid(100.00, 2)
	b.UpdateBid(99.95, 3)
	b.UpdateAsk(100.20, 4)
	b.UpdateAsk(100.10, 5)
	b.UpdateAsk(100.15, 6)

	bids, asks := b.Depth(2)
	require.Len(t, bids, 2)
	require.Len(t, asks, 2)

	assert.Equal(t, 100.00, bids[0].Price)
	assert.Equal(t, 99.95, bids[1].Price)
	assert.Equal(t, 100.10, asks[0].Price)
	assert.Equal(t, 100.15, asks[1].Price)
}

func TestBookDepthBeyondLevels(t *testing.T) {
	b := New("BTC/USD")
	b.UpdateBid(100.00, 1)

	bids, asks := b.Depth(5)
	assert.Len(t, bids, 1)
	assert.Empty(t, asks)

	bids, asks = b.Depth(0)
	assert.Nil(t, bids)
	assert.Nil(t, asks)
}

func TestBookConcurrentAccess(t *testing.T) {
	b := New("BTC/USD")

	// Every worker writes the same quantity to the same level, so the
	// final book is identical no matter how the writes interleave:
	// levels 1..49 per side minus the five multiples of ten, whose
	// quantity is zero.
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				idx := i % 50
				price := 100.0 + float64(idx)*0.01
				b.UpdateBid(price-0.05, float64(idx%10))
				b.UpdateAsk(price+0.05, float64(idx%10))
				b.BestBidAsk()
				b.Spread()
				b.Depth(3)
			}
		}()
	}
	wg.Wait()

	bids, asks := b.Levels()
	assert.Equal(t, 45, bids)
	assert.Equal(t, 45, asks)

	bid, ask := b.BestBidAsk()
	assert.InDelta(t, 100.44, bid, 1e-9)
	assert.InDelta(t, 100.06, ask, 1e-9)
}
