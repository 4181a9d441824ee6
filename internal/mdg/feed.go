// Package mdg generates the synthetic market data feed: a bounded
// random walk around a base price, quoted with a fixed half spread.
package mdg

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yanun0323/logs"

	"github.com/iamsayanmandal/High-Frequency-Trading/internal/bus"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model"
	"github.com/iamsayanmandal/High-Frequency-Trading/pkg/exception"
)

// Feed publishes one tick per interval onto the tick queue until
// stopped. Start and Stop are safe to call from any goroutine; the
// walk itself runs on a single internal goroutine.
type Feed struct {
	cfg   Config
	out   *bus.Queue[model.Tick]
	rng   *rand.Rand
	price float64

	running uint32
	stopC   chan struct{}
	wg      sync.WaitGroup
}

func NewFeed(cfg Config, out *bus.Queue[model.Tick]) (*Feed, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("nil tick queue")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}

	return &Feed{
		cfg:   cfg,
		out:   out,
		rng:   rand.New(rand.NewSource(seed)),
		price: cfg.BasePrice,
	}, nil
}

// Symbol is the instrument this feed quotes.
func (f *Feed) Symbol() string {
	return f.cfg.Symbol
}

func (f *Feed) Start() error {
	if !atomic.CompareAndSwapUint32(&f.running, 0, 1) {
		return exception.ErrFeedAlreadyRunning
	}

	f.stopC = make(chan struct{})
	f.wg.Add(1)
	go f.loop(f.stopC)

	logs.Infof("feed started, symbol=%s interval=%s", f.cfg.Symbol, f.cfg.Interval)
	return nil
}

// Stop halts the feed and waits for the walk goroutine to exit.
// Calling Stop on a stopped feed is a no-op.
func (f *Feed) Stop() {
	if !atomic.CompareAndSwapUint32(&f.running, 1, 0) {
		return
	}
	close(f.stopC)
	f.wg.Wait()
	logs.Infof("feed stopped, symbol=%s", f.cfg.Symbol)
}

func (f *Feed) loop(stop <-chan struct{}) {
	defer f.wg.Done()

	ticker := time.NewTicker(f.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			f.out.Push(f.next())
		}
	}
}

func (f *Feed) next() model.Tick {
	step := (f.rng.Float64()*2 - 1) * f.cfg.WalkPct
	f.price *= 1 + step

	bid := f.price - f.cfg.HalfSpread
	ask := f.price + f.cfg.HalfSpread
	return model.Tick{
		Symbol: f.cfg.Symbol,
		Price:  f.price,
		Bid:    bid,
		Ask:    ask,
		Spread: ask - bid,
		Volume: f.cfg.MinVolume + f.rng.Int63n(f.cfg.MaxVolume-f.cfg.MinVolume+1),
		Ts:     time.Now().UnixNano(),
	}
}
