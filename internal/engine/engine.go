// Package engine wires the pipeline together: it drains the tick
// queue, refreshes the book ladder, runs the strategies, and pushes
// risk-admitted orders to execution.
package engine

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yanun0323/logs"

	"github.com/iamsayanmandal/High-Frequency-Trading/internal/book"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/bus"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/mdg"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/obs"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/om"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/risk"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/strategy"
	"github.com/iamsayanmandal/High-Frequency-Trading/pkg/exception"
)

// Parts are the pipeline pieces the engine coordinates. All fields are
// required and Strategies must not be empty.
type Parts struct {
	Ticks      *bus.Queue[model.Tick]
	Orders     *bus.Queue[model.Order]
	Book       *book.Book
	Gate       *risk.Gate
	Strategies []strategy.Strategy
	Feed       *mdg.Feed
	Exec       *om.Manager
}

func (p Parts) validate() error {
	if p.Ticks == nil || p.Orders == nil || p.Book == nil || p.Gate == nil || p.Feed == nil || p.Exec == nil {
		return exception.ErrEngineNilPart
	}
	if len(p.Strategies) == 0 {
		return exception.ErrEngineNoStrategies
	}
	return nil
}

// Engine owns the tick loop. Strategies run on that single goroutine;
// control and report calls arrive from others and touch only atomic
// or locked state.
type Engine struct {
	cfg   Config
	parts Parts
	rng   *rand.Rand

	// pnlSeen holds the last P&L observed per strategy so deltas can
	// be forwarded to the risk gate. Touched only by the tick loop.
	pnlSeen []float64

	running uint32
	stopC   chan struct{}
	wg      sync.WaitGroup
}

func New(cfg Config, parts Parts) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := parts.validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}

	return &Engine{
		cfg:     cfg,
		parts:   parts,
		rng:     rand.New(rand.NewSource(seed)),
		pnlSeen: make([]float64, len(parts.Strategies)),
	}, nil
}

// Start brings up the feed and the execution simulator, then the tick
// loop. On a partial failure everything already started is torn back
// down.
func (e *Engine) Start() error {
	if !atomic.CompareAndSwapUint32(&e.running, 0, 1) {
		return exception.ErrEngineAlreadyRunning
	}

	if err := e.parts.Feed.Start(); err != nil {
		atomic.StoreUint32(&e.running, 0)
		return err
	}
	if err := e.parts.Exec.Start(); err != nil {
		e.parts.Feed.Stop()
		atomic.StoreUint32(&e.running, 0)
		return err
	}

	e.stopC = make(chan struct{})
	e.wg.Add(1)
	go e.loop(e.stopC)

	logs.Infof("engine started, strategies=%d", len(e.parts.Strategies))
	return nil
}

// Stop shuts the pipeline down front to back: the feed first so no new
// ticks arrive, then the tick loop, then execution. Calling Stop on a
// stopped engine is a no-op.
func (e *Engine) Stop() {
	if !atomic.CompareAndSwapUint32(&e.running, 1, 0) {
		return
	}

	e.parts.Feed.Stop()
	close(e.stopC)
	e.wg.Wait()
	e.parts.Exec.Stop()

	logs.Info("engine stopped")
}

func (e *Engine) loop(stop <-chan struct{}) {
	defer e.wg.Done()

	for {
		select {
		case <-stop:
			return
		default:
		}

		tick, ok := e.parts.Ticks.Pop(e.cfg.PopTimeout)
		if !ok {
			continue
		}
		e.process(tick)
	}
}

func (e *Engine) process(tick model.Tick) {
	obs.TicksTotal.WithLabelValues(tick.Symbol).Inc()
	e.ladder(tick)

	for i, s := range e.parts.Strategies {
		if !s.Active() {
			continue
		}

		for _, o := range s.OnTick(tick, e.parts.Book) {
			verdict := e.parts.Gate.Check(o)
			if !verdict.Allowed() {
				obs.OrdersRejected.WithLabelValues(verdict.String()).Inc()
				continue
			}
			e.parts.Gate.ApplyPosition(o)
			e.parts.Orders.Push(o)
			obs.OrdersTotal.WithLabelValues(o.Strategy, o.Side.String()).Inc()
		}

		if pnl := s.PnL(); pnl != e.pnlSeen[i] {
			e.parts.Gate.ApplyPnL(pnl - e.pnlSeen[i])
			e.pnlSeen[i] = pnl
		}
	}
}

// ladder refreshes the synthetic depth around the quoted top of book.
func (e *Engine) ladder(tick model.Tick) {
	for i := 0; i < e.cfg.DepthLevels; i++ {
		offset := float64(i) * e.cfg.LevelStep
		e.parts.Book.UpdateBid(tick.Bid-offset, e.levelSize())
		e.parts.Book.UpdateAsk(tick.Ask+offset, e.levelSize())
	}
}

func (e *Engine) levelSize() float64 {
	span := e.cfg.MaxLevelSize - e.cfg.MinLevelSize + 1
	return float64(e.cfg.MinLevelSize + e.rng.Intn(span))
}

// ToggleStrategy flips one strategy's active flag. Out-of-range
// indexes are ignored.
func (e *Engine) ToggleStrategy(i int) bool {
	if i < 0 || i >= len(e.parts.Strategies) {
		logs.Warnf("toggle ignored, no strategy at index %d", i)
		return false
	}

	s := e.parts.Strategies[i]
	s.SetActive(!s.Active())
	logs.Infof("strategy %s active=%t", s.Name(), s.Active())
	return true
}

func (e *Engine) Strategies() []strategy.Strategy {
	return e.parts.Strategies
}

func (e *Engine) Book() *book.Book {
	return e.parts.Book
}

func (e *Engine) Gate() *risk.Gate {
	return e.parts.Gate
}

func (e *Engine) Exec() *om.Manager {
	return e.parts.Exec
}

func (e *Engine) TickQueueLen() int {
	return e.parts.Ticks.Len()
}

func (e *Engine) OrderQueueLen() int {
	return e.parts.Orders.Len()
}
