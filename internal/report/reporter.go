// Package report renders a periodic status block: per-strategy
// counters, risk totals, queue depths, fills, and the top of the book.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iamsayanmandal/High-Frequency-Trading/internal/engine"
	"github.com/iamsayanmandal/High-Frequency-Trading/pkg/exception"
)

type Config struct {
	Interval time.Duration

	// Depth is how many book levels per side the block shows.
	Depth int
}

func (c Config) withDefaults() Config {
	if c.Interval == 0 {
		c.Interval = 2 * time.Second
	}
	if c.Depth == 0 {
		c.Depth = 3
	}
	return c
}

func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", c.Interval)
	}
	if c.Depth <= 0 {
		return fmt.Errorf("depth must be positive, got %d", c.Depth)
	}
	return nil
}

// Reporter snapshots the engine on a ticker. Each block is built in
// memory and written in one call so lines never interleave with logs.
type Reporter struct {
	cfg Config
	eng *engine.Engine
	w   io.Writer

	running uint32
	stopC   chan struct{}
	wg      sync.WaitGroup
}

func New(cfg Config, eng *engine.Engine, w io.Writer) (*Reporter, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if eng == nil {
		return nil, fmt.Errorf("nil engine")
	}
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{cfg: cfg, eng: eng, w: w}, nil
}

func (r *Reporter) Start() error {
	if !atomic.CompareAndSwapUint32(&r.running, 0, 1) {
		return exception.ErrReportAlreadyRunning
	}

	r.stopC = make(chan struct{})
	r.wg.Add(1)
	go r.loop(r.stopC)
	return nil
}

// Stop renders one final block, then halts. Calling Stop on a stopped
// reporter is a no-op.
func (r *Reporter) Stop() {
	if !atomic.CompareAndSwapUint32(&r.running, 1, 0) {
		return
	}
	close(r.stopC)
	r.wg.Wait()
	r.render()
}

func (r *Reporter) loop(stop <-chan struct{}) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.render()
		}
	}
}

func (r *Reporter) render() {
	var b strings.Builder

	fmt.Fprintf(&b, "=== %s ===\n", time.Now().Format("15:04:05.000"))
	for i, s := range r.eng.Strategies() {
		state := "ACTIVE"
		if !s.Active() {
			state = "INACTIVE"
		}
		fmt.Fprintf(&b, "[%d] %-16s %-8s pnl=%.2f trades=%d\n", i, s.Name(), state, s.PnL(), s.Trades())
	}

	gate := r.eng.Gate()
	fmt.Fprintf(&b, "risk: position=%.2f pnl=%.2f\n", gate.Position(), gate.PnL())
	fmt.Fprintf(&b, "queues: ticks=%d orders=%d\n", r.eng.TickQueueLen(), r.eng.OrderQueueLen())

	exec := r.eng.Exec()
	lat := exec.Latency()
	fmt.Fprintf(&b, "fills: %d unfilled=%d latency avg=%s min=%s max=%s\n",
		exec.FilledCount(), exec.UnfilledCount(), lat.Avg, lat.Min, lat.Max)

	bk := r.eng.Book()
	bids, asks := bk.Depth(r.cfg.Depth)
	fmt.Fprintf(&b, "book %s:\n", bk.Symbol())
	rows := len(bids)
	if len(asks) > rows {
		rows = len(asks)
	}
	for i := 0; i < rows; i++ {
		bid, ask := "-", "-"
		if i < len(bids) {
			bid = fmt.Sprintf("%.2f x %.0f", bids[i].Price, bids[i].Qty)
		}
		if i < len(asks) {
			ask = fmt.Sprintf("%.2f x %.0f", asks[i].Price, asks[i].Qty)
		}
		fmt.Fprintf(&b, "  bid %-16s | ask %s\n", bid, ask)
	}

	fmt.Fprint(r.w, b.String())
}
