// Package om simulates the execution venue: admitted orders are
// delayed by a fixed latency and filled with a configured probability.
// Unfilled orders are dropped, never retried.
package om

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yanun0323/logs"

	"github.com/iamsayanmandal/High-Frequency-Trading/internal/bus"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model/enum"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/obs"
	"github.com/iamsayanmandal/High-Frequency-Trading/pkg/exception"
)

type Config struct {
	// Latency is slept before each execution decision.
	Latency time.Duration

	// FillRatio is the fill probability in [0, 1]. 0 drops everything,
	// 1 fills everything.
	FillRatio float64

	// PopTimeout bounds each wait on the order queue so the loop can
	// notice a stop request.
	PopTimeout time.Duration

	// Seed fixes the fill dice. 0 seeds from the wall clock.
	Seed int64
}

func (c Config) withDefaults() Config {
	if c.PopTimeout == 0 {
		c.PopTimeout = 100 * time.Millisecond
	}
	return c
}

func (c Config) Validate() error {
	if c.Latency < 0 {
		return fmt.Errorf("latency must be non-negative, got %v", c.Latency)
	}
	if c.FillRatio < 0 || c.FillRatio > 1 {
		return fmt.Errorf("fill ratio must be in [0, 1], got %v", c.FillRatio)
	}
	if c.PopTimeout <= 0 {
		return fmt.Errorf("pop timeout must be positive, got %v", c.PopTimeout)
	}
	return nil
}

// Sink receives each filled order on the execution goroutine.
type Sink func(model.Order)

// Manager drains the order queue on a single goroutine. The fill
// ledger and latency stats may be read concurrently at any time.
type Manager struct {
	cfg   Config
	in    *bus.Queue[model.Order]
	rng   *rand.Rand
	sinks []Sink

	mu     sync.Mutex
	filled []model.Order

	unfilled uint64
	lat      obs.LatencyStats

	running uint32
	stopC   chan struct{}
	wg      sync.WaitGroup
}

func NewManager(cfg Config, in *bus.Queue[model.Order], sinks ...Sink) (*Manager, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if in == nil {
		return nil, fmt.Errorf("nil order queue")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}

	return &Manager{
		cfg:   cfg,
		in:    in,
		rng:   rand.New(rand.NewSource(seed)),
		sinks: sinks,
	}, nil
}

func (m *Manager) Start() error {
	if !atomic.CompareAndSwapUint32(&m.running, 0, 1) {
		return exception.ErrExecAlreadyRunning
	}

	m.stopC = make(chan struct{})
	m.wg.Add(1)
	go m.loop(m.stopC)

	logs.Infof("execution simulator started, fill_ratio=%.2f latency=%s", m.cfg.FillRatio, m.cfg.Latency)
	return nil
}

// Stop halts the drain loop and waits for it to exit. Orders still
// queued are left behind.
func (m *Manager) Stop() {
	if !atomic.CompareAndSwapUint32(&m.running, 1, 0) {
		return
	}
	close(m.stopC)
	m.wg.Wait()
	logs.Info("execution simulator stopped")
}

func (m *Manager) loop(stop <-chan struct{}) {
	defer m.wg.Done()

	for {
		select {
		case <-stop:
			return
		default:
		}

		o, ok := m.in.Pop(m.cfg.PopTimeout)
		if !ok {
			continue
		}
		m.execute(o)
	}
}

func (m *Manager) execute(o model.Order) {
	if m.cfg.Latency > 0 {
		time.Sleep(m.cfg.Latency)
	}

	if m.rng.Float64() >= m.cfg.FillRatio {
		atomic.AddUint64(&m.unfilled, 1)
		obs.OrdersUnfilled.Inc()
		return
	}

	o.Status = enum.OrderStatusFilled
	m.lat.Observe(time.Duration(time.Now().UnixNano() - o.Ts))

	m.mu.Lock()
	m.filled = append(m.filled, o)
	m.mu.Unlock()

	for _, sink := range m.sinks {
		sink(o)
	}
	obs.FillsTotal.Inc()
}

// Filled returns a copy of the fill ledger.
func (m *Manager) Filled() []model.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Order, len(m.filled))
	copy(out, m.filled)
	return out
}

func (m *Manager) FilledCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.filled)
}

func (m *Manager) UnfilledCount() uint64 {
	return atomic.LoadUint64(&m.unfilled)
}

// Latency reports order-to-fill latency aggregates.
func (m *Manager) Latency() obs.LatencySnapshot {
	return m.lat.Snapshot()
}
