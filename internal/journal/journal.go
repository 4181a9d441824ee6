// Package journal appends filled orders to a JSONL file through a
// buffered background writer, so the execution path never waits on
// disk.
package journal

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"github.com/yanun0323/logs"

	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model"
	"github.com/iamsayanmandal/High-Frequency-Trading/pkg/exception"
)

type Config struct {
	Path string

	// QueueSize bounds the records waiting for the writer goroutine.
	// Records arriving at a full queue are dropped with an error.
	QueueSize     int
	FlushInterval time.Duration
	BufferSize    int
}

func (c Config) withDefaults() Config {
	if c.QueueSize <= 0 {
		c.QueueSize = 1024
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = time.Second
	}
	if c.BufferSize <= 0 {
		c.BufferSize = 64 << 10
	}
	return c
}

func (c Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

type record struct {
	ID       uint64  `json:"id"`
	Strategy string  `json:"strategy"`
	Symbol   string  `json:"symbol"`
	Side     string  `json:"side"`
	Price    float64 `json:"price"`
	Qty      float64 `json:"qty"`
	Status   string  `json:"status"`
	Ts       int64   `json:"ts"`
}

// Journal owns the file handle. Record may be called from any
// goroutine; the write loop is the only file toucher.
type Journal struct {
	cfg  Config
	file *os.File
	buf  *bufio.Writer
	ch   chan model.Order
	wg   sync.WaitGroup
	err  atomic.Value

	closed uint32
}

// Open appends to the file at cfg.Path, creating it and its directory
// when missing, and starts the write loop.
func Open(cfg Config) (*Journal, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	j := &Journal{
		cfg:  cfg,
		file: file,
		buf:  bufio.NewWriterSize(file, cfg.BufferSize),
		ch:   make(chan model.Order, cfg.QueueSize),
	}
	j.wg.Add(1)
	go j.run()
	return j, nil
}

// Record enqueues an order without blocking.
func (j *Journal) Record(o model.Order) error {
	if atomic.LoadUint32(&j.closed) != 0 {
		return exception.ErrJournalClosed
	}
	if err := j.Err(); err != nil {
		return err
	}

	select {
	case j.ch <- o:
		return nil
	default:
		return exception.ErrJournalQueueFull
	}
}

// Sink adapts Record for the execution simulator. Write failures are
// logged, not propagated.
func (j *Journal) Sink() func(model.Order) {
	return func(o model.Order) {
		if err := j.Record(o); err != nil {
			logs.Warnf("journal record dropped: %+v", err)
		}
	}
}

// Close stops the write loop, flushes buffered records, and closes the
// file. Close is idempotent.
func (j *Journal) Close() error {
	if atomic.CompareAndSwapUint32(&j.closed, 0, 1) {
		close(j.ch)
	}
	j.wg.Wait()
	return j.Err()
}

// Err returns the first error observed by the write loop, if any.
func (j *Journal) Err() error {
	if v := j.err.Load(); v != nil {
		return v.(error)
	}
	return nil
}

func (j *Journal) run() {
	defer j.wg.Done()

	ticker := time.NewTicker(j.cfg.FlushInterval)
	defer ticker.Stop()

	defer func() {
		if err := j.buf.Flush(); err != nil {
			j.setErr(err)
		}
		if err := j.file.Sync(); err != nil {
			j.setErr(err)
		}
		if err := j.file.Close(); err != nil {
			j.setErr(err)
		}
	}()

	for {
		select {
		case o, ok := <-j.ch:
			if !ok {
				return
			}
			if err := j.write(o); err != nil {
				j.setErr(err)
				return
			}
		case <-ticker.C:
			if err := j.buf.Flush(); err != nil {
				j.setErr(err)
				return
			}
		}
	}
}

func (j *Journal) write(o model.Order) error {
	line, err := sonic.ConfigFastest.Marshal(record{
		ID:       o.ID,
		Strategy: o.Strategy,
		Symbol:   o.Symbol,
		Side:     o.Side.String(),
		Price:    o.Price,
		Qty:      o.Qty,
		Status:   o.Status.String(),
		Ts:       o.Ts,
	})
	if err != nil {
		return err
	}
	if _, err := j.buf.Write(line); err != nil {
		return err
	}
	return j.buf.WriteByte('\n')
}

func (j *Journal) setErr(err error) {
	if err == nil {
		return
	}
	if j.err.Load() != nil {
		return
	}
	j.err.Store(err)
}
