package main

import (
	"bufio"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/joho/godotenv"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"github.com/iamsayanmandal/High-Frequency-Trading/internal/book"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/bus"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/engine"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/journal"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/mdg"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/obs"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/oid"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/om"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/ops"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/report"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/risk"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/store"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config (falls back to HFT_CONFIG)")
	duration := flag.Duration("duration", 0, "Stop after this long (0 runs until signal or 'q')")
	flag.Parse()

	_ = godotenv.Load()

	path := *configPath
	if path == "" {
		path = os.Getenv("HFT_CONFIG")
	}
	loaded, err := ops.Load(path)
	if err != nil {
		logs.Errorf("config load failed: %+v", err)
		os.Exit(1)
	}

	if addr := loaded.Obs.PyroscopeAddr; addr != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "hft",
			ServerAddress:   addr,
			Logger:          emptyLogger{},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			logs.Errorf("pyroscope start failed: %+v", err)
			os.Exit(1)
		}
		defer func() { _ = profiler.Stop() }()
	}

	if addr := loaded.Obs.MetricsAddr; addr != "" {
		obs.Serve(addr)
		logs.Infof("metrics listening on %s", addr)
	}

	if err := run(loaded, *duration); err != nil {
		logs.Errorf("run failed: %+v", err)
		os.Exit(1)
	}
}

func run(loaded ops.Loaded, duration time.Duration) error {
	ticks := bus.NewQueue[model.Tick]()
	orders := bus.NewQueue[model.Order]()
	obs.RegisterQueueDepth("ticks", ticks.Len)
	obs.RegisterQueueDepth("orders", orders.Len)

	ids := oid.NewGenerator()
	strategies := ops.BuildStrategies(loaded.Strategies, ids)

	gate, err := risk.NewGate(loaded.Risk)
	if err != nil {
		return err
	}

	feed, err := mdg.NewFeed(loaded.Feed, ticks)
	if err != nil {
		return err
	}

	var (
		jnl   *journal.Journal
		sinks []om.Sink
	)
	if loaded.Journal.Path != "" {
		jnl, err = journal.Open(loaded.Journal)
		if err != nil {
			return err
		}
		sinks = append(sinks, jnl.Sink())
	}

	exec, err := om.NewManager(loaded.Exec, orders, sinks...)
	if err != nil {
		return err
	}

	eng, err := engine.New(loaded.Engine, engine.Parts{
		Ticks:      ticks,
		Orders:     orders,
		Book:       book.New(feed.Symbol()),
		Gate:       gate,
		Strategies: strategies,
		Feed:       feed,
		Exec:       exec,
	})
	if err != nil {
		return err
	}

	rep, err := report.New(loaded.Report, eng, os.Stdout)
	if err != nil {
		return err
	}

	if err := eng.Start(); err != nil {
		return err
	}
	if err := rep.Start(); err != nil {
		eng.Stop()
		return err
	}

	waitControl(eng, duration)

	rep.Stop()
	eng.Stop()

	if jnl != nil {
		if err := jnl.Close(); err != nil {
			logs.Warnf("journal close failed: %+v", err)
		}
	}
	if loaded.Store.Enabled() {
		if err := persistFills(loaded.Store, exec); err != nil {
			logs.Warnf("fill persistence failed: %+v", err)
		}
	}
	return nil
}

// waitControl blocks until a shutdown signal, the run duration, or a
// quit command. Digit commands toggle the strategy at that index.
func waitControl(eng *engine.Engine, duration time.Duration) {
	var timeout <-chan time.Time
	if duration > 0 {
		timer := time.NewTimer(duration)
		defer timer.Stop()
		timeout = timer.C
	}
	cmds := readCommands()

	for {
		select {
		case <-sys.Shutdown():
			logs.Info("shutdown signal received")
			return
		case <-timeout:
			logs.Infof("run duration %s elapsed", duration)
			return
		case cmd, ok := <-cmds:
			if !ok {
				cmds = nil
				continue
			}
			switch {
			case cmd == "q" || cmd == "quit":
				return
			case cmd == "":
			default:
				if idx, err := strconv.Atoi(cmd); err == nil {
					eng.ToggleStrategy(idx)
				} else {
					logs.Warnf("unknown command %q", cmd)
				}
			}
		}
	}
}

func readCommands() <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			ch <- strings.TrimSpace(scanner.Text())
		}
	}()
	return ch
}

func persistFills(cfg store.Config, exec *om.Manager) error {
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	fills := exec.Filled()
	if err := st.SaveFills(fills); err != nil {
		return err
	}
	logs.Infof("persisted %d fills", len(fills))
	return nil
}

type emptyLogger struct{}

func (emptyLogger) Infof(_ string, _ ...interface{})  {}
func (emptyLogger) Debugf(_ string, _ ...interface{}) {}
func (emptyLogger) Errorf(_ string, _ ...interface{}) {}
