// Package ops loads the runtime configuration. The JSON file mirrors
// FileConfig; Load resolves it into the per-component configs, leaving
// zero values for each component's own defaulting.
package ops

import (
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/yanun0323/errors"

	"github.com/iamsayanmandal/High-Frequency-Trading/internal/engine"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/journal"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/mdg"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/oid"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/om"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/report"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/risk"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/store"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/strategy"
)

const (
	_defaultExecLatency   = 100 * time.Microsecond
	_defaultExecFillRatio = 0.9
)

// Duration accepts either a duration string like "100ms" or a bare
// integer of nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := sonic.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	Feed       FeedConfig       `json:"feed"`
	Engine     EngineConfig     `json:"engine"`
	Exec       ExecConfig       `json:"exec"`
	Risk       risk.Config      `json:"risk"`
	Strategies StrategiesConfig `json:"strategies"`
	Report     ReportConfig     `json:"report"`
	Journal    JournalConfig    `json:"journal"`
	Store      store.Config     `json:"store"`
	Obs        ObsConfig        `json:"obs"`
}

type FeedConfig struct {
	Symbol     string   `json:"symbol"`
	BasePrice  float64  `json:"base_price"`
	WalkPct    float64  `json:"walk_pct"`
	HalfSpread float64  `json:"half_spread"`
	MinVolume  int64    `json:"min_volume"`
	MaxVolume  int64    `json:"max_volume"`
	Interval   Duration `json:"interval"`
	Seed       int64    `json:"seed"`
}

type EngineConfig struct {
	DepthLevels  int      `json:"depth_levels"`
	LevelStep    float64  `json:"level_step"`
	MinLevelSize int      `json:"min_level_size"`
	MaxLevelSize int      `json:"max_level_size"`
	PopTimeout   Duration `json:"pop_timeout"`
	Seed         int64    `json:"seed"`
}

// ExecConfig uses pointers where an explicit zero differs from an
// omitted field: fill_ratio 0 means drop everything, absent means the
// default.
type ExecConfig struct {
	Latency    *Duration `json:"latency"`
	FillRatio  *float64  `json:"fill_ratio"`
	PopTimeout Duration  `json:"pop_timeout"`
	Seed       int64     `json:"seed"`
}

type StrategiesConfig struct {
	MarketMaking  MarketMakingSection  `json:"market_making"`
	Arbitrage     ArbitrageSection     `json:"arbitrage"`
	Momentum      MomentumSection      `json:"momentum"`
	MeanReversion MeanReversionSection `json:"mean_reversion"`
}

type MarketMakingSection struct {
	strategy.MarketMakingConfig
	Enabled *bool `json:"enabled"`
}

type ArbitrageSection struct {
	strategy.ArbitrageConfig
	Enabled *bool `json:"enabled"`
}

type MomentumSection struct {
	strategy.MomentumConfig
	Enabled *bool `json:"enabled"`
}

type MeanReversionSection struct {
	strategy.MeanReversionConfig
	Enabled *bool `json:"enabled"`
}

type ReportConfig struct {
	Interval Duration `json:"interval"`
	Depth    int      `json:"depth"`
}

type JournalConfig struct {
	Path          string   `json:"path"`
	QueueSize     int      `json:"queue_size"`
	FlushInterval Duration `json:"flush_interval"`
}

type ObsConfig struct {
	MetricsAddr   string `json:"metrics_addr"`
	PyroscopeAddr string `json:"pyroscope_addr"`
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	Feed       mdg.Config
	Engine     engine.Config
	Exec       om.Config
	Risk       risk.Config
	Strategies StrategiesConfig
	Report     report.Config
	Journal    journal.Config
	Store      store.Config
	Obs        ObsConfig
}

// Load reads a JSON config file. An empty path yields the defaults.
func Load(path string) (Loaded, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, errors.Wrap(err, "read config").With("path", path)
	}
	var cfg FileConfig
	if err := sonic.Unmarshal(data, &cfg); err != nil {
		return Loaded{}, errors.Wrap(err, "parse config").With("path", path)
	}
	return resolve(cfg), nil
}

// Default is the configuration of a run with no config file.
func Default() Loaded {
	return resolve(FileConfig{})
}

func resolve(cfg FileConfig) Loaded {
	exec := om.Config{
		Latency:    _defaultExecLatency,
		FillRatio:  _defaultExecFillRatio,
		PopTimeout: cfg.Exec.PopTimeout.Std(),
		Seed:       cfg.Exec.Seed,
	}
	if cfg.Exec.Latency != nil {
		exec.Latency = cfg.Exec.Latency.Std()
	}
	if cfg.Exec.FillRatio != nil {
		exec.FillRatio = *cfg.Exec.FillRatio
	}

	return Loaded{
		Feed: mdg.Config{
			Symbol:     cfg.Feed.Symbol,
			BasePrice:  cfg.Feed.BasePrice,
			WalkPct:    cfg.Feed.WalkPct,
			HalfSpread: cfg.Feed.HalfSpread,
			MinVolume:  cfg.Feed.MinVolume,
			MaxVolume:  cfg.Feed.MaxVolume,
			Interval:   cfg.Feed.Interval.Std(),
			Seed:       cfg.Feed.Seed,
		},
		Engine: engine.Config{
			DepthLevels:  cfg.Engine.DepthLevels,
			LevelStep:    cfg.Engine.LevelStep,
			MinLevelSize: cfg.Engine.MinLevelSize,
			MaxLevelSize: cfg.Engine.MaxLevelSize,
			PopTimeout:   cfg.Engine.PopTimeout.Std(),
			Seed:         cfg.Engine.Seed,
		},
		Exec:       exec,
		Risk:       cfg.Risk,
		Strategies: cfg.Strategies,
		Report: report.Config{
			Interval: cfg.Report.Interval.Std(),
			Depth:    cfg.Report.Depth,
		},
		Journal: journal.Config{
			Path:          cfg.Journal.Path,
			QueueSize:     cfg.Journal.QueueSize,
			FlushInterval: cfg.Journal.FlushInterval.Std(),
		},
		Store: cfg.Store,
		Obs:   cfg.Obs,
	}
}

// BuildStrategies constructs the strategy roster in its fixed order,
// so control indexes stay stable across runs. Sections may start
// entries disabled.
func BuildStrategies(cfg StrategiesConfig, ids *oid.Generator) []strategy.Strategy {
	mm := strategy.NewMarketMaker(cfg.MarketMaking.MarketMakingConfig, ids)
	arb := strategy.NewArbitrageur(cfg.Arbitrage.ArbitrageConfig, ids)
	mom := strategy.NewMomentum(cfg.Momentum.MomentumConfig, ids)
	rev := strategy.NewMeanReversion(cfg.MeanReversion.MeanReversionConfig, ids)

	apply := func(s strategy.Strategy, enabled *bool) {
		if enabled != nil {
			s.SetActive(*enabled)
		}
	}
	apply(mm, cfg.MarketMaking.Enabled)
	apply(arb, cfg.Arbitrage.Enabled)
	apply(mom, cfg.Momentum.Enabled)
	apply(rev, cfg.MeanReversion.Enabled)

	return []strategy.Strategy{mm, arb, mom, rev}
}
