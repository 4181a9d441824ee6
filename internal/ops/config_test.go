package ops

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamsayanmandal/High-Frequency-Trading/internal/oid"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPathYieldsDefaults(t *testing.T) {
	loaded, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 100*time.Microsecond, loaded.Exec.Latency)
	assert.Equal(t, 0.9, loaded.Exec.FillRatio)
	assert.Zero(t, loaded.Feed.BasePrice)
	assert.Empty(t, loaded.Journal.Path)
	assert.False(t, loaded.Store.Enabled())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "{not json")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadResolvesSections(t *testing.T) {
	path := writeConfig(t, `{
		"feed": {
			"symbol": "ETH/USD",
			"base_price": 2500,
			"walk_pct": 0.005,
			"half_spread": 0.02,
			"min_volume": 10,
			"max_volume": 99,
			"interval": "5ms",
			"seed": 42
		},
		"engine": {
			"depth_levels": 7,
			"level_step": 0.02,
			"pop_timeout": 50000000
		},
		"exec": {
			"latency": "250us",
			"fill_ratio": 0.5,
			"pop_timeout": "20ms"
		},
		"risk": {
			"max_position": 500,
			"daily_loss_limit": -100
		},
		"report": {
			"interval": "1s",
			"depth": 5
		},
		"journal": {
			"path": "fills.jsonl",
			"flush_interval": "500ms"
		},
		"store": {
			"database": "hft"
		},
		"obs": {
			"metrics_addr": ":9100",
			"pyroscope_addr": "http://localhost:4040"
		}
	}`)

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ETH/USD", loaded.Feed.Symbol)
	assert.Equal(t, 2500.0, loaded.Feed.BasePrice)
	assert.Equal(t, 5*time.Millisecond, loaded.Feed.Interval)
	assert.Equal(t, int64(42), loaded.Feed.Seed)

	assert.Equal(t, 7, loaded.Engine.DepthLevels)
	assert.Equal(t, 50*time.Millisecond, loaded.Engine.PopTimeout)

	assert.Equal(t, 250*time.Microsecond, loaded.Exec.Latency)
	assert.Equal(t, 0.5, loaded.Exec.FillRatio)
	assert.Equal(t, 20*time.Millisecond, loaded.Exec.PopTimeout)

	assert.Equal(t, 500.0, loaded.Risk.MaxPosition)
	assert.Equal(t, -100.0, loaded.Risk.DailyLossLimit)

	assert.Equal(t, time.Second, loaded.Report.Interval)
	assert.Equal(t, 5, loaded.Report.Depth)

	assert.Equal(t, "fills.jsonl", loaded.Journal.Path)
	assert.Equal(t, 500*time.Millisecond, loaded.Journal.FlushInterval)

	assert.True(t, loaded.Store.Enabled())
	assert.Equal(t, ":9100", loaded.Obs.MetricsAddr)
	assert.Equal(t, "http://localhost:4040", loaded.Obs.PyroscopeAddr)
}

func TestLoadExplicitZeroFillRatio(t *testing.T) {
	path := writeConfig(t, `{"exec": {"fill_ratio": 0}}`)
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Zero(t, loaded.Exec.FillRatio)
	assert.Equal(t, 100*time.Microsecond, loaded.Exec.Latency)
}

func TestBuildStrategiesRoster(t *testing.T) {
	roster := BuildStrategies(StrategiesConfig{}, oid.NewGenerator())
	require.Len(t, roster, 4)

	names := []string{"market_making", "arbitrage", "momentum", "mean_reversion"}
	for i, s := range roster {
		assert.Equal(t, names[i], s.Name())
		assert.True(t, s.Active(), s.Name())
	}
}

func TestBuildStrategiesEnabledFlags(t *testing.T) {
	path := writeConfig(t, `{
		"strategies": {
			"market_making": {"spread_threshold": 0.04, "qty": 20, "enabled": false},
			"momentum": {"enabled": true}
		}
	}`)
	loaded, err := Load(path)
	require.NoError(t, err)

	roster := BuildStrategies(loaded.Strategies, oid.NewGenerator())
	require.Len(t, roster, 4)
	assert.False(t, roster[0].Active())
	assert.True(t, roster[1].Active())
	assert.True(t, roster[2].Active())
	assert.True(t, roster[3].Active())
}

func TestDurationUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected time.Duration
	}{
		{"string millis", `"100ms"`, 100 * time.Millisecond},
		{"string micros", `"250us"`, 250 * time.Microsecond},
		{"integer nanos", `1000000`, time.Millisecond},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var d Duration
			require.NoError(t, d.UnmarshalJSON([]byte(test.raw)))
			if d.Std() != test.expected {
				t.Fatalf("duration mismatch! should be %s but got %s", test.expected, d.Std())
			}
		})
	}

	var d Duration
	assert.Error(t, d.UnmarshalJSON([]byte(`"not a duration"`)))
}
