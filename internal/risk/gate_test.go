package risk

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model/enum"
)

func order(side enum.Side, qty float64) model.Order {
	return model.Order{Symbol: "BTC/USD", Side: side, Price: 100, Qty: qty}
}

func TestGateConfigDefaults(t *testing.T) {
	g, err := NewGate(Config{})
	require.NoError(t, err)
	assert.Equal(t, 10000.0, g.cfg.MaxPosition)
	assert.Equal(t, -5000.0, g.cfg.DailyLossLimit)
}

func TestGateConfigValidate(t *testing.T) {
	_, err := NewGate(Config{MaxPosition: -1, DailyLossLimit: -5000})
	assert.Error(t, err)

	_, err = NewGate(Config{MaxPosition: 100, DailyLossLimit: 10})
	assert.Error(t, err)
}

func TestGatePositionLimit(t *testing.T) {
	g, err := NewGate(Config{MaxPosition: 100, DailyLossLimit: -5000})
	require.NoError(t, err)

	buy := order(enum.SideBuy, 95)
	require.True(t, g.Check(buy).Allowed())
	g.ApplyPosition(buy)
	assert.Equal(t, 95.0, g.Position())

	v := g.Check(order(enum.SideBuy, 10))
	assert.Equal(t, VerdictDenyPosition, v)
	assert.Equal(t, 95.0, g.Position())

	// A sell moves the hypothetical position back inside the limit.
	assert.True(t, g.Check(order(enum.SideSell, 10)).Allowed())
}

func TestGateShortPositionLimit(t *testing.T) {
	g, err := NewGate(Config{MaxPosition: 50, DailyLossLimit: -5000})
	require.NoError(t, err)

	sell := order(enum.SideSell, 45)
	require.True(t, g.Check(sell).Allowed())
	g.ApplyPosition(sell)
	assert.Equal(t, -45.0, g.Position())

	assert.Equal(t, VerdictDenyPosition, g.Check(order(enum.SideSell, 10)))
	assert.True(t, g.Check(order(enum.SideBuy, 10)).Allowed())
}

func TestGateLossLimit(t *testing.T) {
	g, err := NewGate(Config{MaxPosition: 100, DailyLossLimit: -500})
	require.NoError(t, err)

	g.ApplyPnL(-499)
	assert.True(t, g.Check(order(enum.SideBuy, 1)).Allowed())

	g.ApplyPnL(-2)
	assert.Equal(t, -501.0, g.PnL())
	assert.Equal(t, VerdictDenyLoss, g.Check(order(enum.SideBuy, 1)))

	g.ApplyPnL(10)
	assert.True(t, g.Check(order(enum.SideBuy, 1)).Allowed())
}

func TestGatePnLAtLimitStillAllowed(t *testing.T) {
	g, err := NewGate(Config{MaxPosition: 100, DailyLossLimit: -500})
	require.NoError(t, err)

	g.ApplyPnL(-500)
	assert.True(t, g.Check(order(enum.SideBuy, 1)).Allowed())
}

func TestVerdictString(t *testing.T) {
	tests := []struct {
		name     string
		verdict  Verdict
		expected string
	}{
		{"allow", VerdictAllow, "allow"},
		{"position", VerdictDenyPosition, "position_limit"},
		{"loss", VerdictDenyLoss, "loss_limit"},
		{"unknown", Verdict(99), "unknown"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if result := test.verdict.String(); result != test.expected {
				t.Fatalf("verdict string mismatch! should be %s but got %s", test.expected, result)
			}
		})
	}
}

func TestGateConcurrentApply(t *testing.T) {
	g, err := NewGate(Config{MaxPosition: 1e9, DailyLossLimit: -1e9})
	require.NoError(t, err)

	const workers = 8
	const perWorker = 1000

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			side := enum.SideBuy
			if w%2 == 1 {
				side = enum.SideSell
			}
			for i := 0; i < perWorker; i++ {
				g.ApplyPosition(order(side, 1))
				g.ApplyPnL(0.5)
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 0.0, g.Position())
	assert.Equal(t, float64(workers*perWorker)*0.5, g.PnL())
}
