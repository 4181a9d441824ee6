package enum

import "testing"

func TestSideString(t *testing.T) {
	testCases := []struct {
		desc     string
		input    Side
		expected string
	}{
		{"buy", SideBuy, "BUY"},
		{"sell", SideSell, "SELL"},
		{"zero", Side(0), "UNKNOWN"},
		{"out of range", Side(99), "UNKNOWN"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			if s := tc.input.String(); s != tc.expected {
				t.Fatalf("side string mismatch! should be %s but got %s", tc.expected, s)
			}
		})
	}
}

func TestStrategyKindString(t *testing.T) {
	testCases := []struct {
		desc     string
		input    StrategyKind
		expected string
	}{
		{"market making", StrategyKindMarketMaking, "market_making"},
		{"arbitrage", StrategyKindArbitrage, "arbitrage"},
		{"momentum", StrategyKindMomentum, "momentum"},
		{"mean reversion", StrategyKindMeanReversion, "mean_reversion"},
		{"zero", StrategyKind(0), "unknown"},
		{"out of range", StrategyKind(99), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			if s := tc.input.String(); s != tc.expected {
				t.Fatalf("strategy kind string mismatch! should be %s but got %s", tc.expected, s)
			}
		})
	}
}

func TestOrderStatusAvailability(t *testing.T) {
	testCases := []struct {
		desc     string
		input    OrderStatus
		expected bool
	}{
		{"pending", OrderStatusPending, true},
		{"filled", OrderStatusFilled, true},
		{"cancelled", OrderStatusCancelled, true},
		{"zero", OrderStatus(0), false},
		{"out of range", OrderStatus(99), false},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			if ok := tc.input.IsAvailable(); ok != tc.expected {
				t.Fatalf("availability mismatch! should be %t but got %t", tc.expected, ok)
			}
		})
	}
}
