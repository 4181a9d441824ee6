package mdg

import (
	"fmt"
	"time"
)

type Config struct {
	Symbol    string
	BasePrice float64

	// WalkPct caps the per-tick multiplicative move, e.g. 0.01 allows
	// prices to drift by at most 1% per tick.
	WalkPct float64

	// HalfSpread is subtracted from and added to the mid price to
	// produce the quoted bid and ask.
	HalfSpread float64

	MinVolume int64
	MaxVolume int64

	Interval time.Duration

	// Seed fixes the price walk. 0 seeds from the wall clock.
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		Symbol:     "BTC/USD",
		BasePrice:  50000,
		WalkPct:    0.01,
		HalfSpread: 0.05,
		MinVolume:  100,
		MaxVolume:  1099,
		Interval:   time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Symbol == "" {
		c.Symbol = def.Symbol
	}
	if c.BasePrice == 0 {
		c.BasePrice = def.BasePrice
	}
	if c.WalkPct == 0 {
		c.WalkPct = def.WalkPct
	}
	if c.HalfSpread == 0 {
		c.HalfSpread = def.HalfSpread
	}
	if c.MinVolume == 0 {
		c.MinVolume = def.MinVolume
	}
	if c.MaxVolume == 0 {
		c.MaxVolume = def.MaxVolume
	}
	if c.Interval == 0 {
		c.Interval = def.Interval
	}
	return c
}

func (c Config) Validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if c.BasePrice <= 0 {
		return fmt.Errorf("base price must be positive, got %v", c.BasePrice)
	}
	if c.WalkPct <= 0 || c.WalkPct >= 1 {
		return fmt.Errorf("walk pct must be in (0, 1), got %v", c.WalkPct)
	}
	if c.HalfSpread < 0 {
		return fmt.Errorf("half spread must be non-negative, got %v", c.HalfSpread)
	}
	if c.MinVolume <= 0 || c.MaxVolume < c.MinVolume {
		return fmt.Errorf("volume range [%d, %d] is invalid", c.MinVolume, c.MaxVolume)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", c.Interval)
	}
	return nil
}
