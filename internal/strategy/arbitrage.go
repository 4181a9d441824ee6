package strategy

import (
	"math"

	"github.com/iamsayanmandal/High-Frequency-Trading/internal/book"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model/enum"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/oid"
)

type ArbitrageConfig struct {
	// Threshold is the minimum price move between two consecutive
	// ticks that counts as a dislocation.
	Threshold float64 `json:"threshold"`
	Qty       float64 `json:"qty"`
}

func (c ArbitrageConfig) withDefaults() ArbitrageConfig {
	if c.Threshold <= 0 {
		c.Threshold = 0.05
	}
	if c.Qty <= 0 {
		c.Qty = 5
	}
	return c
}

// Arbitrageur trades against tick-to-tick dislocations: a jump above
// the threshold sells into the rise, a drop buys into the fall. The
// first observed tick only seeds the reference price.
type Arbitrageur struct {
	Core
	cfg  ArbitrageConfig
	last float64
}

func NewArbitrageur(cfg ArbitrageConfig, ids *oid.Generator) *Arbitrageur {
	return &Arbitrageur{
		Core: newCore(enum.StrategyKindArbitrage, ids),
		cfg:  cfg.withDefaults(),
	}
}

func (s *Arbitrageur) OnTick(tick model.Tick, _ *book.Book) []model.Order {
	if !s.Active() {
		return nil
	}

	if s.last == 0 {
		s.last = tick.Price
		return nil
	}

	diff := tick.Price - s.last
	s.last = tick.Price
	if math.Abs(diff) <= s.cfg.Threshold {
		return nil
	}

	side := enum.SideBuy
	if diff > 0 {
		side = enum.SideSell
	}
	s.addPnL(math.Abs(diff) * s.cfg.Qty)
	s.countTrades(1)

	return []model.Order{s.order(tick.Symbol, side, tick.Price, s.cfg.Qty)}
}
