package strategy

import (
	"math"

	"github.com/iamsayanmandal/High-Frequency-Trading/internal/book"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model/enum"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/oid"
)

type MomentumConfig struct {
	// Threshold is the move from the reference price that confirms a
	// trend.
	Threshold float64 `json:"threshold"`
	Qty       float64 `json:"qty"`
}

func (c MomentumConfig) withDefaults() MomentumConfig {
	if c.Threshold <= 0 {
		c.Threshold = 25
	}
	if c.Qty <= 0 {
		c.Qty = 8
	}
	return c
}

// Momentum trades with the move: it buys confirmed up-trends and sells
// confirmed down-trends, re-anchoring its reference on every tick.
type Momentum struct {
	Core
	cfg MomentumConfig
	ref float64
}

func NewMomentum(cfg MomentumConfig, ids *oid.Generator) *Momentum {
	return &Momentum{
		Core: newCore(enum.StrategyKindMomentum, ids),
		cfg:  cfg.withDefaults(),
	}
}

func (s *Momentum) OnTick(tick model.Tick, _ *book.Book) []model.Order {
	if !s.Active() {
		return nil
	}

	if s.ref == 0 {
		s.ref = tick.Price
		return nil
	}

	move := tick.Price - s.ref
	s.ref = tick.Price
	if math.Abs(move) <= s.cfg.Threshold {
		return nil
	}

	side := enum.SideBuy
	if move < 0 {
		side = enum.SideSell
	}
	s.addPnL(math.Abs(move) * s.cfg.Qty)
	s.countTrades(1)

	return []model.Order{s.order(tick.Symbol, side, tick.Price, s.cfg.Qty)}
}
