// Package risk admits or rejects orders against position and loss
// limits shared by every strategy.
package risk

import (
	"fmt"
	"math"

	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model/enum"
	"github.com/iamsayanmandal/High-Frequency-Trading/pkg/atomicx"
)

type Config struct {
	// MaxPosition bounds the absolute net position in units.
	MaxPosition float64 `json:"max_position"`

	// DailyLossLimit is the P&L floor, expressed as a non-positive
	// number. Orders are rejected once realized P&L falls below it.
	DailyLossLimit float64 `json:"daily_loss_limit"`
}

func DefaultConfig() Config {
	return Config{
		MaxPosition:    10000,
		DailyLossLimit: -5000,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxPosition == 0 {
		c.MaxPosition = def.MaxPosition
	}
	if c.DailyLossLimit == 0 {
		c.DailyLossLimit = def.DailyLossLimit
	}
	return c
}

func (c Config) Validate() error {
	if c.MaxPosition <= 0 {
		return fmt.Errorf("max position must be positive, got %v", c.MaxPosition)
	}
	if c.DailyLossLimit > 0 {
		return fmt.Errorf("daily loss limit must be non-positive, got %v", c.DailyLossLimit)
	}
	return nil
}

// Verdict is the outcome of a pre-trade check.
type Verdict uint8

const (
	VerdictAllow Verdict = iota
	VerdictDenyPosition
	VerdictDenyLoss
)

func (v Verdict) Allowed() bool {
	return v == VerdictAllow
}

func (v Verdict) String() string {
	switch v {
	case VerdictAllow:
		return "allow"
	case VerdictDenyPosition:
		return "position_limit"
	case VerdictDenyLoss:
		return "loss_limit"
	default:
		return "unknown"
	}
}

// Gate tracks net position and realized P&L. Check is advisory: the
// caller decides whether to forward the order and must report the
// applied position itself, so a burst of concurrent checks can admit
// orders that together overshoot the limit. That window is accepted;
// limits here are soft bounds, not hard ledger constraints.
type Gate struct {
	cfg      Config
	position atomicx.Float64
	pnl      atomicx.Float64
}

func NewGate(cfg Config) (*Gate, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Gate{cfg: cfg}, nil
}

// Check reports whether the order is admissible given the current
// position and P&L. It does not mutate state.
func (g *Gate) Check(o model.Order) Verdict {
	hypothetical := g.position.Load() + signedQty(o)
	if math.Abs(hypothetical) > g.cfg.MaxPosition {
		return VerdictDenyPosition
	}
	if g.pnl.Load() < g.cfg.DailyLossLimit {
		return VerdictDenyLoss
	}
	return VerdictAllow
}

// ApplyPosition records an admitted order. Buys add, sells subtract.
func (g *Gate) ApplyPosition(o model.Order) {
	g.position.Add(signedQty(o))
}

// ApplyPnL accumulates realized profit or loss.
func (g *Gate) ApplyPnL(delta float64) {
	g.pnl.Add(delta)
}

func (g *Gate) Position() float64 {
	return g.position.Load()
}

func (g *Gate) PnL() float64 {
	return g.pnl.Load()
}

func (g *Gate) MaxPosition() float64 {
	return g.cfg.MaxPosition
}

func signedQty(o model.Order) float64 {
	if o.Side == enum.SideSell {
		return -o.Qty
	}
	return o.Qty
}
