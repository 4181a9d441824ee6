package strategy

import (
	"math"

	"github.com/iamsayanmandal/High-Frequency-Trading/internal/book"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model/enum"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/oid"
)

type MeanReversionConfig struct {
	// Alpha is the EMA smoothing factor in (0, 1].
	Alpha float64 `json:"alpha"`

	// Threshold is the deviation from the EMA that triggers a fade.
	Threshold float64 `json:"threshold"`
	Qty       float64 `json:"qty"`
}

func (c MeanReversionConfig) withDefaults() MeanReversionConfig {
	if c.Alpha <= 0 || c.Alpha > 1 {
		c.Alpha = 0.2
	}
	if c.Threshold <= 0 {
		c.Threshold = 50
	}
	if c.Qty <= 0 {
		c.Qty = 8
	}
	return c
}

// MeanReversion fades deviations from an exponential moving average:
// it sells prices stretched above the mean and buys prices stretched
// below it. The deviation is measured against the EMA as of the
// previous tick, then the EMA absorbs the new price.
type MeanReversion struct {
	Core
	cfg    MeanReversionConfig
	ema    float64
	seeded bool
}

func NewMeanReversion(cfg MeanReversionConfig, ids *oid.Generator) *MeanReversion {
	return &MeanReversion{
		Core: newCore(enum.StrategyKindMeanReversion, ids),
		cfg:  cfg.withDefaults(),
	}
}

func (s *MeanReversion) OnTick(tick model.Tick, _ *book.Book) []model.Order {
	if !s.Active() {
		return nil
	}

	if !s.seeded {
		s.ema = tick.Price
		s.seeded = true
		return nil
	}

	dev := tick.Price - s.ema
	s.ema = s.cfg.Alpha*tick.Price + (1-s.cfg.Alpha)*s.ema
	if math.Abs(dev) <= s.cfg.Threshold {
		return nil
	}

	side := enum.SideBuy
	if dev > 0 {
		side = enum.SideSell
	}
	s.addPnL(math.Abs(dev) * s.cfg.Qty)
	s.countTrades(1)

	return []model.Order{s.order(tick.Symbol, side, tick.Price, s.cfg.Qty)}
}
