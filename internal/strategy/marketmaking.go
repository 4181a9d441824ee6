package strategy

import (
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/book"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/model/enum"
	"github.com/iamsayanmandal/High-Frequency-Trading/internal/oid"
)

type MarketMakingConfig struct {
	// SpreadThreshold is the minimum top-of-book spread before quoting.
	SpreadThreshold float64 `json:"spread_threshold"`
	Qty             float64 `json:"qty"`
}

func (c MarketMakingConfig) withDefaults() MarketMakingConfig {
	if c.SpreadThreshold <= 0 {
		c.SpreadThreshold = 0.02
	}
	if c.Qty <= 0 {
		c.Qty = 10
	}
	return c
}

// MarketMaker quotes inside the spread whenever the book is wide
// enough, buying a tick above the best bid and selling a tick below
// the best ask.
type MarketMaker struct {
	Core
	cfg MarketMakingConfig
}

func NewMarketMaker(cfg MarketMakingConfig, ids *oid.Generator) *MarketMaker {
	return &MarketMaker{
		Core: newCore(enum.StrategyKindMarketMaking, ids),
		cfg:  cfg.withDefaults(),
	}
}

func (s *MarketMaker) OnTick(tick model.Tick, bk *book.Book) []model.Order {
	if !s.Active() {
		return nil
	}

	bid, ask := bk.BestBidAsk()
	if bid <= 0 || ask <= 0 {
		return nil
	}

	spread := ask - bid
	if spread <= s.cfg.SpreadThreshold {
		return nil
	}

	buyPx := bid + _tickSize
	sellPx := ask - _tickSize
	s.addPnL((sellPx - buyPx) * s.cfg.Qty)
	s.countTrades(2)

	return []model.Order{
		s.order(tick.Symbol, enum.SideBuy, buyPx, s.cfg.Qty),
		s.order(tick.Symbol, enum.SideSell, sellPx, s.cfg.Qty),
	}
}
