package enum

// StrategyKind identifies a built-in signal generator. The string form
// doubles as the strategy name on orders, metrics and reports.
type StrategyKind uint8

const (
	_strategyKind_beg StrategyKind = iota
	StrategyKindMarketMaking
	StrategyKindArbitrage
	StrategyKindMomentum
	StrategyKindMeanReversion
	_strategyKind_end
)

func (k StrategyKind) IsAvailable() bool {
	return k > _strategyKind_beg && k < _strategyKind_end
}

func (k StrategyKind) String() string {
	switch k {
	case StrategyKindMarketMaking:
		return "market_making"
	case StrategyKindArbitrage:
		return "arbitrage"
	case StrategyKindMomentum:
		return "momentum"
	case StrategyKindMeanReversion:
		return "mean_reversion"
	default:
		return "unknown"
	}
}
