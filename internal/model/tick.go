package model

// Tick is one synthetic market data observation. Ticks are immutable
// after creation.
type Tick struct {
	Symbol string
	Price  float64
	Bid    float64
	Ask    float64
	Spread float64
	Volume int64
	Ts     int64
}
