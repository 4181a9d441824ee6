package model

import "github.com/iamsayanmandal/High-Frequency-Trading/internal/model/enum"

// Order is a strategy's request to trade. Quantity is positive on both
// sides; the sign of a position change comes from Side.
type Order struct {
	ID       uint64
	Strategy string
	Symbol   string
	Side     enum.Side
	Price    float64
	Qty      float64
	Status   enum.OrderStatus
	Ts       int64
}
