package enum

// OrderStatus tracks the lifecycle of an order. Orders start pending and
// are transitioned at most once by execution.
type OrderStatus uint8

const (
	_orderStatus_beg OrderStatus = iota
	OrderStatusPending
	OrderStatusFilled
	OrderStatusCancelled
	_orderStatus_end
)

func (s OrderStatus) IsAvailable() bool {
	return s > _orderStatus_beg && s < _orderStatus_end
}

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "PENDING"
	case OrderStatusFilled:
		return "FILLED"
	case OrderStatusCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}
