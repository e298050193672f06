package domain

// OrderSide represents the side of a brokerage order (Buy or Sell).
type OrderSide string

const (
	Buy  OrderSide = "Buy"
	Sell OrderSide = "Sell"
)

// OrderStatus represents the execution status reported by the broker.
type OrderStatus string

const (
	StatusFilled    OrderStatus = "Filled"
	StatusCancelled OrderStatus = "Cancelled"
	StatusPending   OrderStatus = "Pending"
	StatusPartial   OrderStatus = "Partial"
)

// PositionType classifies an exit leg relative to its entry.
type PositionType string

const (
	// FullExit closes an entry in a single sell.
	FullExit PositionType = "Full Exit"
	// ScaleOut partially reduces an open entry; more exit legs follow.
	ScaleOut PositionType = "Scale Out"
	// FinalExit is the last of several exit legs closing one entry.
	FinalExit PositionType = "Final Exit"
)

// TradeGrade is the letter grade assigned by the AI analyst (A-F).
type TradeGrade string
