package domain

import "time"

// Fill represents a single broker-confirmed execution from the order export.
type Fill struct {
	Symbol      string      // Instrument symbol (e.g., "AAPL")
	CompanyName string      // Company name when the export carries one
	Side        OrderSide   // Buy or Sell
	Quantity    int64       // Filled quantity, always positive
	AvgPrice    float64     // Average fill price
	FilledTime  time.Time   // Execution time; zero value means the timestamp was missing or unparsable
	Status      OrderStatus // Broker status; only Filled rows reach the matcher
}

// HasTime reports whether the fill carries a usable execution timestamp.
func (f *Fill) HasTime() bool {
	return !f.FilledTime.IsZero()
}
