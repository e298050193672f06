package domain

import "time"

// Position is the matcher's working state for one open long position.
// It exists only between the first Buy after flat and the sell that fully
// closes it; it is never persisted.
type Position struct {
	Quantity   int64     // Remaining open quantity, never negative
	AvgCost    float64   // Quantity-weighted mean price of the contributing Buy fills
	EntryTime  time.Time // Time of the first Buy that opened the position
	EntryFills int       // Number of Buy fills contributing to the position
}

// IsOpen reports whether any quantity remains open.
func (p *Position) IsOpen() bool {
	return p.Quantity > 0
}

// Reset returns the position to the flat state.
func (p *Position) Reset() {
	p.Quantity = 0
	p.AvgCost = 0
	p.EntryTime = time.Time{}
	p.EntryFills = 0
}
