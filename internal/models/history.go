package models

import (
	"time"
)

// HistoryEntry records one finished spin of a wheel
type HistoryEntry struct {
	// ID is the unique identifier for the entry
	ID string

	// WheelID is the wheel that was spun, a Discord channel or the web wheel
	WheelID string

	// Mode is the list the winner was picked from
	Mode Mode

	// WinningOption is the text of the winner at spin time
	WinningOption string

	// WinningIndex is the winner's position in the list at spin time
	WinningIndex int

	// SpunBy is the display name of whoever started the spin, may be empty
	SpunBy string

	// Timestamp is when the spin finished
	Timestamp time.Time
}
