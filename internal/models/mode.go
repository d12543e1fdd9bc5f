package models

import "strings"

// Mode selects which option list is active
type Mode string

const (
	// ModeLunch is the list of places to eat
	ModeLunch Mode = "lunch"

	// ModeDrink is the list of places to grab a drink
	ModeDrink Mode = "drink"
)

// Modes lists every mode in display order
var Modes = []Mode{ModeLunch, ModeDrink}

// IsValid reports whether the mode is one of the known modes
func (m Mode) IsValid() bool {
	switch m {
	case ModeLunch, ModeDrink:
		return true
	}
	return false
}

// ParseMode converts user input into a Mode
func ParseMode(s string) (Mode, bool) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	return m, m.IsValid()
}

// Title returns the question shown above the wheel for the mode
func (m Mode) Title() string {
	switch m {
	case ModeLunch:
		return "What's for lunch?"
	case ModeDrink:
		return "Which drink shop?"
	}
	return string(m)
}

// Emoji returns the tab icon for the mode
func (m Mode) Emoji() string {
	switch m {
	case ModeLunch:
		return "🍚"
	case ModeDrink:
		return "🥤"
	}
	return ""
}
