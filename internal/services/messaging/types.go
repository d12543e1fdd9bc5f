package messaging

import (
	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/KirkDiggler/lunchwheel/internal/random"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	Sampler random.Sampler
}

// GetSpinningMessageInput contains parameters for the spin caption
type GetSpinningMessageInput struct {
	Mode models.Mode

	// PreferredTone is optional, funny by default
	PreferredTone MessageTone
}

// GetSpinningMessageOutput contains the spin caption
type GetSpinningMessageOutput struct {
	Message string
}

// GetResultMessageInput contains parameters for announcing a winner
type GetResultMessageInput struct {
	Mode   models.Mode
	Option string

	// PreferredTone is optional, celebration by default
	PreferredTone MessageTone
}

// GetResultMessageOutput contains the announcement
type GetResultMessageOutput struct {
	Title   string
	Message string
}

// GetOptionChangeMessageInput contains parameters for an edit note
type GetOptionChangeMessageInput struct {
	Mode   models.Mode
	Option string
	Actor  string

	// Removed is true when the option left the list
	Removed bool
}

// GetOptionChangeMessageOutput contains the edit note
type GetOptionChangeMessageOutput struct {
	Message string
}
