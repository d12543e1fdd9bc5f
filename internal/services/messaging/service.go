package messaging

import (
	"context"
	"fmt"
	"strings"

	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/KirkDiggler/lunchwheel/internal/random"
)

// service implements the Service interface
type service struct {
	sampler random.Sampler
}

// NewService creates a new messaging service
func NewService(cfg *ServiceConfig) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Sampler == nil {
		return nil, ErrNilSampler
	}

	return &service{
		sampler: cfg.Sampler,
	}, nil
}

// pick returns a random entry of messages
func (s *service) pick(messages []string) string {
	i := int(s.sampler.Uniform(0, float64(len(messages))))
	if i >= len(messages) {
		i = len(messages) - 1
	}
	if i < 0 {
		i = 0
	}
	return messages[i]
}

// GetSpinningMessage returns the caption of the spin animation
func (s *service) GetSpinningMessage(ctx context.Context, input *GetSpinningMessageInput) (*GetSpinningMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFunny
	}

	var messages []string
	switch tone {
	case ToneNeutral:
		messages = []string{
			"Spinning...",
			"The wheel is turning.",
		}
	default:
		if input.Mode == models.ModeDrink {
			messages = []string{
				"Shaking the options like a bubble tea...",
				"Round and round, who's pouring today?",
				"Ice, sugar, fate. Spinning...",
				"Hold on to your straws!",
			}
		} else {
			messages = []string{
				"Round and round it goes, where it stops nobody knows...",
				"Stomachs rumbling, wheel spinning...",
				"Consulting the lunch gods...",
				"No takebacks once it stops!",
				"The wheel hungers for a decision...",
			}
		}
	}

	return &GetSpinningMessageOutput{
		Message: fmt.Sprintf("%s %s", input.Mode.Emoji(), s.pick(messages)),
	}, nil
}

// GetResultMessage returns the announcement of a winning option
func (s *service) GetResultMessage(ctx context.Context, input *GetResultMessageInput) (*GetResultMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if strings.TrimSpace(input.Option) == "" {
		return nil, ErrMissingName
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneCelebration
	}

	var titles, messages []string
	switch tone {
	case ToneNeutral:
		titles = []string{input.Option}
		messages = []string{
			fmt.Sprintf("The wheel picked %s.", input.Option),
		}
	case ToneFunny:
		titles = []string{
			"No Takebacks!",
			"Fate Has Spoken",
			"Decision Fatigue Cured",
		}
		messages = []string{
			fmt.Sprintf("%s it is. Complaints go to the wheel, not to me.", input.Option),
			fmt.Sprintf("%s! Nobody asked for a best of three.", input.Option),
			fmt.Sprintf("The wheel has chosen %s and the wheel is never wrong.", input.Option),
		}
	default:
		titles = []string{
			"🎉 " + input.Option,
			"We Have a Winner!",
			"And the Wheel Says...",
		}
		if input.Mode == models.ModeDrink {
			messages = []string{
				fmt.Sprintf("Drinks at **%s**! 🥤", input.Option),
				fmt.Sprintf("Grab your wallets, we're going to **%s**!", input.Option),
				fmt.Sprintf("**%s** is pouring today. Cheers! 🥂", input.Option),
			}
		} else {
			messages = []string{
				fmt.Sprintf("Lunch is **%s**! 🍽️", input.Option),
				fmt.Sprintf("Everybody up, we're eating **%s**!", input.Option),
				fmt.Sprintf("**%s** wins. Bon appétit!", input.Option),
			}
		}
	}

	return &GetResultMessageOutput{
		Title:   s.pick(titles),
		Message: s.pick(messages),
	}, nil
}

// GetOptionChangeMessage returns the note posted when someone edits a list
func (s *service) GetOptionChangeMessage(ctx context.Context, input *GetOptionChangeMessageInput) (*GetOptionChangeMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if strings.TrimSpace(input.Option) == "" {
		return nil, ErrMissingName
	}

	actor := input.Actor
	if actor == "" {
		actor = "Someone"
	}

	var messages []string
	if input.Removed {
		messages = []string{
			fmt.Sprintf("**%s** removed **%s** from %s.", actor, input.Option, input.Mode),
			fmt.Sprintf("**%s** has been voted off the %s wheel by **%s**.", input.Option, input.Mode, actor),
			fmt.Sprintf("So long, **%s**! (thanks, **%s**)", input.Option, actor),
		}
	} else {
		messages = []string{
			fmt.Sprintf("**%s** added **%s** to %s.", actor, input.Option, input.Mode),
			fmt.Sprintf("**%s** joins the %s wheel, courtesy of **%s**.", input.Option, input.Mode, actor),
			fmt.Sprintf("Welcome aboard, **%s**! (added by **%s**)", input.Option, actor),
		}
	}

	return &GetOptionChangeMessageOutput{
		Message: s.pick(messages),
	}, nil
}
