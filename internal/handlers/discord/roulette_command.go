package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/KirkDiggler/lunchwheel/internal/services/messaging"
	"github.com/KirkDiggler/lunchwheel/internal/services/options"
	"github.com/KirkDiggler/lunchwheel/internal/services/spin"
	"github.com/KirkDiggler/lunchwheel/internal/share"
	"github.com/KirkDiggler/lunchwheel/internal/wheel"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const defaultSpinTimeout = 30 * time.Second

// RouletteConfig holds the dependencies of the /roulette command
type RouletteConfig struct {
	OptionsService   options.Service
	SpinService      spin.Service
	MessagingService messaging.Service
	Linker           *share.Linker

	// SpinTimeout bounds a spin including its animation; defaults to 30s
	SpinTimeout time.Duration
}

// RouletteCommand handles the /roulette command and the components on its messages.
// Each channel gets its own wheel and remembers the last mode it looked at.
type RouletteCommand struct {
	BaseCommand
	optionsService   options.Service
	spinService      spin.Service
	messagingService messaging.Service
	linker           *share.Linker
	spinTimeout      time.Duration

	mu    sync.Mutex
	modes map[string]models.Mode
}

func modeChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.Modes))
	for _, mode := range models.Modes {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  string(mode),
			Value: string(mode),
		})
	}
	return choices
}

func modeOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "mode",
		Description: "Which list to use",
		Required:    required,
		Choices:     modeChoices(),
	}
}

// NewRouletteCommand creates a new roulette command handler
func NewRouletteCommand(cfg *RouletteConfig) *RouletteCommand {
	timeout := cfg.SpinTimeout
	if timeout <= 0 {
		timeout = defaultSpinTimeout
	}

	return &RouletteCommand{
		BaseCommand: BaseCommand{
			Name:        "roulette",
			Description: "Let the wheel decide lunch or drinks",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "spin",
					Description: "Spin the wheel",
					Options:     []*discordgo.ApplicationCommandOption{modeOption(false)},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "Show the wheel and its options",
					Options:     []*discordgo.ApplicationCommandOption{modeOption(false)},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add an option to a list",
					Options: []*discordgo.ApplicationCommandOption{
						modeOption(true),
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "option",
							Description: "The place to add",
							Required:    true,
							MaxLength:   maxLabelLength,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove an option from a list",
					Options: []*discordgo.ApplicationCommandOption{
						modeOption(true),
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "number",
							Description: "Position in the list; leave empty to pick from a menu",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "history",
					Description: "Show the latest spins in this channel",
					Options:     []*discordgo.ApplicationCommandOption{modeOption(false)},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "share",
					Description: "Get the link and QR code of the shared lists",
				},
			},
		},
		optionsService:   cfg.OptionsService,
		spinService:      cfg.SpinService,
		messagingService: cfg.MessagingService,
		linker:           cfg.Linker,
		spinTimeout:      timeout,
		modes:            make(map[string]models.Mode),
	}
}

// activeMode returns the mode a channel last used, lunch by default
func (c *RouletteCommand) activeMode(channelID string) models.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mode, ok := c.modes[channelID]; ok {
		return mode
	}
	return models.ModeLunch
}

func (c *RouletteCommand) setMode(channelID string, mode models.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modes[channelID] = mode
}

// Handle processes a Discord interaction for the roulette command
func (c *RouletteCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	sub := data.Options[0]
	args := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(sub.Options))
	for _, opt := range sub.Options {
		args[opt.Name] = opt
	}

	mode := c.activeMode(i.ChannelID)
	if opt, ok := args["mode"]; ok {
		parsed, valid := models.ParseMode(opt.StringValue())
		if !valid {
			return RespondWithError(s, i, userMessage(options.ErrUnknownMode))
		}
		mode = parsed
	}

	switch sub.Name {
	case "spin":
		return c.handleSpin(s, i, mode)
	case "list":
		return c.handleList(s, i, mode)
	case "add":
		return c.handleAdd(s, i, mode, args["option"].StringValue())
	case "remove":
		if opt, ok := args["number"]; ok {
			return c.handleRemove(s, i, mode, int(opt.IntValue())-1)
		}
		return c.handleRemoveMenu(s, i, mode)
	case "history":
		return c.handleHistory(s, i, mode)
	case "share":
		return c.handleShare(s, i)
	}

	return errors.New("unknown subcommand")
}

// HandleComponent processes clicks on the buttons and menus of roulette messages
func (c *RouletteCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.MessageComponentData()

	action, mode, ok := parseComponentID(data.CustomID)
	if !ok {
		return RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", data.CustomID))
	}

	switch action {
	case actionSpin:
		return c.handleSpin(s, i, mode)
	case actionMode:
		return c.handleSwitchMode(s, i, mode)
	case actionShare:
		return c.handleShare(s, i)
	case actionRemove:
		if len(data.Values) == 0 {
			return nil
		}
		return c.handleRemoveSelect(s, i, mode, data.Values[0])
	}

	return nil
}

// panel renders the channel's wheel for a mode
func (c *RouletteCommand) panel(ctx context.Context, channelID string, mode models.Mode) (*discordgo.InteractionResponseData, error) {
	preview, err := c.spinService.Preview(ctx, &spin.PreviewInput{
		WheelID: channelID,
		Mode:    mode,
	})
	if err != nil {
		return nil, err
	}

	return renderPanel(mode, preview.Options, preview.PNG), nil
}

// handleSpin spins the channel's wheel, posts the animation and then the winner
func (c *RouletteCommand) handleSpin(s *discordgo.Session, i *discordgo.InteractionCreate, mode models.Mode) error {
	if err := RespondDeferred(s, i); err != nil {
		return fmt.Errorf("failed to defer spin: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.spinTimeout)
	defer cancel()

	output, err := c.spinService.Spin(ctx, &spin.SpinInput{
		WheelID: i.ChannelID,
		Mode:    mode,
		Record:  true,
		SpunBy:  displayName(i),
	})
	if err != nil {
		if !isUserError(err) {
			log.Error().Err(err).
				Str("channel_id", i.ChannelID).
				Str("mode", string(mode)).
				Msg("spin failed")
		}
		return FollowupWithError(s, i, userMessage(err))
	}

	c.setMode(i.ChannelID, mode)

	var caption string
	if msg, err := c.messagingService.GetSpinningMessage(ctx, &messaging.GetSpinningMessageInput{Mode: mode}); err == nil {
		caption = msg.Message
	}

	if err := Followup(s, i, renderSpinning(mode, caption, output.Animation)); err != nil {
		return fmt.Errorf("failed to post spin animation: %w", err)
	}

	// let the animation play before revealing the winner
	playback := time.Duration(output.Ticks) * time.Duration(wheel.TickMs) * time.Millisecond
	select {
	case <-time.After(playback):
	case <-ctx.Done():
	}

	announcement, err := c.messagingService.GetResultMessage(ctx, &messaging.GetResultMessageInput{
		Mode:   mode,
		Option: output.Result.WinningOption,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to get result message")
		announcement = nil
	}

	log.Info().
		Str("channel_id", i.ChannelID).
		Str("user", displayName(i)).
		Str("mode", string(mode)).
		Str("winner", output.Result.WinningOption).
		Msg("wheel spun")

	if err := Followup(s, i, renderResult(output, announcement)); err != nil {
		return fmt.Errorf("failed to post spin result: %w", err)
	}

	return nil
}

// handleSwitchMode moves the panel to another list; ignored while the wheel spins
func (c *RouletteCommand) handleSwitchMode(s *discordgo.Session, i *discordgo.InteractionCreate, mode models.Mode) error {
	ctx := context.Background()

	rotation, err := c.spinService.Rotation(ctx, &spin.RotationInput{WheelID: i.ChannelID})
	if err != nil {
		log.Error().Err(err).Str("channel_id", i.ChannelID).Msg("failed to read wheel rotation")
		return RespondWithError(s, i, userMessage(err))
	}
	if rotation.Rotation.Status == models.SpinStatusSpinning {
		return RespondWithEphemeralMessage(s, i, "The wheel is spinning, switch lists once it stops.")
	}

	data, err := c.panel(ctx, i.ChannelID, mode)
	if err != nil {
		log.Error().Err(err).Str("channel_id", i.ChannelID).Msg("failed to render panel")
		return RespondWithError(s, i, userMessage(err))
	}

	c.setMode(i.ChannelID, mode)
	return UpdateWithData(s, i, data)
}

// handleList posts the wheel panel
func (c *RouletteCommand) handleList(s *discordgo.Session, i *discordgo.InteractionCreate, mode models.Mode) error {
	data, err := c.panel(context.Background(), i.ChannelID, mode)
	if err != nil {
		log.Error().Err(err).Str("channel_id", i.ChannelID).Msg("failed to render panel")
		return RespondWithError(s, i, userMessage(err))
	}

	c.setMode(i.ChannelID, mode)
	return RespondWithData(s, i, data)
}

// handleAdd adds an option and shows the updated panel
func (c *RouletteCommand) handleAdd(s *discordgo.Session, i *discordgo.InteractionCreate, mode models.Mode, text string) error {
	ctx := context.Background()

	added, err := c.optionsService.AddOption(ctx, &options.AddOptionInput{
		Mode: mode,
		Text: text,
	})
	if err != nil {
		return RespondWithError(s, i, userMessage(err))
	}

	log.Info().
		Str("channel_id", i.ChannelID).
		Str("user", displayName(i)).
		Str("mode", string(mode)).
		Str("option", added.Added).
		Str("write_id", added.WriteID).
		Msg("option added")

	data, err := c.panel(ctx, i.ChannelID, mode)
	if err != nil {
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Added **%s**.", added.Added))
	}

	c.setMode(i.ChannelID, mode)
	data.Content = c.changeNote(ctx, i, mode, added.Added, false)
	return RespondWithData(s, i, data)
}

// handleRemove removes the option at index and shows the updated panel
func (c *RouletteCommand) handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, mode models.Mode, index int) error {
	ctx := context.Background()

	removed, err := c.optionsService.RemoveOption(ctx, &options.RemoveOptionInput{
		Mode:  mode,
		Index: index,
	})
	if err != nil {
		return RespondWithError(s, i, userMessage(err))
	}

	log.Info().
		Str("channel_id", i.ChannelID).
		Str("user", displayName(i)).
		Str("mode", string(mode)).
		Str("option", removed.Removed).
		Str("write_id", removed.WriteID).
		Msg("option removed")

	data, err := c.panel(ctx, i.ChannelID, mode)
	if err != nil {
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Removed **%s**.", removed.Removed))
	}

	data.Content = c.changeNote(ctx, i, mode, removed.Removed, true)
	if i.Type == discordgo.InteractionMessageComponent {
		return UpdateWithData(s, i, data)
	}
	return RespondWithData(s, i, data)
}

// changeNote describes an edit for the panel posted after it
func (c *RouletteCommand) changeNote(ctx context.Context, i *discordgo.InteractionCreate, mode models.Mode, option string, removed bool) string {
	msg, err := c.messagingService.GetOptionChangeMessage(ctx, &messaging.GetOptionChangeMessageInput{
		Mode:    mode,
		Option:  option,
		Actor:   displayName(i),
		Removed: removed,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to get option change message")
		return ""
	}
	return msg.Message
}

// handleRemoveMenu shows a private menu of options to remove
func (c *RouletteCommand) handleRemoveMenu(s *discordgo.Session, i *discordgo.InteractionCreate, mode models.Mode) error {
	current, err := c.optionsService.GetOptions(context.Background(), &options.GetOptionsInput{Mode: mode})
	if err != nil {
		return RespondWithError(s, i, userMessage(err))
	}

	menu := removeMenu(mode, current.Options)
	if menu == nil {
		return RespondWithEphemeralMessage(s, i, "There is nothing to remove.")
	}

	return RespondWithData(s, i, &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("Which %s option should go?", mode),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{*menu}},
		},
		Flags: discordgo.MessageFlagsEphemeral,
	})
}

// handleRemoveSelect removes the picked option if the list has not changed underneath the menu
func (c *RouletteCommand) handleRemoveSelect(s *discordgo.Session, i *discordgo.InteractionCreate, mode models.Mode, value string) error {
	index, text, err := parseRemoveValue(value)
	if err != nil {
		return RespondWithError(s, i, userMessage(err))
	}

	current, err := c.optionsService.GetOptions(context.Background(), &options.GetOptionsInput{Mode: mode})
	if err != nil {
		return RespondWithError(s, i, userMessage(err))
	}

	if index < 0 || index >= len(current.Options) || truncate(current.Options[index], removeValueLength) != text {
		return RespondWithEphemeralMessage(s, i, "The list changed in the meantime, please pick again.")
	}

	return c.handleRemove(s, i, mode, index)
}

// handleHistory shows the channel's latest winners and the mode's most picked options
func (c *RouletteCommand) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate, mode models.Mode) error {
	output, err := c.spinService.History(context.Background(), &spin.HistoryInput{
		WheelID: i.ChannelID,
		Mode:    mode,
		Limit:   historyLimit,
	})
	if err != nil {
		if !errors.Is(err, spin.ErrHistoryDisabled) {
			log.Error().Err(err).Str("channel_id", i.ChannelID).Msg("failed to read spin history")
		}
		return RespondWithError(s, i, userMessage(err))
	}

	return RespondWithData(s, i, renderHistory(mode, output))
}

// handleShare replies privately with the share link and its QR code
func (c *RouletteCommand) handleShare(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	qr, err := c.linker.QRCode()
	if err != nil {
		log.Error().Err(err).Msg("failed to create share qr code")
		return RespondWithEphemeralMessage(s, i, c.linker.URL())
	}

	return RespondWithData(s, i, renderShare(c.linker.URL(), qr))
}

// isUserError reports errors caused by the request rather than the bot
func isUserError(err error) bool {
	return errors.Is(err, spin.ErrInsufficientOptions) ||
		errors.Is(err, spin.ErrSpinInProgress) ||
		errors.Is(err, spin.ErrUnknownMode)
}

// displayName prefers the member's server nickname
func displayName(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		if i.Member.Nick != "" {
			return i.Member.Nick
		}
		return i.Member.User.Username
	}
	if i.User != nil {
		return i.User.Username
	}
	return "someone"
}
