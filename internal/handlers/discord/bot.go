package discord

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/lunchwheel/internal/services/messaging"
	"github.com/KirkDiggler/lunchwheel/internal/services/options"
	"github.com/KirkDiggler/lunchwheel/internal/services/spin"
	"github.com/KirkDiggler/lunchwheel/internal/share"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// BotError is returned when the bot cannot be constructed
type BotError string

func (e BotError) Error() string {
	return string(e)
}

const (
	ErrNilConfig         = BotError("discord: config cannot be nil")
	ErrEmptyToken        = BotError("discord: token cannot be empty")
	ErrNilOptionsService = BotError("discord: options service cannot be nil")
	ErrNilSpinService    = BotError("discord: spin service cannot be nil")
	ErrNilMessaging      = BotError("discord: messaging service cannot be nil")
	ErrNilLinker         = BotError("discord: linker cannot be nil")
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // command name to command ID
	roulette   *RouletteCommand
	config     *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	OptionsService   options.Service
	SpinService      spin.Service
	MessagingService messaging.Service
	Linker           *share.Linker
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Token == "" {
		return nil, ErrEmptyToken
	}

	if cfg.OptionsService == nil {
		return nil, ErrNilOptionsService
	}

	if cfg.SpinService == nil {
		return nil, ErrNilSpinService
	}

	if cfg.MessagingService == nil {
		return nil, ErrNilMessaging
	}

	if cfg.Linker == nil {
		return nil, ErrNilLinker
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		roulette: NewRouletteCommand(&RouletteConfig{
			OptionsService:   cfg.OptionsService,
			SpinService:      cfg.SpinService,
			MessagingService: cfg.MessagingService,
			Linker:           cfg.Linker,
		}),
		config: cfg,
	}

	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start opens the Discord connection and registers the commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(b.roulette); err != nil {
		return fmt.Errorf("failed to register roulette command: %w", err)
	}

	log.Info().Msg("bot is now running")
	return nil
}

// Stop removes the registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.Warn().Err(err).
				Str("command", cmdName).
				Str("command_id", cmdID).
				Msg("failed to delete command")
			continue
		}
		log.Info().Str("command", cmdName).Msg("deleted command")
	}

	return b.session.Close()
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord, in the configured guild or globally
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	scope := "global"
	if b.config.GuildID != "" {
		scope = b.config.GuildID
	}
	log.Info().Str("command", cmd.GetName()).Str("scope", scope).Msg("registering command")

	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID

	return nil
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				log.Error().Err(err).Str("command", name).Msg("error handling command")
			}
		}
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		if !strings.HasPrefix(customID, "roulette_") {
			if err := RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", customID)); err != nil {
				log.Error().Err(err).Msg("failed to respond to unknown component")
			}
			return
		}
		if err := b.roulette.HandleComponent(s, i); err != nil {
			log.Error().Err(err).Str("custom_id", customID).Msg("error handling component interaction")
		}
	}
}
