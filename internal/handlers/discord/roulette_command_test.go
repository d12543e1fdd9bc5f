package discord

import (
	"fmt"
	"testing"

	"github.com/KirkDiggler/lunchwheel/internal/models"
	messagingMocks "github.com/KirkDiggler/lunchwheel/internal/services/messaging/mocks"
	optionsMocks "github.com/KirkDiggler/lunchwheel/internal/services/options/mocks"
	"github.com/KirkDiggler/lunchwheel/internal/services/spin"
	spinMocks "github.com/KirkDiggler/lunchwheel/internal/services/spin/mocks"
	"github.com/KirkDiggler/lunchwheel/internal/share"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RouletteCommandTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	command *RouletteCommand
}

func (s *RouletteCommandTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	linker, err := share.New(&share.Config{PublicURL: "https://wheel.example.com"})
	s.Require().NoError(err)

	s.command = NewRouletteCommand(&RouletteConfig{
		OptionsService:   optionsMocks.NewMockService(s.ctrl),
		SpinService:      spinMocks.NewMockService(s.ctrl),
		MessagingService: messagingMocks.NewMockService(s.ctrl),
		Linker:           linker,
	})
}

func (s *RouletteCommandTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestRouletteCommandSuite(t *testing.T) {
	suite.Run(t, new(RouletteCommandTestSuite))
}

func (s *RouletteCommandTestSuite) TestCommandDefinition() {
	cmd := s.command.GetCommand()
	s.Equal("roulette", cmd.Name)

	subcommands := make(map[string]*discordgo.ApplicationCommandOption)
	for _, opt := range cmd.Options {
		s.Equal(discordgo.ApplicationCommandOptionSubCommand, opt.Type)
		subcommands[opt.Name] = opt
	}
	s.Len(subcommands, 6)

	add := subcommands["add"]
	s.Require().NotNil(add)
	s.Require().Len(add.Options, 2)
	s.True(add.Options[0].Required)
	s.Len(add.Options[0].Choices, len(models.Modes))
	s.Equal(maxLabelLength, add.Options[1].MaxLength)

	remove := subcommands["remove"]
	s.Require().NotNil(remove)
	s.False(remove.Options[1].Required)

	s.Empty(subcommands["share"].Options)
}

func (s *RouletteCommandTestSuite) TestModeIsRememberedPerChannel() {
	s.Equal(models.ModeLunch, s.command.activeMode("channel-1"))

	s.command.setMode("channel-1", models.ModeDrink)
	s.Equal(models.ModeDrink, s.command.activeMode("channel-1"))
	s.Equal(models.ModeLunch, s.command.activeMode("channel-2"))
}

func (s *RouletteCommandTestSuite) TestDefaultSpinTimeout() {
	s.Equal(defaultSpinTimeout, s.command.spinTimeout)
}

func (s *RouletteCommandTestSuite) TestIsUserError() {
	s.True(isUserError(spin.ErrInsufficientOptions))
	s.True(isUserError(fmt.Errorf("wrapped: %w", spin.ErrSpinInProgress)))
	s.False(isUserError(fmt.Errorf("failed to get options: boom")))
}

func (s *RouletteCommandTestSuite) TestDisplayName() {
	s.Equal("someone", displayName(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}))

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{Username: "sam"},
	}}
	s.Equal("sam", displayName(dm))

	guild := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{Username: "sam"}, Nick: "Sammy"},
	}}
	s.Equal("Sammy", displayName(guild))
}
