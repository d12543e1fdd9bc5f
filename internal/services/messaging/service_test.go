package messaging

import (
	"context"
	"testing"

	"github.com/KirkDiggler/lunchwheel/internal/models"
	randomMocks "github.com/KirkDiggler/lunchwheel/internal/random/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ServiceTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockSampler *randomMocks.MockSampler
	service     *service
	ctx         context.Context
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockSampler = randomMocks.NewMockSampler(s.ctrl)
	s.ctx = context.Background()

	svc, err := NewService(&ServiceConfig{Sampler: s.mockSampler})
	s.Require().NoError(err)
	s.service = svc
}

func (s *ServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) TestNewServiceValidation() {
	_, err := NewService(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = NewService(&ServiceConfig{})
	s.ErrorIs(err, ErrNilSampler)
}

func (s *ServiceTestSuite) TestResultMessageNamesWinner() {
	s.mockSampler.EXPECT().Uniform(float64(0), gomock.Any()).Return(0.0).Times(2)

	output, err := s.service.GetResultMessage(s.ctx, &GetResultMessageInput{
		Mode:   models.ModeLunch,
		Option: "Dumplings",
	})
	s.Require().NoError(err)
	s.Equal("🎉 Dumplings", output.Title)
	s.Contains(output.Message, "Dumplings")
}

func (s *ServiceTestSuite) TestResultMessageDrinkMode() {
	s.mockSampler.EXPECT().Uniform(float64(0), float64(3)).Return(1.5).Times(2)

	output, err := s.service.GetResultMessage(s.ctx, &GetResultMessageInput{
		Mode:   models.ModeDrink,
		Option: "Tea",
	})
	s.Require().NoError(err)
	s.Equal("We Have a Winner!", output.Title)
	s.Equal("Grab your wallets, we're going to **Tea**!", output.Message)
}

func (s *ServiceTestSuite) TestPickClampsUpperBound() {
	s.mockSampler.EXPECT().Uniform(gomock.Any(), gomock.Any()).Return(1.0).Times(2)

	output, err := s.service.GetResultMessage(s.ctx, &GetResultMessageInput{
		Mode:          models.ModeLunch,
		Option:        "Pho",
		PreferredTone: ToneNeutral,
	})
	s.Require().NoError(err)
	s.Equal("Pho", output.Title)
	s.Equal("The wheel picked Pho.", output.Message)
}

func (s *ServiceTestSuite) TestResultMessageRequiresOption() {
	_, err := s.service.GetResultMessage(s.ctx, &GetResultMessageInput{Mode: models.ModeLunch, Option: "  "})
	s.ErrorIs(err, ErrMissingName)

	_, err = s.service.GetResultMessage(s.ctx, nil)
	s.ErrorIs(err, ErrNilInput)
}

func (s *ServiceTestSuite) TestSpinningMessageCarriesModeEmoji() {
	s.mockSampler.EXPECT().Uniform(gomock.Any(), gomock.Any()).Return(0.0)

	output, err := s.service.GetSpinningMessage(s.ctx, &GetSpinningMessageInput{Mode: models.ModeDrink})
	s.Require().NoError(err)
	s.Equal(models.ModeDrink.Emoji()+" Shaking the options like a bubble tea...", output.Message)
}

func (s *ServiceTestSuite) TestOptionChangeMessage() {
	s.mockSampler.EXPECT().Uniform(gomock.Any(), gomock.Any()).Return(0.0).Times(2)

	added, err := s.service.GetOptionChangeMessage(s.ctx, &GetOptionChangeMessageInput{
		Mode:   models.ModeLunch,
		Option: "Curry",
		Actor:  "sam",
	})
	s.Require().NoError(err)
	s.Equal("**sam** added **Curry** to lunch.", added.Message)

	removed, err := s.service.GetOptionChangeMessage(s.ctx, &GetOptionChangeMessageInput{
		Mode:    models.ModeDrink,
		Option:  "Tea",
		Removed: true,
	})
	s.Require().NoError(err)
	s.Equal("**Someone** removed **Tea** from drink.", removed.Message)
}
