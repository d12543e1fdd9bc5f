package spin

import (
	"bytes"
	"context"
	"errors"
	"image/gif"
	"image/png"
	"testing"
	"time"

	"github.com/KirkDiggler/lunchwheel/internal/common/clock"
	"github.com/KirkDiggler/lunchwheel/internal/common/uuid"
	"github.com/KirkDiggler/lunchwheel/internal/models"
	randomMocks "github.com/KirkDiggler/lunchwheel/internal/random/mocks"
	"github.com/KirkDiggler/lunchwheel/internal/repositories/history"
	historyMocks "github.com/KirkDiggler/lunchwheel/internal/repositories/history/mocks"
	"github.com/KirkDiggler/lunchwheel/internal/services/options"
	optionsMocks "github.com/KirkDiggler/lunchwheel/internal/services/options/mocks"
	"github.com/KirkDiggler/lunchwheel/internal/wheel"
	"github.com/KirkDiggler/lunchwheel/internal/wheel/render"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ServiceTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockOptions *optionsMocks.MockService
	mockSampler *randomMocks.MockSampler
	renderer    *render.Renderer
	service     *service
	ctx         context.Context

	lunch models.OptionList
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockOptions = optionsMocks.NewMockService(s.ctrl)
	s.mockSampler = randomMocks.NewMockSampler(s.ctrl)
	s.ctx = context.Background()
	s.lunch = models.DefaultDocument()[models.ModeLunch]

	renderer, err := render.New()
	s.Require().NoError(err)
	s.renderer = renderer

	s.service = s.newService(clock.New())
}

func (s *ServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) newService(clk clock.Clock) *service {
	svc, err := New(&Config{
		OptionsService: s.mockOptions,
		Sampler:        s.mockSampler,
		Clock:          clk,
		Renderer:       s.renderer,
		FrameInterval:  time.Millisecond,
		FrameEvery:     10,
		AnimationSize:  120,
	})
	s.Require().NoError(err)
	return svc
}

func (s *ServiceTestSuite) expectOptions(mode models.Mode, list models.OptionList) {
	s.mockOptions.EXPECT().
		GetOptions(gomock.Any(), &options.GetOptionsInput{Mode: mode}).
		Return(&options.GetOptionsOutput{Options: list.Clone()}, nil)
}

func (s *ServiceTestSuite) expectJob(durationMs, speed float64) {
	gomock.InOrder(
		s.mockSampler.EXPECT().Uniform(wheel.MinDurationMs, wheel.MaxDurationMs).Return(durationMs),
		s.mockSampler.EXPECT().Uniform(wheel.MinSpeedDegPerMs, wheel.MaxSpeedDegPerMs).Return(speed),
	)
}

func (s *ServiceTestSuite) TestNewValidation() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilOptionsService)

	_, err = New(&Config{OptionsService: s.mockOptions})
	s.ErrorIs(err, ErrNilSampler)

	_, err = New(&Config{OptionsService: s.mockOptions, Sampler: s.mockSampler})
	s.ErrorIs(err, ErrNilClock)

	_, err = New(&Config{OptionsService: s.mockOptions, Sampler: s.mockSampler, Clock: clock.New()})
	s.ErrorIs(err, ErrNilRenderer)

	svc, err := New(&Config{
		OptionsService: s.mockOptions,
		Sampler:        s.mockSampler,
		Clock:          clock.New(),
		Renderer:       s.renderer,
	})
	s.Require().NoError(err)
	s.Equal(wheel.FrameInterval, svc.frameInterval)
	s.Equal(DefaultFrameEvery, svc.frameEvery)
	s.Equal(DefaultAnimationSize, svc.animationSize)
	s.Equal(DefaultResultHold, svc.resultHold)
}

func (s *ServiceTestSuite) TestSpinResolvesWinnerAtFinalAngle() {
	s.expectOptions(models.ModeLunch, s.lunch)
	s.expectJob(3000, 20)

	output, err := s.service.Spin(s.ctx, &SpinInput{
		WheelID: "channel-1",
		Mode:    models.ModeLunch,
	})
	s.Require().NoError(err)

	s.Equal(wheel.MaxTicks(3000), output.Ticks)
	s.Equal(models.ModeLunch, output.Result.Mode)
	s.Equal(wheel.Resolve(output.FinalAngle, len(s.lunch)), output.Result.WinningIndex)
	s.Equal(s.lunch[output.Result.WinningIndex], output.Result.WinningOption)
	s.Nil(output.Animation)

	img, err := png.Decode(bytes.NewReader(output.Still))
	s.Require().NoError(err)
	s.Equal(wheel.SurfaceSize, img.Bounds().Dx())

	rotation, err := s.service.Rotation(s.ctx, &RotationInput{WheelID: "channel-1"})
	s.Require().NoError(err)
	s.Equal(models.SpinStatusIdle, rotation.Rotation.Status)
	s.Equal(output.FinalAngle, rotation.Rotation.AngleRadians)
}

func (s *ServiceTestSuite) TestSpinRecordsAnimation() {
	s.expectOptions(models.ModeDrink, models.OptionList{"Tea", "Coffee", "Water"})
	s.expectJob(3000, 25)

	output, err := s.service.Spin(s.ctx, &SpinInput{
		WheelID: "channel-1",
		Mode:    models.ModeDrink,
		Record:  true,
	})
	s.Require().NoError(err)

	anim, err := gif.DecodeAll(bytes.NewReader(output.Animation))
	s.Require().NoError(err)

	// the starting frame, every 10th moving tick, then the result
	s.Len(anim.Image, 2+(output.Ticks-1)/10)
	s.Equal(120, anim.Config.Width)
	s.Equal(20, anim.Delay[0])
	s.Equal(300, anim.Delay[len(anim.Delay)-1])
}

func (s *ServiceTestSuite) TestRecordedSpinDoesNotWaitForFrames() {
	fakeClock := clockwork.NewFakeClock()
	svc := s.newService(fakeClock)

	s.expectOptions(models.ModeLunch, s.lunch)
	s.expectJob(3000, 20)

	// the fake clock never ticks, so this only returns when frames are not paced
	output, err := svc.Spin(s.ctx, &SpinInput{WheelID: "channel-1", Mode: models.ModeLunch, Record: true})
	s.Require().NoError(err)
	s.Equal(wheel.MaxTicks(3000), output.Ticks)
	s.NotEmpty(output.Animation)

	// viewers are still watching the animation
	rotation, err := svc.Rotation(s.ctx, &RotationInput{WheelID: "channel-1"})
	s.Require().NoError(err)
	s.Equal(models.SpinStatusSpinning, rotation.Rotation.Status)
	s.Equal(output.FinalAngle, rotation.Rotation.AngleRadians)

	_, err = svc.Spin(s.ctx, &SpinInput{WheelID: "channel-1", Mode: models.ModeLunch, Record: true})
	s.ErrorIs(err, ErrSpinInProgress)

	fakeClock.Advance(3 * time.Second)

	rotation, err = svc.Rotation(s.ctx, &RotationInput{WheelID: "channel-1"})
	s.Require().NoError(err)
	s.Equal(models.SpinStatusIdle, rotation.Rotation.Status)

	s.expectOptions(models.ModeLunch, s.lunch)
	s.expectJob(3000, 20)
	_, err = svc.Spin(s.ctx, &SpinInput{WheelID: "channel-1", Mode: models.ModeLunch, Record: true})
	s.NoError(err)
}

func (s *ServiceTestSuite) TestRotationCarriesAcrossSpinsAndModes() {
	s.expectOptions(models.ModeLunch, s.lunch)
	s.expectOptions(models.ModeDrink, models.OptionList{"Tea", "Coffee"})
	s.expectJob(3000, 20)
	s.expectJob(3000, 20)

	first, err := s.service.Spin(s.ctx, &SpinInput{WheelID: "channel-1", Mode: models.ModeLunch})
	s.Require().NoError(err)

	second, err := s.service.Spin(s.ctx, &SpinInput{WheelID: "channel-1", Mode: models.ModeDrink})
	s.Require().NoError(err)

	s.Greater(second.FinalAngle, first.FinalAngle)
	s.InDelta(2*first.FinalAngle, second.FinalAngle, 1e-9)
}

func (s *ServiceTestSuite) TestWheelsAreIndependent() {
	s.expectOptions(models.ModeLunch, s.lunch)
	s.expectJob(3000, 20)

	_, err := s.service.Spin(s.ctx, &SpinInput{WheelID: "channel-1", Mode: models.ModeLunch})
	s.Require().NoError(err)

	rotation, err := s.service.Rotation(s.ctx, &RotationInput{WheelID: "channel-2"})
	s.Require().NoError(err)
	s.Zero(rotation.Rotation.AngleRadians)
}

func (s *ServiceTestSuite) TestSpinRefusesShortList() {
	s.expectOptions(models.ModeDrink, models.OptionList{"Water"})

	_, err := s.service.Spin(s.ctx, &SpinInput{WheelID: "channel-1", Mode: models.ModeDrink})
	s.ErrorIs(err, ErrInsufficientOptions)

	rotation, err := s.service.Rotation(s.ctx, &RotationInput{WheelID: "channel-1"})
	s.Require().NoError(err)
	s.Equal(models.SpinStatusIdle, rotation.Rotation.Status)
}

func (s *ServiceTestSuite) TestSpinRefusedWhileSpinning() {
	fakeClock := clockwork.NewFakeClock()
	svc := s.newService(fakeClock)

	s.expectOptions(models.ModeLunch, s.lunch)
	s.expectJob(3000, 20)

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	done := make(chan *SpinOutput, 1)
	go func() {
		output, err := svc.Spin(ctx, &SpinInput{WheelID: "channel-1", Mode: models.ModeLunch})
		s.NoError(err)
		done <- output
	}()

	waitCtx, waitCancel := context.WithTimeout(s.ctx, 5*time.Second)
	defer waitCancel()
	s.Require().NoError(fakeClock.BlockUntilContext(waitCtx, 1))

	_, err := svc.Spin(s.ctx, &SpinInput{WheelID: "channel-1", Mode: models.ModeLunch})
	s.ErrorIs(err, ErrSpinInProgress)

	rotation, err := svc.Rotation(s.ctx, &RotationInput{WheelID: "channel-1"})
	s.Require().NoError(err)
	s.Equal(models.SpinStatusSpinning, rotation.Rotation.Status)

	// ending the host's context plays out the rest of the job
	cancel()
	select {
	case output := <-done:
		s.Require().NotNil(output)
		s.Equal(wheel.MaxTicks(3000), output.Ticks)
	case <-time.After(5 * time.Second):
		s.Fail("spin did not finish")
	}
}

func (s *ServiceTestSuite) TestPreview() {
	s.expectOptions(models.ModeLunch, s.lunch)

	output, err := s.service.Preview(s.ctx, &PreviewInput{WheelID: "channel-1", Mode: models.ModeLunch})
	s.Require().NoError(err)
	s.Equal(s.lunch, output.Options)
	s.Zero(output.Angle)

	img, err := png.Decode(bytes.NewReader(output.PNG))
	s.Require().NoError(err)
	s.Equal(wheel.SurfaceSize, img.Bounds().Dy())
}

func (s *ServiceTestSuite) TestInputValidation() {
	_, err := s.service.Spin(s.ctx, &SpinInput{Mode: models.ModeLunch})
	s.ErrorIs(err, ErrMissingWheelID)

	_, err = s.service.Spin(s.ctx, &SpinInput{WheelID: "channel-1", Mode: "dinner"})
	s.ErrorIs(err, ErrUnknownMode)

	_, err = s.service.Rotation(s.ctx, &RotationInput{})
	s.ErrorIs(err, ErrMissingWheelID)

	_, err = s.service.Preview(s.ctx, &PreviewInput{WheelID: "channel-1", Mode: "dinner"})
	s.ErrorIs(err, ErrUnknownMode)

	_, err = s.service.History(s.ctx, &HistoryInput{WheelID: "channel-1", Mode: models.ModeLunch})
	s.ErrorIs(err, ErrHistoryDisabled)
}

func (s *ServiceTestSuite) newServiceWithHistory(clk clock.Clock, repo history.Repository) *service {
	svc, err := New(&Config{
		OptionsService: s.mockOptions,
		Sampler:        s.mockSampler,
		Clock:          clk,
		Renderer:       s.renderer,
		HistoryRepo:    repo,
		UUIDGenerator:  &uuid.Sequence{Prefix: "spin"},
		FrameInterval:  time.Millisecond,
	})
	s.Require().NoError(err)
	return svc
}

func (s *ServiceTestSuite) TestSpinIsRecorded() {
	mockHistory := historyMocks.NewMockRepository(s.ctrl)
	now := time.Date(2025, 4, 5, 12, 30, 0, 0, time.UTC)
	svc := s.newServiceWithHistory(clockwork.NewFakeClockAt(now), mockHistory)

	// the fake clock never ticks, so the driver fast-forwards on the cancelled context
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	s.expectOptions(models.ModeLunch, s.lunch)
	s.expectJob(3000, 20)

	var recorded *models.HistoryEntry
	mockHistory.EXPECT().
		AddEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *history.AddEntryInput) error {
			recorded = input.Entry
			return nil
		})

	output, err := svc.Spin(ctx, &SpinInput{WheelID: "channel-1", Mode: models.ModeLunch, SpunBy: "sam"})
	s.Require().NoError(err)

	s.Require().NotNil(recorded)
	s.Equal("spin-1", recorded.ID)
	s.Equal("channel-1", recorded.WheelID)
	s.Equal(models.ModeLunch, recorded.Mode)
	s.Equal(output.Result.WinningOption, recorded.WinningOption)
	s.Equal(output.Result.WinningIndex, recorded.WinningIndex)
	s.Equal("sam", recorded.SpunBy)
	s.Equal(now, recorded.Timestamp)
}

func (s *ServiceTestSuite) TestRecordFailureKeepsResult() {
	mockHistory := historyMocks.NewMockRepository(s.ctrl)
	svc := s.newServiceWithHistory(clock.New(), mockHistory)

	s.expectOptions(models.ModeDrink, models.OptionList{"Tea", "Coffee"})
	s.expectJob(3000, 20)
	mockHistory.EXPECT().AddEntry(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	output, err := svc.Spin(s.ctx, &SpinInput{WheelID: "channel-1", Mode: models.ModeDrink})
	s.Require().NoError(err)
	s.NotNil(output.Result)
}

func (s *ServiceTestSuite) TestHistory() {
	mockHistory := historyMocks.NewMockRepository(s.ctrl)
	svc := s.newServiceWithHistory(clock.New(), mockHistory)

	entries := []*models.HistoryEntry{{ID: "spin-2", WinningOption: "Bento"}, {ID: "spin-1", WinningOption: "KFC"}}
	mockHistory.EXPECT().
		ListEntries(gomock.Any(), &history.ListEntriesInput{WheelID: "channel-1", Limit: 5}).
		Return(&history.ListEntriesOutput{Entries: entries}, nil)
	mockHistory.EXPECT().
		GetWinCounts(gomock.Any(), &history.GetWinCountsInput{WheelID: "channel-1", Mode: models.ModeLunch}).
		Return(&history.GetWinCountsOutput{Counts: map[string]int64{"Bento": 1, "KFC": 1}}, nil)

	output, err := svc.History(s.ctx, &HistoryInput{WheelID: "channel-1", Mode: models.ModeLunch, Limit: 5})
	s.Require().NoError(err)
	s.Equal(entries, output.Entries)
	s.Equal(int64(1), output.WinCounts["Bento"])
}

func (s *ServiceTestSuite) TestHistoryFailure() {
	mockHistory := historyMocks.NewMockRepository(s.ctrl)
	svc := s.newServiceWithHistory(clock.New(), mockHistory)

	mockHistory.EXPECT().ListEntries(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))

	_, err := svc.History(s.ctx, &HistoryInput{WheelID: "channel-1", Mode: models.ModeLunch})
	s.Error(err)
}
