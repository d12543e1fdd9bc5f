package web

import (
	"bytes"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/KirkDiggler/lunchwheel/internal/services/options"
	optionsMocks "github.com/KirkDiggler/lunchwheel/internal/services/options/mocks"
	"github.com/KirkDiggler/lunchwheel/internal/services/spin"
	spinMocks "github.com/KirkDiggler/lunchwheel/internal/services/spin/mocks"
	"github.com/KirkDiggler/lunchwheel/internal/share"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ServerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockOptions *optionsMocks.MockService
	mockSpin    *spinMocks.MockService
	linker      *share.Linker
	server      *Server

	changes      options.ChangeFunc
	unsubscribed bool
}

func (s *ServerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockOptions = optionsMocks.NewMockService(s.ctrl)
	s.mockSpin = spinMocks.NewMockService(s.ctrl)
	s.changes = nil
	s.unsubscribed = false

	linker, err := share.New(&share.Config{PublicURL: "http://localhost:8080"})
	s.Require().NoError(err)
	s.linker = linker

	s.mockOptions.EXPECT().
		Subscribe(gomock.Any()).
		DoAndReturn(func(callback options.ChangeFunc) func() {
			s.changes = callback
			return func() { s.unsubscribed = true }
		})

	server, err := New(&Config{
		Bind:           "127.0.0.1",
		Port:           8080,
		OptionsService: s.mockOptions,
		SpinService:    s.mockSpin,
		Linker:         s.linker,
	})
	s.Require().NoError(err)
	s.server = server
}

func (s *ServerTestSuite) TearDownTest() {
	s.server.Close()
	s.ctrl.Finish()
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) get(path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) TestNewValidation() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Port: 8080})
	s.ErrorIs(err, ErrNilOptionsService)

	_, err = New(&Config{Port: 8080, OptionsService: s.mockOptions})
	s.ErrorIs(err, ErrNilSpinService)

	_, err = New(&Config{Port: 8080, OptionsService: s.mockOptions, SpinService: s.mockSpin})
	s.ErrorIs(err, ErrNilLinker)

	_, err = New(&Config{Port: 70000, OptionsService: s.mockOptions, SpinService: s.mockSpin, Linker: s.linker})
	s.ErrorIs(err, ErrInvalidPort)
}

func (s *ServerTestSuite) TestHealthCheck() {
	rec := s.get("/healthz", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Ok\n", rec.Body.String())
	s.Equal("nosniff", rec.Header().Get("X-Content-Type-Options"))
	s.Empty(rec.Header().Get("Strict-Transport-Security"))
}

func (s *ServerTestSuite) TestWheelImage() {
	s.mockSpin.EXPECT().
		Preview(gomock.Any(), &spin.PreviewInput{WheelID: WheelID, Mode: models.ModeDrink}).
		Return(&spin.PreviewOutput{
			Options: models.OptionList{"Tea", "Water"},
			PNG:     []byte("png-bytes"),
		}, nil)

	rec := s.get("/wheel/DRINK", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("image/png", rec.Header().Get("Content-Type"))
	s.Equal("9", rec.Header().Get("Content-Length"))
	s.Equal("png-bytes", rec.Body.String())
}

func (s *ServerTestSuite) TestWheelUnknownMode() {
	rec := s.get("/wheel/dinner", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerTestSuite) TestWheelRenderFailure() {
	s.mockSpin.EXPECT().
		Preview(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("boom"))

	rec := s.get("/wheel/lunch", nil)
	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *ServerTestSuite) TestShareQRCode() {
	rec := s.get("/share.png", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	s.Require().NoError(err)
	s.Equal(share.DefaultQRSize, img.Bounds().Dx())
}

func (s *ServerTestSuite) TestCORS() {
	rec := s.get("/healthz", http.Header{"Origin": {"https://overlay.example.com"}})
	s.Equal("*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func (s *ServerTestSuite) TestLiveOptions() {
	s.mockOptions.EXPECT().
		Document().
		Return(models.SharedDocument{
			models.ModeLunch: {"Ramen", "Pho"},
			models.ModeDrink: {},
		})

	ts := httptest.NewServer(s.server.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	defer conn.Close()
	defer resp.Body.Close()

	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))

	var initial OptionsMessage
	s.Require().NoError(conn.ReadJSON(&initial))
	s.Equal("options", initial.Type)
	s.Equal(models.OptionList{"Ramen", "Pho"}, initial.Document[models.ModeLunch])
	s.Empty(initial.Document[models.ModeDrink])

	s.Require().NotNil(s.changes)
	s.changes(models.SharedDocument{
		models.ModeLunch: {"Curry"},
		models.ModeDrink: {"Tea"},
	})

	var update OptionsMessage
	s.Require().NoError(conn.ReadJSON(&update))
	s.Equal(models.OptionList{"Curry"}, update.Document[models.ModeLunch])
	s.Equal(models.OptionList{"Tea"}, update.Document[models.ModeDrink])
	s.Equal(1, s.server.hub.size())
}

func (s *ServerTestSuite) TestChangeDuringConnectIsDelivered() {
	s.Require().NotNil(s.changes)

	changed := make(chan struct{})
	s.mockOptions.EXPECT().
		Document().
		DoAndReturn(func() models.SharedDocument {
			// a change lands while the client is being registered
			go func() {
				defer close(changed)
				s.changes(models.SharedDocument{models.ModeLunch: {"Curry"}})
			}()
			return models.SharedDocument{models.ModeLunch: {"Ramen"}}
		})

	ts := httptest.NewServer(s.server.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	defer conn.Close()
	defer resp.Body.Close()

	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))

	var initial OptionsMessage
	s.Require().NoError(conn.ReadJSON(&initial))
	s.Equal(models.OptionList{"Ramen"}, initial.Document[models.ModeLunch])

	var update OptionsMessage
	s.Require().NoError(conn.ReadJSON(&update))
	s.Equal(models.OptionList{"Curry"}, update.Document[models.ModeLunch])

	<-changed
}

func (s *ServerTestSuite) TestCloseUnsubscribes() {
	s.server.Close()
	s.True(s.unsubscribed)
}

func (s *ServerTestSuite) TestHSTSWhenServedOverHTTPS() {
	s.mockOptions.EXPECT().Subscribe(gomock.Any()).Return(func() {})

	server, err := New(&Config{
		Port:           8443,
		HTTPS:          true,
		OptionsService: s.mockOptions,
		SpinService:    s.mockSpin,
		Linker:         s.linker,
	})
	s.Require().NoError(err)
	defer server.Close()

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	s.NotEmpty(rec.Header().Get("Strict-Transport-Security"))
}
