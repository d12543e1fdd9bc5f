package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/KirkDiggler/lunchwheel/internal/services/options"
	"github.com/KirkDiggler/lunchwheel/internal/services/spin"
	"github.com/KirkDiggler/lunchwheel/internal/share"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

const (
	timeout time.Duration = 10 * time.Second

	// WheelID is the wheel drawn for web visitors; Discord channels get their own
	WheelID = "web"
)

// WebError is a custom error type for HTTP companion errors
type WebError string

// Error implements the error interface
func (e WebError) Error() string {
	return string(e)
}

const (
	ErrNilConfig         WebError = "config cannot be nil"
	ErrNilOptionsService WebError = "options service cannot be nil"
	ErrNilSpinService    WebError = "spin service cannot be nil"
	ErrNilLinker         WebError = "share linker cannot be nil"
	ErrInvalidPort       WebError = "port must be between 1-65535 inclusive"
)

// Config holds configuration for the HTTP companion
type Config struct {
	Bind string
	Port int

	// HTTPS adds HSTS to responses
	HTTPS bool

	// AllowedOrigins defaults to every origin
	AllowedOrigins []string

	OptionsService options.Service
	SpinService    spin.Service
	Linker         *share.Linker
}

// Server serves the wheel image, the share QR code and a live feed of the option lists
type Server struct {
	cfg     *Config
	srv     *http.Server
	hub     *hub
	handler http.Handler

	unsubscribe func()
}

// New creates the HTTP companion and subscribes it to option changes
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.OptionsService == nil {
		return nil, ErrNilOptionsService
	}

	if cfg.SpinService == nil {
		return nil, ErrNilSpinService
	}

	if cfg.Linker == nil {
		return nil, ErrNilLinker
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, ErrInvalidPort
	}

	s := &Server{
		cfg: cfg,
		hub: newHub(),
	}

	mux := httprouter.New()
	mux.PanicHandler = func(w http.ResponseWriter, r *http.Request, i any) {
		log.Error().
			Interface("panic", i).
			Str("path", r.URL.Path).
			Msg("handler panicked")

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		s.securityHeaders(w)
		w.WriteHeader(http.StatusInternalServerError)
	}

	mux.GET("/healthz", s.serveHealthCheck())
	mux.GET("/wheel/:mode", s.serveWheel())
	mux.GET("/share.png", s.serveShareQR())
	mux.GET("/ws", s.serveLiveOptions())

	allowed := cfg.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
		},
		AllowedOrigins: allowed,
		AllowedHeaders: []string{"*"},
	})
	s.handler = c.Handler(mux)

	s.srv = &http.Server{
		Addr:              net.JoinHostPort(cfg.Bind, strconv.Itoa(cfg.Port)),
		Handler:           s.handler,
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       timeout,
		ReadHeaderTimeout: timeout,
	}

	s.unsubscribe = cfg.OptionsService.Subscribe(s.hub.broadcast)

	return s, nil
}

// Handler returns the routed handler wrapped with CORS
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx ends, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errs := make(chan error, 1)

	go func() {
		log.Info().
			Str("addr", s.srv.Addr).
			Str("public_url", s.cfg.Linker.URL()).
			Msg("http companion listening")

		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		s.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.Close()
	return s.srv.Shutdown(shutdownCtx)
}

// Close stops the live feed and disconnects every websocket client
func (s *Server) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.hub.closeAll()
}

func (s *Server) securityHeaders(w http.ResponseWriter) {
	w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
	w.Header().Set("Cross-Origin-Resource-Policy", "cross-origin")
	w.Header().Set("Permissions-Policy", "geolocation=(), midi=(), sync-xhr=(), microphone=(), camera=(), magnetometer=(), gyroscope=(), fullscreen=(), payment=()")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'self'")

	if s.cfg.HTTPS {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
	}
}
