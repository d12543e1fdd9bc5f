package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/lunchwheel/internal/common/clock"
	"github.com/KirkDiggler/lunchwheel/internal/common/uuid"
	"github.com/KirkDiggler/lunchwheel/internal/handlers/discord"
	"github.com/KirkDiggler/lunchwheel/internal/handlers/web"
	"github.com/KirkDiggler/lunchwheel/internal/random"
	"github.com/KirkDiggler/lunchwheel/internal/repositories/document"
	"github.com/KirkDiggler/lunchwheel/internal/repositories/history"
	"github.com/KirkDiggler/lunchwheel/internal/repositories/session"
	"github.com/KirkDiggler/lunchwheel/internal/services/messaging"
	"github.com/KirkDiggler/lunchwheel/internal/services/options"
	"github.com/KirkDiggler/lunchwheel/internal/services/spin"
	"github.com/KirkDiggler/lunchwheel/internal/share"
	"github.com/KirkDiggler/lunchwheel/internal/wheel/render"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	releaseVersion = "0.1.0"
)

func main() {
	// a missing .env is fine, flags and the environment still apply
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).ExecuteContext(ctx))
}

func setupLogging(verbose bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// signIn returns the anonymous session ID used as the write origin.
// Writes still work without a session, they are just not attributed.
func signIn(ctx context.Context, repo session.Repository) string {
	sess, err := repo.SignInAnonymously(ctx, &session.SignInAnonymouslyInput{Label: "discord-bot"})
	if err != nil {
		log.Warn().Err(err).Msg("anonymous sign-in failed")
		return ""
	}

	log.Info().
		Str("session_id", sess.ID).
		Time("expires_at", sess.ExpiresAt).
		Msg("signed in anonymously")

	return sess.ID
}

func run(ctx context.Context, cfg *Config) error {
	setupLogging(cfg.verbose)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.redisAddr,
		Password: cfg.redisPassword,
		DB:       cfg.redisDB,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.redisAddr).Msg("redis is not reachable")
	}

	clk := clock.New()
	uuidGenerator := uuid.New()

	sessionRepo, err := session.NewRedis(&session.Config{
		RedisClient:   redisClient,
		TTL:           cfg.sessionTTL,
		Clock:         clk,
		UUIDGenerator: uuidGenerator,
	})
	if err != nil {
		return fmt.Errorf("failed to create session repository: %w", err)
	}

	origin := signIn(ctx, sessionRepo)

	documentRepo, err := document.NewRedis(&document.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create document repository: %w", err)
	}

	optionsSvc, err := options.New(&options.Config{
		DocumentRepo:  documentRepo,
		DocumentID:    cfg.documentID,
		UUIDGenerator: uuidGenerator,
		WriteTimeout:  cfg.writeTimeout,
		Origin:        origin,
	})
	if err != nil {
		return fmt.Errorf("failed to create options service: %w", err)
	}
	defer optionsSvc.Close()

	// the store stays empty until the subscription is established
	if err := optionsSvc.Start(ctx); err != nil {
		log.Error().Err(err).Str("document_id", cfg.documentID).Msg("failed to subscribe to shared options")
	}

	renderer, err := render.New()
	if err != nil {
		return fmt.Errorf("failed to create wheel renderer: %w", err)
	}

	historyRepo, err := history.NewRedis(&history.Config{
		RedisClient: redisClient,
		Retention:   cfg.historyRetention,
	})
	if err != nil {
		return fmt.Errorf("failed to create history repository: %w", err)
	}

	sampler := random.New(&random.Config{})

	spinSvc, err := spin.New(&spin.Config{
		OptionsService: optionsSvc,
		Sampler:        sampler,
		Clock:          clk,
		Renderer:       renderer,
		HistoryRepo:    historyRepo,
		UUIDGenerator:  uuidGenerator,
		FrameEvery:     cfg.frameEvery,
	})
	if err != nil {
		return fmt.Errorf("failed to create spin service: %w", err)
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{Sampler: sampler})
	if err != nil {
		return fmt.Errorf("failed to create messaging service: %w", err)
	}

	linker, err := share.New(&share.Config{PublicURL: cfg.resolvedPublicURL()})
	if err != nil {
		return fmt.Errorf("failed to create share linker: %w", err)
	}

	server, err := web.New(&web.Config{
		Bind:           cfg.bind,
		Port:           cfg.port,
		HTTPS:          cfg.tlsProxy,
		AllowedOrigins: cfg.allowedOrigins,
		OptionsService: optionsSvc,
		SpinService:    spinSvc,
		Linker:         linker,
	})
	if err != nil {
		return fmt.Errorf("failed to create http companion: %w", err)
	}

	bot, err := discord.New(&discord.Config{
		Token:            cfg.discordToken,
		ApplicationID:    cfg.applicationID,
		GuildID:          cfg.guildID,
		OptionsService:   optionsSvc,
		SpinService:      spinSvc,
		MessagingService: messagingSvc,
		Linker:           linker,
	})
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	serverErrs := make(chan error, 1)
	go func() {
		serverErrs <- server.Run(ctx)
	}()

	if err := bot.Start(); err != nil {
		return fmt.Errorf("failed to start bot: %w", err)
	}

	log.Info().
		Str("version", releaseVersion).
		Str("public_url", linker.URL()).
		Msg("lunchwheel is running, press CTRL-C to exit")

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		if err := <-serverErrs; err != nil && !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Msg("http companion did not shut down cleanly")
		}
	case runErr = <-serverErrs:
		log.Error().Err(runErr).Msg("http companion stopped")
	}

	if err := bot.Stop(); err != nil {
		log.Warn().Err(err).Msg("failed to stop bot cleanly")
	}

	return runErr
}
