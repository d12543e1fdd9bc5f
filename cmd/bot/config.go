package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/lunchwheel/internal/services/options"
	"github.com/KirkDiggler/lunchwheel/internal/services/spin"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	applicationID    string
	bind             string
	discordToken     string
	documentID       string
	frameEvery       int
	guildID          string
	historyRetention time.Duration
	port             int
	publicURL        string
	redisAddr        string
	redisDB          int
	redisPassword    string
	sessionTTL       time.Duration
	tlsProxy         bool
	verbose          bool
	version          bool
	writeTimeout     time.Duration
	allowedOrigins   []string
}

func (c *Config) validate() error {
	if c.discordToken == "" {
		return errors.New("--discord-token is required")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.frameEvery < 1 {
		return fmt.Errorf("invalid frame interval (must be at least 1): %d", c.frameEvery)
	}
	if c.writeTimeout <= 0 {
		return fmt.Errorf("invalid write timeout: %s", c.writeTimeout)
	}
	return nil
}

// resolvedPublicURL falls back to the bind address when no public URL is set
func (c *Config) resolvedPublicURL() string {
	if c.publicURL != "" {
		return c.publicURL
	}

	host := c.bind
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, c.port)
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("LUNCHWHEEL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "lunchwheel",
		Short:         "A shared lunch and drink roulette for Discord.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringSliceVar(&cfg.allowedOrigins, "allowed-origins", nil, "origins allowed to embed the wheel, all when empty (env: LUNCHWHEEL_ALLOWED_ORIGINS)")
	fs.StringVar(&cfg.applicationID, "application-id", "", "discord application id (env: LUNCHWHEEL_APPLICATION_ID)")
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: LUNCHWHEEL_BIND)")
	fs.StringVar(&cfg.discordToken, "discord-token", "", "discord bot token (env: LUNCHWHEEL_DISCORD_TOKEN)")
	fs.StringVar(&cfg.documentID, "document-id", options.DefaultDocumentID, "shared document holding the option lists (env: LUNCHWHEEL_DOCUMENT_ID)")
	fs.IntVar(&cfg.frameEvery, "frame-every", spin.DefaultFrameEvery, "record every nth tick of a spin animation (env: LUNCHWHEEL_FRAME_EVERY)")
	fs.StringVar(&cfg.guildID, "guild-id", "", "register commands in this guild only (env: LUNCHWHEEL_GUILD_ID)")
	fs.DurationVar(&cfg.historyRetention, "history-retention", 30*24*time.Hour, "how long past spins are kept (env: LUNCHWHEEL_HISTORY_RETENTION)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: LUNCHWHEEL_PORT)")
	fs.StringVar(&cfg.publicURL, "public-url", "", "address participants use to reach the wheel (env: LUNCHWHEEL_PUBLIC_URL)")
	fs.StringVar(&cfg.redisAddr, "redis-addr", "localhost:6379", "redis address (env: LUNCHWHEEL_REDIS_ADDR)")
	fs.IntVar(&cfg.redisDB, "redis-db", 0, "redis database (env: LUNCHWHEEL_REDIS_DB)")
	fs.StringVar(&cfg.redisPassword, "redis-password", "", "redis password (env: LUNCHWHEEL_REDIS_PASSWORD)")
	fs.DurationVar(&cfg.sessionTTL, "session-ttl", 24*time.Hour, "lifetime of the anonymous session (env: LUNCHWHEEL_SESSION_TTL)")
	fs.BoolVar(&cfg.tlsProxy, "tls-proxy", false, "served behind a TLS terminating proxy, enables HSTS (env: LUNCHWHEEL_TLS_PROXY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: LUNCHWHEEL_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: LUNCHWHEEL_VERSION)")
	fs.DurationVar(&cfg.writeTimeout, "write-timeout", options.DefaultWriteTimeout, "timeout of a shared document write (env: LUNCHWHEEL_WRITE_TIMEOUT)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("lunchwheel v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
