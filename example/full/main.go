package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nicolasmmb/envguard"
)

// Config demonstrates most envguard features in one place.
type Config struct {
	Name          string        `env:"NAME"`
	Port          int           `env:"PORT"`
	DatabaseURL   string        `env:"DATABASE_URL"`
	MaxConns      int           `env:"DATABASE_MAX_CONNS"`
	SentryDSN     string        `env:"SENTRY_DSN"`
	ShutdownGrace time.Duration `env:"SHUTDOWN_GRACE"`
}

var (
	App = envguard.NewSchema("App",
		envguard.Field{Name: "NAME", Type: envguard.TypeString, Default: "envguard", Transform: envguard.TrimSpace},
		envguard.Integer("PORT", "gte=1024", "lte=65535"),
		envguard.Field{Name: "SHUTDOWN_GRACE", Type: envguard.TypeDuration, Default: "10s", Rules: []string{"min=1s"}},
	)

	Database = envguard.NewSchema("Database",
		envguard.Field{Name: "DATABASE_URL", Type: envguard.TypeString, Rules: []string{"url"}, Secret: true},
		envguard.Field{Name: "DATABASE_MAX_CONNS", Type: envguard.TypeInteger, Default: "10", Rules: []string{"gte=1"}},
	)

	Observability = envguard.NewSchema("Observability",
		envguard.Field{
			Name:  "SENTRY_DSN",
			Type:  envguard.TypeString,
			Rules: []string{"url"},
			When:  envguard.ForApplicationEnvironment("production", "staging"),
		},
	)
)

func main() {
	logger := envguard.NewConsoleLogger(os.Stderr)

	loader := envguard.NewLoader(
		envguard.WithLogger(logger),
		envguard.WithPrefix("APP"),
		envguard.WithDefaults(envguard.Defaults{AWS: true}),
		envguard.WithSchemas(App, Database, Observability),
		envguard.WithProvider(envguard.Env()),
		envguard.WithProvider(envguard.File("config.env")),
		envguard.WithValidator(func(cfg envguard.Config) error {
			if cfg.String("NAME") == "" {
				return errors.New("NAME must not be blank")
			}
			return nil
		}),
		envguard.WithOnReload(func(old, new envguard.Config) {
			logger.Info().Msgf("config reloaded: port %s -> %s", old.String("PORT"), new.String("PORT"))
		}),
		envguard.WithWatch("config.env", 2*time.Second),
	)

	cfg := loader.MustLoad()
	loader.Print()

	if err := loader.StartWatching(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start watcher")
	}
	defer loader.StopWatching()

	typed, err := envguard.Bind[Config](cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("bind")
	}
	fmt.Printf("\nRunning %s on :%d\n", typed.Name, typed.Port)
	select {}
}
