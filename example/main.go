package main

import (
	"fmt"
	"os"

	"github.com/nicolasmmb/envguard"
)

var App = envguard.NewSchema("App",
	envguard.String("DATABASE_URL", "min=10"),
	envguard.Field{Name: "HOST", Type: envguard.TypeString, Default: "0.0.0.0"},
	envguard.Field{Name: "DEBUG", Type: envguard.TypeBool, Default: "false"},
	envguard.Field{Name: "TIMEOUT", Type: envguard.TypeDuration, Default: "30s"},
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	Host        string `env:"HOST"`
	Port        int    `env:"PORT"`
	Debug       bool   `env:"DEBUG"`
}

func main() {
	cfg, err := envguard.Load(
		envguard.WithDefaults(envguard.Defaults{BaseAPI: true}),
		envguard.WithSchemas(App),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	envguard.Print(cfg, App)

	typed, err := envguard.Bind[Config](cfg)
	if err != nil {
		panic(err)
	}
	fmt.Printf("\nServer starting on %s:%d\n", typed.Host, typed.Port)
}
