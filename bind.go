package envguard

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Bind decodes cfg into a new T. Fields of T are matched through their
// `env` struct tags; `envDefault` and `,required` work as in
// github.com/caarlos0/env.
//
//	type App struct {
//	    DatabaseURL string `env:"DATABASE_URL"`
//	    Port        int    `env:"PORT" envDefault:"3000"`
//	}
func Bind[T any](cfg Config) (*T, error) {
	var out T
	if err := env.ParseWithOptions(&out, env.Options{Environment: cfg.Strings()}); err != nil {
		return nil, &Error{Field: "config", Err: fmt.Errorf("%w: %v", ErrParse, err)}
	}
	return &out, nil
}
