package envguard

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Option configures loading and validation.
type Option func(*options)

type options struct {
	providers   []Provider
	envFiles    []string
	mapper      KeyMapper
	output      io.Writer
	logger      zerolog.Logger
	schemas     []*Schema
	defaults    Defaults
	environment *Environment
	onReload    func(old, new Config)
	validator   func(Config) error
	watchPath   string
	watchEvery  time.Duration
}

func newOptions(opts []Option) *options {
	o := &options{
		output: os.Stdout,
		mapper: defaultMapper,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithProvider adds a configuration provider. Providers are merged in the
// order given, later ones overriding earlier ones.
func WithProvider(p Provider) Option {
	return func(o *options) {
		o.providers = append(o.providers, p)
	}
}

// WithEnvFiles replaces the default dotenv files. The first path has the
// highest precedence. Process environment variables rank below all files.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) {
		o.envFiles = make([]string, len(paths))
		copy(o.envFiles, paths)
	}
}

// WithPrefix sets an environment variable prefix.
// Example: WithPrefix("APP") makes "PORT" look for "APP_PORT" first.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.mapper = prefixMapper{prefix: strings.ToUpper(prefix)}
	}
}

// WithKeyMapper sets how field names map to raw keys.
func WithKeyMapper(m KeyMapper) Option {
	return func(o *options) {
		o.mapper = m
	}
}

// WithSchemas adds schemas to validate against, in order.
func WithSchemas(schemas ...*Schema) Option {
	return func(o *options) {
		o.schemas = append(o.schemas, schemas...)
	}
}

// WithDefaults enables built-in schemas.
func WithDefaults(d Defaults) Option {
	return func(o *options) {
		o.defaults = d
	}
}

// WithEnvironment sets the environment field conditions are evaluated
// against. By default it is derived from the raw configuration.
func WithEnvironment(env Environment) Option {
	return func(o *options) {
		o.environment = &env
	}
}

// WithLogger sets the logger (default: disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithOutput sets where Loader.Print writes to (default: os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithOnReload sets a callback for configuration reloads.
func WithOnReload(fn func(old, new Config)) Option {
	return func(o *options) {
		o.onReload = fn
	}
}

// WithValidator sets a custom validation function run on the merged
// configuration after every schema passed.
func WithValidator(fn func(Config) error) Option {
	return func(o *options) {
		o.validator = fn
	}
}

// WithWatch enables hot-reloading from a file.
func WithWatch(path string, interval time.Duration) Option {
	return func(o *options) {
		o.watchPath, _ = filepath.Abs(path)
		o.watchEvery = interval
	}
}
