package envguard

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"
	"time"
)

// ErrNoWatchPath is returned by StartWatching when WithWatch was not given.
var ErrNoWatchPath = errors.New("no watch path configured")

// Load reads raw values from the providers, validates them against the
// configured schemas and returns the merged configuration.
//
// Without WithProvider the process environment is read first, then
// DefaultEnvFiles (or WithEnvFiles) on top of it.
func Load(opts ...Option) (Config, error) {
	o := newOptions(opts)
	return loadInternal(o)
}

func loadInternal(o *options) (Config, error) {
	providers := o.providers
	if len(providers) == 0 {
		files := o.envFiles
		if files == nil {
			files = DefaultEnvFiles
		}
		providers = []Provider{Env(), EnvFiles(files...)}
	}

	values, err := mergeProviders(providers)
	if err != nil {
		return nil, err
	}

	schemas := Resolve(o.defaults, o.schemas...)
	cfg, err := validateAll(values, schemas, o)
	if err != nil {
		return nil, err
	}

	if o.validator != nil {
		if err := o.validator(cfg); err != nil {
			return nil, &Error{Field: "config", Err: fmt.Errorf("%w: %v", ErrValidation, err)}
		}
	}

	return cfg, nil
}

// LoadInto loads the configuration and binds it into T.
func LoadInto[T any](opts ...Option) (*T, error) {
	cfg, err := Load(opts...)
	if err != nil {
		return nil, err
	}
	return Bind[T](cfg)
}

// MustLoad is like Load but panics on error.
func MustLoad(opts ...Option) Config {
	cfg, err := Load(opts...)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Loader provides hot-reloading capabilities.
type Loader struct {
	opts       *options
	config     Config
	version    int64
	stop       chan struct{}
	mu         sync.RWMutex
	isWatching bool
}

// NewLoader creates a loader for hot-reloadable configuration.
func NewLoader(opts ...Option) *Loader {
	return &Loader{opts: newOptions(opts)}
}

// Load loads the configuration.
func (l *Loader) Load() (Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadLocked()
}

func (l *Loader) loadLocked() (Config, error) {
	cfg, err := loadInternal(l.opts)
	if err != nil {
		return nil, err
	}

	l.config = cfg
	l.version++

	return cfg, nil
}

// MustLoad loads configuration or panics.
func (l *Loader) MustLoad() Config {
	cfg, err := l.Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Get returns the current configuration.
func (l *Loader) Get() Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.config
}

// Version returns the configuration version.
func (l *Loader) Version() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}

// Print writes the current configuration to the WithOutput writer.
func (l *Loader) Print() {
	l.mu.RLock()
	defer l.mu.RUnlock()
	PrintTo(l.opts.output, l.config, Resolve(l.opts.defaults, l.opts.schemas...)...)
}

// StartWatching polls the watched file and reloads the configuration when
// it changes. A reload that fails validation keeps the previous config.
func (l *Loader) StartWatching() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.isWatching {
		return nil
	}

	o := l.opts
	if o.watchPath == "" {
		return ErrNoWatchPath
	}
	interval := o.watchEvery
	if interval <= 0 {
		interval = time.Second
	}

	if l.config == nil {
		if _, err := l.loadLocked(); err != nil {
			return err
		}
	}

	l.stop = make(chan struct{})
	l.isWatching = true
	stop := l.stop

	var lastMod time.Time
	if info, err := os.Stat(o.watchPath); err == nil {
		lastMod = info.ModTime()
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				info, err := os.Stat(o.watchPath)
				if err != nil || !info.ModTime().After(lastMod) {
					continue
				}
				lastMod = info.ModTime()
				l.reload()
			}
		}
	}()

	o.logger.Info().Str("path", o.watchPath).Dur("interval", interval).Msg("watching configuration")
	return nil
}

func (l *Loader) reload() {
	l.mu.Lock()
	defer l.mu.Unlock()

	oldConfig := l.config
	newConfig, err := loadInternal(l.opts)
	if err != nil {
		l.opts.logger.Error().Err(err).Str("path", l.opts.watchPath).Msg("reload failed, keeping previous configuration")
		return
	}

	// A touched file with identical content is not a reload.
	if reflect.DeepEqual(oldConfig, newConfig) {
		return
	}

	l.config = newConfig
	l.version++
	l.opts.logger.Info().Int64("version", l.version).Msg("configuration reloaded")

	if l.opts.onReload != nil {
		// The lock is held here; callbacks run on their own goroutine.
		go l.opts.onReload(oldConfig, newConfig)
	}
}

// StopWatching stops the file watcher.
func (l *Loader) StopWatching() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.isWatching {
		return
	}

	if l.stop != nil {
		close(l.stop)
		l.stop = nil
	}
	l.isWatching = false
}
