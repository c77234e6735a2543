package envguard

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serverSchema = NewSchema("Server",
	Field{Name: "PORT", Type: TypeInteger, Default: "8080"},
	Field{Name: "HOST", Type: TypeString, Default: "localhost"},
	Field{Name: "DEBUG", Type: TypeBool, Default: "false"},
	Field{Name: "TIMEOUT", Type: TypeDuration, Default: "30s"},
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(WithSchemas(serverSchema), WithProvider(Map(nil)))

	require.NoError(t, err)
	assert.Equal(t, Config{
		"PORT":    int64(8080),
		"HOST":    "localhost",
		"DEBUG":   false,
		"TIMEOUT": 30 * time.Second,
	}, cfg)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("DEBUG", "true")

	cfg, err := Load(WithSchemas(serverSchema), WithEnvFiles())

	require.NoError(t, err)
	assert.Equal(t, int64(3000), cfg["PORT"])
	assert.Equal(t, true, cfg["DEBUG"])
}

func TestLoad_EnvFilesOverrideProcessEnv(t *testing.T) {
	dir := t.TempDir()
	local := writeFile(t, dir, ".env.local", "PORT=7000\n")
	base := writeFile(t, dir, ".env", "PORT=6000\nHOST=0.0.0.0\n")
	t.Setenv("PORT", "3000")
	t.Setenv("HOST", "127.0.0.1")

	cfg, err := Load(WithSchemas(serverSchema), WithEnvFiles(local, base))

	require.NoError(t, err)
	assert.Equal(t, int64(7000), cfg["PORT"])
	assert.Equal(t, "0.0.0.0", cfg["HOST"])
}

func TestLoad_Required(t *testing.T) {
	_, err := Load(WithSchemas(applicationEnvironment), WithProvider(Map(nil)))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestLoad_WithProvider(t *testing.T) {
	cfg, err := Load(
		WithSchemas(serverSchema),
		WithProvider(Map(map[string]string{"PORT": "5000", "HOST": "0.0.0.0"})),
		WithProvider(Map(map[string]string{"PORT": "5001"})),
	)

	require.NoError(t, err)
	assert.Equal(t, int64(5001), cfg["PORT"])
	assert.Equal(t, "0.0.0.0", cfg["HOST"])
}

func TestLoad_ProviderError(t *testing.T) {
	boom := errors.New("boom")

	_, err := Load(WithSchemas(serverSchema), WithProvider(ProviderFunc(func() (map[string]any, error) {
		return nil, boom
	})))

	assert.ErrorIs(t, err, boom)
}

func TestLoad_WithPrefix(t *testing.T) {
	cfg, err := Load(
		WithSchemas(serverSchema),
		WithProvider(Map(map[string]string{"APP_PORT": "9000"})),
		WithPrefix("APP"),
	)

	require.NoError(t, err)
	assert.Equal(t, int64(9000), cfg["PORT"])
}

func TestLoad_WithValidator(t *testing.T) {
	_, err := Load(
		WithSchemas(serverSchema),
		WithProvider(Map(map[string]string{"PORT": "80"})),
		WithValidator(func(cfg Config) error {
			if cfg["PORT"].(int64) < 1024 {
				return errors.New("PORT must be >= 1024")
			}
			return nil
		}),
	)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "config", e.Field)
}

func TestLoad_Defaults_BuiltinSchemas(t *testing.T) {
	cfg, err := Load(
		WithDefaults(Defaults{BaseAPI: true}),
		WithSchemas(applicationEnvironment),
		WithProvider(Map(map[string]string{
			"NODE_ENV":     "development",
			"PORT":         "3000",
			"DATABASE_URL": validDatabaseURL,
		})),
	)

	require.NoError(t, err)
	assert.Equal(t, Config{"NODE_ENV": "development", "PORT": float64(3000), "DATABASE_URL": validDatabaseURL}, cfg)
}

func TestLoadInto(t *testing.T) {
	type Server struct {
		Port    int           `env:"PORT"`
		Host    string        `env:"HOST"`
		Debug   bool          `env:"DEBUG"`
		Timeout time.Duration `env:"TIMEOUT"`
	}

	srv, err := LoadInto[Server](
		WithSchemas(serverSchema),
		WithProvider(Map(map[string]string{"PORT": "9999", "TIMEOUT": "5m30s"})),
	)

	require.NoError(t, err)
	assert.Equal(t, Server{Port: 9999, Host: "localhost", Debug: false, Timeout: 5*time.Minute + 30*time.Second}, *srv)
}

func TestMustLoad_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustLoad(WithSchemas(applicationEnvironment), WithProvider(Map(nil)))
	})
}

func TestLoader_Load(t *testing.T) {
	loader := NewLoader(WithSchemas(serverSchema), WithProvider(Map(nil)))

	assert.Nil(t, loader.Get())
	cfg := loader.MustLoad()

	assert.Equal(t, cfg, loader.Get())
	assert.Equal(t, int64(1), loader.Version())
}

func TestLoader_Print(t *testing.T) {
	var buf bytes.Buffer
	secret := NewSchema("Secret", Field{Name: "DATABASE_URL", Type: TypeString, Secret: true})
	loader := NewLoader(
		WithSchemas(secret),
		WithProvider(Map(map[string]string{"DATABASE_URL": validDatabaseURL})),
		WithOutput(&buf),
	)
	loader.MustLoad()

	loader.Print()

	assert.Contains(t, buf.String(), "DATABASE_URL")
	assert.NotContains(t, buf.String(), validDatabaseURL)
}

func TestLoader_StartWatchingWithoutPath(t *testing.T) {
	loader := NewLoader(WithSchemas(serverSchema), WithProvider(Map(nil)))

	assert.ErrorIs(t, loader.StartWatching(), ErrNoWatchPath)
}

func TestLoader_Watch(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.env", "PORT=4000\n")

	var reloads atomic.Int32
	var lastPort atomic.Value
	loader := NewLoader(
		WithSchemas(serverSchema),
		WithProvider(File(path)),
		WithWatch(path, 10*time.Millisecond),
		WithOnReload(func(_, cfg Config) {
			lastPort.Store(cfg["PORT"])
			reloads.Add(1)
		}),
	)

	require.NoError(t, loader.StartWatching())
	t.Cleanup(loader.StopWatching)
	assert.Equal(t, int64(4000), loader.Get()["PORT"])

	require.NoError(t, os.WriteFile(path, []byte("PORT=4001\n"), 0o600))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	assert.Eventually(t, func() bool { return reloads.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(4001), lastPort.Load())
	assert.Equal(t, int64(4001), loader.Get()["PORT"])
	assert.Equal(t, int64(2), loader.Version())
}

func TestLoader_WatchKeepsConfigOnInvalidReload(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.env", "PORT=4000\n")

	loader := NewLoader(
		WithSchemas(serverSchema),
		WithProvider(File(path)),
		WithWatch(filepath.Join(dir, "app.env"), 10*time.Millisecond),
	)
	require.NoError(t, loader.StartWatching())
	t.Cleanup(loader.StopWatching)

	require.NoError(t, os.WriteFile(path, []byte("PORT=not-a-number\n"), 0o600))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(4000), loader.Get()["PORT"])
	assert.Equal(t, int64(1), loader.Version())
}
