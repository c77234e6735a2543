package envguard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultEnvFiles are the dotenv files read by Load, highest precedence first.
var DefaultEnvFiles = []string{".env.local", ".env.development", ".env"}

// ============================================================================
// Environment Provider
// ============================================================================

type envProvider struct{}

// Env returns a provider that reads from environment variables.
func Env() Provider {
	return &envProvider{}
}

func (p *envProvider) Values() (map[string]any, error) {
	values := make(map[string]any)
	for _, env := range os.Environ() {
		if i := strings.Index(env, "="); i >= 0 {
			values[env[:i]] = env[i+1:]
		}
	}
	return values, nil
}

// ============================================================================
// File Provider
// ============================================================================

type fileProvider struct {
	path string
}

// File returns a provider that reads from a file: dotenv (.env, .env.*,
// *.env), YAML (.yaml, .yml) or JSON. A missing file yields no values.
func File(path string) Provider {
	absPath, _ := filepath.Abs(path)
	return &fileProvider{path: absPath}
}

func (p *fileProvider) Values() (map[string]any, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	if isDotEnv(p.path) {
		strMap, err := godotenv.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, &Error{Field: p.path, Err: fmt.Errorf("%w: %v", ErrParse, err)}
		}
		values := make(map[string]any, len(strMap))
		for k, v := range strMap {
			values[k] = v
		}
		return values, nil
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(p.path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, &Error{Field: p.path, Err: fmt.Errorf("%w: %v", ErrParse, err)}
	}

	values := make(map[string]any)
	flattenMap("", raw, values)
	return values, nil
}

func isDotEnv(path string) bool {
	base := filepath.Base(path)
	return base == ".env" ||
		strings.HasPrefix(base, ".env.") ||
		strings.EqualFold(filepath.Ext(base), ".env")
}

// flattenMap flattens nested objects into SCREAMING_SNAKE keys; leaf
// values keep their decoded types.
func flattenMap(prefix string, m map[string]any, out map[string]any) {
	for k, v := range m {
		key := toScreamingSnake(k)
		if prefix != "" {
			key = prefix + "_" + key
		}

		switch val := v.(type) {
		case map[string]any:
			flattenMap(key, val, out)
		default:
			out[key] = val
		}
	}
}

// ============================================================================
// Dotenv files Provider
// ============================================================================

type envFilesProvider struct {
	files []Provider
}

// EnvFiles returns a provider reading several files, the first path
// taking precedence over later ones. Missing files are skipped.
func EnvFiles(paths ...string) Provider {
	p := &envFilesProvider{}
	for i := len(paths) - 1; i >= 0; i-- {
		p.files = append(p.files, File(paths[i]))
	}
	return p
}

func (p *envFilesProvider) Values() (map[string]any, error) {
	return mergeProviders(p.files)
}

// ============================================================================
// Map Provider
// ============================================================================

type mapProvider struct {
	values map[string]string
}

// Map returns a provider from a string map.
func Map(values map[string]string) Provider {
	return &mapProvider{values: values}
}

func (p *mapProvider) Values() (map[string]any, error) {
	values := make(map[string]any, len(p.values))
	for k, v := range p.values {
		values[k] = v
	}
	return values, nil
}

// ============================================================================
// Helpers
// ============================================================================

// mergeProviders collects values from providers, later ones winning.
func mergeProviders(providers []Provider) (map[string]any, error) {
	values := make(map[string]any)
	for _, p := range providers {
		v, err := p.Values()
		if err != nil {
			return nil, err
		}
		for k, val := range v {
			values[k] = val
		}
	}
	return values, nil
}

// toScreamingSnake converts CamelCase to SCREAMING_SNAKE_CASE.
func toScreamingSnake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prev := runes[i-1]
			if prev >= 'a' && prev <= 'z' {
				b.WriteByte('_')
			} else if i+1 < len(runes) {
				next := runes[i+1]
				if next >= 'a' && next <= 'z' && prev != '_' {
					b.WriteByte('_')
				}
			}
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}
