package envguard

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schemaYAML = `
schemas:
  - name: App
    fields:
      - name: DATABASE_URL
        rules: [min=10]
        secret: true
      - name: PORT
        type: integer
        default: "3000"
        rules: [gte=1, lte=65535]
      - name: LOG_LEVEL
        type: enum
        values: [debug, info]
        transform: lower
        optional: true
  - name: Observability
    fields:
      - name: SENTRY_DSN
        rules: [url]
        for_app_env: [production]
      - name: TRACE_RATE
        type: number
        when: 'app_env == "production" && "TRACING" in vars && vars["TRACING"] == "on"'
`

func TestParseSchemas(t *testing.T) {
	schemas, err := ParseSchemas([]byte(schemaYAML))
	require.NoError(t, err)
	require.Len(t, schemas, 2)

	app := schemas[0]
	assert.Equal(t, "App", app.Name())
	assert.Equal(t, []string{"DATABASE_URL", "PORT", "LOG_LEVEL"}, app.Keys())

	fields := app.Fields()
	assert.Equal(t, TypeString, fields[0].Type)
	assert.True(t, fields[0].Secret)
	assert.Equal(t, "3000", fields[1].Default)
	assert.NotNil(t, fields[2].Transform)

	cfg, err := ValidateAll(map[string]any{
		"DATABASE_URL":    validDatabaseURL,
		"LOG_LEVEL":       "INFO",
		"APPLICATION_ENV": "development",
	}, schemas)
	require.NoError(t, err)
	assert.Equal(t, Config{
		"DATABASE_URL": validDatabaseURL,
		"PORT":         int64(3000),
		"LOG_LEVEL":    "info",
	}, cfg)
}

func TestParseSchemas_Conditions(t *testing.T) {
	schemas, err := ParseSchemas([]byte(schemaYAML))
	require.NoError(t, err)
	obs := []*Schema{schemas[1]}

	_, err = ValidateAll(map[string]any{"APPLICATION_ENV": "production"}, obs)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Messages, 1)
	assert.Contains(t, verr.Messages[0], "SENTRY_DSN")

	_, err = ValidateAll(map[string]any{
		"APPLICATION_ENV": "production",
		"SENTRY_DSN":      "https://key@sentry.io/1",
		"TRACING":         "on",
	}, obs)
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Messages, 1)
	assert.Contains(t, verr.Messages[0], "TRACE_RATE")
}

func TestParseSchemas_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"invalid yaml", "schemas: [\n"},
		{"no schema name", "schemas:\n  - fields: []\n"},
		{"no field name", "schemas:\n  - name: A\n    fields:\n      - type: string\n"},
		{"unknown type", "schemas:\n  - name: A\n    fields:\n      - name: X\n        type: uuid\n"},
		{"enum without values", "schemas:\n  - name: A\n    fields:\n      - name: X\n        type: enum\n"},
		{"unknown rule", "schemas:\n  - name: A\n    fields:\n      - name: X\n        rules: [nope]\n"},
		{"unknown transform", "schemas:\n  - name: A\n    fields:\n      - name: X\n        transform: reverse\n"},
		{"bad expression", "schemas:\n  - name: A\n    fields:\n      - name: X\n        when: 'app_env =='\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchemas([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSchema), err.Error())
		})
	}
}

func TestParseSchemas_DurationRule(t *testing.T) {
	_, err := ParseSchemas([]byte("schemas:\n  - name: A\n    fields:\n      - name: GRACE\n        type: duration\n        rules: [min=1s]\n"))

	assert.NoError(t, err)
}

func TestLoadSchemaFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "envguard.yaml", schemaYAML)

	schemas, err := LoadSchemaFile(path)
	require.NoError(t, err)
	assert.Len(t, schemas, 2)

	_, err = LoadSchemaFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
