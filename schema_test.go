package envguard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchema_CopiesFields(t *testing.T) {
	fields := []Field{String("A", "min=1"), Enum("B", "x", "y")}
	s := NewSchema("S", fields...)

	fields[0].Name = "CHANGED"
	fields[0].Rules[0] = "max=1"
	fields[1].Values[0] = "z"

	got := s.Fields()
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, []string{"min=1"}, got[0].Rules)
	assert.Equal(t, []string{"x", "y"}, got[1].Values)

	got[0].Name = "MUTATED"
	assert.Equal(t, []string{"A", "B"}, s.Keys())
}

func TestMerge(t *testing.T) {
	app := NewSchema("App", String("DATABASE_URL"), Integer("PORT"))
	aws := NewSchema("AWS", String("AWS_PROFILE"), Number("PORT"))

	merged := Merge("Merged", app, nil, aws)

	assert.Equal(t, "Merged", merged.Name())
	assert.Equal(t, []string{"DATABASE_URL", "PORT", "AWS_PROFILE"}, merged.Keys())
	assert.Equal(t, TypeNumber, merged.Fields()[1].Type)
}

func TestMerge_Validates(t *testing.T) {
	merged := Merge("Merged", applicationEnvironment, awsEnvironment)

	out := ValidateSchema(map[string]any{"DATABASE_URL": validDatabaseURL, "PROFILE": validProfile}, merged)

	require.True(t, out.OK())
	assert.Equal(t, Config{"DATABASE_URL": validDatabaseURL, "PROFILE": "transformed"}, out.Config)
}

func TestTransforms(t *testing.T) {
	v, err := TrimSpace("  a ")
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	v, _ = ToUpper("abc")
	assert.Equal(t, "ABC", v)

	v, _ = ToLower(42)
	assert.Equal(t, 42, v)

	tr, err := LookupTransform("TRIM")
	require.NoError(t, err)
	v, _ = tr(" x ")
	assert.Equal(t, "x", v)

	_, err = LookupTransform("reverse")
	assert.True(t, errors.Is(err, ErrInvalidSchema))
}

func TestBuiltinSchemas(t *testing.T) {
	cfg, err := ValidateAll(map[string]any{"NODE_ENV": "production", "PORT": "3000"}, Resolve(Defaults{AWS: true, BaseAPI: true}))

	require.NoError(t, err)
	assert.Equal(t, Config{"NODE_ENV": "production", "PORT": float64(3000)}, cfg)

	_, err = ValidateAll(map[string]any{"NODE_ENV": "test"}, Resolve(Defaults{BaseAPI: true}))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"BaseAPIEnvironmentVariables"}, verr.FailedSchemas)
	assert.Len(t, verr.Messages, 2)
}

func TestResolve(t *testing.T) {
	app := NewSchema("App")

	assert.Empty(t, Resolve(Defaults{}))
	assert.Equal(t, []*Schema{app}, Resolve(Defaults{}, app, app, nil))
	assert.Equal(t, []*Schema{AWS, BaseAPI, app}, Resolve(Defaults{AWS: true, BaseAPI: true}, app, AWS))
}
