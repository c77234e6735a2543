package envguard

import (
	"fmt"

	"dario.cat/mergo"
)

// ValidateAll validates raw against every schema and merges the results.
//
// Each schema is validated independently against the same raw values.
// If any schema fails, a *ValidationError naming every failed schema and
// carrying every message is returned and no configuration is produced.
// Otherwise the per-schema configurations are merged in schema order; a
// field declared by several schemas takes the value of the last one.
// Duplicate schemas are validated once.
func ValidateAll(raw map[string]any, schemas []*Schema, opts ...Option) (Config, error) {
	return validateAll(raw, schemas, newOptions(opts))
}

func validateAll(raw map[string]any, schemas []*Schema, o *options) (Config, error) {
	env := o.env(raw)

	var (
		failed   []string
		messages []string
		configs  []Config
	)

	for _, s := range unique(schemas) {
		out := validateSchema(raw, s, o, env)
		o.logger.Debug().
			Str("schema", out.Schema).
			Bool("ok", out.OK()).
			Int("violations", len(out.Messages)).
			Msg("schema validated")

		if !out.OK() {
			failed = append(failed, out.Schema)
			messages = append(messages, out.Messages...)
			continue
		}
		configs = append(configs, out.Config)
	}

	if len(failed) > 0 {
		o.logger.Error().
			Strs("schemas", failed).
			Int("violations", len(messages)).
			Msg("environment variables failed validation")
		return nil, &ValidationError{FailedSchemas: failed, Messages: messages}
	}

	merged := Config{}
	for _, cfg := range configs {
		if err := mergo.Merge(&merged, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}
	return merged, nil
}

// unique drops nil and repeated schemas, keeping first positions.
func unique(schemas []*Schema) []*Schema {
	seen := make(map[*Schema]struct{}, len(schemas))
	out := make([]*Schema, 0, len(schemas))
	for _, s := range schemas {
		if s == nil {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
