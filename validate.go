package envguard

import (
	"fmt"
	"strings"
)

// Outcome is the result of validating raw configuration against one schema.
// Exactly one of Config and Messages is set.
type Outcome struct {
	Schema   string
	Config   Config
	Messages []string
}

// OK reports whether the schema passed.
func (o Outcome) OK() bool { return len(o.Messages) == 0 }

// ValidateSchema validates raw against s without failing: every violated
// field is reported as one formatted message in declaration order. On
// success the Config holds only the declared fields, transformed and typed.
func ValidateSchema(raw map[string]any, s *Schema, opts ...Option) Outcome {
	o := newOptions(opts)
	return validateSchema(raw, s, o, o.env(raw))
}

func (o *options) env(raw map[string]any) Environment {
	if o.environment != nil {
		return *o.environment
	}
	return EnvironmentFrom(raw)
}

func validateSchema(raw map[string]any, s *Schema, o *options, env Environment) Outcome {
	out := Outcome{Schema: s.Name()}
	cfg := make(Config, len(s.fields))

	for _, f := range s.fields {
		val, set, cs, ok := validateField(raw, f, o.mapper, env)
		if !ok {
			out.Messages = append(out.Messages, formatMessage(f.Name, cs))
			continue
		}
		if set {
			cfg[f.Name] = val
		}
	}

	if len(out.Messages) == 0 {
		out.Config = cfg
	}
	return out
}

// validateField returns the typed value, whether it is set, and on failure
// the violated constraints (empty when no structured info exists).
func validateField(raw map[string]any, f Field, m KeyMapper, env Environment) (any, bool, []constraint, bool) {
	val, present := lookup(raw, f.Name, m)
	if f.When != nil && !f.When(env) {
		return val, present, nil, true
	}

	if !present && f.Default != nil {
		val, present = f.Default, true
	}

	if !present {
		if f.Optional {
			return nil, false, nil, true
		}
		return nil, false, []constraint{{
			name:    "isDefined",
			message: f.Name + " should not be null or undefined",
		}}, false
	}

	if f.Transform != nil {
		v, err := applyTransform(f.Transform, val)
		if err != nil {
			return nil, false, nil, false
		}
		val = v
	}

	typed, err := coerce(f.Type, val)
	if err != nil {
		return nil, false, []constraint{{name: typeConstraint(f.Type), message: typeMessage(f)}}, false
	}

	var cs []constraint
	if f.Type == TypeEnum && !contains(f.Values, typed.(string)) {
		cs = append(cs, constraint{name: typeConstraint(f.Type), message: typeMessage(f)})
	}
	for _, rule := range f.Rules {
		if c := checkRule(f.Name, typed, rule); c != nil {
			cs = append(cs, *c)
		}
	}
	if len(cs) > 0 {
		return nil, false, cs, false
	}
	return typed, true, nil, true
}

func lookup(raw map[string]any, name string, m KeyMapper) (any, bool) {
	key := m.Field(name)
	val, ok := raw[key]
	if !ok && key != name {
		val, ok = raw[name]
	}
	if !ok || val == nil {
		return nil, false
	}
	return val, true
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// formatMessage renders the report for one failed field.
func formatMessage(field string, cs []constraint) string {
	if len(cs) == 0 {
		return field + " has failed validation"
	}
	names := make([]string, len(cs))
	msgs := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.name
		msgs[i] = c.message
	}
	return fmt.Sprintf("%s has failed with the following constraints: %s \n - %s",
		field, strings.Join(names, ", "), strings.Join(msgs, " \n - "))
}
