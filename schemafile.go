package envguard

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// schemaFile represents the YAML file structure.
type schemaFile struct {
	Schemas []schemaEntry `yaml:"schemas"`
}

type schemaEntry struct {
	Name   string       `yaml:"name"`
	Fields []fieldEntry `yaml:"fields"`
}

type fieldEntry struct {
	Name       string   `yaml:"name"`
	Type       string   `yaml:"type"`
	Optional   bool     `yaml:"optional"`
	Default    *string  `yaml:"default,omitempty"`
	Values     []string `yaml:"values,omitempty"`
	Rules      []string `yaml:"rules,omitempty"`
	Transform  string   `yaml:"transform,omitempty"`
	Secret     bool     `yaml:"secret"`
	ForNodeEnv []string `yaml:"for_node_env,omitempty"`
	ForAppEnv  []string `yaml:"for_app_env,omitempty"`
	When       string   `yaml:"when,omitempty"`
}

// ParseSchemas parses YAML schema definitions:
//
//	schemas:
//	  - name: App
//	    fields:
//	      - name: DATABASE_URL
//	        type: string
//	        rules: [min=10, url]
//	        secret: true
//	      - name: SENTRY_DSN
//	        type: string
//	        for_app_env: [production, staging]
//
// A missing type defaults to string.
func ParseSchemas(content []byte) ([]*Schema, error) {
	var sf schemaFile
	if err := yaml.Unmarshal(content, &sf); err != nil {
		return nil, fmt.Errorf("%w: invalid YAML: %v", ErrInvalidSchema, err)
	}

	schemas := make([]*Schema, 0, len(sf.Schemas))
	for i, se := range sf.Schemas {
		if se.Name == "" {
			return nil, fmt.Errorf("%w: schema #%d has no name", ErrInvalidSchema, i+1)
		}

		fields := make([]Field, 0, len(se.Fields))
		for _, fe := range se.Fields {
			f, err := fe.field()
			if err != nil {
				return nil, fmt.Errorf("schema %s: %w", se.Name, err)
			}
			fields = append(fields, f)
		}
		schemas = append(schemas, NewSchema(se.Name, fields...))
	}
	return schemas, nil
}

func (fe fieldEntry) field() (Field, error) {
	if fe.Name == "" {
		return Field{}, fmt.Errorf("%w: field without name", ErrInvalidSchema)
	}

	f := Field{
		Name:     fe.Name,
		Type:     Type(fe.Type),
		Optional: fe.Optional,
		Values:   fe.Values,
		Rules:    fe.Rules,
		Secret:   fe.Secret,
	}
	if f.Type == "" {
		f.Type = TypeString
	}

	switch f.Type {
	case TypeString, TypeNumber, TypeInteger, TypeBool, TypeDuration:
	case TypeEnum:
		if len(f.Values) == 0 {
			return Field{}, fmt.Errorf("%w: enum type requires 'values' for field '%s'", ErrInvalidSchema, f.Name)
		}
	default:
		return Field{}, fmt.Errorf("%w: unknown type '%s' for field '%s'", ErrInvalidSchema, fe.Type, f.Name)
	}

	for _, rule := range f.Rules {
		if err := ValidRule(f.Type, rule); err != nil {
			return Field{}, fmt.Errorf("%w: field '%s': %v", ErrInvalidSchema, f.Name, err)
		}
	}

	if fe.Default != nil {
		f.Default = *fe.Default
	}

	if fe.Transform != "" {
		t, err := LookupTransform(fe.Transform)
		if err != nil {
			return Field{}, fmt.Errorf("field '%s': %w", f.Name, err)
		}
		f.Transform = t
	}

	var conds []Condition
	if len(fe.ForNodeEnv) > 0 {
		conds = append(conds, ForNodeEnvironment(fe.ForNodeEnv...))
	}
	if len(fe.ForAppEnv) > 0 {
		conds = append(conds, ForApplicationEnvironment(fe.ForAppEnv...))
	}
	if fe.When != "" {
		c, err := Expr(fe.When)
		if err != nil {
			return Field{}, fmt.Errorf("field '%s': %w", f.Name, err)
		}
		conds = append(conds, c)
	}
	switch len(conds) {
	case 0:
	case 1:
		f.When = conds[0]
	default:
		f.When = All(conds...)
	}

	return f, nil
}

// LoadSchemaFile reads and parses a YAML schema file.
func LoadSchemaFile(path string) ([]*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSchemas(data)
}
