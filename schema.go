package envguard

// Type is the primitive type a field's value is coerced to.
type Type string

const (
	TypeString   Type = "string"
	TypeNumber   Type = "number"
	TypeInteger  Type = "integer"
	TypeBool     Type = "bool"
	TypeDuration Type = "duration"
	TypeEnum     Type = "enum"
)

// Field declares one expected configuration key.
type Field struct {
	// Name is the key looked up in the raw configuration and the key of
	// the validated value in the resulting Config.
	Name string
	Type Type

	// Optional fields may be absent. An empty string is not absent.
	Optional bool

	// Default is used when the key is absent. It goes through the same
	// transform, coercion and rules as a raw value.
	Default any

	// Values lists the allowed values of a TypeEnum field.
	Values []string

	// Rules are validator tags checked one by one, e.g. "min=10", "url".
	Rules []string

	Transform Transform

	// Secret masks the value in Print output.
	Secret bool

	// When, if set, limits validation to environments it accepts.
	When Condition
}

// String declares a string field.
func String(name string, rules ...string) Field {
	return Field{Name: name, Type: TypeString, Rules: rules}
}

// Number declares a float64 field.
func Number(name string, rules ...string) Field {
	return Field{Name: name, Type: TypeNumber, Rules: rules}
}

// Integer declares an int64 field.
func Integer(name string, rules ...string) Field {
	return Field{Name: name, Type: TypeInteger, Rules: rules}
}

// Bool declares a bool field.
func Bool(name string) Field {
	return Field{Name: name, Type: TypeBool}
}

// Duration declares a time.Duration field. Values are strings accepted by
// time.ParseDuration ("30s", "1h30m"); bare numbers are rejected.
func Duration(name string, rules ...string) Field {
	return Field{Name: name, Type: TypeDuration, Rules: rules}
}

// Enum declares a string field restricted to values.
func Enum(name string, values ...string) Field {
	return Field{Name: name, Type: TypeEnum, Values: values}
}

// Schema is a named, immutable set of field declarations.
type Schema struct {
	name   string
	fields []Field
}

// NewSchema creates a schema. The fields are copied.
func NewSchema(name string, fields ...Field) *Schema {
	s := &Schema{name: name, fields: make([]Field, len(fields))}
	for i, f := range fields {
		s.fields[i] = cloneField(f)
	}
	return s
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Fields returns a copy of the field declarations in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		out[i] = cloneField(f)
	}
	return out
}

// Keys returns the declared field names in declaration order.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.fields))
	for i, f := range s.fields {
		keys[i] = f.Name
	}
	return keys
}

// Merge composes the fields of schemas into a new schema. A later
// declaration of a name replaces the earlier one in its original position.
func Merge(name string, schemas ...*Schema) *Schema {
	var fields []Field
	index := make(map[string]int)
	for _, s := range schemas {
		if s == nil {
			continue
		}
		for _, f := range s.fields {
			if i, ok := index[f.Name]; ok {
				fields[i] = f
				continue
			}
			index[f.Name] = len(fields)
			fields = append(fields, f)
		}
	}
	return NewSchema(name, fields...)
}

func cloneField(f Field) Field {
	if f.Values != nil {
		f.Values = append([]string(nil), f.Values...)
	}
	if f.Rules != nil {
		f.Rules = append([]string(nil), f.Rules...)
	}
	return f
}
