package envguard

// Provider is a source of configuration values.
type Provider interface {
	// Values returns key-value pairs.
	Values() (map[string]any, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func() (map[string]any, error)

// Values calls f.
func (f ProviderFunc) Values() (map[string]any, error) { return f() }

// Transform rewrites a raw value before it is coerced and checked.
type Transform func(value any) (any, error)

// Condition decides whether a field is validated in the given environment.
type Condition func(env Environment) bool
