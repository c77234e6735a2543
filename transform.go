package envguard

import (
	"fmt"
	"strings"
)

// TrimSpace trims surrounding whitespace from string values.
func TrimSpace(v any) (any, error) {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s), nil
	}
	return v, nil
}

// ToLower lower-cases string values.
func ToLower(v any) (any, error) {
	if s, ok := v.(string); ok {
		return strings.ToLower(s), nil
	}
	return v, nil
}

// ToUpper upper-cases string values.
func ToUpper(v any) (any, error) {
	if s, ok := v.(string); ok {
		return strings.ToUpper(s), nil
	}
	return v, nil
}

// Constant replaces any value with v.
func Constant(v any) Transform {
	return func(any) (any, error) { return v, nil }
}

var transforms = map[string]Transform{
	"trim":  TrimSpace,
	"lower": ToLower,
	"upper": ToUpper,
}

// LookupTransform returns a built-in transform by name: trim, lower, upper.
func LookupTransform(name string) (Transform, error) {
	t, ok := transforms[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown transform %q", ErrInvalidSchema, name)
	}
	return t, nil
}

func applyTransform(t Transform, v any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTransform, r)
		}
	}()
	out, err = t(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransform, err)
	}
	return out, nil
}
