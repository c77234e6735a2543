package envguard

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// typeConstraint names the constraint reported when coercion to t fails.
func typeConstraint(t Type) string {
	switch t {
	case TypeString:
		return "isString"
	case TypeNumber:
		return "isNumber"
	case TypeInteger:
		return "isInt"
	case TypeBool:
		return "isBoolean"
	case TypeDuration:
		return "isDuration"
	case TypeEnum:
		return "isEnum"
	default:
		return "isType"
	}
}

// coerce converts a raw value, typically a string from the environment or
// a number/bool from a JSON file, into the Go value for t.
func coerce(t Type, val any) (any, error) {
	switch t {
	case TypeString, TypeEnum:
		switch v := val.(type) {
		case string:
			return v, nil
		case bool, float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return fmt.Sprintf("%v", v), nil
		default:
			return nil, fmt.Errorf("invalid string value: %T", val)
		}

	case TypeNumber:
		var f float64
		switch v := val.(type) {
		case float64:
			f = v
		case float32:
			f = float64(v)
		case int, int8, int16, int32, int64:
			f = float64(reflect.ValueOf(v).Int())
		case uint, uint8, uint16, uint32, uint64:
			f = float64(reflect.ValueOf(v).Uint())
		case string:
			n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, err
			}
			f = n
		default:
			return nil, fmt.Errorf("invalid number value: %v", val)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("invalid number value: %v", f)
		}
		return f, nil

	case TypeInteger:
		switch v := val.(type) {
		case int, int8, int16, int32, int64:
			return reflect.ValueOf(v).Int(), nil
		case uint, uint8, uint16, uint32, uint64:
			u := reflect.ValueOf(v).Uint()
			if u > math.MaxInt64 {
				return nil, fmt.Errorf("integer value out of range: %v", u)
			}
			return int64(u), nil
		case float64:
			if v != math.Trunc(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("invalid integer value: %v", v)
			}
			// 1<<63 is exact in float64; MaxInt64 is not.
			if v < -(1<<63) || v >= 1<<63 {
				return nil, fmt.Errorf("integer value out of range: %v", v)
			}
			return int64(v), nil
		case string:
			return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		default:
			return nil, fmt.Errorf("invalid integer value: %v", val)
		}

	case TypeBool:
		switch v := val.(type) {
		case bool:
			return v, nil
		case string:
			return strconv.ParseBool(strings.TrimSpace(v))
		default:
			return nil, fmt.Errorf("invalid bool value: %v", val)
		}

	case TypeDuration:
		switch v := val.(type) {
		case time.Duration:
			return v, nil
		case string:
			return time.ParseDuration(strings.TrimSpace(v))
		default:
			return nil, fmt.Errorf("invalid duration type: %T", val)
		}

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
}

// typeMessage is the human readable text for a failed type constraint.
func typeMessage(f Field) string {
	switch f.Type {
	case TypeString:
		return f.Name + " must be a string"
	case TypeNumber:
		return f.Name + " must be a number conforming to the specified constraints"
	case TypeInteger:
		return f.Name + " must be an integer number"
	case TypeBool:
		return f.Name + " must be a boolean value"
	case TypeDuration:
		return f.Name + " must be a valid duration"
	case TypeEnum:
		return f.Name + " must be one of the following values: " + strings.Join(f.Values, ", ")
	default:
		return fmt.Sprintf("%s has an unsupported type %q", f.Name, f.Type)
	}
}
