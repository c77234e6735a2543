package envguard

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func rulesValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// constraint is one violated constraint of a field.
type constraint struct {
	name    string
	message string
}

// checkRule checks value against a single validator tag. It returns nil
// if the rule holds.
func checkRule(field string, value any, rule string) (c *constraint) {
	defer func() {
		if r := recover(); r != nil {
			c = &constraint{
				name:    "invalidRule",
				message: fmt.Sprintf("%s has an invalid rule %q", field, rule),
			}
		}
	}()

	err := rulesValidator().Var(value, rule)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &constraint{name: fe.Tag(), message: ruleMessage(field, value, fe.Tag(), fe.Param())}
	}
	return &constraint{name: rule, message: fmt.Sprintf("%s failed the %q constraint: %v", field, rule, err)}
}

// ValidRule reports an error if rule is not a usable validator tag for
// values of type t.
func ValidRule(t Type, rule string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %q: %v", ErrInvalidRule, rule, r)
		}
	}()
	_ = rulesValidator().Var(zeroValue(t), rule)
	return nil
}

func zeroValue(t Type) any {
	switch t {
	case TypeNumber:
		return float64(0)
	case TypeInteger:
		return int64(0)
	case TypeBool:
		return false
	case TypeDuration:
		return time.Duration(0)
	default:
		return ""
	}
}

func ruleMessage(field string, value any, tag, param string) string {
	_, isString := value.(string)
	_, isDuration := value.(time.Duration)

	switch tag {
	case "required":
		return field + " should not be empty"
	case "min", "gte":
		if isString {
			return fmt.Sprintf("%s must be longer than or equal to %s characters", field, param)
		}
		if isDuration {
			return fmt.Sprintf("%s must not be shorter than %s", field, param)
		}
		return fmt.Sprintf("%s must not be less than %s", field, param)
	case "max", "lte":
		if isString {
			return fmt.Sprintf("%s must be shorter than or equal to %s characters", field, param)
		}
		if isDuration {
			return fmt.Sprintf("%s must not be longer than %s", field, param)
		}
		return fmt.Sprintf("%s must not be greater than %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "len":
		if isString {
			return fmt.Sprintf("%s must be exactly %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of the following values: %s", field, strings.Join(strings.Fields(param), ", "))
	case "url", "http_url":
		return field + " must be a URL address"
	case "uri":
		return field + " must be a URI"
	case "email":
		return field + " must be an email"
	case "hostname", "hostname_rfc1123", "fqdn":
		return field + " must be a valid hostname"
	case "ip", "ipv4", "ipv6":
		return field + " must be an ip address"
	case "hostname_port":
		return field + " must be a host:port address"
	case "startswith":
		return fmt.Sprintf("%s must start with %q", field, param)
	case "endswith":
		return fmt.Sprintf("%s must end with %q", field, param)
	case "contains":
		return fmt.Sprintf("%s must contain %q", field, param)
	case "alphanum":
		return field + " must contain only letters and numbers"
	case "numeric", "number":
		return field + " must be a number string"
	case "uuid", "uuid4":
		return field + " must be a UUID"
	default:
		if param != "" {
			return fmt.Sprintf("%s failed the %q constraint", field, tag+"="+param)
		}
		return fmt.Sprintf("%s failed the %q constraint", field, tag)
	}
}
