package envguard

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
)

// Environment is the current environment conditions are evaluated against.
type Environment struct {
	Node        string
	Application string
	Vars        map[string]string
}

// EnvironmentFrom derives the environment from raw configuration values
// (NODE_ENV and APPLICATION_ENV).
func EnvironmentFrom(raw map[string]any) Environment {
	vars := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		vars[k] = fmt.Sprintf("%v", v)
	}
	return Environment{
		Node:        vars["NODE_ENV"],
		Application: vars["APPLICATION_ENV"],
		Vars:        vars,
	}
}

// IsProduction reports whether NODE_ENV is "production".
func (e Environment) IsProduction() bool { return e.Node == "production" }

// IsDevelopment reports whether NODE_ENV is "development".
func (e Environment) IsDevelopment() bool { return e.Node == "development" }

// ForNodeEnvironment validates a field only when NODE_ENV is unset or
// matches one of envs, ignoring case.
func ForNodeEnvironment(envs ...string) Condition {
	return func(e Environment) bool { return matchEnv(e.Node, envs) }
}

// ForApplicationEnvironment validates a field only when APPLICATION_ENV is
// unset or matches one of envs, ignoring case.
func ForApplicationEnvironment(envs ...string) Condition {
	return func(e Environment) bool { return matchEnv(e.Application, envs) }
}

func matchEnv(current string, envs []string) bool {
	if current == "" {
		return true
	}
	for _, env := range envs {
		if strings.EqualFold(env, current) {
			return true
		}
	}
	return false
}

// All accepts an environment only if every condition does.
func All(conds ...Condition) Condition {
	return func(e Environment) bool {
		for _, c := range conds {
			if c != nil && !c(e) {
				return false
			}
		}
		return true
	}
}

// Expr compiles a CEL expression into a Condition. The expression sees
// node_env, app_env (strings) and vars (map of every raw value).
//
//	envguard.Expr(`app_env == "production" && vars["REGION"] != ""`)
//
// Evaluation errors and non-bool results validate the field.
func Expr(expression string) (Condition, error) {
	env, err := cel.NewEnv(
		cel.Variable("node_env", cel.StringType),
		cel.Variable("app_env", cel.StringType),
		cel.Variable("vars", cel.MapType(cel.StringType, cel.StringType)),
	)
	if err != nil {
		return nil, err
	}

	ast, iss := env.Compile(expression)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchema, expression, iss.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchema, expression, err)
	}

	return func(e Environment) bool {
		vars := e.Vars
		if vars == nil {
			vars = map[string]string{}
		}
		out, _, err := prg.Eval(map[string]any{
			"node_env": e.Node,
			"app_env":  e.Application,
			"vars":     vars,
		})
		if err != nil {
			return true
		}
		b, ok := out.Value().(bool)
		return !ok || b
	}, nil
}
