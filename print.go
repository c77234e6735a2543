package envguard

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Print writes configuration to stdout with secret masking.
func Print(cfg Config, schemas ...*Schema) {
	PrintTo(os.Stdout, cfg, schemas...)
}

// PrintTo writes configuration to w with secret masking. Fields declared
// Secret in any of schemas are masked, as are names that look secret.
func PrintTo(w io.Writer, cfg Config, schemas ...*Schema) {
	secrets := make(map[string]bool)
	for _, s := range schemas {
		if s == nil {
			continue
		}
		for _, f := range s.fields {
			if f.Secret {
				secrets[f.Name] = true
			}
		}
	}

	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, strings.Repeat("─", 50))
	for _, name := range cfg.Keys() {
		val := cfg.String(name)
		if (secrets[name] || isSecret(name)) && len(val) > 0 {
			val = mask(val)
		}
		fmt.Fprintf(w, "%-25s = %s\n", name, val)
	}
	fmt.Fprintln(w, strings.Repeat("─", 50))
}

func mask(val string) string {
	if len(val) > 8 {
		return val[:3] + "***" + val[len(val)-3:]
	}
	return "***"
}

func isSecret(name string) bool {
	upper := strings.ToUpper(name)
	return strings.Contains(upper, "SECRET") ||
		strings.Contains(upper, "PASSWORD") ||
		strings.Contains(upper, "TOKEN") ||
		strings.Contains(upper, "KEY")
}
