// Package envguard loads configuration from environment variables and .env
// files and validates it against declared schemas.
//
// A schema is a named list of fields. Each field has a type, optional rules
// (go-playground/validator tags), an optional transform and an optional
// condition. Validation against several schemas either yields one merged
// Config or one *ValidationError listing every violated constraint of every
// schema.
//
// Basic usage:
//
//	var App = envguard.NewSchema("App",
//	    envguard.String("DATABASE_URL", "min=10"),
//	    envguard.Integer("PORT", "gte=1", "lte=65535"),
//	)
//
//	cfg, err := envguard.Load(envguard.WithSchemas(App))
//	if err != nil {
//	    log.Fatal(err) // multi-line report of every failed field
//	}
//
// # Fields
//
// Field types are string, number (float64), integer (int64), bool, duration
// and enum. String values from the environment are converted to the field
// type before rules are checked. Fields not declared in any schema are not
// part of the result.
//
//   - Optional  - the key may be absent
//   - Default   - value used when the key is absent
//   - Rules     - validator tags, one constraint per entry ("min=10", "url")
//   - Transform - rewrites the raw value first
//   - Secret    - mask value in Print output
//   - When      - validate only in some environments (ForNodeEnvironment,
//     ForApplicationEnvironment, Expr)
//
// # Providers
//
// Configuration values can come from multiple sources (providers):
//
//   - Env()             - Environment variables
//   - File(path)        - .env, YAML or JSON configuration file
//   - EnvFiles(paths..) - several dotenv files, first path wins
//   - Map(values)       - Explicit key-value map
//
// Without WithProvider, Load reads the process environment and then
// .env, .env.development and .env.local on top of it.
//
// # Typed access
//
// Bind and LoadInto decode a Config into a struct with `env` tags:
//
//	type AppConfig struct {
//	    DatabaseURL string `env:"DATABASE_URL"`
//	    Port        int    `env:"PORT"`
//	}
//
//	app, err := envguard.LoadInto[AppConfig](envguard.WithSchemas(App))
//
// # Hot Reloading
//
// Use NewLoader for hot-reloadable configuration:
//
//	loader := envguard.NewLoader(
//	    envguard.WithSchemas(App),
//	    envguard.WithProvider(envguard.File("config.env")),
//	    envguard.WithWatch("config.env", 5*time.Second),
//	    envguard.WithOnReload(func(old, new envguard.Config) { log.Println("config reloaded") }),
//	)
//
//	cfg := loader.MustLoad()
//	if err := loader.StartWatching(); err != nil {
//	    log.Fatal(err)
//	}
//	defer loader.StopWatching()
package envguard
