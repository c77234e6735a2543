// Command envguard validates environment variables and .env files against
// YAML schema definitions.
//
// Usage:
//
//	envguard -schema envguard.yaml [-env-file .env.local -env-file .env] [-aws] [-base-api] [-prefix APP] [-print]
//
// Exit codes: 0 valid, 1 validation failed, 2 usage or schema error.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nicolasmmb/envguard"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

// stringList collects repeated flag values.
// It implements the flag.Value interface.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("envguard", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var schemaPaths, envFiles stringList
	var (
		aws       = fs.Bool("aws", false, "validate the standard AWS variables")
		baseAPI   = fs.Bool("base-api", false, "validate NODE_ENV and PORT")
		prefix    = fs.String("prefix", "", "look up PREFIX_NAME before NAME")
		noProcEnv = fs.Bool("no-process-env", false, "ignore process environment variables")
		printCfg  = fs.Bool("print", false, "print the validated configuration with secrets masked")
		verbose   = fs.Bool("v", false, "debug logging")
	)
	fs.Var(&schemaPaths, "schema", "YAML schema file (repeatable)")
	fs.Var(&envFiles, "env-file", "dotenv file, first one wins (repeatable; default .env.local, .env.development, .env)")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	logger := envguard.NewConsoleLogger(stderr).Level(zerolog.WarnLevel)
	if *verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}

	var schemas []*envguard.Schema
	for _, path := range schemaPaths {
		s, err := envguard.LoadSchemaFile(path)
		if err != nil {
			logger.Error().Err(err).Str("path", path).Msg("cannot load schema")
			return exitUsage
		}
		schemas = append(schemas, s...)
	}

	resolved := envguard.Resolve(envguard.Defaults{AWS: *aws, BaseAPI: *baseAPI}, schemas...)
	if len(resolved) == 0 {
		fmt.Fprintln(stderr, "envguard: no schemas given (use -schema, -aws or -base-api)")
		return exitUsage
	}

	files := []string(envFiles)
	if len(files) == 0 {
		files = envguard.DefaultEnvFiles
	}

	opts := []envguard.Option{
		envguard.WithLogger(logger),
		envguard.WithSchemas(resolved...),
	}
	if !*noProcEnv {
		opts = append(opts, envguard.WithProvider(envguard.Env()))
	}
	opts = append(opts, envguard.WithProvider(envguard.EnvFiles(files...)))
	if *prefix != "" {
		opts = append(opts, envguard.WithPrefix(*prefix))
	}

	cfg, err := envguard.Load(opts...)
	if err != nil {
		fmt.Fprintln(stderr, err)
		var verr *envguard.ValidationError
		if errors.As(err, &verr) {
			return exitInvalid
		}
		return exitUsage
	}

	if *printCfg {
		envguard.PrintTo(stdout, cfg, resolved...)
	}
	logger.Debug().Int("keys", len(cfg)).Msg("configuration valid")
	return exitOK
}
