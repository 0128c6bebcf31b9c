package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/orchestrator"
)

// Version information set at build time.
var version = "dev"

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	definitions string
	form        string
	openapiPath string
	operation   string
	logLevel    string

	logger zerolog.Logger
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "formstate",
		Short: "Drive a validated form session",
		Long: `formstate tracks field values and validation errors for a form and
only accepts a submission when every field passes.

Fields come from a form definition (JSON or YAML, the bundled registration
form by default) or from the request body of an OpenAPI operation.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(opts.logLevel)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.definitions, "definitions", "", "Directory of form definitions (default: bundled forms)")
	flags.StringVarP(&opts.form, "form", "f", "", "Form definition id (default \"registration\")")
	flags.StringVar(&opts.openapiPath, "openapi", "", "OpenAPI document to take fields from instead of a definition")
	flags.StringVar(&opts.operation, "operation", "", "OpenAPI operation id (with --openapi)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		runCmd(opts),
		renderCmd(opts),
		replayCmd(opts),
		serveCmd(opts),
		listCmd(opts),
	)
	return rootCmd
}

func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}

func (o *rootOptions) orchestrator() *orchestrator.Orchestrator {
	options := []orchestrator.Option{orchestrator.WithLogger(o.logger)}
	if o.definitions != "" {
		options = append(options, orchestrator.WithDefinitions(os.DirFS(o.definitions)))
	}
	return orchestrator.New(options...)
}

func (o *rootOptions) request() (orchestrator.Request, error) {
	req := orchestrator.Request{FormID: o.form, OperationID: o.operation}
	if o.openapiPath == "" {
		if o.operation != "" {
			return req, fmt.Errorf("--operation requires --openapi")
		}
		return req, nil
	}
	data, err := openapi.ReadFile(o.openapiPath)
	if err != nil {
		return req, err
	}
	req.OpenAPI = data
	return req, nil
}

// open resolves the form selected by the persistent flags.
func (o *rootOptions) open(ctx context.Context) (*orchestrator.Orchestrator, *orchestrator.Form, error) {
	req, err := o.request()
	if err != nil {
		return nil, nil, err
	}
	gen := o.orchestrator()
	form, err := gen.Open(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	return gen, form, nil
}
