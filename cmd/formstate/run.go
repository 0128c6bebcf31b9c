package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/renderers/tui"
)

func runCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fill the form interactively in the terminal",
		Long: `Prompt for every field until it validates, then confirm submission.
Declining the submit offers a reset. The accepted values are printed.

Examples:
  formstate run
  formstate run --format pretty
  formstate run --openapi api.yaml --operation createUser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, form, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer form.Close()

			session, err := tui.NewSession(form.Engine, form.Definition.Chrome(),
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
				tui.WithOutputFormat(tui.OutputFormat(format)),
				tui.WithLogger(opts.logger),
			)
			if err != nil {
				return err
			}

			values, err := session.Run(cmd.Context())
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
				return nil
			}
			if err != nil {
				return err
			}

			out, err := session.Encode(values)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "Output format for submitted values (json, pretty)")
	return cmd
}
