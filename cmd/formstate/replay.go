package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/events"
)

func replayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script>",
		Short: "Replay an event script headlessly",
		Long: `Apply a JSON or YAML event script to a fresh form session and print
the per-event outcome with the final state as JSON.

Examples:
  formstate replay session.yaml
  formstate replay --form contact session.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			script, err := events.ParseScript(data)
			if err != nil {
				return err
			}

			_, form, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer form.Close()

			result, err := events.Replay(form.Engine, script)
			if err != nil {
				return err
			}
			opts.logger.Debug().
				Int("accepted", result.Accepted).
				Int("rejected", result.Rejected).
				Msg("script replayed")

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}
