package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/openapi"
)

func listCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List form definitions or OpenAPI operations",
		Long: `List the available form definition ids. With --openapi, list the
operations whose request body can be turned into a form.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if opts.openapiPath != "" {
				data, err := openapi.ReadFile(opts.openapiPath)
				if err != nil {
					return err
				}
				ops, err := openapi.Operations(cmd.Context(), data, openapi.WithLogger(opts.logger))
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, op := range ops {
					fmt.Fprintf(w, "%s\t%s %s\t%s\n", op.ID, op.Method, op.Path, op.Summary)
				}
				return w.Flush()
			}

			ids, err := opts.orchestrator().FormIDs()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}
}
