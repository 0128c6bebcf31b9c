package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/render"
)

func renderCmd(opts *rootOptions) *cobra.Command {
	var (
		rendererName string
		output       string
		values       map[string]string
		submit       bool
		dark         bool
		partial      bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the form",
		Long: `Render the form state to stdout or a file.

Values given with --set are applied as field changes first, so their
validation messages show in the output. --submit runs a full submission.

Examples:
  formstate render > form.html
  formstate render --renderer text --set email=foo
  formstate render --set name=Ada --submit --output form.html`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, form, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer form.Close()

			names := make([]string, 0, len(values))
			for name := range values {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				if err := form.Engine.Change(name, values[name]); err != nil {
					return err
				}
			}
			if submit {
				form.Engine.Submit()
			}
			if dark != form.Engine.DarkMode() {
				form.Engine.ToggleTheme()
			}

			out, err := gen.Render(cmd.Context(), form, rendererName, render.RenderOptions{Partial: partial})
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			opts.logger.Info().Str("path", output).Int("bytes", len(out)).Msg("form rendered")
			return nil
		},
	}

	cmd.Flags().StringVarP(&rendererName, "renderer", "r", "html", "Renderer name (html, text)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write output to a file instead of stdout")
	cmd.Flags().StringToStringVar(&values, "set", nil, "Field values to apply before rendering (name=value)")
	cmd.Flags().BoolVar(&submit, "submit", false, "Submit after applying values")
	cmd.Flags().BoolVar(&dark, "dark", false, "Render the dark theme")
	cmd.Flags().BoolVar(&partial, "partial", false, "Render the form fragment without the page wrapper")
	return cmd
}
