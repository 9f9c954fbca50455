package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/spicery/snippet-tokenizer/pkg/render"
	"github.com/spicery/snippet-tokenizer/pkg/theme"
)

func newHighlightCommand() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "highlight [files...]",
		Short: "Print the input with syntax highlighting",
		Long: `Highlight the input as ANSI-coloured terminal text or as HTML.

With --color auto, colour is used only when writing to a terminal.`,
		Example: `  # Highlight a file in the terminal
  snippet-tokenizer highlight app.ts

  # Write an HTML fragment with the dark theme
  snippet-tokenizer highlight --format html --theme dark -o page.html index.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := getConfig(ctx)

			th, err := theme.ByName(cfg.Theme)
			if err != nil {
				return err
			}
			format, err := render.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}

			results, err := tokenizeInputs(ctx, cmd.InOrStdin(), args, cfg, getLogger(ctx))
			if err != nil {
				return err
			}

			out, closeOut, err := openOutput(cmd.OutOrStdout(), cfg.Output)
			if err != nil {
				return err
			}
			profile, err := colorProfile(out, color)
			if err != nil {
				_ = closeOut()
				return err
			}

			opts := render.Options{Theme: th, Profile: profile}
			for _, res := range results {
				if err := render.Render(out, format, res.Tokens, opts); err != nil {
					_ = closeOut()
					return err
				}
			}
			return closeOut()
		},
	}

	cmd.Flags().String("format", "", "output format (ansi|html|json)")
	cmd.Flags().StringVar(&color, "color", "auto", "colorize ANSI output (auto|on|off)")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"ansi", "html", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// colorProfile maps the --color setting to a termenv profile for w.
func colorProfile(w io.Writer, mode string) (termenv.Profile, error) {
	switch mode {
	case "on":
		return termenv.TrueColor, nil
	case "off":
		return termenv.Ascii, nil
	case "auto":
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return termenv.NewOutput(f).EnvColorProfile(), nil
		}
		return termenv.Ascii, nil
	default:
		return termenv.Ascii, fmt.Errorf("invalid --color value '%s' (auto|on|off)", mode)
	}
}
