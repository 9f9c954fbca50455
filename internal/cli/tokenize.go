package cli

import (
	"github.com/spf13/cobra"

	"github.com/spicery/snippet-tokenizer/pkg/render"
)

func newTokenizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize [files...]",
		Short: "Print tokens as JSON, one per line",
		Long: `Tokenize the input and print one JSON token object per line:

  {"type":"keyword","content":"const","span":[1,1,1,6]}

Spans are [startLine, startCol, endLine, endCol] with 1-based byte columns;
the end position is exclusive. Tokens of several files are printed one file
after another in argument order.`,
		Example: `  # Tokenize a file, language detected from its extension
  snippet-tokenizer tokenize query.sql

  # Tokenize stdin as YAML
  echo 'port: 8080' | snippet-tokenizer tokenize --lang yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := getConfig(ctx)

			results, err := tokenizeInputs(ctx, cmd.InOrStdin(), args, cfg, getLogger(ctx))
			if err != nil {
				return err
			}

			out, closeOut, err := openOutput(cmd.OutOrStdout(), cfg.Output)
			if err != nil {
				return err
			}
			for _, res := range results {
				if err := render.JSONLines(out, res.Tokens); err != nil {
					_ = closeOut()
					return err
				}
			}
			return closeOut()
		},
	}
}
