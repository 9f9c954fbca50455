package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spicery/snippet-tokenizer/pkg/grammar"
)

func newGrammarsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammars",
		Short: "Inspect and check grammar definitions",
	}
	cmd.AddCommand(newGrammarsDumpCommand())
	cmd.AddCommand(newGrammarsLintCommand())
	return cmd
}

func newGrammarsDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the built-in grammars as a YAML grammars file",
		Long: `Print the built-in grammars in the format read by --grammars.
The output is a starting point for custom grammar files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())

			yamlBytes, err := grammar.DefaultGrammarFile().Marshal()
			if err != nil {
				return err
			}

			out, closeOut, err := openOutput(cmd.OutOrStdout(), cfg.Output)
			if err != nil {
				return err
			}
			if _, err := out.Write(yamlBytes); err != nil {
				_ = closeOut()
				return err
			}
			return closeOut()
		},
	}
}

func newGrammarsLintCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Check that every rule fires on its own examples",
		Long: `Scan each rule's examples with its grammar and report rules that never
fire, usually because an earlier rule matches the same text first.
Applies to the built-in grammars plus any --grammars file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())
			registry, err := cfg.Registry()
			if err != nil {
				return err
			}

			issues := grammar.LintRegistry(registry)
			out := cmd.OutOrStdout()
			for _, issue := range issues {
				fmt.Fprintln(out, issue.String())
			}
			if len(issues) > 0 {
				return fmt.Errorf("%d lint issue(s)", len(issues))
			}
			fmt.Fprintf(out, "%d grammars OK\n", len(registry.Names()))
			return nil
		},
	}
}
