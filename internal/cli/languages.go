package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the registered grammars",
		Long: `List every registered grammar with its aliases and file extensions.
Unknown language identifiers are tokenized with the fallback grammar,
which is marked with an asterisk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())
			registry, err := cfg.Registry()
			if err != nil {
				return err
			}

			nameCol := lipgloss.NewStyle().Width(14)
			aliasCol := lipgloss.NewStyle().Width(30)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, nameCol.Render("NAME")+aliasCol.Render("ALIASES")+"EXTENSIONS")
			for _, name := range registry.Names() {
				g := registry.Lookup(name)
				if g == registry.Fallback() {
					name += "*"
				}
				fmt.Fprintln(out, nameCol.Render(name)+
					aliasCol.Render(strings.Join(g.Aliases(), ", "))+
					strings.Join(g.Extensions(), ", "))
			}
			return nil
		},
	}
}
