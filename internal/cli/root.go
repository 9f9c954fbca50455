// Package cli provides the command-line interface for snippet-tokenizer.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spicery/snippet-tokenizer/internal/config"
	"github.com/spicery/snippet-tokenizer/pkg/grammar"
)

// Version is set at build time.
var Version = "0.1.0"

type configKey struct{}

type loggerKey struct{}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "snippet-tokenizer",
		Short: "Tokenize and highlight source snippets",
		Long: `snippet-tokenizer splits source snippets into classified tokens
(keywords, strings, comments, tags, ...) using declarative per-language
grammars. Every byte of the input ends up in exactly one token.

Input is read from the named files, or from stdin when none are given.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			if cfg.ConfigFile != "" {
				logger.Debug("using config file", "path", cfg.ConfigFile)
			}

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./.snippet-tokenizer.yaml)")
	pf.StringP("lang", "l", "", "language identifier (default: detect from file extension)")
	pf.String("theme", "", "theme for styled output (light|dark|plain)")
	pf.String("grammars", "", "YAML grammars file adding to or replacing the built-in grammars")
	pf.StringP("output", "o", "", "output file (default: stdout)")
	pf.BoolP("verbose", "v", false, "verbose logging to stderr")
	pf.Duration("match-timeout", grammar.DefaultMatchTimeout, "time limit for a single pattern match (0 disables)")
	pf.IntP("jobs", "j", config.DefaultJobs, "number of files tokenized concurrently")

	_ = rootCmd.RegisterFlagCompletionFunc("theme", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"light", "dark", "plain"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("lang", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return grammar.Builtin().Names(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newTokenizeCommand())
	rootCmd.AddCommand(newHighlightCommand())
	rootCmd.AddCommand(newLanguagesCommand())
	rootCmd.AddCommand(newGrammarsCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// getConfig retrieves the config from the command context.
func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		Theme:        config.DefaultTheme,
		Format:       config.DefaultFormat,
		MatchTimeout: grammar.DefaultMatchTimeout,
		Jobs:         config.DefaultJobs,
	}
}

// getLogger retrieves the logger from the command context.
func getLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
