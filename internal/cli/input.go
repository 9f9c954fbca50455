package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/spicery/snippet-tokenizer/internal/config"
	"github.com/spicery/snippet-tokenizer/pkg/grammar"
	"github.com/spicery/snippet-tokenizer/pkg/token"
	"github.com/spicery/snippet-tokenizer/pkg/tokenizer"
)

// stdinName is the display name of standard input.
const stdinName = "-"

// result is the tokenized form of one input.
type result struct {
	Name     string
	Language string
	Tokens   []token.Token
}

// tokenizeInputs tokenizes each named file, or stdin when there are none.
// Files are read and tokenized concurrently; results keep argument order.
func tokenizeInputs(ctx context.Context, stdin io.Reader, args []string, cfg *config.Config, logger *slog.Logger) ([]result, error) {
	registry, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	tk := tokenizer.New(registry, tokenizer.WithLogger(logger))

	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("error reading from stdin: %w", err)
		}
		lang := resolveLanguage(registry, cfg.Lang, stdinName, logger)
		return []result{{Name: stdinName, Language: lang, Tokens: tk.Tokenize(string(data), lang)}}, nil
	}

	results := make([]result, len(args))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(cfg.Jobs, len(args)))

	for i, path := range args {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("error reading file '%s': %w", path, err)
			}
			lang := resolveLanguage(registry, cfg.Lang, path, logger)
			results[i] = result{Name: path, Language: lang, Tokens: tk.Tokenize(string(data), lang)}
			logger.Debug("tokenized", "file", path, "language", lang, "tokens", len(results[i].Tokens))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// resolveLanguage picks the language for an input: the configured one, the
// one registered for the file extension, or the registry fallback.
func resolveLanguage(registry *grammar.Registry, configured, name string, logger *slog.Logger) string {
	if configured != "" {
		if _, ok := registry.Get(configured); !ok {
			logger.Warn("unknown language, using fallback grammar", "language", configured, "fallback", registry.Fallback().Name())
		}
		return configured
	}
	if name != stdinName {
		if lang, ok := registry.DetectLanguage(name); ok {
			return lang
		}
	}
	logger.Debug("no language for input, using fallback grammar", "input", name, "fallback", registry.Fallback().Name())
	return registry.Fallback().Name()
}

// openOutput returns the writer for path, or w when path is empty.
func openOutput(w io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" {
		return w, func() error { return nil }, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating output file '%s': %w", path, err)
	}
	return file, file.Close, nil
}
