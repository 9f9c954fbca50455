// Command snippet-tokenizer tokenizes and highlights source snippets.
package main

import (
	"os"

	"github.com/spicery/snippet-tokenizer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
