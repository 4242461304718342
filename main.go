// main is the entry point for the lifetick CLI.
package main

import (
	"fmt"
	"os"

	"github.com/lifetick/lifetick/cmd"
)

func main() {
	// The root command silences cobra's own error printing, so surface
	// failures here with a single exit path.
	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
