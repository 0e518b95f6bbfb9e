package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/scrub/internal/cli"
	"github.com/arthur-debert/scrub/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		renderer := style.NewRenderer(style.UseColor(os.Stderr))
		fmt.Fprintln(os.Stderr, renderer.RenderError(err))
		os.Exit(1)
	}
}
