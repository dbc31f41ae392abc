package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔╦╗┬┌┬┐┌─┐
   ║ │ ││├┤
   ╩ ┴─┴┘└─┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "tide",
		Short: "The reactive UI runtime for Go",
		Long: `Tide is a signal-based reactive UI runtime for Go.

Components render virtual node trees; signals track exactly which
parts depend on which state, and the reconciler patches only what
changed. Features include:

  • Fine-grained dependency tracking with signals and effects
  • Block-tree reconciliation that skips static content
  • Live sessions streaming patches over WebSocket
  • Pluggable host backends for rendering and testing`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		benchCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the Tide ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
