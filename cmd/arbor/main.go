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
  ╔═╗┬─┐┌┐ ┌─┐┬─┐
  ╠═╣├┬┘├┴┐│ │├┬┘
  ╩ ╩┴└─└─┘└─┘┴└─
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "arbor",
		Short: "Virtual tree diffing and rendering",
		Long: `Arbor is a virtual-tree reconciliation engine.

It compares two immutable tree snapshots of a UI and produces the
minimal, ordered patch sequence that transforms one into the other,
plus a deterministic HTML serializer. The CLI works on markup files:

  • arbor diff    compares two snapshots and prints the patch script
  • arbor render  re-serializes a snapshot (pretty or minified)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		diffCmd(),
		renderCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the Arbor ASCII art banner.
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
