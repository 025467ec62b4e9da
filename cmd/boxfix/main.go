package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"boxfix/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "boxfix",
	Short: "ASCII art diagram corrector",
	Long:  `boxfix repairs misaligned right-hand borders in ASCII and Unicode box diagrams`,
}

// main wires the subcommands and persistent flags, then executes the
// root command. The process exits 1 when a command fails.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(blocksCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colorEnabled resolves the persistent --color flag against the output
// terminal.
func colorEnabled(cmd *cobra.Command) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return isTerminal(os.Stdout), nil
	}
}
