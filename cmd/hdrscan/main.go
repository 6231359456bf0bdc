package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hdrscan/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "hdrscan",
	Short: "C-family header scanner for codegen tooling",
	Long:  `hdrscan reads C-family headers and extracts namespaces, structs, enums, fields, methods and attributes into a symbol tree`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum diagnostics per file (0 = manifest or default)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to the given path")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to the given path on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime execution trace to the given path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
