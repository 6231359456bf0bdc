package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hdrscan/internal/diagfmt"
	"hdrscan/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.h",
	Short: "Tokenize a header file",
	Long:  `Tokenize breaks a header down into its classified tokens; comment, string and preprocessor regions come out as single non-code tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	rf, err := readRootFlags(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	opts, err := scanOptions(rf, ".")
	if err != nil {
		return err
	}

	result, err := driver.TokenizeFile(args[0], opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	printBag(rf, result.Bag, result.FileSet)
	if rf.Timings {
		printTimingReport(os.Stderr, args[0], result.Timing)
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
