package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hdrscan/internal/diagfmt"
	"hdrscan/internal/driver"
)

var treeCmd = &cobra.Command{
	Use:   "tree [flags] file.h",
	Short: "Print the symbol tree of a header",
	Long:  `Tree scans one header and prints its declaration hierarchy: namespaces, structs, enums, fields, methods, typedefs and attributes in source order`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

func init() {
	treeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	treeCmd.Flags().Bool("spans", false, "annotate nodes with byte spans")
	treeCmd.Flags().Bool("directives", false, "include preprocessor records")
}

func runTree(cmd *cobra.Command, args []string) error {
	rf, err := readRootFlags(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	showSpans, err := cmd.Flags().GetBool("spans")
	if err != nil {
		return fmt.Errorf("failed to get spans flag: %w", err)
	}
	showDirectives, err := cmd.Flags().GetBool("directives")
	if err != nil {
		return fmt.Errorf("failed to get directives flag: %w", err)
	}

	opts, err := scanOptions(rf, ".")
	if err != nil {
		return err
	}
	// the tree command needs the live tree, never a cache replay

	result, err := driver.ScanFile(args[0], opts)
	if err != nil {
		return fmt.Errorf("scanning failed: %w", err)
	}

	printBag(rf, result.Bag, result.FileSet)
	if rf.Timings {
		printTimingReport(os.Stderr, args[0], result.Timing)
	}

	if result.Tree == nil {
		return fmt.Errorf("%s: no symbol tree (lexing failed)", args[0])
	}

	treeOpts := diagfmt.TreeOpts{
		ShowSpans:      showSpans,
		ShowDirectives: showDirectives,
	}
	switch format {
	case "pretty":
		diagfmt.TreePretty(os.Stdout, result.Tree, result.FileSet, result.File, treeOpts)
		return nil
	case "json":
		return diagfmt.TreeJSON(os.Stdout, result.Tree, result.FileSet, result.File, treeOpts)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
