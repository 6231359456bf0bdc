package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hdrscan/internal/driver"
)

var findCmd = &cobra.Command{
	Use:   "find [flags] <identifier> <file.h|directory>...",
	Short: "Find whole-token occurrences of an identifier",
	Long: `Find searches the classified token stream for tokens spelled exactly like
the given identifier. Text inside comments, string literals and preprocessor
lines never matches: those regions are not code`,
	Args: cobra.MinimumNArgs(2),
	RunE: runFind,
}

func init() {
	findCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type findPayload struct {
	Needle  string        `json:"needle"`
	Matches []matchRecord `json:"matches"`
	Count   int           `json:"count"`
}

type matchRecord struct {
	Path string `json:"path"`
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

func runFind(cmd *cobra.Command, args []string) error {
	rf, err := readRootFlags(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	needle := args[0]
	opts, err := scanOptions(rf, ".")
	if err != nil {
		return err
	}

	var matches []driver.TokenMatch
	for _, path := range args[1:] {
		st, statErr := os.Stat(path)
		if statErr != nil {
			return fmt.Errorf("failed to stat path: %w", statErr)
		}

		files := []string{path}
		if st.IsDir() {
			files, err = driver.ListHeaders(path, opts)
			if err != nil {
				return fmt.Errorf("walking %s failed: %w", path, err)
			}
		}

		for _, file := range files {
			res, findErr := driver.FindInFile(file, needle, opts)
			if findErr != nil {
				return fmt.Errorf("searching failed: %w", findErr)
			}
			printBag(rf, res.Bag, res.FileSet)
			matches = append(matches, res.Matches...)
		}
	}

	switch format {
	case "json":
		payload := findPayload{Needle: needle, Matches: make([]matchRecord, 0, len(matches)), Count: len(matches)}
		for _, m := range matches {
			payload.Matches = append(payload.Matches, matchRecord{
				Path: m.Path,
				Line: m.Line,
				Col:  m.Col,
				Kind: m.Kind.String(),
				Text: strings.TrimSpace(m.LineText),
			})
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	case "pretty":
		for _, m := range matches {
			fmt.Fprintf(os.Stdout, "%s:%d:%d: %s\n", m.Path, m.Line, m.Col, strings.TrimSpace(m.LineText))
		}
		if !rf.Quiet {
			fmt.Fprintf(os.Stdout, "%d occurrences of %q\n", len(matches), needle)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
