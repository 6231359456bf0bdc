// Package fuzztests houses Go fuzz harnesses that exercise the scan
// pipeline (source -> lexer -> declaration parser). Its goal is to
// smoke test robustness: no panics, no hangs, and no tree that breaks
// the structural invariants, on arbitrary header bytes.
//
// It does not generate corpora, write files, or run the CLI.
package fuzztests
