package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hdrscan/internal/diag"
	"hdrscan/internal/diagfmt"
	"hdrscan/internal/driver"
	"hdrscan/internal/observ"
	"hdrscan/internal/project"
	"hdrscan/internal/source"
)

// rootFlags carries the persistent flag values every command reads.
type rootFlags struct {
	Color          string
	Quiet          bool
	Timings        bool
	MaxDiagnostics int
}

func readRootFlags(cmd *cobra.Command) (rootFlags, error) {
	pf := cmd.Root().PersistentFlags()
	var rf rootFlags
	var err error
	if rf.Color, err = pf.GetString("color"); err != nil {
		return rf, fmt.Errorf("failed to get color flag: %w", err)
	}
	if rf.Quiet, err = pf.GetBool("quiet"); err != nil {
		return rf, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if rf.Timings, err = pf.GetBool("timings"); err != nil {
		return rf, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if rf.MaxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
		return rf, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return rf, nil
}

// useColor resolves the --color mode against the target stream.
func (rf rootFlags) useColor(f *os.File) bool {
	switch rf.Color {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

func (rf rootFlags) prettyOpts(f *os.File) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     rf.useColor(f),
		Context:   2,
		ShowNotes: rf.Timings,
	}
}

// scanOptions merges the nearest manifest, when one exists, with the
// persistent flags. Flags win.
func scanOptions(rf rootFlags, startDir string) (driver.Options, error) {
	var opts driver.Options
	manifest, ok, err := project.LoadNearest(startDir)
	if err != nil {
		return opts, err
	}
	if ok {
		opts = manifest.Config.ScanOptions()
	}
	if rf.MaxDiagnostics > 0 {
		opts.MaxDiagnostics = rf.MaxDiagnostics
	}
	opts.Timings = rf.Timings
	return opts, nil
}

// outputFormat resolves a per-command --format flag against the
// manifest's [output] table. The flag wins when set.
func outputFormat(flagValue, startDir string) (string, error) {
	if flagValue != "" {
		switch flagValue {
		case "pretty", "json":
			return flagValue, nil
		default:
			return "", fmt.Errorf("unknown format: %s", flagValue)
		}
	}
	manifest, ok, err := project.LoadNearest(startDir)
	if err != nil {
		return "", err
	}
	if ok {
		return manifest.Config.Output.Format, nil
	}
	return "pretty", nil
}

// printBag renders a bag's diagnostics to stderr in source order.
func printBag(rf rootFlags, bag *diag.Bag, fs *source.FileSet) {
	renderBag(os.Stderr, rf, bag, fs, rf.prettyOpts(os.Stderr))
}

// renderBag writes the diagnostics of one bag. Quiet runs get the
// one-line-per-entry short form instead of the caret output.
func renderBag(w io.Writer, rf rootFlags, bag *diag.Bag, fs *source.FileSet, opts diagfmt.PrettyOpts) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	if rf.Quiet {
		if out := diag.FormatShortDiagnostics(bag.Items(), fs, false); out != "" {
			fmt.Fprintln(w, out)
		}
		return
	}
	diagfmt.Pretty(w, bag, fs, opts)
}

func printTimingReport(out io.Writer, path string, report *observ.Report) {
	if report == nil {
		return
	}
	fmt.Fprintf(out, "timings %s:\n", path)
	for _, p := range report.Phases {
		fmt.Fprintf(out, "  %-12s %7.2f ms\n", p.Name, p.DurationMS)
	}
	fmt.Fprintf(out, "  %-12s %7.2f ms\n", "total", report.TotalMS)
}
