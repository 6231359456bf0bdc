package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"hdrscan/internal/diag"
	"hdrscan/internal/source"
)

// Pretty renders diagnostics in a human-readable form. It walks
// bag.Items() in order (call bag.Sort() first for stable output) and
// prints, per diagnostic:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	   N | <source line>
//	     | ^~~~~~
//
// with opts.Context extra source lines around the primary line and
// notes in the same path:line:col form. Color is applied per severity
// when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, &d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	head := fmt.Sprintf("%s %s", d.Severity.String(), d.Code.ID())
	if opts.Color {
		head = severityColor(d.Severity).Sprint(head)
	}

	f, located := locate(fs, d.Primary)
	if !located {
		// file-level diagnostic: no path, no snippet
		fmt.Fprintf(w, "%s: %s\n", head, d.Message)
	} else {
		startPos, endPos := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
			displayPath(f, fs, opts.PathMode), startPos.Line, startPos.Col, head, d.Message)
		writeSnippet(w, f, startPos, endPos, opts)
	}

	if opts.ShowNotes {
		for _, note := range d.Notes {
			writeNote(w, note, fs, opts)
		}
	}
}

func writeNote(w io.Writer, note diag.Note, fs *source.FileSet, opts PrettyOpts) {
	nf, ok := locate(fs, note.Span)
	if !ok {
		fmt.Fprintf(w, "  note: %s\n", note.Msg)
		return
	}
	nStart, _ := fs.Resolve(note.Span)
	fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
		displayPath(nf, fs, opts.PathMode), nStart.Line, nStart.Col, note.Msg)
}

// writeSnippet prints the primary line with a caret underline, plus the
// configured amount of context above and below.
func writeSnippet(w io.Writer, f *source.File, startPos, endPos source.LineCol, opts PrettyOpts) {
	first := startPos.Line
	if ctx := uint32(max(int(opts.Context), 0)); ctx < first {
		first -= ctx
	} else {
		first = 1
	}
	last := startPos.Line + uint32(max(int(opts.Context), 0))

	for line := first; line <= last; line++ {
		text := f.GetLine(line)
		if text == "" && line != startPos.Line {
			if line > startPos.Line {
				break
			}
			continue
		}
		fmt.Fprintf(w, "%4d | %s\n", line, clip(text, opts.Width))
		if line == startPos.Line {
			fmt.Fprintf(w, "     | %s\n", clip(underline(text, startPos, endPos), opts.Width))
		}
	}
}

// underline builds the ^~~~ marker for the part of line text the span
// covers. Columns are 1-based byte offsets; widths are measured in
// display cells so wide runes stay aligned.
func underline(text string, startPos, endPos source.LineCol) string {
	startCol := int(startPos.Col) - 1
	if startCol > len(text) {
		startCol = len(text)
	}
	if startCol < 0 {
		startCol = 0
	}

	endCol := len(text)
	if endPos.Line == startPos.Line && int(endPos.Col)-1 < endCol {
		endCol = int(endPos.Col) - 1
	}
	if endCol < startCol {
		endCol = startCol
	}

	pad := runewidth.StringWidth(text[:startCol])
	width := runewidth.StringWidth(text[startCol:endCol])
	if width < 1 {
		width = 1
	}
	return strings.Repeat(" ", pad) + "^" + strings.Repeat("~", width-1)
}

// clip truncates a rendered line to the configured width.
func clip(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, int(width), "")
	}
	return runewidth.Truncate(s, int(width), "...")
}

func severityColor(sev diag.Severity) *color.Color {
	var c *color.Color
	switch sev {
	case diag.SevError:
		c = color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgCyan)
	}
	c.EnableColor()
	return c
}
