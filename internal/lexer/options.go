package lexer

import (
	"hdrscan/internal/diag"
	"hdrscan/internal/source"
)

type Options struct {
	// Reporter receives lexical diagnostics. May be nil; errors are then
	// dropped, but the lexer still latches into the failed state.
	Reporter diag.Reporter
}

// errLex reports a fatal lexical error and latches the lexer. Every
// lexical error is fatal: the classification of the rest of the file
// cannot be trusted past an unterminated construct.
func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.failed = true
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

// errLexUnterminated is errLex with a note pointing at the bytes that
// opened the construct; the primary span can cover many lines, the
// opener is where the fix goes.
func (lx *Lexer) errLexUnterminated(code diag.Code, sp source.Span, msg string, openLen uint32, note string) {
	lx.failed = true
	if lx.opts.Reporter == nil {
		return
	}
	open := source.Span{File: sp.File, Start: sp.Start, End: sp.Start + openLen}
	diag.ReportError(lx.opts.Reporter, code, sp, msg).WithNote(open, note).Emit()
}
