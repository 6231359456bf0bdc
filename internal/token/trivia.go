package token

import "hdrscan/internal/source"

// TriviaKind classifies the non-token text between tokens.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

var triviaKindNames = [...]string{
	TriviaSpace:        "Space",
	TriviaNewline:      "Newline",
	TriviaLineComment:  "LineComment",
	TriviaBlockComment: "BlockComment",
}

func (k TriviaKind) String() string {
	if int(k) < len(triviaKindNames) {
		return triviaKindNames[k]
	}
	return "TriviaKind(?)"
}

// Trivia is one run of whitespace or one comment. It attaches to the
// next significant token as Leading trivia.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia is a line or block comment.
func (tv Trivia) IsComment() bool {
	return tv.Kind == TriviaLineComment || tv.Kind == TriviaBlockComment
}
