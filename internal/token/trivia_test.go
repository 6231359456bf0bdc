package token_test

import (
	"testing"

	"hdrscan/internal/source"
	"hdrscan/internal/token"
)

func TestTriviaAttachment(t *testing.T) {
	tv := token.Trivia{
		Kind: token.TriviaLineComment,
		Span: source.Span{Start: 0, End: 26},
		Text: "// use the enum test below",
	}
	tok := token.Token{
		Kind:    token.KwEnum,
		Span:    source.Span{Start: 27, End: 31},
		Text:    "enum",
		Leading: []token.Trivia{tv},
	}
	if len(tok.Leading) != 1 || tok.Leading[0].Kind != token.TriviaLineComment {
		t.Fatalf("leading comment trivia must be present and classified")
	}
	if !tok.Leading[0].IsComment() {
		t.Fatalf("line comment must report IsComment")
	}
}

func TestTriviaIsComment(t *testing.T) {
	cases := []struct {
		kind token.TriviaKind
		want bool
	}{
		{token.TriviaSpace, false},
		{token.TriviaNewline, false},
		{token.TriviaLineComment, true},
		{token.TriviaBlockComment, true},
	}
	for _, tc := range cases {
		tv := token.Trivia{Kind: tc.kind}
		if got := tv.IsComment(); got != tc.want {
			t.Fatalf("IsComment(%v) = %v, want %v", tc.kind, got, tc.want)
		}
	}
}
