// Package token defines lexical token kinds and trivia for header scanning.
// Invariants:
//   - Token.Text is an exact copy of the source bytes the Span covers.
//   - Comments and whitespace are leading Trivia on the next significant
//     token and never appear in the main token stream.
//   - A '#' that opens a line (nothing but whitespace before it) yields a
//     single Directive token carrying the whole raw line, backslash
//     continuations included. A '#' anywhere else is the Hash token.
//   - Type names (int, float, size_t, ...) are identifiers. Only the
//     declaration introducers are keywords.
package token
