package driver_test

import (
	"os"
	"path/filepath"
	"testing"

	"hdrscan/internal/diag"
	"hdrscan/internal/driver"
	"hdrscan/internal/token"
)

func TestFindInSource_MatchesCodeOnly(t *testing.T) {
	content := []byte(`// retries is documented here, not code
struct backoff {
    int retries = 3;
    const char* note = "retries";
    void bump(int retries);
};
`)

	res := driver.FindInSource("backoff.h", content, "retries", driver.Options{})
	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(res.Matches), res.Matches)
	}

	field := res.Matches[0]
	if field.Line != 3 || field.Col != 9 {
		t.Errorf("field match at %d:%d, want 3:9", field.Line, field.Col)
	}
	if field.LineText != "    int retries = 3;" {
		t.Errorf("field LineText = %q", field.LineText)
	}
	if field.Kind != token.Ident {
		t.Errorf("field Kind = %v, want Ident", field.Kind)
	}

	param := res.Matches[1]
	if param.Line != 5 || param.Col != 19 {
		t.Errorf("param match at %d:%d, want 5:19", param.Line, param.Col)
	}
}

func TestFindInSource_KeywordNeedle(t *testing.T) {
	content := []byte("struct a {};\nstruct b {};\n")

	res := driver.FindInSource("s.h", content, "struct", driver.Options{})
	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(res.Matches))
	}
	for _, m := range res.Matches {
		if m.Kind != token.KwStruct {
			t.Errorf("Kind = %v, want KwStruct", m.Kind)
		}
	}
}

func TestFindInSource_NoMatch(t *testing.T) {
	content := []byte("struct config { int retries; };\n")

	if res := driver.FindInSource("c.h", content, "missing", driver.Options{}); len(res.Matches) != 0 {
		t.Errorf("expected no matches, got %+v", res.Matches)
	}
	if res := driver.FindInSource("c.h", content, "", driver.Options{}); len(res.Matches) != 0 {
		t.Errorf("empty needle must match nothing, got %+v", res.Matches)
	}
}

func TestFindInSource_PartialIdentDoesNotMatch(t *testing.T) {
	content := []byte("int retries_total;\n")

	if res := driver.FindInSource("c.h", content, "retries", driver.Options{}); len(res.Matches) != 0 {
		t.Errorf("substring of an identifier must not match, got %+v", res.Matches)
	}
}

func TestFindInSource_StopsAtLexicalError(t *testing.T) {
	content := []byte("int alpha;\nconst char* s = \"broken\nint alpha;\n")

	res := driver.FindInSource("bad.h", content, "alpha", driver.Options{})
	if len(res.Matches) != 1 || res.Matches[0].Line != 1 {
		t.Fatalf("expected only the match before the error, got %+v", res.Matches)
	}

	var code diag.Code
	for _, d := range res.Bag.Items() {
		code = d.Code
	}
	if code != diag.LexUnterminatedString {
		t.Errorf("expected LexUnterminatedString, got %v", res.Bag.Items())
	}
}

func TestFindInFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.h")
	if err := os.WriteFile(path, []byte("struct node { node* next; };\n"), 0o600); err != nil {
		t.Fatalf("write header: %v", err)
	}

	res, err := driver.FindInFile(path, "node", driver.Options{})
	if err != nil {
		t.Fatalf("FindInFile: %v", err)
	}
	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(res.Matches))
	}
	for _, m := range res.Matches {
		if m.Path != path {
			t.Errorf("match Path = %q, want %q", m.Path, path)
		}
	}

	if _, err := driver.FindInFile(filepath.Join(dir, "absent.h"), "x", driver.Options{}); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
