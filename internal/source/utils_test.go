package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}
	if err := os.MkdirAll(otherDir, 0o755); err != nil {
		t.Fatalf("failed to create other dir: %v", err)
	}

	target := filepath.Join(otherDir, "file.h")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}

	want := normalizePath(target)
	if got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}

	target := filepath.Join(baseDir, "nested", "file.h")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}

	want := normalizePath(filepath.Join("nested", "file.h"))
	if got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}

func TestEnsureUTF8PassesValidInput(t *testing.T) {
	in := []byte("int x; // π ≈ 3.14\n")
	out, transcoded := ensureUTF8(in)
	if transcoded {
		t.Error("expected valid UTF-8 to pass through untouched")
	}
	if &out[0] != &in[0] {
		t.Error("expected the same backing buffer for valid UTF-8")
	}
}

func TestEnsureUTF8TranscodesLatin1(t *testing.T) {
	out, transcoded := ensureUTF8([]byte{'c', 'a', 'f', 0xE9})
	if !transcoded {
		t.Fatal("expected Latin-1 input to be transcoded")
	}
	if string(out) != "café" {
		t.Errorf("expected %q, got %q", "café", string(out))
	}
}

func TestBuildLineIndex(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []uint32
	}{
		{"empty", "", nil},
		{"no newline", "abc", nil},
		{"trailing newline", "ab\n", []uint32{2}},
		{"several lines", "a\nbb\n\nc", []uint32{1, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildLineIndex([]byte(tt.content))
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d (%v)", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("index[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}
