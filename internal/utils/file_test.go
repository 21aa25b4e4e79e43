package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("readable file passes", func(t *testing.T) {
		if err := ValidateInputFile(path); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("empty filename fails", func(t *testing.T) {
		if err := ValidateInputFile(""); err == nil {
			t.Error("expected error for empty filename")
		}
	})

	t.Run("missing file fails", func(t *testing.T) {
		if err := ValidateInputFile(filepath.Join(dir, "absent.txt")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("directory fails", func(t *testing.T) {
		if err := ValidateInputFile(dir); err == nil {
			t.Error("expected error for directory")
		}
	})
}

func TestValidateOutputFile(t *testing.T) {
	t.Run("empty means stdout", func(t *testing.T) {
		if err := ValidateOutputFile(""); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing directory is created", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "out.json")
		if err := ValidateOutputFile(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(filepath.Dir(path)); err != nil {
			t.Errorf("expected directory to exist: %v", err)
		}
	})
}

func TestIsTextFile(t *testing.T) {
	cases := map[string]bool{
		"resume.txt":  true,
		"resume.md":   true,
		"RESUME.TXT":  true,
		"resume.pdf":  false,
		"resume.docx": false,
		"resume":      false,
	}
	for name, want := range cases {
		if got := IsTextFile(name); got != want {
			t.Errorf("IsTextFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, tc := range cases {
		if got := FormatFileSize(tc.size); got != tc.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tc.size, got, tc.want)
		}
	}
	if !strings.HasSuffix(FormatFileSize(3*1024*1024*1024), "GB") {
		t.Error("expected GB suffix")
	}
}
