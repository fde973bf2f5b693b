package subtitle

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenSRTFile(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:04,000
Hello, world!

2
00:00:05,500 --> 00:00:08,200
This is a test.
With multiple lines.

3
00:00:10,000 --> 00:00:12,500
Final subtitle.
`
	tmpDir := t.TempDir()
	srtPath := filepath.Join(tmpDir, "test.en.SRT")
	if err := os.WriteFile(srtPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	file, err := Open(srtPath)
	if err != nil {
		t.Fatalf("failed to open SRT file: %v", err)
	}

	entries := file.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Start != 1000 || entries[0].End != 4000 {
		t.Errorf(
			"entry 0: expected 1000-4000, got %v-%v",
			entries[0].Start,
			entries[0].End,
		)
	}
	if len(entries[1].Lines) != 2 || entries[1].Lines[1] != "With multiple lines." {
		t.Errorf("entry 1: unexpected lines %q", entries[1].Lines)
	}

	out, ok := file.Shift(Params{DelayMs: 500}, nil)
	if !ok {
		t.Fatal("expected shifted output")
	}
	want := "1\r\n00:00:01,500 --> 00:00:04,500\r\nHello, world!\r\n\r\n" +
		"2\r\n00:00:06,000 --> 00:00:08,700\r\nThis is a test.\r\nWith multiple lines.\r\n\r\n" +
		"3\r\n00:00:10,500 --> 00:00:13,000\r\nFinal subtitle.\r\n"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestOpenRejectsOtherFormats(t *testing.T) {
	tmpDir := t.TempDir()
	vttPath := filepath.Join(tmpDir, "test.vtt")
	if err := os.WriteFile(vttPath, []byte("WEBVTT\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := Open(vttPath); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.srt")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Open(""); err == nil {
		t.Error("expected error for empty path")
	}
}
