package subtitle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for sources that are not SubRip files.
var ErrUnsupportedFormat = errors.New("only SRT subtitles are supported")

// source subtitle file loaded into memory
type File struct {
	Path string
	Text string
}

// Entries parses the file without shifting it.
func (f *File) Entries() []Entry {
	return Parse(f.Text)
}

// Shift re-times the file content with p.
func (f *File) Shift(p Params, onDrop DropFunc) (string, bool) {
	return Shifter{Params: p, OnDrop: onDrop}.Shift(f.Text)
}

func Open(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("no subtitle path")
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".srt" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read SRT file: %w", err)
	}

	return &File{Path: path, Text: string(data)}, nil
}
