package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/mgpai22/subshift/internal/language"
)

var (
	// ErrNoFFmpeg is returned when ffmpeg is not on PATH.
	ErrNoFFmpeg = errors.New("ffmpeg not found in PATH")

	// ErrNoSubtitles is returned when a file carries no subtitle stream.
	ErrNoSubtitles = errors.New("no subtitle streams found")
)

// codecs ffmpeg can convert to subrip
var textCodecs = map[string]bool{
	"subrip":   true,
	"srt":      true,
	"ass":      true,
	"ssa":      true,
	"webvtt":   true,
	"mov_text": true,
	"text":     true,
}

// embedded subtitle stream
type SubtitleStream struct {
	// position among the file's subtitle streams, as in ffmpeg's 0:s:N
	Index    int
	Codec    string
	Language string
	Title    string
	Default  bool
	Forced   bool
}

// TextBased reports whether the stream can be converted to SRT. Bitmap
// formats such as PGS and VobSub cannot.
func (s SubtitleStream) TextBased() bool {
	return textCodecs[s.Codec]
}

// SelectSubtitle picks the first text stream matching lang, or the first
// text stream at all when lang is empty. Among matches a default-flagged
// stream wins.
func SelectSubtitle(streams []SubtitleStream, lang string) (SubtitleStream, error) {
	if len(streams) == 0 {
		return SubtitleStream{}, ErrNoSubtitles
	}

	want := language.Maximize(lang)
	var matches []SubtitleStream
	for _, s := range streams {
		if !s.TextBased() {
			continue
		}
		if want != "" && language.Maximize(s.Language) != want {
			continue
		}
		matches = append(matches, s)
	}

	if len(matches) == 0 {
		if want != "" {
			return SubtitleStream{}, fmt.Errorf("no text subtitle stream in language %q", lang)
		}
		return SubtitleStream{}, fmt.Errorf(
			"no text subtitle stream (found only %s)",
			streams[0].Codec,
		)
	}
	for _, s := range matches {
		if s.Default {
			return s, nil
		}
	}
	return matches[0], nil
}

// ExtractSubtitle converts subtitle stream index of videoPath to SRT at
// outputPath, replacing any existing file.
func ExtractSubtitle(ctx context.Context, videoPath string, index int, outputPath string) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrNoFFmpeg
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	kwargs := ffmpeg.KwArgs{
		"map": fmt.Sprintf("0:s:%d", index),
		"c:s": "srt",
	}

	compiled := ffmpeg.Input(videoPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		Compile()

	cmd := exec.CommandContext(ctx, compiled.Path, compiled.Args[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := lastLine(stderr.String()); msg != "" {
			return fmt.Errorf("extraction failed: %w: %s", err, msg)
		}
		return fmt.Errorf("extraction failed: %w", err)
	}
	return nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	videoExts := map[string]bool{
		".mp4":  true,
		".mkv":  true,
		".avi":  true,
		".mov":  true,
		".wmv":  true,
		".flv":  true,
		".webm": true,
		".m4v":  true,
		".mpeg": true,
		".mpg":  true,
		".ts":   true,
		".m2ts": true,
	}
	return videoExts[ext]
}
