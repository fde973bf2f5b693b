package save

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"

	"github.com/mgpai22/subshift/internal/fileutil"
	"github.com/mgpai22/subshift/internal/logging"
	"github.com/mgpai22/subshift/internal/subtitle"
	"github.com/mgpai22/subshift/internal/trash"
)

// Host is the player or session that owns the subtitle being saved.
type Host interface {
	// path of the active external subtitle file, or "" when there is none
	ActiveSubtitlePath() string
	// Confirm asks the user a yes/no question.
	Confirm(prompt string) bool
	SelectedTrack() (int64, error)
	// LoadTrack adds path as a subtitle track and selects it.
	LoadTrack(path string) error
	SelectTrack(id int64) error
}

// parameters of one save request
type Options struct {
	Dir       string
	Filename  string
	Params    subtitle.Params
	Overwrite bool
	SetActive bool
}

// Saver writes the shifted active subtitle next to the user's chosen name.
type Saver struct {
	Host   Host
	Trash  trash.Trasher
	Logger *logging.Logger

	// LockDir holds per-destination lock files; os.TempDir() when empty.
	LockDir string
}

func New(host Host, trasher trash.Trasher, logger *logging.Logger) *Saver {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Saver{Host: host, Trash: trasher, Logger: logger}
}

// Save runs the whole save flow and reports its outcome. It never panics on
// bad input; every failure comes back as a non-OK Result.
func (s *Saver) Save(ctx context.Context, opts Options) Result {
	if opts.Dir == "" || !fileutil.DirExists(opts.Dir) {
		return result(StatusErrorDir, "Destination folder not found")
	}

	subPath := s.Host.ActiveSubtitlePath()
	if subPath == "" || !fileutil.FileExists(subPath) {
		return result(StatusErrorSub, "Subtitles are empty; nothing to save")
	}
	src, err := subtitle.Open(subPath)
	if err != nil {
		s.Logger.Warnw("Cannot read source subtitles", "path", subPath, "error", err)
		return result(StatusErrorSub, "Subtitles are empty; nothing to save")
	}

	content, ok := src.Shift(opts.Params, func(block int, reason subtitle.DropReason) {
		s.Logger.Debugw("Dropped subtitle block", "block", block+1, "reason", string(reason))
	})
	if !ok {
		return result(StatusWarning, "Processed subtitles were empty; file not saved")
	}

	if opts.Filename == "" || filepath.Base(opts.Filename) != opts.Filename {
		return result(StatusErrorOther, "Save failed: invalid file name")
	}
	outPath := filepath.Join(opts.Dir, opts.Filename)

	lock := flock.New(s.lockPath(outPath))
	locked, err := lock.TryLock()
	if err != nil {
		return failure(fmt.Errorf("acquire lock: %w", err))
	}
	if !locked {
		return result(StatusWarning, "Save already in progress")
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.Logger.Warnw("Failed to release save lock", "error", err)
		}
	}()

	outExists, err := fileutil.Exists(outPath)
	if err != nil {
		return failure(err)
	}
	if outExists && !opts.Overwrite && !s.Host.Confirm(fmt.Sprintf(
		"%q already exists.\n\nThe existing file will be moved to the Trash.",
		opts.Filename,
	)) {
		return result(StatusWarning, "Save cancelled")
	}

	if err := subtitle.Verify(content); err != nil {
		s.Logger.Warnw("Output did not verify", "error", err)
	}

	if err := ctx.Err(); err != nil {
		return failure(err)
	}
	if outExists {
		trashed, err := s.Trash.Trash(outPath)
		if err != nil {
			return failure(err)
		}
		s.Logger.Infow("Moved existing file to trash", "path", outPath, "trash", trashed)
	}
	if err := fileutil.WriteFileAtomic(outPath, []byte(content), 0644); err != nil {
		return failure(err)
	}
	s.Logger.Infow("Wrote subtitles",
		"path", outPath,
		"size", humanize.Bytes(uint64(len(content))),
	)

	s.reloadTrack(subPath, outPath, opts.SetActive)

	res := result(StatusOK, "Subtitles saved")
	res.Path = outPath
	return res
}

// reloadTrack loads the new file into the host, then puts the previous
// selection back unless the caller asked for the new track
func (s *Saver) reloadTrack(subPath, outPath string, setActive bool) {
	prev, err := s.Host.SelectedTrack()
	if err != nil {
		s.Logger.Warnw("Cannot read selected track", "error", err)
	}
	if err := s.Host.LoadTrack(outPath); err != nil {
		s.Logger.Warnw("Cannot load saved subtitles", "path", outPath, "error", err)
		return
	}
	if !setActive && subPath != s.Host.ActiveSubtitlePath() {
		if err := s.Host.SelectTrack(prev); err != nil {
			s.Logger.Warnw("Cannot restore selected track", "track", prev, "error", err)
		}
	}
}

func (s *Saver) lockPath(outPath string) string {
	dir := s.LockDir
	if dir == "" {
		dir = os.TempDir()
	}
	sum := sha1.Sum([]byte(outPath))
	return filepath.Join(dir, "subshift-"+hex.EncodeToString(sum[:8])+".lock")
}
