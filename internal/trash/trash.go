package trash

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Trasher moves files somewhere they can be restored from.
type Trasher interface {
	Trash(path string) (string, error)
}

// Can is a trash directory. When InfoDir is set a .trashinfo record is
// written next to each trashed file, following the freedesktop.org layout.
type Can struct {
	FilesDir string
	InfoDir  string

	now func() time.Time
}

// NewFreedesktop returns the trash can rooted at root, normally
// $XDG_DATA_HOME/Trash.
func NewFreedesktop(root string) *Can {
	return &Can{
		FilesDir: filepath.Join(root, "files"),
		InfoDir:  filepath.Join(root, "info"),
	}
}

// Default returns the trash saves go to: a freedesktop.org can rooted at dir
// when one is configured, else the desktop's own trash.
func Default(dir string) (Trasher, error) {
	return defaultFor(runtime.GOOS, dir)
}

func defaultFor(goos, dir string) (Trasher, error) {
	if dir != "" {
		return NewFreedesktop(dir), nil
	}
	switch goos {
	case "linux", "darwin", "windows", "freebsd", "openbsd", "netbsd", "dragonfly":
		return System{}, nil
	}
	return nil, fmt.Errorf("no system trash on %s; set trash_dir", goos)
}

// Trash moves path into the can and returns its new location.
func (c *Can) Trash(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	if _, err := os.Lstat(abs); err != nil {
		return "", fmt.Errorf("trash %s: %w", abs, err)
	}

	if err := os.MkdirAll(c.FilesDir, 0o700); err != nil {
		return "", fmt.Errorf("create trash directory: %w", err)
	}
	if c.InfoDir != "" {
		if err := os.MkdirAll(c.InfoDir, 0o700); err != nil {
			return "", fmt.Errorf("create trash info directory: %w", err)
		}
	}

	name, infoPath, err := c.reserve(abs)
	if err != nil {
		return "", err
	}

	dest := filepath.Join(c.FilesDir, name)
	if err := move(abs, dest); err != nil {
		if infoPath != "" {
			_ = os.Remove(infoPath)
		}
		return "", fmt.Errorf("move to trash: %w", err)
	}
	return dest, nil
}

// reserve picks a name free in the can and, for freedesktop cans, claims it
// by creating the info record exclusively
func (c *Can) reserve(abs string) (string, string, error) {
	base := filepath.Base(abs)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	name := base
	for attempt := 0; attempt < 8; attempt++ {
		if attempt > 0 {
			name = fmt.Sprintf("%s.%s%s", stem, uuid.NewString()[:8], ext)
		}
		if _, err := os.Lstat(filepath.Join(c.FilesDir, name)); err == nil {
			continue
		}
		if c.InfoDir == "" {
			return name, "", nil
		}

		infoPath := filepath.Join(c.InfoDir, name+".trashinfo")
		f, err := os.OpenFile(infoPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", "", fmt.Errorf("create trash info: %w", err)
		}
		_, werr := f.WriteString(c.info(abs))
		cerr := f.Close()
		if werr != nil || cerr != nil {
			_ = os.Remove(infoPath)
			return "", "", fmt.Errorf("write trash info: %w", errors.Join(werr, cerr))
		}
		return name, infoPath, nil
	}
	return "", "", fmt.Errorf("no free trash name for %s", base)
}

func (c *Can) info(abs string) string {
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	escaped := (&url.URL{Path: abs}).EscapedPath()
	return fmt.Sprintf(
		"[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		escaped,
		now().Format("2006-01-02T15:04:05"),
	)
}

// rename, or copy and remove when the can is on another filesystem
func move(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return os.Remove(src)
}
