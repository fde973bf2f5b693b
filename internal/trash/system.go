package trash

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Bios-Marcel/wastebasket/v2"
)

// System is the desktop's own trash: the home trash on Linux and the BSDs,
// the Finder trash on macOS and the Recycle Bin on Windows.
type System struct{}

// Trash hands path to the platform trash. The new location is not reported
// by every platform, so it is always empty.
func (System) Trash(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	if _, err := os.Lstat(abs); err != nil {
		return "", fmt.Errorf("trash %s: %w", abs, err)
	}
	if err := wastebasket.Trash(abs); err != nil {
		return "", fmt.Errorf("move to trash: %w", err)
	}
	return "", nil
}
