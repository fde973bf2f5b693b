package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		logger := NewLogger(verbose)
		if logger == nil || logger.SugaredLogger == nil {
			t.Fatalf("NewLogger(%v) returned nil", verbose)
		}
		if got := logger.Desugar().Core().Enabled(zapcore.DebugLevel); got != verbose {
			t.Errorf("NewLogger(%v): debug enabled = %v", verbose, got)
		}
	}
}

func TestNopAndWith(t *testing.T) {
	logger := Nop().With("file", "movie.srt")
	logger.Infow("discarded", "entries", 3)
	logger.Sync()
}
