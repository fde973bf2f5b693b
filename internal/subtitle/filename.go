package subtitle

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

const srtExt = ".srt"

var srtSuffixRegex = regexp.MustCompile(`(?i)\.?(\.srt)$`)

// NameOptions controls the tags SmartFilename inserts before the extension.
type NameOptions struct {
	IncludeDelay bool
	DelayMs      int64
	Lang         string
}

// FilenameIsEmpty reports whether name carries nothing but the extension.
func FilenameIsEmpty(name string) bool {
	name = strings.TrimSpace(name)
	return name == "" || strings.EqualFold(name, srtExt)
}

// SmartFilename completes a user-typed name: ".srt" is appended when missing,
// then the delay tag and the language tag are inserted before it, giving
// names like "movie.-1500.en.srt".
func SmartFilename(name string, opts NameOptions) string {
	if FilenameIsEmpty(name) {
		return ""
	}
	name = strings.TrimSpace(name)

	lower := strings.ToLower(name)
	if !strings.HasSuffix(lower, srtExt) {
		if strings.HasSuffix(lower, ".") {
			name += "srt"
		} else {
			name += srtExt
		}
	}

	if opts.IncludeDelay {
		name = insertTag(name, strconv.FormatInt(opts.DelayMs, 10))
	}
	if lang := strings.TrimSpace(opts.Lang); lang != "" {
		name = insertTag(name, lang)
	}
	return name
}

func insertTag(name, tag string) string {
	return srtSuffixRegex.ReplaceAllString(name, "."+tag+"${1}")
}

// ValidateFPS checks frame-rate conversion input. Source may be left blank
// when the video's own rate is known.
func ValidateFPS(enabled bool, source, target string, videoFPS float64) error {
	if !enabled {
		return nil
	}
	source = strings.TrimSpace(source)
	target = strings.TrimSpace(target)

	switch {
	case target == "":
		return errors.New("Enter a target FPS")
	case parseRate(target) <= 0:
		return errors.New("Target FPS must be > 0")
	case source != "" && parseRate(source) <= 0:
		return errors.New("Source FPS must be > 0")
	case source == "" && videoFPS <= 0:
		return errors.New("Enter a source FPS (video FPS unavailable)")
	}
	return nil
}

// ResolveFPS turns form values into shift rates. Both come back zero when
// conversion is disabled; a blank or invalid source falls back to videoFPS.
func ResolveFPS(enabled bool, source, target string, videoFPS float64) (float64, float64) {
	if !enabled {
		return 0, 0
	}
	src := leadingFloat(source)
	if src == 0 {
		src = videoFPS
	}
	return src, leadingFloat(target)
}

func parseRate(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
