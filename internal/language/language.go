package language

import (
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

var (
	filenameTagRegex = regexp.MustCompile(`\.([a-z]{2,3})\.srt$`)
	fallbackRegex    = regexp.MustCompile(`[a-z]{1,3}`)
)

// results are kept for the life of the process, failures included
var cache sync.Map

// Maximize returns the canonical base language subtag for a short tag, so
// "eng" and "EN" both give "en". Unknown tags give "".
func Maximize(tag string) string {
	key := strings.ToLower(strings.TrimSpace(tag))
	if key == "" {
		return ""
	}
	if v, ok := cache.Load(key); ok {
		return v.(string)
	}

	code := maximize(key)
	cache.Store(key, code)
	return code
}

func maximize(key string) string {
	t, err := language.Parse(key)
	if err != nil {
		return ""
	}
	base, conf := t.Base()
	if conf == language.No {
		return ""
	}
	code := base.String()
	if code == "und" {
		return ""
	}
	return code
}

// FromFilename returns the language tag of a "name.<tag>.srt" path.
func FromFilename(path string) string {
	m := filenameTagRegex.FindStringSubmatch(strings.ToLower(path))
	if m == nil {
		return ""
	}
	return m[1]
}

// TrackLanguage resolves the language of a subtitle track: its own language
// metadata when present, otherwise the file name tag of an external track.
func TrackLanguage(lang string, external bool, path string) string {
	key := strings.ToLower(strings.TrimSpace(lang))
	if key == "" && external {
		key = FromFilename(strings.TrimSpace(path))
	}
	if key == "" {
		return ""
	}
	return Maximize(key)
}

// NormalizeFallback reduces a configured fallback language to its first run
// of one to three letters.
func NormalizeFallback(value string) string {
	return fallbackRegex.FindString(strings.ToLower(value))
}
