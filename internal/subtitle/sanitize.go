package subtitle

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	slashRunRegex   = regexp.MustCompile(`/+`)
	nonDelayRegex   = regexp.MustCompile(`[^0-9:.]`)
	nonDigitRegex   = regexp.MustCompile(`[^0-9]`)
	nonLowerRegex   = regexp.MustCompile(`[^a-z]`)
	nonDecimalRegex = regexp.MustCompile(`[^0-9.]`)
)

// control characters dropped, remaining whitespace flattened to spaces
func cleanSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.Is(unicode.Cc, r):
			return -1
		case unicode.IsSpace(r):
			return ' '
		}
		return r
	}, s)
}

func dropRunes(s, set string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(set, r) {
			return -1
		}
		return r
	}, s)
}

// SanitizeDir cleans a typed destination folder.
func SanitizeDir(s string) string {
	s = dropRunes(cleanSpaces(s), `:\`)
	return slashRunRegex.ReplaceAllString(s, "/")
}

// SanitizeFilename cleans a typed file name; path separators are removed.
func SanitizeFilename(s string) string {
	return dropRunes(cleanSpaces(s), `/:\`)
}

// SanitizeLang keeps at most three lowercase letters.
func SanitizeLang(s string) string {
	s = nonLowerRegex.ReplaceAllString(strings.ToLower(s), "")
	if len(s) > 3 {
		s = s[:3]
	}
	return s
}

// SanitizeFPS keeps digits and one decimal point with up to three decimals.
func SanitizeFPS(s string) string {
	clean := nonDecimalRegex.ReplaceAllString(strings.ReplaceAll(s, ",", "."), "")
	whole, fraction, found := strings.Cut(clean, ".")
	if !found {
		return clean
	}
	return whole + "." + truncate(strings.ReplaceAll(fraction, ".", ""), 3)
}

// SanitizeDelay reduces typed input to the shapes ParseFreeform accepts: at
// most hours:minutes:seconds, three decimals, and an optional leading minus.
func SanitizeDelay(s string) string {
	negative := strings.HasPrefix(strings.TrimLeftFunc(s, unicode.IsSpace), "-")

	clean := nonDelayRegex.ReplaceAllString(strings.ReplaceAll(s, ",", "."), "")
	parts := strings.Split(clean, ":")
	secIndex := min(len(parts)-1, 2)

	fields := make([]string, 0, secIndex+1)
	for _, p := range parts[:secIndex] {
		fields = append(fields, nonDigitRegex.ReplaceAllString(p, ""))
	}

	secPart := strings.Join(parts[secIndex:], "")
	sec, ms, found := strings.Cut(nonDecimalRegex.ReplaceAllString(secPart, ""), ".")
	if found {
		sec += "." + truncate(strings.ReplaceAll(ms, ".", ""), 3)
	}
	fields = append(fields, sec)

	timestamp := strings.Join(fields, ":")
	if negative {
		return "-" + timestamp
	}
	return timestamp
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
