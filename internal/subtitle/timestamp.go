package subtitle

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

const (
	msPerHour   = 3600000
	msPerMinute = 60000
	msPerSecond = 1000
)

var canonicalRegex = regexp.MustCompile(`^(\d{1,2}):(\d{1,2}):(\d{1,2}),(\d{1,3})$`)

// roundMs rounds half up, matching how players round fractional milliseconds
func roundMs(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Decompose splits a millisecond count into clock fields. Negative values
// clamp to zero and fractional values round to the nearest millisecond.
func Decompose(totalMs float64) (hh, mm, ss, ms int64) {
	total := int64(math.Max(0, roundMs(totalMs)))

	hh = total / msPerHour
	mm = (total % msPerHour) / msPerMinute
	ss = (total % msPerMinute) / msPerSecond
	ms = total % msPerSecond
	return hh, mm, ss, ms
}

// Compose is the inverse of Decompose. Fields are not range checked, so a
// minutes value of 75 simply contributes 75 minutes.
func Compose(hh, mm, ss, ms int64) int64 {
	return hh*msPerHour + mm*msPerMinute + ss*msPerSecond + ms
}

// FormatCanonical renders HH:MM:SS,mmm. Hours grow past two digits when needed.
func FormatCanonical(totalMs float64) string {
	hh, mm, ss, ms := Decompose(totalMs)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hh, mm, ss, ms)
}

// ParseCanonical parses H:M:S,mmm with 1-2 digit clock fields and 1-3
// millisecond digits.
func ParseCanonical(text string) (int64, bool) {
	m := canonicalRegex.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return composeFields(m[1], m[2], m[3], m[4]), true
}

// fields come from \d{1,3} captures so parsing cannot fail
func composeFields(hours, minutes, seconds, millis string) int64 {
	h, _ := strconv.ParseInt(hours, 10, 64)
	m, _ := strconv.ParseInt(minutes, 10, 64)
	s, _ := strconv.ParseInt(seconds, 10, 64)
	ms, _ := strconv.ParseInt(millis, 10, 64)
	return Compose(h, m, s, ms)
}
