package subtitle

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// NegativeSign prefixes negative human-readable offsets.
const NegativeSign = "–"

var (
	integerRegex    = regexp.MustCompile(`^-?\d+$`)
	leadingNumRegex = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// ParseFreeform reads a user-typed offset. Accepted shapes are plain integer
// milliseconds ("-1500") and colon durations ("1:30.5", "-0:02"), where
// segments read right to left as seconds, minutes and hours. Anything that
// does not parse contributes zero; the function never fails.
func ParseFreeform(value string) int64 {
	if value == "" {
		return 0
	}

	if integerRegex.MatchString(value) {
		ms, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0
		}
		return ms
	}

	negative := strings.HasPrefix(value, "-")
	if negative {
		value = value[1:]
	}

	multipliers := [...]float64{1, 60, 3600}
	segments := strings.Split(value, ":")

	var seconds float64
	for i := 0; i < len(multipliers) && i < len(segments); i++ {
		seconds += leadingFloat(segments[len(segments)-1-i]) * multipliers[i]
	}

	ms := int64(roundMs(seconds * 1000))
	if negative {
		return -ms
	}
	return ms
}

// numeric prefix of s, or 0 when there is none
func leadingFloat(s string) float64 {
	match := leadingNumRegex.FindString(strings.TrimLeft(s, " \t\r\n"))
	if match == "" {
		return 0
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

// FormatHuman renders an offset like "1h 2m 3s 4ms". Offsets under one second
// in magnitude render empty. Milliseconds only appear after a coarser unit.
func FormatHuman(totalMs int64) string {
	sign := ""
	if totalMs < 0 {
		sign = NegativeSign
		totalMs = -totalMs
	}
	if totalMs < msPerSecond {
		return ""
	}

	h := totalMs / msPerHour
	m := (totalMs % msPerHour) / msPerMinute
	s := (totalMs % msPerMinute) / msPerSecond
	ms := totalMs % msPerSecond

	var parts []string
	if h > 0 {
		parts = append(parts, strconv.FormatInt(h, 10)+"h")
	}
	if m > 0 {
		parts = append(parts, strconv.FormatInt(m, 10)+"m")
	}
	if s > 0 {
		parts = append(parts, strconv.FormatInt(s, 10)+"s")
	}
	if ms > 0 && len(parts) != 0 {
		parts = append(parts, strconv.FormatInt(ms, 10)+"ms")
	}
	return sign + strings.Join(parts, " ")
}

// FormatSignedMs renders "-1500" style offsets as "–1500ms".
func FormatSignedMs(totalMs int64) string {
	if totalMs < 0 {
		return NegativeSign + strconv.FormatInt(-totalMs, 10) + "ms"
	}
	return strconv.FormatInt(totalMs, 10) + "ms"
}
