package subtitle

import (
	"strconv"
	"strings"
)

const crlf = "\r\n"

// Render writes entries as SubRip text with CRLF line endings, renumbering
// from 1 and ending with a single CRLF. It reports false for an empty list.
func Render(entries []Entry) (string, bool) {
	if len(entries) == 0 {
		return "", false
	}

	var sb strings.Builder
	for i, entry := range entries {
		if i > 0 {
			sb.WriteString(crlf + crlf)
		}

		// index (1-based)
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(crlf)

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(FormatCanonical(entry.Start))
		sb.WriteString(" " + timeSeparator + " ")
		sb.WriteString(FormatCanonical(entry.End))
		sb.WriteString(crlf)

		// text
		sb.WriteString(strings.Join(entry.Lines, crlf))
	}
	sb.WriteString(crlf)

	return sb.String(), true
}
