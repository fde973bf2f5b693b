package subtitle

import (
	"fmt"
	"strings"
	"time"

	"github.com/asticode/go-astisub"
)

// Verify re-reads rendered text with an independent SubRip reader and checks
// that it sees the same entries and timings.
func Verify(text string) error {
	subs, err := astisub.ReadFromSRT(strings.NewReader(text))
	if err != nil {
		return fmt.Errorf("reference reader rejected output: %w", err)
	}

	entries := Parse(text)
	if len(subs.Items) != len(entries) {
		return fmt.Errorf(
			"entry count mismatch: reference reader saw %d, expected %d",
			len(subs.Items),
			len(entries),
		)
	}

	for i, item := range subs.Items {
		start := toDuration(entries[i].Start)
		end := toDuration(entries[i].End)
		if item.StartAt != start || item.EndAt != end {
			return fmt.Errorf(
				"entry %d timing mismatch: reference %s-%s, expected %s-%s",
				i+1,
				item.StartAt,
				item.EndAt,
				start,
				end,
			)
		}
	}
	return nil
}

func toDuration(ms float64) time.Duration {
	hh, mm, ss, milli := Decompose(ms)
	return time.Duration(Compose(hh, mm, ss, milli)) * time.Millisecond
}
