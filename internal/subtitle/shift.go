package subtitle

// Shifter applies a delay and frame-rate scale to SubRip text. The zero value
// shifts by nothing. A Shifter holds no state between calls and is safe for
// concurrent use.
type Shifter struct {
	Params

	// OnDrop, when set, is told about every block left out of the output.
	OnDrop DropFunc
}

// Shift is shorthand for Shifter{Params: p}.Shift(text).
func Shift(text string, p Params) (string, bool) {
	return Shifter{Params: p}.Shift(text)
}

// Shift re-times every block and renders the survivors with fresh numbering.
// It reports false when no block survived, in which case nothing should be
// written.
func (s Shifter) Shift(text string) (string, bool) {
	entries, _ := s.Entries(text)
	return Render(entries)
}

// Entries re-times every block and returns the survivors along with the total
// number of blocks seen. Blocks are dropped, never reported as errors, when
// they have no time line, a malformed time line, an end before the first
// millisecond after shifting, or no text.
func (s Shifter) Entries(text string) ([]Entry, int) {
	ratio := s.Ratio()
	delay := float64(s.DelayMs)

	blocks := splitBlocks(text)
	entries := make([]Entry, 0, len(blocks))
	for i, block := range blocks {
		raw, reason := parseBlock(block)
		if reason == "" {
			var entry Entry
			entry, reason = shiftBlock(raw, delay, ratio)
			if reason == "" {
				entry.Index = len(entries) + 1
				entries = append(entries, entry)
				continue
			}
		}
		if s.OnDrop != nil {
			s.OnDrop(i, reason)
		}
	}
	return entries, len(blocks)
}

// start is not compared against end; a scale or delay that reverses a
// block's range is passed through unchanged
func shiftBlock(raw rawBlock, delay, ratio float64) (Entry, DropReason) {
	end := delay + ratio*float64(raw.end)
	if end < 1 {
		return Entry{}, DropBeforeStart
	}
	if len(raw.lines) == 0 {
		return Entry{}, DropEmptyText
	}
	return Entry{
		Start: delay + ratio*float64(raw.start),
		End:   end,
		Lines: raw.lines,
	}, ""
}
