package subtitle

import (
	"regexp"
	"strings"
	"unicode"
)

const timeSeparator = "-->"

// any Unicode space, including NBSP, vertical tab and the byte order mark
const space = `[\s\v\x{85}\p{Z}\x{FEFF}]`

var (
	blockSplitRegex = regexp.MustCompile(space + `*\n` + space + `*\n+`)
	lineSplitRegex  = regexp.MustCompile(`\r?\n`)
	timeLineRegex   = regexp.MustCompile(
		`^(\d{1,2}):(\d{1,2}):(\d{1,2}),(\d{1,3})` + space + `*-->` + space +
			`*(\d{1,2}):(\d{1,2}):(\d{1,2}),(\d{1,3})$`,
	)
)

// one time-bearing block before any shift is applied
type rawBlock struct {
	start int64
	end   int64
	lines []string
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func trimText(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// splitBlocks cuts the source on runs of blank lines
func splitBlocks(text string) []string {
	text = trimText(text)
	if text == "" {
		return nil
	}
	return blockSplitRegex.Split(text, -1)
}

// parseBlock returns the timing and text of a block, or the reason it has
// none. The input's own index line is ignored.
func parseBlock(block string) (rawBlock, DropReason) {
	lines := lineSplitRegex.Split(trimText(block), -1)

	timeIdx := -1
	for i, line := range lines {
		if strings.Contains(line, timeSeparator) {
			timeIdx = i
			break
		}
	}
	if timeIdx == -1 {
		return rawBlock{}, DropNoTimeLine
	}

	m := timeLineRegex.FindStringSubmatch(trimText(lines[timeIdx]))
	if m == nil {
		return rawBlock{}, DropBadTimeLine
	}

	var text []string
	for _, line := range lines[timeIdx+1:] {
		line = strings.TrimRightFunc(line, isSpace)
		if trimText(line) != "" {
			text = append(text, line)
		}
	}

	return rawBlock{
		start: composeFields(m[1], m[2], m[3], m[4]),
		end:   composeFields(m[5], m[6], m[7], m[8]),
		lines: text,
	}, ""
}

// Parse reads every well-formed block of text without shifting it. Blocks
// are numbered from 1 in the order they survive.
func Parse(text string) []Entry {
	entries, _ := Shifter{}.Entries(text)
	return entries
}
