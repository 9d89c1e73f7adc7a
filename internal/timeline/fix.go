package timeline

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mkarlsen/vttkit/internal/vtt"
)

// Action names one repair the fixer applied (or declined) on a line.
type Action string

const (
	// timing line left untouched because a timestamp would not decode
	ActionSkipUnparseable Action = "SKIP_UNPARSEABLE"
	// start and end were reversed and have been swapped
	ActionSwapStartEnd Action = "SWAP_START_END"
	// line rewritten to canonical form without a swap
	ActionNormalize Action = "NORMALIZE"
)

// FixEntry is one line-level action taken by Fix. Line is 1-based over
// the raw document.
type FixEntry struct {
	Line   int
	Action Action
	Detail string
}

// Fix rewrites every decodable timing line to canonical
// "HH:MM:SS.mmm --> HH:MM:SS.mmm" form, swapping start and end when
// they are reversed and keeping any settings suffix verbatim. Lines
// that do not match the timing grammar, and timing lines that will not
// decode, pass through unchanged. Running Fix on its own output is a
// fixed point: no further swaps or normalizations occur.
func Fix(lines []string) ([]string, []FixEntry) {
	fixed := make([]string, 0, len(lines))
	var log []FixEntry

	for idx, line := range lines {
		lineNo := idx + 1

		m := vtt.TimingLineRe.FindStringSubmatch(line)
		if m == nil {
			fixed = append(fixed, line)
			continue
		}

		startRaw := strings.TrimSpace(m[1])
		endRaw := ""
		if fields := strings.Fields(m[2]); len(fields) > 0 {
			endRaw = fields[0]
		}
		tail := m[3]

		start, serr := vtt.ParseTimestamp(startRaw)
		end, eerr := vtt.ParseTimestamp(endRaw)
		if serr != nil || eerr != nil {
			err := serr
			if err == nil {
				err = eerr
			}
			// keep the line exactly as it was
			fixed = append(fixed, line)
			log = append(log, FixEntry{
				Line:   lineNo,
				Action: ActionSkipUnparseable,
				Detail: err.Error(),
			})
			continue
		}

		swapped := false
		if end < start {
			start, end = end, start
			swapped = true
		}

		newLine := strings.TrimRightFunc(fmt.Sprintf(
			"%s --> %s%s",
			vtt.FormatTimestamp(start),
			vtt.FormatTimestamp(end),
			tail,
		), unicode.IsSpace)
		fixed = append(fixed, newLine)

		detail := startRaw + " --> " + endRaw
		if swapped {
			log = append(log, FixEntry{
				Line:   lineNo,
				Action: ActionSwapStartEnd,
				Detail: detail,
			})
		} else if strings.TrimSpace(line) != strings.TrimSpace(newLine) {
			log = append(log, FixEntry{
				Line:   lineNo,
				Action: ActionNormalize,
				Detail: detail,
			})
		}
	}

	return fixed, log
}
