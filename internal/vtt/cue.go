package vtt

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// TimingLineRe matches a cue timing line: left timestamp, arrow, right
// timestamp, optional settings tail. Deliberately loose so dirty
// timestamps still reach the codec instead of being rejected here.
var TimingLineRe = regexp.MustCompile(`^\s*(.+?)\s*-->\s*(.+?)(\s+.*)?$`)

// Cue is one parsed cue block. TimingLine keeps the original line
// verbatim so callers can choose between re-rendering and passing it
// through untouched.
type Cue struct {
	Start      time.Duration
	End        time.Duration
	Text       []string
	TimingLine string
}

// Skip records a cue block the scanner dropped and why. Line is
// 1-based within the scanned slice.
type Skip struct {
	Line int
	Raw  string
	Err  error
}

// ScanCues parses cue blocks out of body lines, preserving the original
// text lines. Blocks whose timestamps fail to decode are dropped, never
// fatal; the skip list carries one entry per dropped block so callers
// can report them.
func ScanCues(body []string) ([]Cue, []Skip) {
	var cues []Cue
	var skipped []Skip

	i := 0
	for i < len(body) {
		line := body[i]
		m := TimingLineRe.FindStringSubmatch(line)
		if m == nil {
			i++
			continue
		}

		start, end, err := decodeTimingMatch(m)
		if err != nil {
			skipped = append(skipped, Skip{Line: i + 1, Raw: line, Err: err})
			i++
			continue
		}
		i++

		var text []string
		for i < len(body) && strings.TrimSpace(body[i]) != "" {
			text = append(text, body[i])
			i++
		}
		for i < len(body) && strings.TrimSpace(body[i]) == "" {
			i++
		}

		cues = append(cues, Cue{
			Start:      start,
			End:        end,
			Text:       text,
			TimingLine: line,
		})
	}

	return cues, skipped
}

// decodeTimingMatch decodes both sides of a matched timing line. Only
// the right side's first field is the end timestamp; anything after it
// is cue settings text.
func decodeTimingMatch(m []string) (start, end time.Duration, err error) {
	fields := strings.Fields(m[2])
	if len(fields) == 0 {
		return 0, 0, fmt.Errorf("%w: missing end timestamp", ErrMalformedTimestamp)
	}
	start, err = ParseTimestamp(strings.TrimSpace(m[1]))
	if err != nil {
		return 0, 0, err
	}
	end, err = ParseTimestamp(fields[0])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
