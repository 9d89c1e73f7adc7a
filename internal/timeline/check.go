package timeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/mkarlsen/vttkit/internal/vtt"
)

// IssueKind classifies a timeline diagnostic.
type IssueKind string

const (
	// a timestamp on the timing line would not decode
	IssueParseFail IssueKind = "PARSE_FAIL"
	// the cue ends before it starts
	IssueEndBeforeStart IssueKind = "END_BEFORE_START"
	// the cue starts earlier than the previous decodable cue
	IssueStartDecreased IssueKind = "START_DECREASED"
	// the cue starts before the previous decodable cue has ended
	IssueOverlap IssueKind = "OVERLAP"
)

// Issue is one diagnostic from Check. Line is 1-based over the raw
// document; Raw carries the offending line verbatim. Issues are
// reports, never failures: a document full of them still checks "ok"
// in the sense that Check itself cannot error.
type Issue struct {
	Line   int
	Kind   IssueKind
	Detail string
	Raw    string
}

// Check scans the raw document for timeline problems without modifying
// anything. Ordering checks (START_DECREASED, OVERLAP) compare each cue
// against the immediately preceding decodable cue; unparseable timing
// lines are reported but never become the comparison point.
func Check(lines []string) []Issue {
	var issues []Issue

	type parsedCue struct {
		line  int
		start time.Duration
		end   time.Duration
		raw   string
	}
	var cues []parsedCue

	for idx, line := range lines {
		m := vtt.TimingLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lineNo := idx + 1

		startRaw := strings.TrimSpace(m[1])
		endRaw := ""
		if fields := strings.Fields(m[2]); len(fields) > 0 {
			endRaw = fields[0]
		}

		start, serr := vtt.ParseTimestamp(startRaw)
		end, eerr := vtt.ParseTimestamp(endRaw)
		if serr != nil || eerr != nil {
			err := serr
			if err == nil {
				err = eerr
			}
			issues = append(issues, Issue{
				Line:   lineNo,
				Kind:   IssueParseFail,
				Detail: err.Error(),
				Raw:    line,
			})
			continue
		}

		if end < start {
			issues = append(issues, Issue{
				Line: lineNo,
				Kind: IssueEndBeforeStart,
				Detail: fmt.Sprintf(
					"start=%d end=%d",
					start.Milliseconds(),
					end.Milliseconds(),
				),
				Raw: line,
			})
		}

		cues = append(cues, parsedCue{
			line:  lineNo,
			start: start,
			end:   end,
			raw:   line,
		})
	}

	// timeline sanity: starts should be non-decreasing, cues should
	// not overlap
	for i, c := range cues {
		if i == 0 {
			continue
		}
		prev := cues[i-1]
		if c.start < prev.start {
			issues = append(issues, Issue{
				Line: c.line,
				Kind: IssueStartDecreased,
				Detail: fmt.Sprintf(
					"prev_start=%d current_start=%d (prev line %d)",
					prev.start.Milliseconds(),
					c.start.Milliseconds(),
					prev.line,
				),
				Raw: c.raw,
			})
		}
		if c.start < prev.end {
			issues = append(issues, Issue{
				Line: c.line,
				Kind: IssueOverlap,
				Detail: fmt.Sprintf(
					"prev_end=%d current_start=%d (prev line %d)",
					prev.end.Milliseconds(),
					c.start.Milliseconds(),
					prev.line,
				),
				Raw: c.raw,
			})
		}
	}

	return issues
}
