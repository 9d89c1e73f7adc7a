// Package compress fuses short adjacent cues into longer,
// sentence-shaped cues.
package compress

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mkarlsen/vttkit/internal/vtt"
)

// reported when the input yields no cues to compress
var ErrNoCuesParsed = errors.New("no cues parsed")

// sentence-terminal punctuation, ASCII plus full-width equivalents
const sentenceEnders = ".?!。？！…"

var (
	// markup tags like <c>, <v Speaker>, <i>
	tagRe = regexp.MustCompile(`<[^>]+>`)
	// runs of whitespace
	spaceRunRe = regexp.MustCompile(`\s+`)
)

// Options bounds how far cues may be fused.
type Options struct {
	// fuse only when the next cue starts within this gap
	MaxGap time.Duration
	// never grow a fused cue's text beyond this many characters
	MaxChars int
}

// cue as the compressor sees it: cleaned, single-line text
type cue struct {
	start time.Duration
	end   time.Duration
	text  string
}

// Result is the compressed document plus before/after cue counts.
type Result struct {
	Lines  []string
	Before int
	After  int
}

// CleanText strips markup tags and collapses whitespace runs to single
// spaces.
func CleanText(s string) string {
	s = tagRe.ReplaceAllString(s, "")
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// EndsSentence reports whether the cleaned text already ends a
// sentence. Empty text counts as terminal, so it never extends.
func EndsSentence(s string) bool {
	s = CleanText(s)
	if s == "" {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return strings.ContainsRune(sentenceEnders, r)
}

// Compress re-parses the raw document with tag stripping, sorts the
// cues by (start, end) and folds adjacent ones together. A fuse happens
// only when the gap is small, the accumulated text does not already end
// a sentence, and the combined text stays within the character budget;
// otherwise the accumulator is flushed and restarted. The final
// accumulator is always flushed.
func Compress(lines []string, opts Options) (*Result, error) {
	cues := parseCues(lines)
	if len(cues) == 0 {
		return nil, ErrNoCuesParsed
	}

	// well-defined adjacency regardless of input order
	sort.SliceStable(cues, func(i, j int) bool {
		if cues[i].start != cues[j].start {
			return cues[i].start < cues[j].start
		}
		return cues[i].end < cues[j].end
	})

	merged := make([]cue, 0, len(cues))
	acc := cues[0]
	for _, next := range cues[1:] {
		if acc.absorb(next, opts) {
			continue
		}
		merged = append(merged, acc)
		acc = next
	}
	merged = append(merged, acc)

	out := vtt.DefaultHeader()
	for _, c := range merged {
		out = append(out,
			vtt.FormatTimestamp(c.start)+" --> "+vtt.FormatTimestamp(c.end),
			c.text,
			"",
		)
	}
	// the writer supplies the trailing newline
	out = out[:len(out)-1]

	return &Result{Lines: out, Before: len(cues), After: len(merged)}, nil
}

// absorb extends the accumulator with next when all fuse conditions
// hold, and reports whether it did.
func (c *cue) absorb(next cue, opts Options) bool {
	if next.start-c.end > opts.MaxGap {
		return false
	}
	if EndsSentence(c.text) {
		return false
	}
	if utf8.RuneCountInString(c.text)+1+utf8.RuneCountInString(next.text) > opts.MaxChars {
		return false
	}

	c.text = CleanText(c.text + " " + next.text)
	if next.end > c.end {
		c.end = next.end
	}
	return true
}

// parseCues scans raw document lines into cleaned cues. The generic cue
// scanner is not reused here: this stage flattens each block's text to
// one tag-free line. Blocks with undecodable timestamps are dropped.
func parseCues(lines []string) []cue {
	_, body := vtt.SplitHeaderBody(lines)

	var cues []cue
	i := 0
	for i < len(body) {
		m := vtt.TimingLineRe.FindStringSubmatch(body[i])
		if m == nil {
			i++
			continue
		}

		startRaw := strings.TrimSpace(m[1])
		fields := strings.Fields(m[2])
		if len(fields) == 0 {
			i++
			continue
		}
		start, serr := vtt.ParseTimestamp(startRaw)
		end, eerr := vtt.ParseTimestamp(fields[0])
		if serr != nil || eerr != nil {
			i++
			continue
		}
		i++

		var text []string
		for i < len(body) && strings.TrimSpace(body[i]) != "" {
			text = append(text, strings.TrimSpace(body[i]))
			i++
		}
		for i < len(body) && strings.TrimSpace(body[i]) == "" {
			i++
		}

		cues = append(cues, cue{
			start: start,
			end:   end,
			text:  CleanText(strings.Join(text, " ")),
		})
	}

	return cues
}
