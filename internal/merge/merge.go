// Package merge concatenates subtitle part files back into one
// document in chronological order.
package merge

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/mkarlsen/vttkit/internal/vtt"
)

// reported when the name filter matched no files
var ErrNoInputFiles = errors.New("no input files")

// matches "part2", "_part02", "Part 10" and similar tokens anywhere in
// a filename stem
var partNumRe = regexp.MustCompile(`(?i)(?:^|[^a-zA-Z])_?part\s*0*(\d+)`)

// sort sentinels: files without the key sort after everything real
const (
	noPartNumber = 1000000000
	noFirstCue   = time.Duration(1000000000000) * time.Millisecond
)

// PartNumber extracts the part sequence number from a filename. The
// second return is false when the name carries no part token.
func PartNumber(name string) (int, bool) {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	m := partNumRe.FindStringSubmatch(stem)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// candidate is one input file with its precomputed sort key.
type candidate struct {
	firstCue time.Duration
	partNum  int
	nameKey  string
	path     string
}

// Merge reads the given subtitle files and concatenates them into one
// document: files are ordered by (first cue start, part number from the
// filename, lowercased filename); the first file's header is written
// once and every body is appended with exactly one blank separator.
// The chosen order is returned alongside the merged lines.
func Merge(paths []string) ([]string, []string, error) {
	if len(paths) == 0 {
		return nil, nil, ErrNoInputFiles
	}

	cands := make([]candidate, 0, len(paths))
	for _, p := range paths {
		first, err := firstCueStart(p)
		if err != nil {
			return nil, nil, err
		}
		num, ok := PartNumber(p)
		if !ok {
			num = noPartNumber
		}
		cands = append(cands, candidate{
			firstCue: first,
			partNum:  num,
			nameKey:  strings.ToLower(filepath.Base(p)),
			path:     p,
		})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.firstCue != b.firstCue {
			return a.firstCue < b.firstCue
		}
		if a.partNum != b.partNum {
			return a.partNum < b.partNum
		}
		return a.nameKey < b.nameKey
	})

	var out []string
	var order []string
	headerWritten := false

	for _, c := range cands {
		fileLines, err := vtt.ReadFileLines(c.path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read part %s: %w", c.path, err)
		}
		header, body := vtt.SplitHeaderBody(fileLines)

		if !headerWritten {
			if len(header) == 0 {
				header = vtt.DefaultHeader()
			}
			out = append(out, header...)
			// ensure at least one blank line after the header
			if strings.TrimSpace(out[len(out)-1]) != "" {
				out = append(out, "")
			}
			headerWritten = true
		}

		body = trimBlankEdges(body)
		if len(body) > 0 {
			out = append(out, body...)
			out = append(out, "")
		}

		order = append(order, c.path)
	}

	// single trailing newline comes from the writer; drop blank tails and
	// trailing whitespace on the final line
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
		out = out[:len(out)-1]
	}
	if len(out) > 0 {
		out[len(out)-1] = strings.TrimRightFunc(out[len(out)-1], unicode.IsSpace)
	}

	return out, order, nil
}

// firstCueStart decodes the start time of the first parseable timing
// line in the file; undecodable lines are passed over. Files with no
// decodable cue get the sentinel so they sort last.
func firstCueStart(path string) (time.Duration, error) {
	lines, err := vtt.ReadFileLines(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read part %s: %w", path, err)
	}
	_, body := vtt.SplitHeaderBody(lines)

	for _, line := range body {
		m := vtt.TimingLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		start, err := vtt.ParseTimestamp(strings.TrimSpace(m[1]))
		if err != nil {
			continue
		}
		return start, nil
	}
	return noFirstCue, nil
}

// trimBlankEdges drops leading and trailing blank lines.
func trimBlankEdges(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
