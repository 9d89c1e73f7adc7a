// Package split chops one subtitle document into consecutive
// fixed-duration parts by cue start time.
package split

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/mkarlsen/vttkit/internal/vtt"
)

// reported when the input document yields zero parseable cues; nothing
// is written in that case
var ErrNoCuesFound = errors.New("no cues found")

// Options controls how a document is chunked.
type Options struct {
	// length of one part
	ChunkDuration time.Duration
	// rewrite each part's timestamps relative to the part's own start
	Rebase bool
	// align the chunk grid to 00:00 instead of the first cue's time
	StartAtZero bool
}

// Part is one non-empty chunk rendered as document lines. Number is
// 1-based and keeps gaps where empty buckets were skipped, so part
// names always reflect their position on the timeline.
type Part struct {
	Number int
	Lines  []string
}

// Chunk groups cues into consecutive fixed-duration buckets by start
// time and renders one document per non-empty bucket. The header is
// reused verbatim when present, synthesized otherwise.
func Chunk(header []string, cues []vtt.Cue, opts Options) ([]Part, error) {
	if len(cues) == 0 {
		return nil, ErrNoCuesFound
	}

	chunk := opts.ChunkDuration
	if chunk <= 0 {
		return nil, fmt.Errorf("chunk duration must be positive, got %v", chunk)
	}

	var base time.Duration
	if !opts.StartAtZero {
		minStart := cues[0].Start
		for _, c := range cues[1:] {
			if c.Start < minStart {
				minStart = c.Start
			}
		}
		base = (minStart / chunk) * chunk
	}

	// sparse bucket map: bucket index -> cues, document order preserved
	buckets := make(map[int][]vtt.Cue)
	for _, c := range cues {
		idx := int((c.Start - base) / chunk)
		if idx < 0 {
			idx = 0
		}
		buckets[idx] = append(buckets[idx], c)
	}

	indices := make([]int, 0, len(buckets))
	for idx := range buckets {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	if len(header) == 0 {
		header = vtt.DefaultHeader()
	}

	parts := make([]Part, 0, len(indices))
	for _, idx := range indices {
		chunkStart := base + time.Duration(idx)*chunk

		lines := make([]string, 0, len(header)+3*len(buckets[idx]))
		lines = append(lines, header...)

		for _, c := range buckets[idx] {
			if opts.Rebase {
				lines = append(lines, fmt.Sprintf(
					"%s --> %s",
					vtt.FormatTimestamp(c.Start-chunkStart),
					vtt.FormatTimestamp(c.End-chunkStart),
				))
			} else {
				// original line minus trailing whitespace
				lines = append(lines, strings.TrimRightFunc(c.TimingLine, unicode.IsSpace))
			}
			lines = append(lines, c.Text...)
			lines = append(lines, "")
		}

		parts = append(parts, Part{Number: idx + 1, Lines: lines})
	}

	return parts, nil
}

// WriteParts writes each part under dir as {stem}_part{N}.vtt and
// returns the written paths in part order.
func WriteParts(dir, stem string, parts []Part) ([]string, error) {
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		path := filepath.Join(dir, fmt.Sprintf("%s_part%d.vtt", stem, p.Number))
		if err := vtt.WriteDocument(path, p.Lines); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
