package split

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/mkarlsen/vttkit/internal/vtt"
)

func TestChunkGroupsByStartTime(t *testing.T) {
	header := []string{"WEBVTT", ""}
	cues := []vtt.Cue{
		{
			Start:      5 * time.Second,
			End:        8 * time.Second,
			Text:       []string{"first"},
			TimingLine: "00:00:05.000 --> 00:00:08.000",
		},
		{
			Start:      25 * time.Minute,
			End:        25*time.Minute + 4*time.Second,
			Text:       []string{"second"},
			TimingLine: "00:25:00.000 --> 00:25:04.000",
		},
	}

	parts, err := Chunk(header, cues, Options{ChunkDuration: 10 * time.Minute})
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}

	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}

	// the empty middle bucket produces no part, but numbering keeps the
	// gap so names still reflect timeline position
	if parts[0].Number != 1 {
		t.Errorf("part 0 number = %d, want 1", parts[0].Number)
	}
	if parts[1].Number != 3 {
		t.Errorf("part 1 number = %d, want 3", parts[1].Number)
	}

	wantLines := []string{
		"WEBVTT",
		"",
		"00:00:05.000 --> 00:00:08.000",
		"first",
		"",
	}
	if !reflect.DeepEqual(parts[0].Lines, wantLines) {
		t.Errorf("part 0 lines = %q, want %q", parts[0].Lines, wantLines)
	}
}

func TestChunkRebase(t *testing.T) {
	cues := []vtt.Cue{
		{
			Start:      25 * time.Minute,
			End:        25*time.Minute + 4*time.Second,
			Text:       []string{"second"},
			TimingLine: "00:25:00.000 --> 00:25:04.000",
		},
	}

	parts, err := Chunk(nil, cues, Options{
		ChunkDuration: 10 * time.Minute,
		Rebase:        true,
		StartAtZero:   true,
	})
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}
	if parts[0].Number != 3 {
		t.Errorf("part number = %d, want 3", parts[0].Number)
	}

	// 25:00 falls in the bucket starting at 20:00, so rebased timestamps
	// are 5 minutes in
	want := "00:05:00.000 --> 00:05:04.000"
	if parts[0].Lines[2] != want {
		t.Errorf("rebased timing = %q, want %q", parts[0].Lines[2], want)
	}
}

func TestChunkBaseAlignment(t *testing.T) {
	cues := []vtt.Cue{
		{
			Start:      25 * time.Minute,
			End:        26 * time.Minute,
			Text:       []string{"late start"},
			TimingLine: "00:25:00.000 --> 00:26:00.000",
		},
	}

	// default: the grid aligns to the first cue, so a late-starting file
	// still begins at part 1
	parts, err := Chunk(nil, cues, Options{ChunkDuration: 10 * time.Minute})
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	if parts[0].Number != 1 {
		t.Errorf("content-aligned part number = %d, want 1", parts[0].Number)
	}

	// start-at-zero: the grid aligns to 00:00 instead
	parts, err = Chunk(nil, cues, Options{
		ChunkDuration: 10 * time.Minute,
		StartAtZero:   true,
	})
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	if parts[0].Number != 3 {
		t.Errorf("zero-aligned part number = %d, want 3", parts[0].Number)
	}
}

func TestChunkBucketBoundaries(t *testing.T) {
	// a cue starting exactly on a bucket boundary opens the next part;
	// one millisecond earlier stays in the previous one
	cues := []vtt.Cue{
		{
			Start:      0,
			End:        time.Second,
			Text:       []string{"a"},
			TimingLine: "00:00:00.000 --> 00:00:01.000",
		},
		{
			Start:      599999 * time.Millisecond,
			End:        600 * time.Second,
			Text:       []string{"b"},
			TimingLine: "00:09:59.999 --> 00:10:00.000",
		},
		{
			Start:      600000 * time.Millisecond,
			End:        601 * time.Second,
			Text:       []string{"c"},
			TimingLine: "00:10:00.000 --> 00:10:01.000",
		},
		{
			Start:      1199999 * time.Millisecond,
			End:        1200 * time.Second,
			Text:       []string{"d"},
			TimingLine: "00:19:59.999 --> 00:20:00.000",
		},
	}

	parts, err := Chunk(nil, cues, Options{
		ChunkDuration: 10 * time.Minute,
		StartAtZero:   true,
	})
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}

	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].Number != 1 || parts[1].Number != 2 {
		t.Errorf("part numbers = %d, %d, want 1, 2", parts[0].Number, parts[1].Number)
	}

	wantPart1 := []string{
		"WEBVTT",
		"",
		"00:00:00.000 --> 00:00:01.000",
		"a",
		"",
		"00:09:59.999 --> 00:10:00.000",
		"b",
		"",
	}
	if !reflect.DeepEqual(parts[0].Lines, wantPart1) {
		t.Errorf("part 1 lines = %q, want %q", parts[0].Lines, wantPart1)
	}

	wantPart2 := []string{
		"WEBVTT",
		"",
		"00:10:00.000 --> 00:10:01.000",
		"c",
		"",
		"00:19:59.999 --> 00:20:00.000",
		"d",
		"",
	}
	if !reflect.DeepEqual(parts[1].Lines, wantPart2) {
		t.Errorf("part 2 lines = %q, want %q", parts[1].Lines, wantPart2)
	}
}

func TestChunkSynthesizesHeader(t *testing.T) {
	cues := []vtt.Cue{
		{Start: 0, End: time.Second, Text: []string{"x"}, TimingLine: "00:00:00.000 --> 00:00:01.000"},
	}

	parts, err := Chunk(nil, cues, Options{ChunkDuration: 10 * time.Minute})
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	if parts[0].Lines[0] != "WEBVTT" || parts[0].Lines[1] != "" {
		t.Errorf("header not synthesized: %q", parts[0].Lines[:2])
	}
}

func TestChunkNoCues(t *testing.T) {
	_, err := Chunk(nil, nil, Options{ChunkDuration: 10 * time.Minute})
	if !errors.Is(err, ErrNoCuesFound) {
		t.Errorf("err = %v, want ErrNoCuesFound", err)
	}
}

func TestChunkZeroDuration(t *testing.T) {
	cues := []vtt.Cue{
		{Start: 0, End: time.Second, Text: []string{"x"}, TimingLine: "00:00:00.000 --> 00:00:01.000"},
	}
	if _, err := Chunk(nil, cues, Options{}); err == nil {
		t.Error("expected error for zero chunk duration")
	}
}

func TestWriteParts(t *testing.T) {
	tmpDir := t.TempDir()
	parts := []Part{
		{Number: 1, Lines: []string{"WEBVTT", "", "00:00:00.000 --> 00:00:01.000", "a", ""}},
		{Number: 3, Lines: []string{"WEBVTT", "", "00:25:00.000 --> 00:25:01.000", "b", ""}},
	}

	paths, err := WriteParts(tmpDir, "video", parts)
	if err != nil {
		t.Fatalf("WriteParts failed: %v", err)
	}

	want := []string{
		filepath.Join(tmpDir, "video_part1.vtt"),
		filepath.Join(tmpDir, "video_part3.vtt"),
	}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %q, want %q", paths, want)
	}

	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("failed to read part: %v", err)
	}
	wantContent := "WEBVTT\n\n00:00:00.000 --> 00:00:01.000\na\n"
	if string(data) != wantContent {
		t.Errorf("part content = %q, want %q", string(data), wantContent)
	}
}
