package vtt

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestScanCues(t *testing.T) {
	body := []string{
		"1",
		"00:00:01.000 --> 00:00:04.000 align:start position:0%",
		"Hello, world!",
		"",
		"bogus --> 00:00:08.000",
		"dropped text",
		"",
		"00:00:05.500 --> 00:00:08.200",
		"Second cue.",
		"With two lines.",
	}

	cues, skipped := ScanCues(body)

	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}

	if cues[0].Start != 1*time.Second {
		t.Errorf("cue 0: expected start 1s, got %v", cues[0].Start)
	}
	if cues[0].End != 4*time.Second {
		t.Errorf("cue 0: expected end 4s, got %v", cues[0].End)
	}
	if !reflect.DeepEqual(cues[0].Text, []string{"Hello, world!"}) {
		t.Errorf("cue 0: text = %q", cues[0].Text)
	}
	if cues[0].TimingLine != body[1] {
		t.Errorf("cue 0: timing line = %q, want %q", cues[0].TimingLine, body[1])
	}

	if cues[1].Start != 5500*time.Millisecond {
		t.Errorf("cue 1: expected start 5.5s, got %v", cues[1].Start)
	}
	wantText := []string{"Second cue.", "With two lines."}
	if !reflect.DeepEqual(cues[1].Text, wantText) {
		t.Errorf("cue 1: text = %q, want %q", cues[1].Text, wantText)
	}

	if len(skipped) != 1 {
		t.Fatalf("expected 1 skipped block, got %d", len(skipped))
	}
	if skipped[0].Line != 5 {
		t.Errorf("skip line = %d, want 5", skipped[0].Line)
	}
	if skipped[0].Raw != body[4] {
		t.Errorf("skip raw = %q, want %q", skipped[0].Raw, body[4])
	}
	if !errors.Is(skipped[0].Err, ErrMalformedTimestamp) {
		t.Errorf("skip err = %v, want ErrMalformedTimestamp", skipped[0].Err)
	}
}

func TestScanCuesMissingEnd(t *testing.T) {
	// an arrow with nothing after it is a malformed block, not a crash
	body := []string{
		"00:00:01.000 -->   ",
		"orphaned text",
	}

	cues, skipped := ScanCues(body)
	if len(cues) != 0 {
		t.Errorf("expected no cues, got %d", len(cues))
	}
	if len(skipped) != 1 {
		t.Fatalf("expected 1 skipped block, got %d", len(skipped))
	}
	if !errors.Is(skipped[0].Err, ErrMalformedTimestamp) {
		t.Errorf("skip err = %v, want ErrMalformedTimestamp", skipped[0].Err)
	}
}

func TestScanCuesEmptyText(t *testing.T) {
	body := []string{
		"00:00:01.000 --> 00:00:02.000",
		"",
		"00:00:03.000 --> 00:00:04.000",
		"text",
	}

	cues, skipped := ScanCues(body)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %v", skipped)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if len(cues[0].Text) != 0 {
		t.Errorf("cue 0: expected no text lines, got %q", cues[0].Text)
	}
}

func TestTimingLineRe(t *testing.T) {
	tests := []struct {
		line      string
		wantMatch bool
		wantLeft  string
		wantRight string
	}{
		{"00:00:01.000 --> 00:00:04.000", true, "00:00:01.000", "00:00:04.000"},
		{"  46.550-->55:56.03.800  ", true, "46.550", "55:56.03.800"},
		{"no arrow here", false, "", ""},
		{"", false, "", ""},
	}

	for _, tt := range tests {
		m := TimingLineRe.FindStringSubmatch(tt.line)
		if (m != nil) != tt.wantMatch {
			t.Errorf("match(%q) = %v, want %v", tt.line, m != nil, tt.wantMatch)
			continue
		}
		if m == nil {
			continue
		}
		if m[1] != tt.wantLeft {
			t.Errorf("left(%q) = %q, want %q", tt.line, m[1], tt.wantLeft)
		}
		if m[2] != tt.wantRight {
			t.Errorf("right(%q) = %q, want %q", tt.line, m[2], tt.wantRight)
		}
	}
}
