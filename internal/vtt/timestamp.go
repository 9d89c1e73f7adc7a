package vtt

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// reported when a timestamp token cannot be decoded; callers recover
// per cue instead of aborting the document
var ErrMalformedTimestamp = errors.New("malformed timestamp")

var (
	// bare seconds with an optional fraction, e.g. "46.550"
	bareSecondsRe = regexp.MustCompile(`^\d+(\.\d+)?$`)
	nonDigitRe    = regexp.MustCompile(`\D`)
)

// largest whole-millisecond count representable as a time.Duration
const maxMilliseconds = math.MaxInt64 / int64(time.Millisecond)

// ParseTimestamp decodes a single timestamp token into a duration with
// millisecond resolution.
//
// Accepted forms:
//   - HH:MM:SS.mmm
//   - MM:SS.mmm (hours implied zero)
//   - SS.mmm (bare seconds, non-standard but common in dirty files)
//
// Comma decimals ("46,550") are tolerated, as are extra dots in the
// seconds segment ("55:56.03.800"): everything after the first dot is
// flattened to digits and clipped to three places.
func ParseTimestamp(token string) (time.Duration, error) {
	ts := strings.ReplaceAll(strings.TrimSpace(token), ",", ".")
	if ts == "" {
		return 0, fmt.Errorf("%w: empty timestamp", ErrMalformedTimestamp)
	}

	if bareSecondsRe.MatchString(ts) {
		secs, err := strconv.ParseFloat(ts, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, token)
		}
		ms := math.Round(secs * 1000)
		if ms > float64(maxMilliseconds) {
			return 0, fmt.Errorf("%w: out of range %q", ErrMalformedTimestamp, token)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}

	parts := strings.Split(ts, ":")
	var hh, mm, rest string
	switch len(parts) {
	case 3:
		hh, mm, rest = parts[0], parts[1], parts[2]
	case 2:
		hh = "0"
		mm, rest = parts[0], parts[1]
	default:
		return 0, fmt.Errorf(
			"%w: bad structure %q",
			ErrMalformedTimestamp,
			token,
		)
	}

	restParts := strings.Split(rest, ".")
	ss := restParts[0]
	if ss == "" {
		ss = "0"
	}

	// fraction digits = everything after the first dot, digits only,
	// left-justified and clipped to exactly three places
	msDigits := nonDigitRe.ReplaceAllString(strings.Join(restParts[1:], ""), "")
	if msDigits == "" {
		msDigits = "0"
	}
	for len(msDigits) < 3 {
		msDigits += "0"
	}
	msDigits = msDigits[:3]

	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: bad hours in %q", ErrMalformedTimestamp, token)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: bad minutes in %q", ErrMalformedTimestamp, token)
	}
	s, err := strconv.Atoi(ss)
	if err != nil {
		return 0, fmt.Errorf("%w: bad seconds in %q", ErrMalformedTimestamp, token)
	}
	mmm, _ := strconv.Atoi(msDigits)

	// totals beyond the Duration range would wrap silently
	if int64(h) > maxMilliseconds/3600000 ||
		int64(m) > maxMilliseconds/60000 ||
		int64(s) > maxMilliseconds/1000 {
		return 0, fmt.Errorf("%w: out of range %q", ErrMalformedTimestamp, token)
	}
	total := (int64(h)*3600+int64(m)*60+int64(s))*1000 + int64(mmm)
	if total > maxMilliseconds {
		return 0, fmt.Errorf("%w: out of range %q", ErrMalformedTimestamp, token)
	}
	return time.Duration(total) * time.Millisecond, nil
}

// FormatTimestamp renders a duration as HH:MM:SS.mmm. Negative input
// clamps to zero; hours are not wrapped at 24. Formatting never fails
// and its output always re-decodes to the same millisecond value.
func FormatTimestamp(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	hh := ms / 3600000
	ms %= 3600000
	mm := ms / 60000
	ms %= 60000
	ss := ms / 1000
	mmm := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hh, mm, ss, mmm)
}
