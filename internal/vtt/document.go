package vtt

import (
	"fmt"
	"os"
	"strings"

	"github.com/mkarlsen/vttkit/internal/fsutil"
)

// Signature is the token the first non-blank line must start with
// (case-insensitively) for a document header to be recognized.
const Signature = "WEBVTT"

// DefaultHeader returns the minimal header written when the source had
// none: the signature line plus a blank separator.
func DefaultHeader() []string {
	return []string{Signature, ""}
}

// ReadFileLines reads a subtitle file as UTF-8 text, strips a leading
// BOM, normalizes CRLF/CR line endings to LF and returns the lines
// without terminators.
func ReadFileLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	text := strings.TrimPrefix(string(data), "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n"), nil
}

// WriteDocument writes lines joined with LF, guaranteeing a trailing
// newline and no BOM. The write is atomic so readers never observe a
// partial document.
func WriteDocument(path string, lines []string) error {
	text := strings.Join(lines, "\n")
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if err := fsutil.WriteFileAtomic(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// SplitHeaderBody separates raw document lines into header and body.
// The header is the signature line, any metadata lines up to the first
// blank line, and the blank separator run itself, all kept verbatim.
// A document without a signature yields an empty header and its lines
// stay in the body.
func SplitHeaderBody(lines []string) (header, body []string) {
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}

	if i < len(lines) {
		first := strings.TrimPrefix(lines[i], "\uFEFF")
		if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(first)), Signature) {
			header = append(header, first)
			i++
			for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
				header = append(header, lines[i])
				i++
			}
			for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
				header = append(header, lines[i])
				i++
			}
		}
	}

	return header, lines[i:]
}
