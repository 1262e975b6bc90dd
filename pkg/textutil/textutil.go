// Package textutil provides text utilities for handling source input:
// binary detection, line counting, and common-indentation removal.
package textutil

import (
	"bytes"
	"strings"
)

// BinarySniffLength is the maximum number of bytes scanned for null-byte
// detection. Matches the heuristic used by Git and most editors.
const BinarySniffLength = 8000

// IsBinary returns true if data contains a null byte within the first
// BinarySniffLength bytes. Empty data is not binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	sniff := data
	if len(sniff) > BinarySniffLength {
		sniff = sniff[:BinarySniffLength]
	}

	return bytes.IndexByte(sniff, 0) >= 0
}

// CountLines returns the number of newline-delimited lines in data.
// A non-empty buffer without a trailing newline counts the last partial line.
// Returns 0 for empty data.
func CountLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}

	lines := bytes.Count(data, []byte{'\n'})

	if data[len(data)-1] != '\n' {
		lines++
	}

	return lines
}

// Dedent removes the longest whitespace prefix shared by every non-blank
// line of text. Blank lines are ignored when computing the margin and are
// preserved as-is. Source snippets pasted with a uniform indent parse the
// same as their flush-left form after dedenting.
func Dedent(text string) string {
	lines := strings.Split(text, "\n")

	margin, found := commonMargin(lines)
	if !found || margin == "" {
		return text
	}

	for i, line := range lines {
		if isBlank(line) {
			continue
		}

		lines[i] = strings.TrimPrefix(line, margin)
	}

	return strings.Join(lines, "\n")
}

func commonMargin(lines []string) (string, bool) {
	var margin string

	found := false

	for _, line := range lines {
		if isBlank(line) {
			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]

		if !found {
			margin, found = indent, true

			continue
		}

		margin = commonPrefix(margin, indent)
		if margin == "" {
			break
		}
	}

	return margin, found
}

func commonPrefix(a, b string) string {
	limit := min(len(a), len(b))

	for i := range limit {
		if a[i] != b[i] {
			return a[:i]
		}
	}

	return a[:limit]
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
