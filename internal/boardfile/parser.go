// Package boardfile implements the board-file parser contract from §4.6:
// a minimal text format naming a board's dimensions and its row-major card
// labels, used by cmd/memscrambled to build a board.Config at startup.
package boardfile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"memscramble/pkg/board"
)

var headerRe = regexp.MustCompile(`^(\d+)x(\d+)$`)

// Parsed holds everything needed to construct a board.Board via
// board.NewBoard; Parse never constructs the board itself, keeping this
// package free of any dependency on board's wait-mode or logging config.
type Parsed struct {
	Rows   int
	Cols   int
	Labels []string
}

// Parse reads a board file from data: line 1 must be "{rows}x{cols}" with
// positive rows and cols, followed by exactly rows*cols non-empty label
// lines. CRLF line endings are normalized to LF before splitting, and a
// trailing newline after the last label is permitted. Any deviation
// produces an error and no Parsed value.
func Parse(data []byte) (Parsed, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return Parsed{}, fmt.Errorf("boardfile: empty input")
	}

	lines := strings.Split(text, "\n")
	m := headerRe.FindStringSubmatch(lines[0])
	if m == nil {
		return Parsed{}, fmt.Errorf("boardfile: line 1 %q does not match {rows}x{cols}", lines[0])
	}
	rows, err := strconv.Atoi(m[1])
	if err != nil || rows <= 0 {
		return Parsed{}, fmt.Errorf("boardfile: invalid rows in %q", lines[0])
	}
	cols, err := strconv.Atoi(m[2])
	if err != nil || cols <= 0 {
		return Parsed{}, fmt.Errorf("boardfile: invalid cols in %q", lines[0])
	}

	want := rows * cols
	body := lines[1:]
	if len(body) != want {
		return Parsed{}, fmt.Errorf("boardfile: expected %d label lines for a %dx%d board, got %d", want, rows, cols, len(body))
	}

	labels := make([]string, want)
	for i, line := range body {
		if !board.ValidLabel(line) {
			return Parsed{}, fmt.Errorf("boardfile: label %q at line %d is invalid", line, i+2)
		}
		labels[i] = line
	}

	return Parsed{Rows: rows, Cols: cols, Labels: labels}, nil
}
