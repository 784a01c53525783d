package board

import (
	"strconv"
	"strings"
)

// Snapshot renders the board as forPlayer sees it: line 1 is "{rows}x{cols}",
// followed by one line per cell in row-major order using the wire grammar
// from §4.1/§6 ("none", "down", "my L", "up L"). The returned string ends
// with a trailing newline.
func (b *Board) Snapshot(forPlayer string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked(forPlayer)
}

// snapshotLocked is Snapshot's body, usable by callers that already hold
// b.mu (e.g. broadcast, right after the change that woke the watchers).
func (b *Board) snapshotLocked(forPlayer string) string {
	var sb strings.Builder
	sb.WriteString(b.headerLine())
	sb.WriteByte('\n')
	for _, c := range b.cells {
		sb.WriteString(cellToken(c, forPlayer))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) headerLine() string {
	return formatDims(b.rows, b.cols)
}

func formatDims(rows, cols int) string {
	return strconv.Itoa(rows) + "x" + strconv.Itoa(cols)
}

func cellToken(c cell, forPlayer string) string {
	if !c.occupied {
		return "none"
	}
	if c.face == Down {
		return "down"
	}
	if c.controller == forPlayer {
		return "my " + c.label
	}
	return "up " + c.label
}
