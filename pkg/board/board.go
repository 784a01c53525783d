// Package board implements the concurrency core of the Memory Scramble
// board: a shared grid of cards that many players flip concurrently, with a
// FIFO wait queue per cell, a change-broadcast facility for long-polling
// watchers, and an atomic-per-label bulk relabel operation.
//
// The package is transport-agnostic: it exposes plain method calls guarded
// by a single mutex and makes no assumptions about HTTP, gRPC, or any other
// front end.
package board

import (
	"fmt"
	"sync"

	"github.com/decred/slog"
)

// WaitMode selects which variant of flipFirst's step 2 contested-cell
// branch the board implements.
type WaitMode int

const (
	// WaitAsync is the concurrency core: a contested flipFirst suspends on
	// a FIFO queue instead of failing.
	WaitAsync WaitMode = iota
	// WaitReject is the synchronous variant: a contested flipFirst fails
	// immediately with ErrContested.
	WaitReject
)

func (m WaitMode) String() string {
	if m == WaitReject {
		return "reject"
	}
	return "async"
}

// Config configures a new Board. Rows, Cols and Labels come from the
// board-file parser contract (internal/boardfile); Log is required, mirroring
// the teacher's GameConfig.Log convention of requiring an injected logger
// rather than defaulting to a package-global one.
type Config struct {
	Rows   int
	Cols   int
	Labels []string // row-major, len must equal Rows*Cols
	Mode   WaitMode
	Log    slog.Logger
}

// Board is the shared, concurrency-safe game state. All exported methods
// are safe to call from any number of goroutines.
type Board struct {
	mu sync.Mutex

	rows, cols int
	cells      []cell // row-major, len == rows*cols

	players map[string]*playerEntry

	waitQueues [][]*waiter   // indexed by index(pos), one FIFO queue per cell
	watchers   []*watchEntry // board-wide, not per cell

	mode WaitMode
	log  slog.Logger
}

// NewBoard validates cfg and constructs a Board. It is the in-memory
// counterpart to the board-file parser's contract: dimensions must be
// positive, Labels must have exactly Rows*Cols entries, and every label
// must satisfy ValidLabel.
func NewBoard(cfg Config) (*Board, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, fmt.Errorf("board: rows and cols must be positive, got %dx%d", cfg.Rows, cfg.Cols)
	}
	want := cfg.Rows * cfg.Cols
	if len(cfg.Labels) != want {
		return nil, fmt.Errorf("board: expected %d labels for a %dx%d board, got %d", want, cfg.Rows, cfg.Cols, len(cfg.Labels))
	}
	for i, l := range cfg.Labels {
		if !ValidLabel(l) {
			return nil, fmt.Errorf("board: label %q at index %d is invalid", l, i)
		}
	}
	if cfg.Log == nil {
		return nil, fmt.Errorf("board: log is required")
	}

	cells := make([]cell, want)
	for i, l := range cfg.Labels {
		cells[i] = cell{occupied: true, label: l, face: Down, controller: noPlayer}
	}

	b := &Board{
		rows:       cfg.Rows,
		cols:       cfg.Cols,
		cells:      cells,
		players:    make(map[string]*playerEntry),
		waitQueues: make([][]*waiter, want),
		mode:       cfg.Mode,
		log:        cfg.Log,
	}
	b.log.Infof("board constructed: %dx%d, %d cards, mode=%s", cfg.Rows, cfg.Cols, want, cfg.Mode)
	return b, nil
}

// Dimensions returns the board's fixed row and column counts.
func (b *Board) Dimensions() (rows, cols int) {
	return b.rows, b.cols
}

// HasFirstSelection reports whether player currently holds an open first
// selection, letting a thin front end route an incoming flip to flipFirst
// or flipSecond without keeping any state of its own (per §6 ADDED).
func (b *Board) HasFirstSelection(player string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.players[player]
	return ok && p.firstSelection != nil
}
