// Package httpboard is the thin HTTP adapter named in §6: it owns no game
// state of its own, translating each request into a single board.Board
// method call and rendering the resulting snapshot or error text.
package httpboard

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/decred/slog"

	"memscramble/pkg/board"
)

// Handler wires a board.Board to an http.ServeMux. It holds no per-player
// or per-request state: every handler method re-derives everything it
// needs from the URL and the board itself.
type Handler struct {
	board *board.Board
	log   slog.Logger
}

// New constructs a Handler over b, logging with log.
func New(b *board.Board, log slog.Logger) *Handler {
	return &Handler{board: b, log: log}
}

// Register adds the four routes from §6 to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /look/{player}", h.handleLook)
	mux.HandleFunc("GET /flip/{player}/{pos}", h.handleFlip)
	mux.HandleFunc("GET /replace/{player}/{from}/{to}", h.handleReplace)
	mux.HandleFunc("GET /watch/{player}", h.handleWatch)
}

func (h *Handler) handleLook(w http.ResponseWriter, r *http.Request) {
	player := r.PathValue("player")
	fmt.Fprint(w, h.board.Snapshot(player))
}

// handleFlip implements the §6 ADDED dispatch rule: route to FlipFirst or
// FlipSecond purely by asking the board whether player already has an open
// first selection, keeping this handler stateless.
func (h *Handler) handleFlip(w http.ResponseWriter, r *http.Request) {
	player := r.PathValue("player")
	pos, err := parsePosition(r.PathValue("pos"))
	if err != nil {
		writeError(w, err)
		return
	}

	if h.board.HasFirstSelection(player) {
		err = h.board.FlipSecond(player, pos)
	} else {
		err = h.board.FlipFirst(r.Context(), player, pos)
	}
	if err != nil {
		h.log.Debugf("flip %s %s denied: %v", player, pos, err)
		writeError(w, err)
		return
	}
	fmt.Fprint(w, h.board.Snapshot(player))
}

func (h *Handler) handleReplace(w http.ResponseWriter, r *http.Request) {
	player := r.PathValue("player")
	from := r.PathValue("from")
	to := r.PathValue("to")

	err := h.board.Map(r.Context(), func(label string) string {
		if label == from {
			return to
		}
		return label
	})
	if err != nil {
		h.log.Warnf("replace %s->%s failed: %v", from, to, err)
		writeError(w, err)
		return
	}
	h.log.Infof("replace %s->%s applied by %s", from, to, player)
	fmt.Fprint(w, h.board.Snapshot(player))
}

func (h *Handler) handleWatch(w http.ResponseWriter, r *http.Request) {
	player := r.PathValue("player")
	snap, err := h.board.Watch(r.Context(), player)
	if err != nil {
		writeError(w, err)
		return
	}
	fmt.Fprint(w, snap)
}

// parsePosition parses the "{r},{c}" path segment used by /flip.
func parsePosition(s string) (board.Position, error) {
	r, c, ok := strings.Cut(s, ",")
	if !ok {
		return board.Position{}, fmt.Errorf("httpboard: malformed position %q, want r,c", s)
	}
	row, err := strconv.Atoi(r)
	if err != nil {
		return board.Position{}, fmt.Errorf("httpboard: malformed row in %q", s)
	}
	col, err := strconv.Atoi(c)
	if err != nil {
		return board.Position{}, fmt.Errorf("httpboard: malformed col in %q", s)
	}
	return board.Position{Row: row, Col: col}, nil
}

// writeError renders err as the text body naming the rule that denied the
// operation (§6: "Error responses carry a text body naming the rule"). HTTP
// status codes are not mandated by the core: a *board.Error reports 409, and
// any other error reports 400 (a malformed position from parsePosition, or
// the context error of a canceled request).
func writeError(w http.ResponseWriter, err error) {
	var boardErr *board.Error
	if errors.As(err, &boardErr) {
		http.Error(w, boardErr.Error(), http.StatusConflict)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}
