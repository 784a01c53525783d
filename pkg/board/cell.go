package board

import "regexp"

// cardLabelRe matches a non-empty label containing no whitespace, per the
// card-label regex named throughout the spec (space, tab, CR, LF all
// disqualify a label).
var cardLabelRe = regexp.MustCompile(`^\S+$`)

// ValidLabel reports whether s can be used as a card label: non-empty and
// free of whitespace.
func ValidLabel(s string) bool {
	return cardLabelRe.MatchString(s)
}

// Face is the up/down orientation of an occupied cell.
type Face int

const (
	Down Face = iota
	Up
)

func (f Face) String() string {
	if f == Up {
		return "up"
	}
	return "down"
}

// noPlayer is the sentinel controller value meaning "no player controls
// this face-up cell" (the spec's `None`).
const noPlayer = ""

// cell is one grid position. occupied=false is the spec's Empty state; a
// removed cell is never reoccupied (rule 3-A is permanent).
type cell struct {
	occupied   bool
	label      string
	face       Face
	controller string // noPlayer when uncontrolled
}
