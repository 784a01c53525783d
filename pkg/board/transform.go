package board

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Map rewrites every occupied cell's label to transform(oldLabel), invoking
// transform at most once per distinct original label (§4.5.1). The board
// lock is held only for the initial label snapshot and the final commit,
// which applies every label's rewrite in one batch; transform itself always runs with the lock released, fanned out
// one goroutine per distinct label via errgroup so a slow transform for one
// label does not hold up the others.
//
// If any transform result is empty or contains whitespace, the entire
// operation fails with ErrInvalidLabel and no label is changed. A cell that
// became empty between the snapshot and the commit (removed by a
// concurrent 3-A) is skipped, not treated as an error. ctx is checked once
// after every transform has resolved: a canceled ctx aborts before the
// commit, so a canceled map never partially applies.
func (b *Board) Map(ctx context.Context, transform func(string) string) error {
	originals := b.snapshotLabels()
	if len(originals) == 0 {
		return nil
	}

	newLabels := make(map[string]string, len(originals))
	var mu sync.Mutex
	g := new(errgroup.Group)
	for _, label := range originals {
		label := label
		g.Go(func() error {
			result := transform(label)
			if !ValidLabel(result) {
				return newError(KindInvalidLabel, "transform(%q) produced invalid label %q", label, result)
			}
			mu.Lock()
			newLabels[label] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	changed := false
	for i, c := range b.cells {
		if !c.occupied {
			continue
		}
		if newLabel, ok := newLabels[c.label]; ok && newLabel != c.label {
			b.cells[i].label = newLabel
			changed = true
		}
	}
	if changed {
		b.log.Debugf("map rewrote %d distinct label(s)", len(newLabels))
		b.broadcast()
	}
	return nil
}

// snapshotLabels returns the set of distinct labels currently occupying the
// board, taken under the board lock.
func (b *Board) snapshotLabels() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	seen := make(map[string]struct{})
	labels := make([]string, 0, len(b.cells))
	for _, c := range b.cells {
		if !c.occupied {
			continue
		}
		if _, ok := seen[c.label]; ok {
			continue
		}
		seen[c.label] = struct{}{}
		labels = append(labels, c.label)
	}
	return labels
}
