package board

import "context"

// Watch blocks until at least one change has been broadcast since the call
// began, then returns forPlayer's snapshot taken atomically with that
// change (§5's "watcher broadcast is atomic with respect to snapshots").
// ctx cancellation removes the caller from the watcher set and returns
// ctx.Err() instead.
func (b *Board) Watch(ctx context.Context, forPlayer string) (string, error) {
	b.mu.Lock()
	w := newWatchEntry(forPlayer)
	b.enqueueWatcher(w)
	b.mu.Unlock()

	select {
	case <-w.done:
		// w.snapshot was stashed by broadcast while b.mu was still held by
		// the triggering change; re-reading it here needs no lock and
		// cannot race with a later, unrelated mutation.
		return w.snapshot, nil
	case <-ctx.Done():
		b.mu.Lock()
		b.dequeueWatcher(w)
		b.mu.Unlock()
		return "", ctx.Err()
	}
}
