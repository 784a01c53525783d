package board

import "context"

// FlipFirst implements flipFirst(pos, p) from the spec: it runs cleanup for
// player, then attempts to turn pos face up (or claim it, or take over an
// uncontrolled face-up cell) on the caller's behalf.
//
// In WaitAsync mode (the default), a cell contested by another player
// suspends the call on pos's FIFO wait queue instead of failing; ctx
// cancellation removes the caller from that queue and returns ctx.Err(); a
// retry wake already delivered to the canceled caller goes to the next waiter.
// In WaitReject mode the same situation fails immediately with
// ErrContested.
func (b *Board) FlipFirst(ctx context.Context, player string, pos Position) error {
	if !b.inBounds(pos) {
		return newError(KindOutOfBounds, "position %s is outside the board", pos)
	}

	b.mu.Lock()
	b.settleBeforeNewFirstMove(player)
	b.mu.Unlock()

	for {
		b.mu.Lock()
		idx := b.index(pos)
		c := b.cells[idx]

		switch {
		case !c.occupied:
			b.mu.Unlock()
			return newError(KindEmptySpace, "position %s is empty", pos)

		case c.face == Down:
			b.cells[idx].face = Up
			b.cells[idx].controller = player
			b.broadcast()
			b.claimFirst(player, pos)
			b.mu.Unlock()
			return nil

		case c.controller == noPlayer || c.controller == player:
			// Already face up and uncontrolled, or already ours: take (or
			// keep) control. Rule 1-C; does not broadcast.
			b.cells[idx].controller = player
			b.claimFirst(player, pos)
			b.mu.Unlock()
			return nil

		default:
			// Face up, controlled by someone else.
			if b.mode == WaitReject {
				b.mu.Unlock()
				return newError(KindContested, "position %s is controlled by another player", pos)
			}

			w := newWaiter(player)
			b.enqueueWaiter(pos, w)
			b.log.Debugf("player %s queued on contested position %s", player, pos)
			b.mu.Unlock()

			select {
			case sig := <-w.ch:
				if sig.removed {
					return newError(KindEmptySpace, "position %s was removed while waiting", pos)
				}
				// Retry: re-read the cell from the top of the switch. No
				// cleanup re-run here; settleBeforeNewFirstMove already
				// ran once for this call, per §4.3.
				continue
			case <-ctx.Done():
				b.mu.Lock()
				b.dequeueWaiter(pos, w)
				// A retry wake that reached w before the lock was taken is
				// passed on to the next waiter instead of being lost.
				select {
				case sig := <-w.ch:
					if !sig.removed {
						b.wakeHead(pos)
					}
				default:
				}
				b.mu.Unlock()
				return ctx.Err()
			}
		}
	}
}

// claimFirst records pos as player's open first selection. Must be called
// with b.mu held.
func (b *Board) claimFirst(player string, pos Position) {
	p := b.player(player)
	sel := pos
	p.firstSelection = &sel
	p.enterHoldingFirst()
}

// FlipSecond implements flipSecond(pos, p). It never suspends: a contested
// second position fails immediately (rule 2-B) regardless of any FIFO
// waiters queued on it.
func (b *Board) FlipSecond(player string, pos Position) error {
	if !b.inBounds(pos) {
		return newError(KindOutOfBounds, "position %s is outside the board", pos)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	p := b.player(player)
	if p.firstSelection == nil {
		return newError(KindNoFirst, "player %s has no open first selection", player)
	}
	first := *p.firstSelection
	idx := b.index(pos)
	c := b.cells[idx]

	switch {
	case !c.occupied:
		b.releaseFirst(player, first)
		return newError(KindEmptyTarget, "position %s is empty", pos)

	case c.face == Up && c.controller != noPlayer:
		b.releaseFirst(player, first)
		return newError(KindSecondContested, "position %s is controlled by another player", pos)

	case c.face == Down:
		b.cells[idx].face = Up
		b.broadcast()

	case c.controller == noPlayer:
		// Already face up and uncontrolled: continue without turning up.
	}

	firstIdx := b.index(first)
	if b.cells[firstIdx].label == b.cells[idx].label {
		b.cells[firstIdx].controller = player
		b.cells[idx].controller = player
		p.pendingOutcome = &pairOutcome{matched: true, first: first, second: pos}
	} else {
		b.cells[firstIdx].controller = noPlayer
		b.cells[idx].controller = noPlayer
		p.pendingOutcome = &pairOutcome{matched: false, first: first, second: pos}
		b.wakeHead(first)
		b.wakeHead(pos)
	}
	p.firstSelection = nil
	p.enterAwaitingSettle()
	return nil
}

// releaseFirst undoes a player's open first selection after 2-A/2-B: the
// cell's control reverts to none (if the player still held it) and one
// waiter queued on first is released to retry. Must be called with b.mu
// held.
func (b *Board) releaseFirst(player string, first Position) {
	p := b.player(player)
	idx := b.index(first)
	if b.cells[idx].occupied && b.cells[idx].controller == player {
		b.cells[idx].controller = noPlayer
	}
	p.firstSelection = nil
	p.enterIdle()
	b.wakeHead(first)
}

// settleBeforeNewFirstMove consumes player's pendingOutcome, applying rule
// 3-A (remove a matched pair) or 3-B (flip a mismatched pair back down). A
// pending position whose cell has already become empty — because another
// player's own cleanup removed it first — is treated as a no-op, per the
// spec's "out of band" discard rule. Must be called with b.mu held.
func (b *Board) settleBeforeNewFirstMove(player string) {
	p := b.player(player)
	outcome := p.pendingOutcome
	p.pendingOutcome = nil
	if outcome == nil {
		return
	}

	if outcome.matched {
		removedAny := false
		for _, pos := range [2]Position{outcome.first, outcome.second} {
			idx := b.index(pos)
			if !b.cells[idx].occupied {
				continue
			}
			b.cells[idx] = cell{}
			b.wakeAllRemoved(pos)
			removedAny = true
		}
		if removedAny {
			b.log.Debugf("player %s settled a matched pair at %s/%s", player, outcome.first, outcome.second)
			b.broadcast()
		}
		p.enterIdle()
		return
	}

	changed := false
	for _, pos := range [2]Position{outcome.first, outcome.second} {
		idx := b.index(pos)
		c := b.cells[idx]
		if c.occupied && c.face == Up && c.controller == noPlayer {
			b.cells[idx].face = Down
			changed = true
			b.wakeHead(pos)
		}
	}
	if changed {
		b.broadcast()
	}
	p.enterIdle()
}
