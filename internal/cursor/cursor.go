package cursor

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidProgress marks a cursor move to before the range start.
	ErrInvalidProgress = errors.New("cursor moved before range start")
	// ErrNoProgress marks a cursor move that failed to advance. The harvest
	// aborts on it rather than loop on the same range forever.
	ErrNoProgress = errors.New("cursor failed to advance")
)

// Cursor tracks harvest progress over a block range. From is inclusive and
// To exclusive; To zero means open-ended, bounded by the service's archive
// height at query time.
type Cursor struct {
	start   uint64
	to      uint64
	current uint64
}

func New(from, to uint64) (*Cursor, error) {
	if to != 0 && to <= from {
		return nil, fmt.Errorf("to block %d must be greater than from block %d", to, from)
	}
	return &Cursor{start: from, to: to, current: from}, nil
}

// Current returns the next block to request.
func (c *Cursor) Current() uint64 {
	return c.current
}

func (c *Cursor) Start() uint64 {
	return c.start
}

// Advance moves the cursor to next, the resume point reported by the service.
func (c *Cursor) Advance(next uint64) error {
	if next < c.start {
		return fmt.Errorf("%w: next block %d is before start %d", ErrInvalidProgress, next, c.start)
	}
	if next <= c.current {
		return fmt.Errorf("%w: next block %d did not pass %d", ErrNoProgress, next, c.current)
	}
	c.current = next
	return nil
}

// Done reports whether next has reached the effective upper bound.
func (c *Cursor) Done(next, archiveHeight uint64) bool {
	return next >= c.EffectiveTo(archiveHeight)
}

// EffectiveTo resolves an open upper bound against the archive height.
func (c *Cursor) EffectiveTo(archiveHeight uint64) uint64 {
	if c.to != 0 {
		return c.to
	}
	return archiveHeight
}

// Progress returns completion percent for next against the effective bound.
// A degenerate range counts as complete.
func (c *Cursor) Progress(next, archiveHeight uint64) float64 {
	to := c.EffectiveTo(archiveHeight)
	if to <= c.start {
		return 100
	}
	if next < c.start {
		return 0
	}
	pct := float64(next-c.start) / float64(to-c.start) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}
