package cursor

import (
	"errors"
	"testing"
)

func TestAdvance(t *testing.T) {
	c, err := New(100, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.Advance(150); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if c.Current() != 150 {
		t.Fatalf("current mismatch: %d", c.Current())
	}
}

func TestAdvanceNoProgress(t *testing.T) {
	c, err := New(100, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.Advance(100); !errors.Is(err, ErrNoProgress) {
		t.Fatalf("expected ErrNoProgress, got %v", err)
	}

	if err := c.Advance(150); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if err := c.Advance(150); !errors.Is(err, ErrNoProgress) {
		t.Fatalf("expected ErrNoProgress on repeat, got %v", err)
	}
}

func TestAdvanceBeforeStart(t *testing.T) {
	c, err := New(100, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.Advance(99); !errors.Is(err, ErrInvalidProgress) {
		t.Fatalf("expected ErrInvalidProgress, got %v", err)
	}
}

func TestDoneClosedRange(t *testing.T) {
	c, err := New(100, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Done(199, 500) {
		t.Fatalf("199 should not be done for [100, 200)")
	}
	if !c.Done(200, 500) {
		t.Fatalf("200 should be done for [100, 200)")
	}
}

func TestDoneOpenRangeUsesArchiveHeight(t *testing.T) {
	c, err := New(100, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Done(150, 300) {
		t.Fatalf("150 should not be done at archive height 300")
	}
	if !c.Done(300, 300) {
		t.Fatalf("300 should be done at archive height 300")
	}
}

func TestProgress(t *testing.T) {
	c, err := New(100, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pct := c.Progress(150, 0); pct != 50 {
		t.Fatalf("progress mismatch: %f", pct)
	}
	if pct := c.Progress(200, 0); pct != 100 {
		t.Fatalf("progress at end mismatch: %f", pct)
	}
	if pct := c.Progress(250, 0); pct != 100 {
		t.Fatalf("progress should clamp at 100: %f", pct)
	}
}

func TestProgressDegenerateRange(t *testing.T) {
	c, err := New(100, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Archive height at or below the start counts as complete.
	if pct := c.Progress(100, 100); pct != 100 {
		t.Fatalf("degenerate range should be 100%%: %f", pct)
	}
}

func TestNewRejectsInvertedRange(t *testing.T) {
	if _, err := New(200, 100); err == nil {
		t.Fatalf("expected error for inverted range")
	}
	if _, err := New(200, 200); err == nil {
		t.Fatalf("expected error for empty range")
	}
}
