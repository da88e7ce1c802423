package storage

import (
	"context"

	"flashloanScope/internal/model"
)

// EventSink receives batches of decoded flash loan events. Batches arrive in
// harvest order, one per page, so a failed run keeps its completed pages.
type EventSink interface {
	PutEventBatch(ctx context.Context, events []model.FlashLoanEvent) error
}
