package db

import (
	"context"
	"iter"

	"github.com/dasdy/bookvote/model"
)

// Storage is the vote journal.
type Storage interface {
	Store(ctx context.Context, record *model.VoteRecord) error
	Summaries() ([]model.RowSummary, error)
	AllIterator() (iter.Seq[model.VoteRecord], error)
	Close()
}
