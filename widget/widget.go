package widget

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dasdy/bookvote/client"
	"github.com/dasdy/bookvote/logging"
	"github.com/dasdy/bookvote/model"
	"github.com/sourcegraph/conc"
)

// VotingService records a vote for a bookmark and returns its new rating.
type VotingService interface {
	SubmitVote(ctx context.Context, title string, value int) (model.VoteResponse, error)
}

// Journal keeps track of submitted votes.
type Journal interface {
	Store(ctx context.Context, record *model.VoteRecord) error
}

// VoteWidget toggles row indicators and sends the votes in the background.
//
// Responses are applied in the order they arrive, so with overlapping
// submissions for one row the display shows whichever finished last.
type VoteWidget struct {
	service VotingService
	journal Journal
	now     func() time.Time

	inflight conc.WaitGroup
}

func New(service VotingService, journal Journal) *VoteWidget {
	return &VoteWidget{
		service: service,
		journal: journal,
		now:     time.Now,
	}
}

// Toggle applies the click on the row's indicator for d and submits the vote
// without waiting for the response. The same directional value is sent for
// new votes, switches and resets.
func (w *VoteWidget) Toggle(ctx context.Context, row *Row, d model.Direction) model.VoteState {
	state := row.toggle(d)

	ctx = logging.AppendCtx(ctx, slog.Int("row", row.Index))
	slog.DebugContext(ctx, "Toggled vote", "direction", d, "state", state)

	w.inflight.Go(func() {
		w.submit(ctx, row.Title, d.Value(), row, state)
	})

	return state
}

// SubmitVote sends the vote and updates the row's count display with the
// returned rating. Failures are logged and otherwise ignored.
func (w *VoteWidget) SubmitVote(ctx context.Context, title string, value int, row *Row) {
	w.submit(ctx, title, value, row, row.State())
}

func (w *VoteWidget) submit(ctx context.Context, title string, value int, row *Row, state model.VoteState) {
	ctx = logging.AppendCtx(ctx, slog.String("title", title))

	record := &model.VoteRecord{
		Title:     title,
		Value:     value,
		State:     state,
		Timestamp: w.now(),
	}

	resp, err := w.service.SubmitVote(ctx, title, value)
	if err != nil {
		var failed *client.RequestFailedError
		if errors.As(err, &failed) {
			record.Status = failed.StatusCode
			record.Error = failed.Body
			slog.ErrorContext(ctx, "Vote request failed", "response", failed.Error(), "status", failed.StatusCode)
		} else {
			record.Error = err.Error()
			slog.ErrorContext(ctx, "Vote request failed", "error", err)
		}

		w.record(ctx, record)

		return
	}

	record.Status = resp.Status
	record.Rating = resp.Rating

	if err := row.Count.Render(ctx, Emphasis(resp.Rating)); err != nil {
		slog.ErrorContext(ctx, "Failed to update vote count", "error", err)
	} else {
		slog.InfoContext(ctx, "Vote recorded", "vote", value, "rating", resp.Rating)
	}

	w.record(ctx, record)
}

func (w *VoteWidget) record(ctx context.Context, record *model.VoteRecord) {
	if w.journal == nil {
		return
	}

	if err := w.journal.Store(ctx, record); err != nil {
		slog.ErrorContext(ctx, "Failed to journal vote", "error", err)
	}
}

// Wait blocks until every submission started by Toggle has finished.
func (w *VoteWidget) Wait() {
	w.inflight.Wait()
}
