package db

import (
	"io"
	"log/slog"

	"github.com/dasdy/bookvote/model"
	"github.com/schollz/progressbar/v3"
)

// RestoreStates replays the journal and returns the last known local state
// of every title that was voted on.
func RestoreStates(storage Storage, progress io.Writer) (map[string]model.VoteState, error) {
	items, err := storage.AllIterator()
	if err != nil {
		return nil, err
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("Restoring vote history..."),
		progressbar.OptionSpinnerType(14),
	)

	states := make(map[string]model.VoteState)

	for item := range items {
		err := bar.Add(1)
		if err != nil {
			slog.Error("could not update progress bar", "error", err)
		}

		states[item.Title] = item.State
	}

	err = bar.Finish()
	if err != nil {
		slog.Error("could not finish progress bar", "error", err)
	}

	return states, nil
}
