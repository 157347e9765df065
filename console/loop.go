package console

import (
	"context"
	"log/slog"

	"github.com/dasdy/bookvote/console/parser"
	"github.com/dasdy/bookvote/model"
	"github.com/dasdy/bookvote/widget"
)

// Toggler reacts to clicks on vote indicators.
type Toggler interface {
	Toggle(ctx context.Context, row *widget.Row, d model.Direction) model.VoteState
}

// VoteLoop dispatches every command read from ch to the toggler until ch is
// closed or ctx is done. It is the only goroutine touching row indicators.
// Returns the number of toggles dispatched.
func VoteLoop(ctx context.Context, ch <-chan string, toggler Toggler, rows []*widget.Row) int {
	dispatched := 0

	for {
		select {
		case <-ctx.Done():
			slog.Info("Vote loop cancelled", "dispatched", dispatched)

			return dispatched
		case line, ok := <-ch:
			if !ok {
				slog.Debug("Input closed, leaving vote loop", "dispatched", dispatched)

				return dispatched
			}

			cmd, err := parser.ParseLine(line)
			if err != nil {
				slog.Warn("Skipping malformed command", "line", line, "error", err)

				continue
			}

			if cmd == nil {
				continue
			}

			if cmd.Row >= len(rows) {
				slog.Warn("Skipping command for unknown row", "row", cmd.Row, "rows", len(rows))

				continue
			}

			row := rows[cmd.Row]
			state := toggler.Toggle(ctx, row, cmd.Direction)
			dispatched++

			slog.Info("Vote toggled", "row", row.Index, "title", row.Title, "direction", cmd.Direction, "state", state)
		}
	}
}
