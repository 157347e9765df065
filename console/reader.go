package console

import (
	"bufio"
	"context"
	"io"
	"log/slog"
)

// ReadFile streams r line by line. The channel is closed at EOF or once ctx
// is done, whichever comes first.
func ReadFile(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)

	go func() {
		defer close(ch)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case ch <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			slog.ErrorContext(ctx, "Failed to read input", "error", err)
		}
	}()

	return ch
}
