package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/dasdy/bookvote/cmd/bookvote"
	"github.com/dasdy/bookvote/logging"
	"gitlab.com/greyxor/slogor"
)

func main() {
	// Context attributes (row, title) are added by ContextHandler on top of slogor's output.
	slog.SetDefault(slog.New(logging.ContextHandler{
		Handler: slogor.NewHandler(os.Stderr,
			slogor.SetLevel(slog.LevelInfo),
			slogor.SetTimeFormat(time.DateTime),
			slogor.ShowSource()),
	}))

	bookvote.Execute()
}
