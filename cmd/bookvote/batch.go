package bookvote

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dasdy/bookvote/console"
	"github.com/dasdy/bookvote/model"
	"github.com/dasdy/bookvote/widget"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// progressToggler ticks the progress bar for every dispatched toggle.
type progressToggler struct {
	console.Toggler
	bar *progressbar.ProgressBar
}

func (p *progressToggler) Toggle(ctx context.Context, row *widget.Row, d model.Direction) model.VoteState {
	state := p.Toggler.Toggle(ctx, row, d)

	if err := p.bar.Add(1); err != nil {
		slog.Error("could not update progress bar", "error", err)
	}

	return state
}

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Replay a file of vote commands",
	Long: `Reads vote commands ("up 0", "down 3", one per line, '#' for comments) from a file
and applies them to the listed bookmarks, as if typed in the watch command.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("could not open %s: %w", args[0], err)
		}
		defer file.Close()

		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("Submitting votes..."),
		)
		defer func() {
			if err := bar.Finish(); err != nil {
				slog.Error("could not finish progress bar", "error", err)
			}
		}()

		return runLoop(cmd.Context(), cmd, console.ReadFile(cmd.Context(), file), func(t console.Toggler) console.Toggler {
			return &progressToggler{Toggler: t, bar: bar}
		})
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringSliceVarP(
		&titles,
		"title",
		"t",
		[]string{},
		"Titles of the bookmarks to list, in row order",
	)
}
