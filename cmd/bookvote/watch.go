package bookvote

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dasdy/bookvote/console"
	"github.com/spf13/cobra"
)

var titles []string

// watchCmd represents the watch command.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Vote interactively on a list of bookmarks",
	Long: `Lists the given bookmarks (or every bookmark in the journal) and reads commands
such as "up 0" or "down 2" from stdin. Votes are sent in the background; the list is
printed again once input ends.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runLoop(ctx, cmd, console.ReadFile(ctx, cmd.InOrStdin()), nil)
	},
}

// runLoop lists the rows, feeds commands to the widget and prints the result.
func runLoop(ctx context.Context, cmd *cobra.Command, lines <-chan string, wrap func(console.Toggler) console.Toggler) error {
	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	names := titles
	if len(names) == 0 {
		names, err = s.journalTitles()
		if err != nil {
			s.Close()

			return err
		}
	}

	if len(names) == 0 {
		s.Close()

		return errors.New("no bookmarks to vote on, provide some with --title")
	}

	rows := s.rows(names)
	printRows(cmd.OutOrStdout(), rows)
	printUsageHint(cmd.OutOrStdout())

	var toggler console.Toggler = s.widget
	if wrap != nil {
		toggler = wrap(toggler)
	}

	dispatched := console.VoteLoop(ctx, lines, toggler, rows)
	slog.Info("Waiting for pending votes", "dispatched", dispatched)
	s.Close()

	printRows(cmd.OutOrStdout(), rows)

	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringSliceVarP(
		&titles,
		"title",
		"t",
		[]string{},
		"Titles of the bookmarks to list, in row order",
	)
}
