package bookvote

import (
	"errors"
	"fmt"

	"github.com/dasdy/bookvote/db"
	"github.com/spf13/cobra"
)

// historyCmd represents the history command.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show journaled votes per bookmark",
	Long:  `Summarizes the vote journal: submissions, failures, current vote and last known rating of every bookmark.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if noJournal {
			return errors.New("history needs the journal, drop --no-journal")
		}

		storage, err := db.NewStorageFromPath(storagePath)
		if err != nil {
			return fmt.Errorf("could not open %s as sqlite file: %w", storagePath, err)
		}
		defer storage.Close()

		summaries, err := storage.Summaries()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-40s %6s %8s %5s %s\n", "TITLE", "VOTES", "FAILURES", "STATE", "RATING")

		for _, summary := range summaries {
			fmt.Fprintf(out, "%-40s %6d %8d %5s %s\n",
				summary.Title, summary.Submissions, summary.Failures, summary.LastState, summary.LastRating)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
