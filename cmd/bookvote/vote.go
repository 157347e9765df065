package bookvote

import (
	"fmt"

	"github.com/dasdy/bookvote/model"
	"github.com/spf13/cobra"
)

var direction string

// voteCmd represents the vote command.
var voteCmd = &cobra.Command{
	Use:   "vote <title>",
	Short: "Toggle a vote on a single bookmark",
	Long: `Clicks the up or down indicator of one bookmark. Clicking the indicator that is
already active resets the vote. The indicator state is restored from the journal.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := model.ParseDirection(direction)
		if err != nil {
			return err
		}

		s, err := openSession(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		rows := s.rows(args)
		s.widget.Toggle(cmd.Context(), rows[0], d)
		s.Close()

		printRows(cmd.OutOrStdout(), rows)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(voteCmd)

	voteCmd.Flags().StringVarP(&direction, "direction", "d", "up",
		fmt.Sprintf("Vote direction: %s or %s", model.Up, model.Down))
}
