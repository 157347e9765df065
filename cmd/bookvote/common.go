package bookvote

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dasdy/bookvote/client"
	"github.com/dasdy/bookvote/db"
	"github.com/dasdy/bookvote/model"
	"github.com/dasdy/bookvote/widget"
)

// session is everything a command needs to toggle votes.
type session struct {
	widget  *widget.VoteWidget
	storage *db.SQLiteStorage
	states  map[string]model.VoteState
}

func openSession(progress io.Writer) (*session, error) {
	votingClient, err := client.New(client.Config{
		BaseURL:    baseURL,
		CSRFToken:  csrfToken,
		CSRFHeader: csrfHeader,
		Timeout:    timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create voting client: %w", err)
	}

	s := &session{states: make(map[string]model.VoteState)}

	if noJournal {
		s.widget = widget.New(votingClient, nil)

		return s, nil
	}

	slog.Info("Opening vote journal", "path", storagePath)

	s.storage, err = db.NewStorageFromPath(storagePath)
	if err != nil {
		return nil, fmt.Errorf("could not open %s as sqlite file: %w", storagePath, err)
	}

	s.states, err = db.RestoreStates(s.storage, progress)
	if err != nil {
		s.storage.Close()

		return nil, fmt.Errorf("could not restore vote states: %w", err)
	}

	s.widget = widget.New(votingClient, s.storage)

	return s, nil
}

// rows builds one row per title, with indicators restored from the journal.
func (s *session) rows(titles []string) []*widget.Row {
	rows := make([]*widget.Row, 0, len(titles))
	for i, title := range titles {
		rows = append(rows, widget.NewRow(i, title, s.states[title]))
	}

	return rows
}

// journalTitles lists every title found in the journal.
func (s *session) journalTitles() ([]string, error) {
	if s.storage == nil {
		return nil, nil
	}

	summaries, err := s.storage.Summaries()
	if err != nil {
		return nil, fmt.Errorf("could not read journal: %w", err)
	}

	titles := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		titles = append(titles, summary.Title)
	}

	return titles, nil
}

// Close waits for in-flight votes before closing the journal they write to.
func (s *session) Close() {
	s.widget.Wait()

	if s.storage != nil {
		s.storage.Close()
	}
}

func indicator(active bool, symbol string) string {
	if active {
		return "[" + symbol + "]"
	}

	return " " + symbol + " "
}

func printRows(w io.Writer, rows []*widget.Row) {
	for _, row := range rows {
		state := row.State()
		fmt.Fprintf(w, "%3d %s%s %-40s %s\n",
			row.Index,
			indicator(state == model.StateUp, "▲"),
			indicator(state == model.StateDown, "▼"),
			row.Title,
			row.Count.HTML())
	}
}

func printUsageHint(w io.Writer) {
	fmt.Fprintln(w, `Type "up <row>" or "down <row>" to toggle a vote, Ctrl-D to finish.`)
}
