package db

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/dasdy/bookvote/model"

	// sqlite driver.
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStorage struct {
	db *sql.DB
}

func InitDBStorage(db *sql.DB) error {
	sqlStmt := `
	create table if not exists votes(
		title text not null,
		value int not null,
		state text not null,
		status int not null default 0,
		rating text not null default '',
		error text not null default '',
		ts datetime not null);`

	_, err := db.Exec(sqlStmt)
	if err != nil {
		slog.Error("Failed to create table", "error", err, "statement", sqlStmt)

		return fmt.Errorf("could not create votes table: %w", err)
	}

	sqlStmt = `create index if not exists votes_title_tsix on votes (title, ts ASC);`

	_, err = db.Exec(sqlStmt)
	if err != nil {
		slog.Error("Failed to create index", "error", err, "statement", sqlStmt)

		return fmt.Errorf("could not create votes index: %w", err)
	}

	return nil
}

func NewStorageFromPath(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}

	// In-memory databases live per connection.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	err = InitDBStorage(db)
	if err != nil {
		db.Close()

		return nil, err
	}

	return &SQLiteStorage{db}, nil
}

func (s *SQLiteStorage) Store(ctx context.Context, record *model.VoteRecord) error {
	ts := record.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `insert into votes(title, value, state, status, rating, error, ts)
	    values(?, ?, ?, ?, ?, ?, ?)`,
		record.Title, record.Value, record.State.String(), record.Status, record.Rating, record.Error, ts.UTC())
	if err != nil {
		return fmt.Errorf("could not store vote for %s: %w", record.Title, err)
	}

	return nil
}

// AllIterator yields the journal in chronological order.
func (s *SQLiteStorage) AllIterator() (iter.Seq[model.VoteRecord], error) {
	rows, err := s.db.Query(
		`select title, value, state, status, rating, error, ts
        from votes
        order by ts, rowid`)
	if err != nil {
		return nil, fmt.Errorf("could not query votes: %w", err)
	}

	return func(yield func(model.VoteRecord) bool) {
		defer rows.Close()

		for rows.Next() {
			record, err := scanRecord(rows)
			if err != nil {
				slog.Error("Failed to scan vote row", "error", err)

				return
			}

			if !yield(record) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			slog.Error("Failed to iterate votes", "error", err)
		}
	}, nil
}

func scanRecord(rows *sql.Rows) (model.VoteRecord, error) {
	var (
		record model.VoteRecord
		state  string
	)

	err := rows.Scan(&record.Title, &record.Value, &state, &record.Status, &record.Rating, &record.Error, &record.Timestamp)
	if err != nil {
		return record, fmt.Errorf("could not scan vote: %w", err)
	}

	record.State, err = model.ParseVoteState(state)
	if err != nil {
		return record, err
	}

	return record, nil
}

// Summaries aggregates the journal per title, ordered by title.
func (s *SQLiteStorage) Summaries() ([]model.RowSummary, error) {
	rows, err := s.db.Query(
		`select v.title, count(*), sum(case when v.error != '' or v.status not between 200 and 299 then 1 else 0 end),
            (select state from votes l where l.title = v.title order by l.ts desc, l.rowid desc limit 1),
            coalesce((select rating from votes r where r.title = v.title and r.error = '' and r.status between 200 and 299 order by r.ts desc, r.rowid desc limit 1), '')
        from votes v
        group by v.title
        order by v.title`)
	if err != nil {
		return nil, fmt.Errorf("could not query summaries: %w", err)
	}

	defer rows.Close()

	result := make([]model.RowSummary, 0)

	for rows.Next() {
		var (
			summary model.RowSummary
			state   string
		)

		err = rows.Scan(&summary.Title, &summary.Submissions, &summary.Failures, &state, &summary.LastRating)
		if err != nil {
			return nil, fmt.Errorf("could not scan summary: %w", err)
		}

		summary.LastState, err = model.ParseVoteState(state)
		if err != nil {
			return nil, err
		}

		result = append(result, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate summaries: %w", err)
	}

	return result, nil
}

func (s *SQLiteStorage) Close() {
	if err := s.db.Close(); err != nil {
		slog.Error("Failed to close storage", "error", err)
	}
}
