package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/medidonate/medidonate/internal/util"
)

// timeLayout is fixed width so lexical order matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Entry is one recorded interaction outcome.
type Entry struct {
	ID       string
	Workflow string
	Kind     string
	Message  string
	At       time.Time
}

// Validate checks the entry before it is written.
func (e *Entry) Validate() error {
	var errs []error

	if strings.TrimSpace(e.Workflow) == "" {
		errs = append(errs, errors.New("workflow is required"))
	}

	switch e.Kind {
	case "success", "rejected", "failed":
	default:
		errs = append(errs, fmt.Errorf("invalid kind: %q", e.Kind))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Record writes an entry. A missing ID is generated and a zero timestamp
// is replaced with the current time.
func (j *Journal) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = util.NewID()
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}

	if err := e.Validate(); err != nil {
		return Entry{}, fmt.Errorf("invalid journal entry: %w", err)
	}

	if j.IsClosed() {
		return Entry{}, ErrClosed
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO activity_log (id, workflow, kind, message, recorded_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Workflow, e.Kind, e.Message, e.At.UTC().Format(timeLayout),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("inserting journal entry: %w", err)
	}

	return e, nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if j.IsClosed() {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, workflow, kind, message, recorded_at
		FROM activity_log
		ORDER BY recorded_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&e.ID, &e.Workflow, &e.Kind, &e.Message, &at); err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}
		e.At, err = time.Parse(timeLayout, at)
		if err != nil {
			return nil, fmt.Errorf("parsing journal timestamp %q: %w", at, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal: %w", err)
	}

	return entries, nil
}

// Counts tallies entries by kind.
func (j *Journal) Counts(ctx context.Context) (map[string]int, error) {
	if j.IsClosed() {
		return nil, ErrClosed
	}

	rows, err := j.db.QueryContext(ctx, "SELECT kind, COUNT(*) FROM activity_log GROUP BY kind")
	if err != nil {
		return nil, fmt.Errorf("counting journal entries: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[kind] = n
	}

	return counts, rows.Err()
}

// Prune deletes entries recorded before cutoff and reports how many went.
func (j *Journal) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	if j.IsClosed() {
		return 0, ErrClosed
	}

	res, err := j.db.ExecContext(ctx,
		"DELETE FROM activity_log WHERE recorded_at < ?",
		cutoff.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("pruning journal: %w", err)
	}

	return res.RowsAffected()
}
