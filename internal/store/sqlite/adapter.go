// Package sqlite implements store.Store on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/store"
)

// SqliteStore implements store.Store using the modernc SQLite driver.
type SqliteStore struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database file and applies the schema.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB wires the store over an existing connection (used by tests).
func NewWithDB(db *sql.DB) (store.Store, error) {
	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SqliteStore{db: db}, nil
}

func (s *SqliteStore) Entries() store.Entries     { return &entryStore{db: s.db} }
func (s *SqliteStore) Snapshots() store.Snapshots { return &snapshotStore{db: s.db} }
func (s *SqliteStore) Schedule() store.Schedule   { return &scheduleStore{db: s.db} }

func (s *SqliteStore) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SqliteStore) Close() error { return s.db.Close() }

// --- Entries ---

type entryStore struct {
	db *sql.DB
}

func (es *entryStore) Create(ctx context.Context, e *model.DiaryEntry) (*model.DiaryEntry, error) {
	if e.Date == "" {
		return nil, fmt.Errorf("%w: entry date is required", model.ErrValidation)
	}
	now := time.Now().UTC()
	out := *e
	out.ID = uuid.New().String()
	out.CreationTime = now
	out.UpdateTime = now

	_, err := es.db.ExecContext(ctx,
		`INSERT INTO entries (entry_id, entry_date, entry_text, image_data, creation_time, update_time) VALUES (?,?,?,?,?,?)`,
		out.ID, out.Date, out.Text, out.ImageData, out.CreationTime, out.UpdateTime)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (es *entryStore) List(ctx context.Context) ([]*model.DiaryEntry, error) {
	rows, err := es.db.QueryContext(ctx,
		`SELECT entry_id, entry_date, entry_text, image_data, creation_time, update_time FROM entries ORDER BY entry_date DESC, creation_time DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.DiaryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (es *entryStore) GetByID(ctx context.Context, entryID string) (*model.DiaryEntry, error) {
	row := es.db.QueryRowContext(ctx,
		`SELECT entry_id, entry_date, entry_text, image_data, creation_time, update_time FROM entries WHERE entry_id = ?`, entryID)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	return e, err
}

func (es *entryStore) Update(ctx context.Context, e *model.DiaryEntry) (*model.DiaryEntry, error) {
	now := time.Now().UTC()
	res, err := es.db.ExecContext(ctx,
		`UPDATE entries SET entry_date = ?, entry_text = ?, image_data = ?, update_time = ? WHERE entry_id = ?`,
		e.Date, e.Text, e.ImageData, now, e.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return es.GetByID(ctx, e.ID)
}

func (es *entryStore) Delete(ctx context.Context, entryID string) error {
	res, err := es.db.ExecContext(ctx, `DELETE FROM entries WHERE entry_id = ?`, entryID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (*model.DiaryEntry, error) {
	var e model.DiaryEntry
	if err := r.Scan(&e.ID, &e.Date, &e.Text, &e.ImageData, &e.CreationTime, &e.UpdateTime); err != nil {
		return nil, err
	}
	return &e, nil
}

// --- Snapshots ---

type snapshotStore struct {
	db *sql.DB
}

func (ss *snapshotStore) Put(ctx context.Context, s *model.InsightSnapshot) error {
	happiness, err := json.Marshal(s.Happiness)
	if err != nil {
		return err
	}
	emotions, err := json.Marshal(s.Emotions)
	if err != nil {
		return err
	}
	words, err := json.Marshal(s.TopWords)
	if err != nil {
		return err
	}

	// Single REPLACE keeps the freshness date and payload atomic.
	_, err = ss.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO insight_snapshots
		 (singleton, snapshot_date, feedback, happiness_json, emotions_json, top_words_json, selected_entry_id, complete, creation_time)
		 VALUES (1,?,?,?,?,?,?,?,?)`,
		s.Date, s.Feedback, string(happiness), string(emotions), string(words), s.SelectedEntryID, s.Complete, time.Now().UTC())
	return err
}

func (ss *snapshotStore) Latest(ctx context.Context) (*model.InsightSnapshot, error) {
	row := ss.db.QueryRowContext(ctx,
		`SELECT snapshot_date, feedback, happiness_json, emotions_json, top_words_json, selected_entry_id, complete, creation_time
		 FROM insight_snapshots WHERE singleton = 1`)

	var s model.InsightSnapshot
	var happiness, emotions, words string
	err := row.Scan(&s.Date, &s.Feedback, &happiness, &emotions, &words, &s.SelectedEntryID, &s.Complete, &s.CreationTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(happiness), &s.Happiness); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(emotions), &s.Emotions); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(words), &s.TopWords); err != nil {
		return nil, err
	}
	return &s, nil
}

// --- Schedule ---

type scheduleStore struct {
	db *sql.DB
}

func (sc *scheduleStore) SetNextRun(ctx context.Context, task string, at string) error {
	_, err := sc.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO schedule (task, next_run) VALUES (?,?)`, task, at)
	return err
}

func (sc *scheduleStore) NextRun(ctx context.Context, task string) (string, error) {
	row := sc.db.QueryRowContext(ctx, `SELECT next_run FROM schedule WHERE task = ?`, task)
	var at string
	err := row.Scan(&at)
	if errors.Is(err, sql.ErrNoRows) {
		return "", model.ErrNotFound
	}
	return at, err
}
