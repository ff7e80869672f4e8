// Package history keeps a log of evaluation runs in a SQLite database.
package history

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type Failure struct {
	Sentence int
	Kind     string
	Message  string
}

type Run struct {
	ID        string
	Time      time.Time
	Model     string
	Morphemes int
	Correct   int
	Accuracy  float64
	Failures  []Failure
}

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs(
			id TEXT PRIMARY KEY,
			ts INTEGER NOT NULL,
			model TEXT NOT NULL,
			morphemes INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			accuracy REAL NOT NULL
		)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS failures(
			run TEXT NOT NULL REFERENCES runs(id),
			sentence INTEGER NOT NULL,
			kind TEXT NOT NULL,
			message TEXT NOT NULL
		)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores run, assigning its ID and time when unset.
func (s *Store) Record(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.Time.IsZero() {
		run.Time = time.Now()
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	_, err = tx.Exec(`INSERT INTO runs(id, ts, model, morphemes, correct, accuracy) VALUES(?, ?, ?, ?, ?, ?)`,
		run.ID, run.Time.Unix(), run.Model, run.Morphemes, run.Correct, run.Accuracy)
	if err != nil {
		tx.Rollback()
		return err
	}
	for _, f := range run.Failures {
		_, err = tx.Exec(`INSERT INTO failures(run, sentence, kind, message) VALUES(?, ?, ?, ?)`,
			run.ID, f.Sentence, f.Kind, f.Message)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Runs returns the recorded runs, oldest first, without their failures.
func (s *Store) Runs() ([]*Run, error) {
	rows, err := s.db.Query(`SELECT id, ts, model, morphemes, correct, accuracy FROM runs ORDER BY ts, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var retval []*Run
	for rows.Next() {
		var (
			run Run
			ts  int64
		)
		if err := rows.Scan(&run.ID, &ts, &run.Model, &run.Morphemes, &run.Correct, &run.Accuracy); err != nil {
			return nil, err
		}
		run.Time = time.Unix(ts, 0)
		retval = append(retval, &run)
	}
	return retval, rows.Err()
}

func (s *Store) Failures(runID string) ([]Failure, error) {
	rows, err := s.db.Query(`SELECT sentence, kind, message FROM failures WHERE run = ? ORDER BY sentence`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var retval []Failure
	for rows.Next() {
		var f Failure
		if err := rows.Scan(&f.Sentence, &f.Kind, &f.Message); err != nil {
			return nil, err
		}
		retval = append(retval, f)
	}
	return retval, rows.Err()
}
