package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/C0okiegranny221/OSPROJECT/model"

	_ "modernc.org/sqlite"
)

// timeFormat is fixed-width so text ordering matches time ordering.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore persists episodes and their transitions.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	// Every pooled connection to ":memory:" would be a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// SaveEpisode writes the episode row and all of its transitions in one
// transaction.
func (s *SQLiteStore) SaveEpisode(ctx context.Context, ep *model.Episode) error {
	s.logger.Debug("sql", "op", "insert", "table", "episodes", "id", ep.ID, "transitions", len(ep.Transitions))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO episodes (id, policy, source, records, steps, total_reward, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ep.ID, ep.Policy, ep.Source, ep.Records, ep.Steps, ep.TotalReward,
		ep.StartedAt.UTC().Format(timeFormat), nullTime(ep.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("insert episode: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO transitions (episode_id, step, pid, action, reward, observation, next_observation, terminated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare transitions: %w", err)
	}
	defer stmt.Close()

	for _, tr := range ep.Transitions {
		obs, err := json.Marshal(tr.Observation)
		if err != nil {
			return fmt.Errorf("marshal observation: %w", err)
		}
		next, err := json.Marshal(tr.NextObservation)
		if err != nil {
			return fmt.Errorf("marshal next observation: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, ep.ID, tr.Step, tr.PID, tr.Action, tr.Reward,
			string(obs), string(next), tr.Terminated); err != nil {
			return fmt.Errorf("insert transition %d: %w", tr.Step, err)
		}
	}

	return tx.Commit()
}

// GetEpisode returns the episode without transitions, or nil if unknown.
func (s *SQLiteStore) GetEpisode(ctx context.Context, id string) (*model.Episode, error) {
	s.logger.Debug("sql", "op", "select", "table", "episodes", "id", id)

	row := s.db.QueryRowContext(ctx,
		`SELECT id, policy, source, records, steps, total_reward, started_at, finished_at
		 FROM episodes WHERE id = ?`, id)
	ep, err := scanEpisode(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return ep, err
}

// ListEpisodes returns the most recent episodes first.
func (s *SQLiteStore) ListEpisodes(ctx context.Context, limit int) ([]*model.Episode, error) {
	s.logger.Debug("sql", "op", "select", "table", "episodes", "limit", limit)
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, policy, source, records, steps, total_reward, started_at, finished_at
		 FROM episodes ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Episode
	for rows.Next() {
		ep, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ep)
	}
	return out, rows.Err()
}

// GetTransitions returns an episode's transitions in step order.
func (s *SQLiteStore) GetTransitions(ctx context.Context, episodeID string) ([]model.Transition, error) {
	s.logger.Debug("sql", "op", "select", "table", "transitions", "episode_id", episodeID)

	rows, err := s.db.QueryContext(ctx,
		`SELECT step, pid, action, reward, observation, next_observation, terminated
		 FROM transitions WHERE episode_id = ? ORDER BY step`, episodeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Transition
	for rows.Next() {
		var tr model.Transition
		var obs, next string
		if err := rows.Scan(&tr.Step, &tr.PID, &tr.Action, &tr.Reward, &obs, &next, &tr.Terminated); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(obs), &tr.Observation); err != nil {
			return nil, fmt.Errorf("unmarshal observation: %w", err)
		}
		if err := json.Unmarshal([]byte(next), &tr.NextObservation); err != nil {
			return nil, fmt.Errorf("unmarshal next observation: %w", err)
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEpisode(sc scanner) (*model.Episode, error) {
	var ep model.Episode
	var startedAt string
	var finishedAt sql.NullString

	if err := sc.Scan(&ep.ID, &ep.Policy, &ep.Source, &ep.Records, &ep.Steps, &ep.TotalReward,
		&startedAt, &finishedAt); err != nil {
		return nil, err
	}

	var err error
	if ep.StartedAt, err = time.Parse(timeFormat, startedAt); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if finishedAt.Valid {
		if ep.FinishedAt, err = time.Parse(timeFormat, finishedAt.String); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
	}
	return &ep, nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(timeFormat)
}
