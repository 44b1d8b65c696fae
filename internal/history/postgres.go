// Package history is the postgres save point for season history: game
// results are persisted after each simulated week and at rollover so
// narrative and analytics consumers can query past seasons.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/XavierBriggs/gridiron/pkg/models"
	_ "github.com/lib/pq"
)

// Store writes game results to postgres
type Store struct {
	db *sql.DB
}

// NewStore connects to postgres and verifies the connection
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the connection pool
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the results table when it doesn't exist yet
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS game_results (
			id          TEXT PRIMARY KEY,
			league_id   TEXT NOT NULL,
			year        INT NOT NULL,
			week        INT NOT NULL,
			home_id     INT NOT NULL,
			away_id     INT NOT NULL,
			home_score  INT NOT NULL,
			away_score  INT NOT NULL,
			home_win    BOOLEAN NOT NULL,
			is_bye      BOOLEAN NOT NULL DEFAULT FALSE,
			box_score   JSONB,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("creating game_results table: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_game_results_league_week
		ON game_results (league_id, year, week)`)
	if err != nil {
		return fmt.Errorf("creating results index: %w", err)
	}
	return nil
}

// InsertResults persists one week's results. Duplicate IDs are ignored so a
// retried save point stays idempotent.
func (s *Store) InsertResults(ctx context.Context, leagueID string, results []models.GameResult) error {
	query := `
		INSERT INTO game_results
			(id, league_id, year, week, home_id, away_id, home_score, away_score, home_win, is_bye, box_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback()

	for _, res := range results {
		var box []byte
		if res.Box != nil {
			box, err = json.Marshal(res.Box)
			if err != nil {
				return fmt.Errorf("marshaling box score %s: %w", res.ID, err)
			}
		}
		if _, err := tx.ExecContext(ctx, query,
			res.ID, leagueID, res.Year, res.Week,
			res.HomeID, res.AwayID, res.HomeScore, res.AwayScore,
			res.HomeWin, res.IsBye(), box,
		); err != nil {
			return fmt.Errorf("inserting result %s: %w", res.ID, err)
		}
	}

	return tx.Commit()
}

// WeekResults loads one week's persisted results for a league season
func (s *Store) WeekResults(ctx context.Context, leagueID string, year, week int) ([]models.GameResult, error) {
	query := `
		SELECT id, year, week, home_id, away_id, home_score, away_score, home_win, box_score
		FROM game_results
		WHERE league_id = $1 AND year = $2 AND week = $3 AND is_bye = FALSE
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, leagueID, year, week)
	if err != nil {
		return nil, fmt.Errorf("querying week results: %w", err)
	}
	defer rows.Close()

	var results []models.GameResult
	for rows.Next() {
		var res models.GameResult
		var box []byte
		if err := rows.Scan(&res.ID, &res.Year, &res.Week,
			&res.HomeID, &res.AwayID, &res.HomeScore, &res.AwayScore,
			&res.HomeWin, &box); err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		if len(box) > 0 {
			res.Box = &models.BoxScore{}
			if err := json.Unmarshal(box, res.Box); err != nil {
				return nil, fmt.Errorf("unmarshaling box score %s: %w", res.ID, err)
			}
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
