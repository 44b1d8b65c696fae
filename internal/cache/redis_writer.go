package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/XavierBriggs/gridiron/pkg/models"
	"github.com/redis/go-redis/v9"
)

// TTL constants
const (
	WeekResultsTTL = 7 * 24 * time.Hour
	BoxScoreTTL    = 7 * 24 * time.Hour
	StandingsTTL   = 24 * time.Hour
)

// RedisWriter handles the read cache of simulation output
type RedisWriter struct {
	client *redis.Client
}

// NewRedisWriter creates a new Redis writer
func NewRedisWriter(client *redis.Client) *RedisWriter {
	return &RedisWriter{
		client: client,
	}
}

// WriteWeekResults stores one week's result list for a league season
func (w *RedisWriter) WriteWeekResults(ctx context.Context, leagueID string, year, week int, results []models.GameResult) error {
	key := fmt.Sprintf("league:%s:season:%d:week:%d:results", leagueID, year, week)

	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshaling week results: %w", err)
	}

	return w.client.Set(ctx, key, data, WeekResultsTTL).Err()
}

// WriteBoxScore stores one game's box score under its result ID
func (w *RedisWriter) WriteBoxScore(ctx context.Context, resultID string, box *models.BoxScore) error {
	key := fmt.Sprintf("game:%s:boxscore", resultID)

	data, err := json.Marshal(box)
	if err != nil {
		return fmt.Errorf("marshaling boxscore: %w", err)
	}

	return w.client.Set(ctx, key, data, BoxScoreTTL).Err()
}

// WriteStandings stores the current team records for a league
func (w *RedisWriter) WriteStandings(ctx context.Context, lg *models.League) error {
	key := fmt.Sprintf("league:%s:standings", lg.ID)

	type standing struct {
		TeamID int           `json:"team_id"`
		Name   string        `json:"name"`
		Abbr   string        `json:"abbr"`
		Record models.Record `json:"record"`
	}
	standings := make([]standing, 0, len(lg.Teams))
	for _, t := range lg.Teams {
		standings = append(standings, standing{TeamID: t.ID, Name: t.Name, Abbr: t.Abbr, Record: t.Record})
	}

	data, err := json.Marshal(standings)
	if err != nil {
		return fmt.Errorf("marshaling standings: %w", err)
	}

	return w.client.Set(ctx, key, data, StandingsTTL).Err()
}

// ReadWeekResults retrieves one week's cached result list
func (w *RedisWriter) ReadWeekResults(ctx context.Context, leagueID string, year, week int) ([]models.GameResult, error) {
	key := fmt.Sprintf("league:%s:season:%d:week:%d:results", leagueID, year, week)

	data, err := w.client.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var results []models.GameResult
	if err := json.Unmarshal([]byte(data), &results); err != nil {
		return nil, fmt.Errorf("unmarshaling week results: %w", err)
	}

	return results, nil
}
