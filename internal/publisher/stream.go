package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/XavierBriggs/gridiron/pkg/models"
	"github.com/redis/go-redis/v9"
)

const (
	// ResultsStream carries every simulated game result
	ResultsStream = "games.results.gridiron"

	// NewsStream carries narrative headlines (development events, injuries,
	// retirements) for downstream story consumers
	NewsStream = "news.gridiron"
)

// StreamPublisher publishes simulation output to Redis streams
type StreamPublisher struct {
	client *redis.Client
}

// NewStreamPublisher creates a new stream publisher
func NewStreamPublisher(client *redis.Client) *StreamPublisher {
	return &StreamPublisher{
		client: client,
	}
}

// PublishGameResult publishes one game result to the results stream
func (p *StreamPublisher) PublishGameResult(ctx context.Context, leagueID string, result *models.GameResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling game result: %w", err)
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: ResultsStream,
		Values: map[string]interface{}{
			"data":      string(data),
			"league_id": leagueID,
			"result_id": result.ID,
			"week":      result.Week,
			"year":      result.Year,
		},
	}).Err()
}

// PublishNewsItem publishes one narrative entry to the news stream
func (p *StreamPublisher) PublishNewsItem(ctx context.Context, leagueID string, item *models.NewsItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshaling news item: %w", err)
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: NewsStream,
		Values: map[string]interface{}{
			"data":      string(data),
			"league_id": leagueID,
			"type":      string(item.Type),
		},
	}).Err()
}
