package publisher

import (
	"context"
	"log"

	"github.com/XavierBriggs/gridiron/pkg/models"
	"github.com/google/uuid"
)

// NewsSink is the stream-backed news collaborator: every headline lands in
// the league's own log and on the news stream for narrative consumers.
// Publish failures are logged and swallowed; the news log is append-only
// best effort, never a reason to halt a simulation.
type NewsSink struct {
	pub *StreamPublisher
}

// NewNewsSink wraps a stream publisher as a news collaborator
func NewNewsSink(pub *StreamPublisher) *NewsSink {
	return &NewsSink{pub: pub}
}

// AddNewsItem appends to the league log and publishes to the news stream
func (s *NewsSink) AddNewsItem(lg *models.League, headline, story string, newsType models.NewsType) {
	item := models.NewsItem{
		ID:       uuid.NewString(),
		Headline: headline,
		Story:    story,
		Type:     newsType,
		Week:     lg.Week,
		Year:     lg.Year,
	}
	lg.News = append(lg.News, item)

	if err := s.pub.PublishNewsItem(context.Background(), lg.ID, &item); err != nil {
		log.Printf("[publisher] news publish failed: %v", err)
	}
}
