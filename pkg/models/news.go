package models

// NewsType categorizes narrative log entries
type NewsType string

const (
	NewsDevelopment NewsType = "development"
	NewsInjury      NewsType = "injury"
	NewsRetirement  NewsType = "retirement"
	NewsSeason      NewsType = "season"
	NewsPlayoffs    NewsType = "playoffs"
)

// NewsItem is one entry in a narrative log (league-wide or per-player)
type NewsItem struct {
	ID       string   `json:"id"`
	Headline string   `json:"headline"`
	Story    string   `json:"story"`
	Type     NewsType `json:"type"`
	Week     int      `json:"week"`
	Year     int      `json:"year"`
	PlayerID string   `json:"player_id,omitempty"`
}
