package dto

import "time"

type PolygonPublisher struct {
	Name        string `json:"name"`
	HomepageURL string `json:"homepage_url"`
}

type PolygonNewsArticle struct {
	ID           string           `json:"id"`
	Publisher    PolygonPublisher `json:"publisher"`
	Title        string           `json:"title"`
	Author       string           `json:"author"`
	PublishedUTC time.Time        `json:"published_utc"`
	ArticleURL   string           `json:"article_url"`
	Tickers      []string         `json:"tickers"`
	AmpURL       string           `json:"amp_url,omitempty"`
	Description  string           `json:"description,omitempty"`
	Keywords     []string         `json:"keywords,omitempty"`
}

// PolygonNewsResponse is one page of GET /v2/reference/news. NextURL is empty on the last page.
type PolygonNewsResponse struct {
	Results   []PolygonNewsArticle `json:"results"`
	Status    string               `json:"status"`
	RequestID string               `json:"request_id"`
	Count     int                  `json:"count"`
	NextURL   string               `json:"next_url,omitempty"`
}
