package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/executor/config"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/patrickmn/go-cache"
)

// ArticleContentRepository resolves the text of an article that is worth classifying.
type ArticleContentRepository interface {
	Resolve(ctx context.Context, article entity.NewsArticle) string
}

type articleContentRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *http.Client
	cache      *cache.Cache
}

// NewArticleContentRepository creates a content resolver that fetches and extracts short articles from their URL.
func NewArticleContentRepository(cfg *config.Config, log *logger.Logger) ArticleContentRepository {
	return &articleContentRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.News.FetchTimeout,
		},
		cache: cache.New(cfg.News.ContentCache, 2*cfg.News.ContentCache),
	}
}

// Resolve returns the stored body when it is long enough. Otherwise the page is fetched and reduced to its
// readable text. Fetch failures fall back to the stored body, so an article is never lost here.
func (r *articleContentRepository) Resolve(ctx context.Context, article entity.NewsArticle) string {
	body := utils.SafeText(article.BodyText)
	if len(body) >= r.cfg.News.MinBodyLength || !r.cfg.News.FetchFullBody || article.SourceURL == "" {
		return body
	}

	if cached, ok := r.cache.Get(article.SourceURL); ok {
		return cached.(string)
	}

	text, err := r.fetch(ctx, article.SourceURL)
	if err != nil {
		r.log.WarnContext(ctx, "Failed to fetch article content, using description",
			logger.ErrorField(err),
			logger.StringField("url", article.SourceURL),
		)
		return body
	}
	if len(text) < len(body) {
		text = body
	}

	r.cache.SetDefault(article.SourceURL, text)
	return text
}

func (r *articleContentRepository) fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", r.cfg.News.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received non-OK response: %d", resp.StatusCode)
	}

	reader := io.Reader(resp.Body)
	if r.cfg.News.MaxFetchBytes > 0 {
		reader = io.LimitReader(resp.Body, r.cfg.News.MaxFetchBytes)
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read article: %w", err)
	}

	return extractReadableText(string(raw))
}

// extractReadableText keeps the main article block of an HTML page and flattens it to text.
func extractReadableText(html string) (string, error) {
	content := html
	if doc, err := readability.NewDocument(html); err == nil {
		if main := doc.Content(); strings.TrimSpace(main) != "" {
			content = main
		}
	}

	page, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse article html: %w", err)
	}
	page.Find("script, style, noscript, nav, footer, header, aside").Remove()

	var parts []string
	page.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := utils.SafeText(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		return utils.SafeText(page.Text()), nil
	}
	return strings.Join(parts, " "), nil
}
