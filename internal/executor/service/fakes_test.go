package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/internal/executor/config"
	"golang-stock-sentiment/internal/executor/dto"
	"golang-stock-sentiment/internal/executor/repository"
	"golang-stock-sentiment/pkg/utils"

	"github.com/stretchr/testify/mock"
)

// fakeClock hands out strictly increasing timestamps so UpdatedAt comparisons are deterministic.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) tick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type fakeWordCountRepo struct {
	mu        sync.Mutex
	clock     *fakeClock
	nextID    uint
	records   map[string]*entity.WordCountRecord
	lookupErr map[string]error
	upsertErr error
	upserts   int
}

func newFakeWordCountRepo(clock *fakeClock) *fakeWordCountRepo {
	return &fakeWordCountRepo{clock: clock, records: map[string]*entity.WordCountRecord{}, lookupErr: map[string]error{}}
}

func wcKey(ticker, hash string) string { return ticker + "|" + hash }

func (r *fakeWordCountRepo) FindByHash(_ context.Context, ticker, hash string) (*entity.WordCountRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.lookupErr[hash]; err != nil {
		return nil, err
	}
	rec, ok := r.records[wcKey(ticker, hash)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeWordCountRepo) Upsert(_ context.Context, record *entity.WordCountRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.upserts++
	key := wcKey(record.Ticker, record.ContentHash)
	existing, ok := r.records[key]
	if ok && existing.SentimentLabel != entity.SentimentFail {
		return nil
	}
	cp := *record
	if ok {
		cp.ID = existing.ID
		cp.CreatedAt = existing.CreatedAt
	} else {
		r.nextID++
		cp.ID = r.nextID
		cp.CreatedAt = r.clock.tick()
	}
	cp.UpdatedAt = r.clock.tick()
	r.records[key] = &cp
	return nil
}

func (r *fakeWordCountRepo) all(ticker string, keep func(entity.WordCountRecord) bool) []entity.WordCountRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.WordCountRecord
	for _, rec := range r.records {
		if rec.Ticker == ticker && keep(*rec) {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *fakeWordCountRepo) FindByTicker(_ context.Context, ticker string) ([]entity.WordCountRecord, error) {
	return r.all(ticker, func(entity.WordCountRecord) bool { return true }), nil
}

func (r *fakeWordCountRepo) FindUnresolved(_ context.Context, ticker string) ([]entity.WordCountRecord, error) {
	return r.all(ticker, func(rec entity.WordCountRecord) bool {
		return rec.SentimentLabel.IsScored() && rec.HasUnresolvedHorizon()
	}), nil
}

func (r *fakeWordCountRepo) UpdateChange(_ context.Context, ticker string, date time.Time, column string, value float64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, rec := range r.records {
		if rec.Ticker != ticker || !rec.Date.Equal(date) || !rec.SentimentLabel.IsScored() {
			continue
		}
		field := changeField(&rec.NextDayChange, &rec.TwoWeekChange, &rec.OneMonthChange, column)
		if *field != nil {
			continue
		}
		v := value
		*field = &v
		rec.UpdatedAt = r.clock.tick()
		n++
	}
	return n, nil
}

func (r *fakeWordCountRepo) CountByTicker(_ context.Context, ticker string) (int64, error) {
	return int64(len(r.all(ticker, func(entity.WordCountRecord) bool { return true }))), nil
}

func (r *fakeWordCountRepo) get(ticker, hash string) *entity.WordCountRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records[wcKey(ticker, hash)]
}

func changeField(next, two, month **float64, column string) **float64 {
	switch column {
	case repository.ColumnNextDayChange:
		return next
	case repository.ColumnTwoWeekChange:
		return two
	default:
		return month
	}
}

type fakeCombinedRepo struct {
	mu      sync.Mutex
	clock   *fakeClock
	rows    map[string]*entity.CombinedDailySentiment
	upserts int
}

func newFakeCombinedRepo(clock *fakeClock) *fakeCombinedRepo {
	return &fakeCombinedRepo{clock: clock, rows: map[string]*entity.CombinedDailySentiment{}}
}

func (r *fakeCombinedRepo) Upsert(_ context.Context, combined *entity.CombinedDailySentiment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	cp := *combined
	cp.UpdatedAt = r.clock.tick()
	r.rows[combined.Ticker+"|"+utils.FormatDate(combined.Date)] = &cp
	return nil
}

func (r *fakeCombinedRepo) list(ticker string) []entity.CombinedDailySentiment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.CombinedDailySentiment
	for _, row := range r.rows {
		if row.Ticker == ticker {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (r *fakeCombinedRepo) FindByTicker(_ context.Context, ticker string) ([]entity.CombinedDailySentiment, error) {
	out := r.list(ticker)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakeCombinedRepo) FindByTickerAndDate(_ context.Context, ticker string, date time.Time) (*entity.CombinedDailySentiment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[ticker+"|"+utils.FormatDate(date)]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *fakeCombinedRepo) FindSince(_ context.Context, ticker string, since time.Time) ([]entity.CombinedDailySentiment, error) {
	var out []entity.CombinedDailySentiment
	for _, row := range r.list(ticker) {
		if !row.Date.Before(since) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeCombinedRepo) UpdateChange(_ context.Context, ticker string, date time.Time, column string, value float64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[ticker+"|"+utils.FormatDate(date)]
	if !ok {
		return 0, nil
	}
	field := changeField(&row.NextDayChange, &row.TwoWeekChange, &row.OneMonthChange, column)
	if *field != nil {
		return 0, nil
	}
	v := value
	*field = &v
	row.UpdatedAt = r.clock.tick()
	return 1, nil
}

type fakePriceRepo struct {
	mu     sync.Mutex
	prices []entity.PricePoint
}

func (r *fakePriceRepo) add(ticker, date string, closePrice float64) {
	d, _ := utils.ParseDate(date)
	_, _ = r.CreateIgnoreConflict(context.Background(), []entity.PricePoint{{Ticker: ticker, Date: d, Close: closePrice}})
}

func (r *fakePriceRepo) CreateIgnoreConflict(_ context.Context, prices []entity.PricePoint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
outer:
	for _, p := range prices {
		for _, existing := range r.prices {
			if existing.Ticker == p.Ticker && existing.Date.Equal(p.Date) {
				continue outer
			}
		}
		r.prices = append(r.prices, p)
		n++
	}
	sort.Slice(r.prices, func(i, j int) bool { return r.prices[i].Date.Before(r.prices[j].Date) })
	return n, nil
}

func (r *fakePriceRepo) LatestDate(_ context.Context, ticker string) (*time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *time.Time
	for i := range r.prices {
		if r.prices[i].Ticker == ticker {
			latest = &r.prices[i].Date
		}
	}
	return latest, nil
}

func (r *fakePriceRepo) FindFirstOnOrAfter(_ context.Context, ticker string, from, to time.Time) (*entity.PricePoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.prices {
		if p.Ticker == ticker && !p.Date.Before(from) && !p.Date.After(to) {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePriceRepo) FindLastOnOrBefore(_ context.Context, ticker string, date, from time.Time) (*entity.PricePoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found *entity.PricePoint
	for _, p := range r.prices {
		if p.Ticker == ticker && !p.Date.After(date) && !p.Date.Before(from) {
			cp := p
			found = &cp
		}
	}
	return found, nil
}

func (r *fakePriceRepo) FindSince(_ context.Context, ticker string, since time.Time) ([]entity.PricePoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.PricePoint
	for _, p := range r.prices {
		if p.Ticker == ticker && !p.Date.Before(since) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeNewsRepo struct {
	mu       sync.Mutex
	articles []entity.NewsArticle
}

func (r *fakeNewsRepo) CreateIgnoreConflict(_ context.Context, articles []entity.NewsArticle) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
outer:
	for _, a := range articles {
		for _, existing := range r.articles {
			if existing.Ticker == a.Ticker && existing.SourceURL == a.SourceURL {
				continue outer
			}
		}
		r.articles = append(r.articles, a)
		n++
	}
	return n, nil
}

func (r *fakeNewsRepo) FindSince(_ context.Context, ticker string, since time.Time) ([]entity.NewsArticle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.NewsArticle
	for _, a := range r.articles {
		if a.Ticker == ticker && !a.PublishedDate.Before(since) {
			out = append(out, a)
		}
	}
	return out, nil
}

type mockClassifier struct {
	mock.Mock
}

func (m *mockClassifier) Classify(ctx context.Context, hash string, sentences []string) (*dto.ClassificationResult, error) {
	args := m.Called(ctx, hash, sentences)
	result, _ := args.Get(0).(*dto.ClassificationResult)
	return result, args.Error(1)
}

// votes builds a classifier result from per-class (count, score) pairs.
func votes(pos, neut, neg dto.ClassScore) *dto.ClassificationResult {
	return &dto.ClassificationResult{
		Votes: dto.ClassifierResponse{Positive: pos, Neutral: neut, Negative: neg},
		Raw:   []byte(`{}`),
	}
}

func testSentimentConfig() config.Sentiment {
	return config.Sentiment{
		AdmissionCap:          8,
		MaxConcurrent:         4,
		ClassifierTimeout:     time.Second,
		PriceSearchWindowDays: 7,
		FlatChangeEpsilon:     0.00001,
		NextDayHorizon:        1,
		TwoWeekHorizon:        14,
		OneMonthHorizon:       28,
		DefaultLookbackDays:   7,
	}
}

func mustDate(s string) time.Time {
	d, err := utils.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
