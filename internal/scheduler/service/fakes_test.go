package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang-stock-sentiment/internal/entity"
	executordto "golang-stock-sentiment/internal/executor/dto"
	"golang-stock-sentiment/internal/scheduler/repository"
)

type fakeTickerRepo struct {
	mu        sync.Mutex
	nextID    uint
	tickers   map[string]*entity.WatchedTicker
	findErr   error
	updateErr error
}

func newFakeTickerRepo() *fakeTickerRepo {
	return &fakeTickerRepo{tickers: make(map[string]*entity.WatchedTicker)}
}

func (r *fakeTickerRepo) Create(_ context.Context, ticker *entity.WatchedTicker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	ticker.ID = r.nextID
	copied := *ticker
	r.tickers[ticker.Ticker] = &copied
	return nil
}

func (r *fakeTickerRepo) FindByTicker(_ context.Context, ticker string) (*entity.WatchedTicker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	watched, ok := r.tickers[ticker]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *watched
	return &copied, nil
}

func (r *fakeTickerRepo) FindAll(_ context.Context) ([]entity.WatchedTicker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.WatchedTicker, 0, len(r.tickers))
	for _, t := range r.tickers {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out, nil
}

func (r *fakeTickerRepo) Update(_ context.Context, ticker *entity.WatchedTicker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	copied := *ticker
	r.tickers[ticker.Ticker] = &copied
	return nil
}

func (r *fakeTickerRepo) DeleteByTicker(_ context.Context, ticker string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickers[ticker]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tickers, ticker)
	return nil
}

func (r *fakeTickerRepo) FindDue(_ context.Context, now time.Time) ([]entity.WatchedTicker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.WatchedTicker
	for _, t := range r.tickers {
		if t.IsActive && (!t.NextExecution.Valid || !t.NextExecution.Time.After(now)) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out, nil
}

func (r *fakeTickerRepo) get(ticker string) entity.WatchedTicker {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.tickers[ticker]
}

type fakeExecutionRepo struct {
	mu         sync.Mutex
	executions []entity.SyncExecution
}

func (r *fakeExecutionRepo) Create(_ context.Context, execution *entity.SyncExecution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	execution.ID = uint(len(r.executions) + 1)
	r.executions = append(r.executions, *execution)
	return nil
}

func (r *fakeExecutionRepo) FindByID(_ context.Context, id uint) (*entity.SyncExecution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.executions {
		if e.ID == id {
			copied := e
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeExecutionRepo) FindAll(_ context.Context, limit int) ([]entity.SyncExecution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]entity.SyncExecution(nil), r.executions...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeExecutionRepo) FindAllByTicker(_ context.Context, ticker string, limit int) ([]entity.SyncExecution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.SyncExecution
	for _, e := range r.executions {
		if e.Ticker == ticker && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeExecutionRepo) Update(_ context.Context, execution *entity.SyncExecution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.executions {
		if r.executions[i].ID == execution.ID {
			r.executions[i] = *execution
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeExecutionRepo) all() []entity.SyncExecution {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.SyncExecution(nil), r.executions...)
}

type fakePublisher struct {
	mu    sync.Mutex
	tasks []executordto.SyncTask
	err   error
}

func (p *fakePublisher) Publish(_ context.Context, task executordto.SyncTask) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.tasks = append(p.tasks, task)
	return nil
}

func (p *fakePublisher) published() []executordto.SyncTask {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]executordto.SyncTask(nil), p.tasks...)
}
