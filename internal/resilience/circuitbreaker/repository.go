package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"story-api/internal/domain/entity"
	"story-api/internal/observability/metrics"
	"story-api/internal/repository"
)

// ErrStoreUnavailable is returned while the circuit is open or saturated.
var ErrStoreUnavailable = errors.New("story store unavailable")

// isStoreSuccess treats outcomes about the data itself as healthy calls.
func isStoreSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, entity.ErrNotFound) ||
		errors.Is(err, entity.ErrInvalidID) ||
		errors.Is(err, entity.ErrDuplicateTitle) ||
		errors.Is(err, context.Canceled)
}

// Repository decorates a StoryRepository with a circuit breaker and
// records the latency of every store operation.
type Repository struct {
	next repository.StoryRepository
	cb   *CircuitBreaker
}

// NewRepository wraps next. cfg.IsSuccessful defaults to the store rules.
func NewRepository(next repository.StoryRepository, cfg Config) *Repository {
	if cfg.IsSuccessful == nil {
		cfg.IsSuccessful = isStoreSuccess
	}
	return &Repository{next: next, cb: New(cfg)}
}

var _ repository.StoryRepository = (*Repository)(nil)

// State returns the current breaker state.
func (r *Repository) State() gobreaker.State {
	return r.cb.State()
}

func run[T any](r *Repository, op string, fn func() (T, error)) (T, error) {
	start := time.Now()
	defer func() { metrics.RecordOperationDuration(op, time.Since(start)) }()

	res, err := r.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
		}
		return zero, err
	}
	return res.(T), nil
}

func runErr(r *Repository, op string, fn func() error) error {
	_, err := run(r, op, func() (struct{}, error) { return struct{}{}, fn() })
	return err
}

func (r *Repository) Create(ctx context.Context, story *entity.Story) error {
	return runErr(r, "create", func() error { return r.next.Create(ctx, story) })
}

func (r *Repository) Get(ctx context.Context, id string) (*entity.Story, error) {
	return run(r, "get", func() (*entity.Story, error) { return r.next.Get(ctx, id) })
}

func (r *Repository) List(ctx context.Context, filter repository.StoryFilter, offset, limit int) ([]*entity.Story, error) {
	return run(r, "list", func() ([]*entity.Story, error) { return r.next.List(ctx, filter, offset, limit) })
}

func (r *Repository) Count(ctx context.Context, filter repository.StoryFilter) (int64, error) {
	return run(r, "count", func() (int64, error) { return r.next.Count(ctx, filter) })
}

func (r *Repository) ExistsByTitle(ctx context.Context, title, excludeID string) (bool, error) {
	return run(r, "exists_by_title", func() (bool, error) { return r.next.ExistsByTitle(ctx, title, excludeID) })
}

func (r *Repository) Update(ctx context.Context, story *entity.Story, change repository.ImageChange) error {
	return runErr(r, "update", func() error { return r.next.Update(ctx, story, change) })
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return runErr(r, "delete", func() error { return r.next.Delete(ctx, id) })
}

func (r *Repository) GetImage(ctx context.Context, id string) (*entity.Image, error) {
	return run(r, "get_image", func() (*entity.Image, error) { return r.next.GetImage(ctx, id) })
}

func (r *Repository) Stats(ctx context.Context) (*repository.StoryStats, error) {
	return run(r, "stats", func() (*repository.StoryStats, error) { return r.next.Stats(ctx) })
}

// Ping bypasses the breaker so health checks observe the store directly.
func (r *Repository) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}
