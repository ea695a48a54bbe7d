// Package memory keeps job postings and user profiles in process memory.
// It backs local development without DATABASE_URL and the usecase tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"heyjob-backend/internal/domain"

	"github.com/google/uuid"
)

type Option func(*jobRepo)

// WithClock replaces the store clock used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *jobRepo) { r.now = now }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(next func() string) Option {
	return func(r *jobRepo) { r.newID = next }
}

type jobRepo struct {
	mu    sync.RWMutex
	jobs  map[string]domain.JobPosting
	now   func() time.Time
	newID func() string
}

func NewJobRepository(opts ...Option) domain.JobRepository {
	r := &jobRepo{
		jobs:  make(map[string]domain.JobPosting),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *jobRepo) Create(ctx context.Context, job *domain.JobPosting) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	job.ID = r.newID()
	job.CreatedAt = now
	job.UpdatedAt = now
	r.jobs[job.ID] = clone(*job)
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := clone(job)
	return &out, nil
}

// Fetch returns matches ordered by createdAt then id, like the Postgres store.
func (r *jobRepo) Fetch(ctx context.Context, q domain.JobQuery) ([]domain.JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	jobs := make([]domain.JobPosting, 0, len(r.jobs))
	for _, job := range r.jobs {
		if q.Category != "" && job.Category != q.Category {
			continue
		}
		if q.UserID != "" && job.UserID != q.UserID {
			continue
		}
		if q.Status != "" && job.Status != q.Status {
			continue
		}
		jobs = append(jobs, clone(job))
	}
	slices.SortFunc(jobs, func(a, b domain.JobPosting) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return jobs, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.JobPosting) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.jobs[job.ID]
	if !ok {
		return domain.ErrNotFound
	}
	job.CreatedAt = existing.CreatedAt
	job.UpdatedAt = r.now()
	r.jobs[job.ID] = clone(*job)
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *jobRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

// clone detaches the Package pointer so callers never alias stored state.
func clone(job domain.JobPosting) domain.JobPosting {
	if job.Package != nil {
		p := *job.Package
		job.Package = &p
	}
	return job
}
