package usecase

import (
	"context"
	"errors"
	"iter"
	"strings"
	"time"

	"heyjob-backend/internal/domain"
	"heyjob-backend/pkg/apperror"
	"heyjob-backend/pkg/audit"
	"heyjob-backend/pkg/events"
	"heyjob-backend/pkg/logger"
	"heyjob-backend/pkg/telemetry"
	"heyjob-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/trace"
)

const DefaultPlaceholderImage = "https://picsum.photos/200"

var tracer = telemetry.GetTracer("heyjob-backend/usecase")

type JobUsecaseConfig struct {
	Store            StorePolicy
	PlaceholderImage string
}

type jobUsecase struct {
	jobRepo   domain.JobRepository
	publisher domain.JobEventPublisher
	auditLog  *audit.Logger
	validate  *validator.Validate
	cfg       JobUsecaseConfig
}

func NewJobUsecase(
	jobRepo domain.JobRepository,
	publisher domain.JobEventPublisher,
	auditLog *audit.Logger,
	validate *validator.Validate,
	cfg JobUsecaseConfig,
) domain.JobUsecase {
	if publisher == nil {
		publisher = events.NewNopPublisher()
	}
	if validate == nil {
		validate = validation.New()
	}
	if cfg.PlaceholderImage == "" {
		cfg.PlaceholderImage = DefaultPlaceholderImage
	}
	if cfg.Store.Timeout <= 0 {
		cfg.Store.Timeout = DefaultStorePolicy().Timeout
	}
	return &jobUsecase{
		jobRepo:   jobRepo,
		publisher: publisher,
		auditLog:  auditLog,
		validate:  validate,
		cfg:       cfg,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, principalID string, input *domain.JobInput) (_ *domain.JobPosting, err error) {
	ctx, span := tracer.Start(ctx, "JobUsecase.CreateJob")
	defer func() { endSpan(span, err) }()

	if principalID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	job, err := u.prepare(ctx, principalID, input)
	if err != nil {
		return nil, err
	}
	job.UserID = principalID

	if err := withStoreErr(ctx, u.cfg.Store, func(ctx context.Context) error {
		return u.jobRepo.Create(ctx, job)
	}); err != nil {
		return nil, storeError(err)
	}

	span.SetAttributes(telemetry.String("job.id", job.ID))
	u.auditLog.Log(ctx, audit.Event{Event: audit.EventJobCreated, UserID: principalID, JobID: job.ID, RequestID: requestID(ctx)})
	u.publish(ctx, domain.JobEventCreated, job)
	return job, nil
}

func (u *jobUsecase) GetJobByID(ctx context.Context, id string) (_ *domain.JobPosting, err error) {
	ctx, span := tracer.Start(ctx, "JobUsecase.GetJobByID")
	defer func() { endSpan(span, err) }()

	job, err := u.fetchOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusActive {
		return nil, apperror.NotFound("Job not found")
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter) (_ []domain.JobPosting, err error) {
	ctx, span := tracer.Start(ctx, "JobUsecase.ListJobs")
	defer func() { endSpan(span, err) }()

	return u.list(ctx, filter, "")
}

// Jobs reads the store when ranged. Each range takes a fresh snapshot.
func (u *jobUsecase) Jobs(ctx context.Context, filter domain.JobFilter) iter.Seq2[domain.JobPosting, error] {
	return func(yield func(domain.JobPosting, error) bool) {
		jobs, err := u.ListJobs(ctx, filter)
		if err != nil {
			yield(domain.JobPosting{}, err)
			return
		}
		for _, job := range jobs {
			if !yield(job, nil) {
				return
			}
		}
	}
}

func (u *jobUsecase) ListJobsByOwner(ctx context.Context, principalID string, filter domain.JobFilter) (_ []domain.JobPosting, err error) {
	ctx, span := tracer.Start(ctx, "JobUsecase.ListJobsByOwner")
	defer func() { endSpan(span, err) }()

	if principalID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	return u.list(ctx, filter, principalID)
}

func (u *jobUsecase) UpdateJob(ctx context.Context, principalID, id string, input *domain.JobInput) (_ *domain.JobPosting, err error) {
	ctx, span := tracer.Start(ctx, "JobUsecase.UpdateJob", trace.WithAttributes(telemetry.String("job.id", id)))
	defer func() { endSpan(span, err) }()

	existing, err := u.authorizeOwner(ctx, principalID, id)
	if err != nil {
		return nil, err
	}
	changes, err := u.prepare(ctx, principalID, input)
	if err != nil {
		return nil, err
	}

	job := *existing
	job.JobTitle = changes.JobTitle
	job.JobPosition = changes.JobPosition
	job.CompanyDetails = changes.CompanyDetails
	job.Category = changes.Category
	job.JobDescription = changes.JobDescription
	job.Package = changes.Package
	job.Location = changes.Location
	job.Image = changes.Image
	job.Status = domain.JobStatusActive

	if err := withStoreErr(ctx, u.cfg.Store, func(ctx context.Context) error {
		return u.jobRepo.Update(ctx, &job)
	}); err != nil {
		return nil, storeError(err)
	}

	u.auditLog.Log(ctx, audit.Event{Event: audit.EventJobUpdated, UserID: principalID, JobID: id, RequestID: requestID(ctx)})
	u.publish(ctx, domain.JobEventUpdated, &job)
	return &job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, principalID, id string) (err error) {
	ctx, span := tracer.Start(ctx, "JobUsecase.DeleteJob", trace.WithAttributes(telemetry.String("job.id", id)))
	defer func() { endSpan(span, err) }()

	existing, err := u.authorizeOwner(ctx, principalID, id)
	if err != nil {
		return err
	}

	if err := withStoreErr(ctx, u.cfg.Store, func(ctx context.Context) error {
		return u.jobRepo.Delete(ctx, id)
	}); err != nil {
		return storeError(err)
	}

	u.auditLog.Log(ctx, audit.Event{Event: audit.EventJobDeleted, UserID: principalID, JobID: id, RequestID: requestID(ctx)})
	u.publish(ctx, domain.JobEventDeleted, &domain.JobPosting{ID: id, Category: existing.Category, UserID: existing.UserID})
	return nil
}

func (u *jobUsecase) list(ctx context.Context, filter domain.JobFilter, ownerID string) ([]domain.JobPosting, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}

	jobs, err := withStore(ctx, u.cfg.Store, func(ctx context.Context) ([]domain.JobPosting, error) {
		return u.jobRepo.Fetch(ctx, storeQuery(filter, ownerID))
	})
	if err != nil {
		return nil, storeError(err)
	}

	jobs = applyFilter(jobs, filter)
	sortJobs(jobs, filter.SortOrder)
	return jobs, nil
}

func (u *jobUsecase) fetchOne(ctx context.Context, id string) (*domain.JobPosting, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.NotFound("Job not found")
	}
	job, err := withStore(ctx, u.cfg.Store, func(ctx context.Context) (*domain.JobPosting, error) {
		return u.jobRepo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, storeError(err)
	}
	return job, nil
}

// authorizeOwner reads the record fresh and checks that principalID created it.
func (u *jobUsecase) authorizeOwner(ctx context.Context, principalID, id string) (*domain.JobPosting, error) {
	if principalID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	job, err := u.fetchOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.UserID != principalID {
		u.auditLog.Log(ctx, audit.Event{
			Event:     audit.EventUnauthorizedAccess,
			UserID:    principalID,
			JobID:     id,
			RequestID: requestID(ctx),
		})
		return nil, apperror.Forbidden("You can only modify your own job postings")
	}
	return job, nil
}

// prepare defaults and validates caller input into a posting without id or timestamps.
// Text fields are stored exactly as submitted.
func (u *jobUsecase) prepare(ctx context.Context, principalID string, input *domain.JobInput) (*domain.JobPosting, error) {
	if input == nil {
		return nil, apperror.BadRequest("Job details are required")
	}
	in := *input
	if in.Category == "" {
		in.Category = domain.CategoryOpenings
	}

	if err := u.validate.Struct(in); err != nil {
		messages := validation.FormatValidationErrors(err)
		u.auditLog.Log(ctx, audit.Event{
			Event:     audit.EventValidationFailed,
			UserID:    principalID,
			RequestID: requestID(ctx),
			Details:   map[string]any{"errors": messages},
		})
		return nil, apperror.Validation(strings.Join(messages, "; "), err)
	}

	image := in.Image
	if image == "" {
		image = u.cfg.PlaceholderImage
	}
	return &domain.JobPosting{
		JobTitle:       in.JobTitle,
		JobPosition:    in.JobPosition,
		CompanyDetails: in.CompanyDetails,
		Category:       in.Category,
		JobDescription: in.JobDescription,
		Package:        parsePackage(in.Package),
		Location:       in.Location,
		Image:          image,
		Status:         domain.JobStatusActive,
	}, nil
}

// publish announces a committed mutation. Failures are logged, never returned.
func (u *jobUsecase) publish(ctx context.Context, eventType domain.JobEventType, job *domain.JobPosting) {
	event := domain.JobEvent{
		Type:       eventType,
		JobID:      job.ID,
		Category:   job.Category,
		UserID:     job.UserID,
		OccurredAt: time.Now().UTC(),
	}
	if eventType != domain.JobEventDeleted {
		event.Job = job
	}
	if err := u.publisher.Publish(ctx, event); err != nil {
		logger.Log.Warn("Job event not published", "type", eventType, "job_id", job.ID, "error", err)
	}
}

// storeError maps store failures onto the usecase error taxonomy.
func storeError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Job not found")
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return apperror.Internal(err)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(domain.KeyRequestID).(string)
	return id
}

func endSpan(span trace.Span, err error) {
	telemetry.RecordError(span, err)
	span.End()
}
