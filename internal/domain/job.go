package domain

import (
	"context"
	"errors"
	"iter"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

type Category string

const (
	CategoryWFH        Category = "WFH"
	CategoryInternship Category = "Internship"
	CategoryDrive      Category = "Drive"
	CategoryBatches    Category = "Batches"
	CategoryOpenings   Category = "Openings"

	// CategoryAll is a listing filter value only, never stored.
	CategoryAll Category = "All"
)

// Categories lists the stored categories in display order.
var Categories = []Category{CategoryWFH, CategoryInternship, CategoryDrive, CategoryBatches, CategoryOpenings}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type JobStatus string

const (
	JobStatusActive  JobStatus = "active"
	JobStatusDeleted JobStatus = "deleted"
)

type SortOrder string

const (
	SortDescending SortOrder = "descending"
	SortAscending  SortOrder = "ascending"
)

type JobPosting struct {
	ID             string    `json:"id"`
	JobTitle       string    `json:"jobTitle"`
	JobPosition    string    `json:"jobPosition"`
	CompanyDetails string    `json:"companyDetails"`
	Category       Category  `json:"category"`
	JobDescription string    `json:"jobDescription"`
	Package        *float64  `json:"package"`
	Location       string    `json:"location"`
	Image          string    `json:"image"`
	UserID         string    `json:"userId"`
	Status         JobStatus `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// JobInput is the user-editable part of a posting as submitted by a caller.
// Package is raw text; it is coerced to a number by the usecase.
type JobInput struct {
	JobTitle       string   `json:"jobTitle" validate:"required,not_blank"`
	JobPosition    string   `json:"jobPosition" validate:"required,not_blank"`
	CompanyDetails string   `json:"companyDetails" validate:"required,not_blank"`
	Category       Category `json:"category" validate:"required,oneof=WFH Internship Drive Batches Openings"`
	JobDescription string   `json:"jobDescription"`
	Package        string   `json:"package"`
	Location       string   `json:"location"`
	Image          string   `json:"image"`
}

// JobFilter holds the listing options. Zero values mean "All", no search and newest first.
type JobFilter struct {
	Category   Category  `json:"category"`
	SearchText string    `json:"searchText"`
	SortOrder  SortOrder `json:"sortOrder"`
}

// JobQuery is the field-equality query pushed down to the store. Empty fields are not constrained.
type JobQuery struct {
	Category Category
	UserID   string
	Status   JobStatus
}

// JobRepository is the persisted-document store for job postings.
// Create and Update stamp CreatedAt/UpdatedAt from the store clock.
type JobRepository interface {
	Create(ctx context.Context, job *JobPosting) error
	GetByID(ctx context.Context, id string) (*JobPosting, error)
	Fetch(ctx context.Context, q JobQuery) ([]JobPosting, error)
	Update(ctx context.Context, job *JobPosting) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, principalID string, input *JobInput) (*JobPosting, error)
	GetJobByID(ctx context.Context, id string) (*JobPosting, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]JobPosting, error)
	Jobs(ctx context.Context, filter JobFilter) iter.Seq2[JobPosting, error]
	ListJobsByOwner(ctx context.Context, principalID string, filter JobFilter) ([]JobPosting, error)
	UpdateJob(ctx context.Context, principalID, id string, input *JobInput) (*JobPosting, error)
	DeleteJob(ctx context.Context, principalID, id string) error
}
