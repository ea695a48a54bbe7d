package usecase

import (
	"testing"
	"time"

	"heyjob-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePackage(t *testing.T) {
	tests := []struct {
		raw  string
		want *float64
	}{
		{"12 LPA", ptr(12)},
		{"4.5", ptr(4.5)},
		{" 25K/month", ptr(25)},
		{".5 LPA", ptr(0.5)},
		{"-3", ptr(-3)},
		{"1e3", ptr(1000)},
		{"2.5E-1 LPA", ptr(0.25)},
		{"7e LPA", ptr(7)},
		{"", nil},
		{"negotiable", nil},
		{"LPA 12", nil},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := parsePackage(tt.raw)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestSortJobsTieBreak(t *testing.T) {
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	jobs := []domain.JobPosting{
		{ID: "b", CreatedAt: at},
		{ID: "c", CreatedAt: at.Add(time.Hour)},
		{ID: "a", CreatedAt: at},
	}

	sortJobs(jobs, domain.SortDescending)
	assert.Equal(t, []string{"c", "a", "b"}, ids(jobs))

	sortJobs(jobs, domain.SortAscending)
	assert.Equal(t, []string{"a", "b", "c"}, ids(jobs))
}

func TestApplyFilterSkipsInactive(t *testing.T) {
	jobs := []domain.JobPosting{
		{ID: "1", JobTitle: "Go Developer", Status: domain.JobStatusActive, Category: domain.CategoryWFH},
		{ID: "2", JobTitle: "Go Developer", Status: domain.JobStatusDeleted, Category: domain.CategoryWFH},
	}
	got := applyFilter(jobs, domain.JobFilter{Category: domain.CategoryAll, SearchText: "go"})
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestNormalizeFilter(t *testing.T) {
	f, err := normalizeFilter(domain.JobFilter{SearchText: "  dev "})
	require.NoError(t, err)
	assert.Equal(t, domain.SortDescending, f.SortOrder)
	assert.Equal(t, "  dev ", f.SearchText)

	q := storeQuery(domain.JobFilter{Category: domain.CategoryAll}, "u1")
	assert.Equal(t, domain.JobQuery{UserID: "u1", Status: domain.JobStatusActive}, q)
}

func TestApplyFilterKeepsSearchWhitespace(t *testing.T) {
	jobs := []domain.JobPosting{
		{ID: "1", JobTitle: "Backend Engineer", JobPosition: "SDE-2", Status: domain.JobStatusActive},
		{ID: "2", JobTitle: "Senior SDE", JobPosition: "Platform", Status: domain.JobStatusActive},
	}
	got := applyFilter(jobs, domain.JobFilter{SearchText: " sde"})
	assert.Equal(t, []string{"2"}, ids(got))
}

func ptr(v float64) *float64 { return &v }

func ids(jobs []domain.JobPosting) []string {
	out := make([]string, len(jobs))
	for i, job := range jobs {
		out[i] = job.ID
	}
	return out
}
