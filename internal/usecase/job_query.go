package usecase

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"heyjob-backend/internal/domain"
	"heyjob-backend/pkg/apperror"
)

var packagePrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// parsePackage reads the leading number of free text such as "12 LPA".
func parsePackage(raw string) *float64 {
	match := packagePrefix.FindString(strings.TrimSpace(raw))
	if match == "" {
		return nil
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}
	return &value
}

func normalizeFilter(filter domain.JobFilter) (domain.JobFilter, error) {
	if filter.Category != "" && filter.Category != domain.CategoryAll && !filter.Category.Valid() {
		return filter, apperror.BadRequest("Unknown category: " + string(filter.Category))
	}
	switch filter.SortOrder {
	case "":
		filter.SortOrder = domain.SortDescending
	case domain.SortAscending, domain.SortDescending:
	default:
		return filter, apperror.BadRequest("Unknown sort order: " + string(filter.SortOrder))
	}
	return filter, nil
}

func storeQuery(filter domain.JobFilter, userID string) domain.JobQuery {
	q := domain.JobQuery{UserID: userID, Status: domain.JobStatusActive}
	if filter.Category != domain.CategoryAll {
		q.Category = filter.Category
	}
	return q
}

// applyFilter keeps active postings matching the category and search text, in order.
func applyFilter(jobs []domain.JobPosting, filter domain.JobFilter) []domain.JobPosting {
	search := strings.ToLower(filter.SearchText)
	out := make([]domain.JobPosting, 0, len(jobs))
	for _, job := range jobs {
		if job.Status != domain.JobStatusActive {
			continue
		}
		if filter.Category != "" && filter.Category != domain.CategoryAll && job.Category != filter.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(job.JobTitle), search) &&
			!strings.Contains(strings.ToLower(job.JobPosition), search) {
			continue
		}
		out = append(out, job)
	}
	return out
}

// sortJobs orders by createdAt in the requested direction; equal timestamps fall back to id ascending.
func sortJobs(jobs []domain.JobPosting, order domain.SortOrder) {
	slices.SortStableFunc(jobs, func(a, b domain.JobPosting) int {
		c := a.CreatedAt.Compare(b.CreatedAt)
		if order == domain.SortDescending {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
