package domain_test

import (
	"testing"

	"heyjob-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestShareText(t *testing.T) {
	pkg := 4.5
	job := domain.JobPosting{
		JobTitle:       "Backend Engineer",
		JobPosition:    "SDE-1",
		CompanyDetails: "Acme",
		Category:       domain.CategoryWFH,
		JobDescription: "Build APIs",
		Package:        &pkg,
		Location:       "Pune",
	}

	t.Run("Should include package and category hashtag", func(t *testing.T) {
		text := job.ShareText()
		assert.Contains(t, text, "*Position:* Backend Engineer")
		assert.Contains(t, text, "*Location:* Pune")
		assert.Contains(t, text, "*Package:* 4.5 LPA")
		assert.Contains(t, text, "#Opportunity #WFH")
	})

	t.Run("Should omit missing package and location", func(t *testing.T) {
		bare := job
		bare.Package = nil
		bare.Location = ""
		text := bare.ShareText()
		assert.NotContains(t, text, "*Package:*")
		assert.NotContains(t, text, "*Location:*")
	})
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, domain.CategoryDrive.Valid())
	assert.False(t, domain.CategoryAll.Valid())
	assert.False(t, domain.Category("Remote").Valid())
}
