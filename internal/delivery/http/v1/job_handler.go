package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"heyjob-backend/internal/delivery/http/response"
	"heyjob-backend/internal/domain"
	"heyjob-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, writeLimit gin.HandlerFunc, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// PUBLIC routes - active postings only
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:id", handler.GetDetails)
		publicJobs.GET("/:id/share", handler.Share)
	}

	// PROTECTED routes - owner checked per call
	protectedJobs := protected.Group("/jobs", writeLimit)
	{
		protectedJobs.POST("", handler.Create)
		protectedJobs.PUT("/:id", handler.Update)
		protectedJobs.DELETE("/:id", handler.Delete)
	}
}

// FlexString accepts a JSON string, number or null.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("package must be a string or a number")
	}
	*f = FlexString(n.String())
	return nil
}

type JobRequest struct {
	JobTitle       string     `json:"jobTitle" example:"Backend Engineer"`
	JobPosition    string     `json:"jobPosition" example:"SDE-2"`
	CompanyDetails string     `json:"companyDetails" example:"Acme Corp, Pune"`
	Category       string     `json:"category" example:"Openings"`
	JobDescription string     `json:"jobDescription"`
	Package        FlexString `json:"package" swaggertype:"string" example:"12 LPA"`
	Location       string     `json:"location" example:"Pune"`
	Image          string     `json:"image"`
}

func (r JobRequest) toInput() *domain.JobInput {
	return &domain.JobInput{
		JobTitle:       r.JobTitle,
		JobPosition:    r.JobPosition,
		CompanyDetails: r.CompanyDetails,
		Category:       domain.Category(r.Category),
		JobDescription: r.JobDescription,
		Package:        string(r.Package),
		Location:       r.Location,
		Image:          r.Image,
	}
}

// ListJobs godoc
// @Summary      List active jobs
// @Description  Active postings filtered by category and search text, sorted by creation time
// @Tags         jobs
// @Produce      json
// @Param        category  query     string  false  "WFH, Internship, Drive, Batches, Openings or All"
// @Param        search    query     string  false  "Case-insensitive match on title or position"
// @Param        sort      query     string  false  "descending (default) or ascending"
// @Success      200       {object}  response.Response{data=[]domain.JobPosting}
// @Failure      400       {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobUC.ListJobs(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job list", jobs)
}

// GetJob godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.JobPosting}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.GetJobByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job details", job)
}

// ShareJob godoc
// @Summary      Share text for a job
// @Description  Plain-text message suitable for pasting into a messaging app
// @Tags         jobs
// @Produce      plain
// @Param        id   path      string  true  "Job ID"
// @Success      200  {string}  string
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/share [get]
func (h *JobHandler) Share(c *gin.Context) {
	job, err := h.jobUC.GetJobByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.String(http.StatusOK, job.ShareText())
}

// CreateJob godoc
// @Summary      Create a job posting
// @Description  The caller becomes the owner. Empty category defaults to Openings.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response{data=domain.JobPosting}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), c.GetString(string(domain.KeyUserID)), req.toInput())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

// UpdateJob godoc
// @Summary      Update a job posting
// @Description  Full overwrite of the editable fields. Only the owner may update.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string      true  "Job ID"
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      200  {object}  response.Response{data=domain.JobPosting}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), c.GetString(string(domain.KeyUserID)), c.Param("id"), req.toInput())
	if err != nil {
		c.Error(hideForeign(err))
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

// DeleteJob godoc
// @Summary      Delete a job posting
// @Description  Permanently removes the posting. Only the owner may delete.
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobUC.DeleteJob(c.Request.Context(), c.GetString(string(domain.KeyUserID)), c.Param("id")); err != nil {
		c.Error(hideForeign(err))
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}

func filterFromQuery(c *gin.Context) domain.JobFilter {
	return domain.JobFilter{
		Category:   domain.Category(c.Query("category")),
		SearchText: c.Query("search"),
		SortOrder:  domain.SortOrder(c.Query("sort")),
	}
}

// hideForeign renders another principal's posting exactly like a missing one.
func hideForeign(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Code == http.StatusForbidden {
		return apperror.NotFound("Job not found")
	}
	return err
}
