package v1

import (
	"net/http"
	"time"

	"heyjob-backend/internal/delivery/http/response"
	"heyjob-backend/internal/domain"
	"heyjob-backend/pkg/apperror"
	"heyjob-backend/pkg/export"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	authUC domain.AuthUsecase
	jobUC  domain.JobUsecase
}

func NewProfileHandler(protected *gin.RouterGroup, authUC domain.AuthUsecase, jobUC domain.JobUsecase) {
	handler := &ProfileHandler{authUC: authUC, jobUC: jobUC}

	me := protected.Group("/me")
	{
		me.GET("", handler.Me)
		me.GET("/jobs", handler.MyJobs)
		me.GET("/jobs/export", handler.ExportMyJobs)
	}
}

// Me godoc
// @Summary      Current user profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /me [get]
// @Security     BearerAuth
func (h *ProfileHandler) Me(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User profile", user)
}

// MyJobs godoc
// @Summary      Jobs posted by the current user
// @Tags         profile
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Param        search    query     string  false  "Search text"
// @Param        sort      query     string  false  "descending (default) or ascending"
// @Success      200       {object}  response.Response{data=[]domain.JobPosting}
// @Failure      401       {object}  response.Response
// @Router       /me/jobs [get]
// @Security     BearerAuth
func (h *ProfileHandler) MyJobs(c *gin.Context) {
	jobs, err := h.jobUC.ListJobsByOwner(c.Request.Context(), c.GetString(string(domain.KeyUserID)), filterFromQuery(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Posted jobs", jobs)
}

// ExportMyJobs godoc
// @Summary      Export the current user's postings
// @Tags         profile
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format  query  string  false  "xlsx (default) or csv"
// @Success      200     {file}    file
// @Failure      400     {object}  response.Response
// @Router       /me/jobs/export [get]
// @Security     BearerAuth
func (h *ProfileHandler) ExportMyJobs(c *gin.Context) {
	format := export.Format(c.DefaultQuery("format", string(export.FormatXLSX)))
	if format != export.FormatXLSX && format != export.FormatCSV {
		c.Error(apperror.BadRequest("format must be xlsx or csv"))
		return
	}

	jobs, err := h.jobUC.ListJobsByOwner(c.Request.Context(), c.GetString(string(domain.KeyUserID)), filterFromQuery(c))
	if err != nil {
		c.Error(err)
		return
	}

	data, filename, err := export.Jobs(jobs, format, time.Now())
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, export.ContentType(format), data)
}
