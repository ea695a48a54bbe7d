package v1

import (
	"net/http"

	"heyjob-backend/internal/delivery/http/response"
	"heyjob-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CategoryInfo struct {
	Name domain.Category `json:"name"`
	Icon string          `json:"icon"`
}

var categoryIcons = map[domain.Category]string{
	domain.CategoryWFH:        "home",
	domain.CategoryInternship: "graduation-cap",
	domain.CategoryDrive:      "car",
	domain.CategoryBatches:    "users",
	domain.CategoryOpenings:   "briefcase",
}

// ListCategories godoc
// @Summary      Job categories
// @Description  The fixed set of categories in display order
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response{data=[]CategoryInfo}
// @Router       /categories [get]
func ListCategories(c *gin.Context) {
	out := make([]CategoryInfo, 0, len(domain.Categories))
	for _, cat := range domain.Categories {
		out = append(out, CategoryInfo{Name: cat, Icon: categoryIcons[cat]})
	}
	response.Success(c, http.StatusOK, "Categories", out)
}
