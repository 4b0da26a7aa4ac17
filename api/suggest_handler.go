package api

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/iCreativate/peboli-sub000/utils"
)

// SuggestCategoryRequest carries the fields the admin wants classified
type SuggestCategoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SuggestCategoryHandler handles POST /api/suggest-category. It is an
// explicit admin action for products the pipeline could not categorize; the
// import pipeline itself never calls the model.
func SuggestCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req SuggestCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" && req.Description == "" {
		utils.RespondError(w, http.StatusBadRequest, "Title or description is required")
		return
	}

	category, err := utils.SuggestCategory(r.Context(), req.Title, req.Description)
	if err != nil {
		logrus.WithError(err).Warn("Category suggestion failed")
		utils.RespondError(w, http.StatusServiceUnavailable, "Category suggestion is not available")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"category": category})
}
