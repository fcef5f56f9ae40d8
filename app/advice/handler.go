package advice

import (
	"errors"
	"net/http"

	"github.com/mytheresa/storefront/advisor"
	"github.com/mytheresa/storefront/app/api"
)

type Response struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	BestFor     string  `json:"bestFor"`
	Fit         string  `json:"fit"`
	Fabric      string  `json:"fabric"`
}

type AdviceHandler struct {
	recommend func(advisor.Selections) (advisor.Recommendation, error)
}

func NewAdviceHandler() *AdviceHandler {
	return &AdviceHandler{recommend: advisor.Recommend}
}

func (h *AdviceHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	var sel advisor.Selections
	if err := api.DecodeJSON(w, r, &sel); err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	rec, err := h.recommend(sel)
	if errors.Is(err, advisor.ErrIncomplete) {
		api.RespondError(w, http.StatusBadRequest, "Please answer all questions")
		return
	}
	if err != nil {
		api.RespondError(w, http.StatusInternalServerError, "Failed to build recommendation")
		return
	}

	api.RespondJSON(w, http.StatusOK, Response{
		Name:        rec.Name,
		Description: rec.Description,
		Image:       rec.Image,
		Price:       rec.Price.InexactFloat64(),
		BestFor:     rec.BestFor,
		Fit:         rec.Fit,
		Fabric:      rec.Fabric,
	})
}
