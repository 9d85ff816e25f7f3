package handlers

import (
	"net/http"

	"github.com/xavierca1/sba-tracking/internal/infra/http/middleware"
	"github.com/xavierca1/sba-tracking/internal/usecase"
)

// StatusHandler serves the review page's disposition buttons, keyed by event ID.
type StatusHandler struct {
	UpdateStatusUC *usecase.UpdateStatusUseCase
}

func NewStatusHandler(uc *usecase.UpdateStatusUseCase) *StatusHandler {
	return &StatusHandler{UpdateStatusUC: uc}
}

func (h *StatusHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateStatusInput
	if !decodeJSON(w, r, &input) {
		return
	}

	output, err := h.UpdateStatusUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordStatusUpdate(output.Status)
	writeJSON(w, http.StatusOK, output)
}
