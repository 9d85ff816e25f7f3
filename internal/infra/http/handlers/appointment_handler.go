package handlers

import (
	"net/http"

	"github.com/xavierca1/sba-tracking/internal/usecase"
)

type AppointmentHandler struct {
	UpdateAppointmentUC *usecase.UpdateAppointmentUseCase
}

func NewAppointmentHandler(uc *usecase.UpdateAppointmentUseCase) *AppointmentHandler {
	return &AppointmentHandler{UpdateAppointmentUC: uc}
}

func (h *AppointmentHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateAppointmentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	output, err := h.UpdateAppointmentUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
