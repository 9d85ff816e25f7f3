package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/sba-tracking/internal/infra/http/middleware"
	"github.com/xavierca1/sba-tracking/internal/usecase"
)

type QuestionnaireHandler struct {
	CreateUC    *usecase.CreateQuestionnaireUseCase
	GetUC       *usecase.GetQuestionnaireUseCase
	UpdateUC    *usecase.UpdateQuestionnaireUseCase
	rateLimiter *RateLimiter
}

func NewQuestionnaireHandler(
	createUC *usecase.CreateQuestionnaireUseCase,
	getUC *usecase.GetQuestionnaireUseCase,
	updateUC *usecase.UpdateQuestionnaireUseCase,
) *QuestionnaireHandler {
	return &QuestionnaireHandler{
		CreateUC:    createUC,
		GetUC:       getUC,
		UpdateUC:    updateUC,
		rateLimiter: NewRateLimiter(10, time.Minute),
	}
}

// Close stops the rate limiter's cleanup goroutine.
func (h *QuestionnaireHandler) Close() {
	h.rateLimiter.Stop()
}

// Create handles POST /api/questionnaire.
func (h *QuestionnaireHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeErrorResponse(w, http.StatusTooManyRequests, CodeRateLimited, "Too many requests. Please try again later.")
		return
	}

	var input usecase.CreateQuestionnaireInput
	if !decodeJSON(w, r, &input) {
		return
	}

	output, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordSubmission()
	writeJSON(w, http.StatusOK, output)
}

// Get handles GET /api/questionnaire/{id}.
func (h *QuestionnaireHandler) Get(w http.ResponseWriter, r *http.Request) {
	q, err := h.GetUC.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, q)
}

// Update handles PATCH /api/questionnaire/{id}.
func (h *QuestionnaireHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateQuestionnaireInput
	if !decodeJSON(w, r, &input) {
		return
	}

	output, err := h.UpdateUC.Execute(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	if input.Status != nil {
		middleware.RecordStatusUpdate(output.Questionnaire.Status)
	}
	writeJSON(w, http.StatusOK, output)
}
