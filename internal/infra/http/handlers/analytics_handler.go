package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/xavierca1/sba-tracking/internal/analytics"
	"github.com/xavierca1/sba-tracking/internal/entity"
	"github.com/xavierca1/sba-tracking/internal/usecase"
)

type AnalyticsHandler struct {
	AnalyticsUC *usecase.AnalyticsUseCase
}

func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{AnalyticsUC: uc}
}

// AnalyticsRow is the slim projection the dashboard table needs.
type AnalyticsRow struct {
	ID                string        `json:"id"`
	CreatedAt         time.Time     `json:"createdAt"`
	Name              string        `json:"name"`
	GHLLink           *string       `json:"ghlLink"`
	AppointmentBooked bool          `json:"appointmentBooked"`
	AppointmentTime   *time.Time    `json:"appointmentTime"`
	CloserName        *string       `json:"closerName"`
	Status            entity.Status `json:"status"`
}

func toRows(records []*entity.Questionnaire) []AnalyticsRow {
	rows := make([]AnalyticsRow, 0, len(records))
	for _, q := range records {
		rows = append(rows, AnalyticsRow{
			ID:                q.ID,
			CreatedAt:         q.CreatedAt,
			Name:              q.Name,
			GHLLink:           q.GHLLink,
			AppointmentBooked: q.AppointmentBooked,
			AppointmentTime:   q.AppointmentTime,
			CloserName:        q.CloserName,
			Status:            q.Status,
		})
	}
	return rows
}

func noCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}

// List handles GET /api/analytics.
func (h *AnalyticsHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.AnalyticsUC.List(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	noCache(w)
	writeJSON(w, http.StatusOK, toRows(records))
}

// Summary handles GET /api/analytics/summary.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	agg, err := h.AnalyticsUC.Summary(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	noCache(w)
	writeJSON(w, http.StatusOK, agg)
}

type TableResponse struct {
	Items         []AnalyticsRow          `json:"items"`
	Page          int                     `json:"page"`
	PageSize      int                     `json:"pageSize"`
	TotalItems    int                     `json:"totalItems"`
	TotalPages    int                     `json:"totalPages"`
	SortField     analytics.SortField     `json:"sort"`
	SortDirection analytics.SortDirection `json:"direction"`
}

// Table handles GET /api/analytics/table.
func (h *AnalyticsHandler) Table(w http.ResponseWriter, r *http.Request) {
	state, field, err := parseTableState(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   usecase.CodeValidation,
			Message: err.Error(),
			Field:   field,
		})
		return
	}

	page, err := h.AnalyticsUC.Table(r.Context(), state)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	noCache(w)
	writeJSON(w, http.StatusOK, TableResponse{
		Items:         toRows(page.Items),
		Page:          page.Page,
		PageSize:      page.PageSize,
		TotalItems:    page.TotalItems,
		TotalPages:    page.TotalPages,
		SortField:     state.SortField,
		SortDirection: state.SortDirection,
	})
}

// parseTableState reads closer, timeRange, appointmentBooked, status (repeated
// or comma separated), sort, direction and page. It returns the offending
// parameter name on error.
func parseTableState(q url.Values) (analytics.TableState, string, error) {
	state := analytics.NewTableState()

	filters := analytics.DefaultFilters()
	filters.Closer = q.Get("closer")

	var err error
	if filters.TimeRange, err = analytics.ParseTimeRange(q.Get("timeRange")); err != nil {
		return state, "timeRange", err
	}
	if filters.AppointmentBooked, err = analytics.ParseBookedFilter(q.Get("appointmentBooked")); err != nil {
		return state, "appointmentBooked", err
	}

	for _, raw := range q["status"] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part == "" {
				continue
			}
			st, err := entity.ParseStatus(part)
			if err != nil {
				return state, "status", err
			}
			filters.Statuses = append(filters.Statuses, st)
		}
	}
	state.SetFilters(filters)

	if s := q.Get("sort"); s != "" {
		if state.SortField, err = analytics.ParseSortField(s); err != nil {
			return state, "sort", err
		}
		state.SortDirection = analytics.Ascending
	}
	if d := q.Get("direction"); d != "" {
		if state.SortDirection, err = analytics.ParseSortDirection(d); err != nil {
			return state, "direction", err
		}
	}

	if p := q.Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return state, "page", err
		}
		state.GoToPage(n)
	}

	return state, "", nil
}
