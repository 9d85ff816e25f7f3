package analytics

import (
	"time"

	"github.com/xavierca1/sba-tracking/internal/entity"
)

const PageSize = 25

// TableState is the analytics table selection: filters, sort key and current page.
// Changing filters or sort always returns to page 1.
type TableState struct {
	Filters       Filters
	SortField     SortField
	SortDirection SortDirection
	Page          int
}

func NewTableState() TableState {
	return TableState{
		Filters:       DefaultFilters(),
		SortField:     SortByCreatedAt,
		SortDirection: Descending,
		Page:          1,
	}
}

func (s *TableState) SetFilters(f Filters) {
	s.Filters = f
	s.Page = 1
}

// SortBy flips the direction when field is already selected, otherwise
// selects field ascending.
func (s *TableState) SortBy(field SortField) {
	if s.SortField == field {
		s.SortDirection = s.SortDirection.Toggle()
	} else {
		s.SortField = field
		s.SortDirection = Ascending
	}
	s.Page = 1
}

func (s *TableState) GoToPage(page int) {
	s.Page = page
}

type Page struct {
	Items      []*entity.Questionnaire `json:"items"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"pageSize"`
	TotalItems int                     `json:"totalItems"`
	TotalPages int                     `json:"totalPages"`
}

func (s TableState) Apply(records []*entity.Questionnaire, now time.Time) Page {
	rows := FilterAndSort(records, s.Filters, s.SortField, s.SortDirection, now)
	return Paginate(rows, s.Page)
}

// Paginate clamps page into the valid range; an empty result is page 1 of 0.
func Paginate(records []*entity.Questionnaire, page int) Page {
	total := len(records)
	totalPages := (total + PageSize - 1) / PageSize

	page = max(1, min(page, totalPages))

	start := min((page-1)*PageSize, total)
	end := min(start+PageSize, total)

	return Page{
		Items:      records[start:end],
		Page:       page,
		PageSize:   PageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
