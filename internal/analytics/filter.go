package analytics

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/xavierca1/sba-tracking/internal/entity"
)

type TimeRange string

const (
	TimeRangeAll        TimeRange = "all"
	TimeRangeLast7Days  TimeRange = "7days"
	TimeRangeLast30Days TimeRange = "30days"
	TimeRangeThisMonth  TimeRange = "thisMonth"
)

func ParseTimeRange(s string) (TimeRange, error) {
	switch r := TimeRange(s); r {
	case "":
		return TimeRangeAll, nil
	case TimeRangeAll, TimeRangeLast7Days, TimeRangeLast30Days, TimeRangeThisMonth:
		return r, nil
	}
	return "", fmt.Errorf("unknown time range %q", s)
}

// Since returns the lower creation bound for the range, evaluated against now.
func (r TimeRange) Since(now time.Time) (time.Time, bool) {
	switch r {
	case TimeRangeLast7Days:
		return now.Add(-7 * 24 * time.Hour), true
	case TimeRangeLast30Days:
		return now.Add(-30 * 24 * time.Hour), true
	case TimeRangeThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	}
	return time.Time{}, false
}

type BookedFilter string

const (
	BookedAll BookedFilter = "all"
	BookedYes BookedFilter = "yes"
	BookedNo  BookedFilter = "no"
)

func ParseBookedFilter(s string) (BookedFilter, error) {
	switch b := BookedFilter(s); b {
	case "":
		return BookedAll, nil
	case BookedAll, BookedYes, BookedNo:
		return b, nil
	}
	return "", fmt.Errorf("unknown appointmentBooked filter %q", s)
}

// Filters compose with AND. Zero values mean "no filter".
type Filters struct {
	Closer            string
	TimeRange         TimeRange
	AppointmentBooked BookedFilter
	Statuses          []entity.Status
}

func DefaultFilters() Filters {
	return Filters{TimeRange: TimeRangeAll, AppointmentBooked: BookedAll}
}

type SortField string

const (
	SortByCreatedAt         SortField = "createdAt"
	SortByName              SortField = "name"
	SortByGHLLink           SortField = "ghlLink"
	SortByAppointmentBooked SortField = "appointmentBooked"
	SortByAppointmentTime   SortField = "appointmentTime"
	SortByCloserName        SortField = "closerName"
	SortByStatus            SortField = "status"
)

func ParseSortField(s string) (SortField, error) {
	switch f := SortField(s); f {
	case SortByCreatedAt, SortByName, SortByGHLLink, SortByAppointmentBooked,
		SortByAppointmentTime, SortByCloserName, SortByStatus:
		return f, nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

func ParseSortDirection(s string) (SortDirection, error) {
	switch d := SortDirection(strings.ToLower(s)); d {
	case Ascending, Descending:
		return d, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

func (d SortDirection) Toggle() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Filter returns the records matching every active filter, keeping input order.
func Filter(records []*entity.Questionnaire, f Filters, now time.Time) []*entity.Questionnaire {
	since, bounded := f.TimeRange.Since(now)

	out := make([]*entity.Questionnaire, 0, len(records))
	for _, q := range records {
		if f.Closer != "" && (q.CloserName == nil || *q.CloserName != f.Closer) {
			continue
		}
		if bounded && q.CreatedAt.Before(since) {
			continue
		}
		if f.AppointmentBooked == BookedYes && !q.AppointmentBooked {
			continue
		}
		if f.AppointmentBooked == BookedNo && q.AppointmentBooked {
			continue
		}
		if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, q.Status) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// Sort orders records in place. The sort is stable, so equal keys keep their order.
func Sort(records []*entity.Questionnaire, field SortField, dir SortDirection) {
	slices.SortStableFunc(records, func(a, b *entity.Questionnaire) int {
		c := compareBy(field, a, b)
		if dir == Descending {
			return -c
		}
		return c
	})
}

// FilterAndSort never mutates the input slice.
func FilterAndSort(records []*entity.Questionnaire, f Filters, field SortField, dir SortDirection, now time.Time) []*entity.Questionnaire {
	out := Filter(records, f, now)
	Sort(out, field, dir)
	return out
}

var epoch = time.Unix(0, 0).UTC()

func compareBy(field SortField, a, b *entity.Questionnaire) int {
	switch field {
	case SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortByAppointmentTime:
		return instant(a.AppointmentTime).Compare(instant(b.AppointmentTime))
	case SortByName:
		return strings.Compare(a.Name, b.Name)
	case SortByGHLLink:
		return strings.Compare(deref(a.GHLLink), deref(b.GHLLink))
	case SortByCloserName:
		return strings.Compare(deref(a.CloserName), deref(b.CloserName))
	case SortByStatus:
		return strings.Compare(string(a.Status), string(b.Status))
	case SortByAppointmentBooked:
		return compareBool(a.AppointmentBooked, b.AppointmentBooked)
	}
	return 0
}

// instant treats a missing date as the Unix epoch so it sorts before real dates.
func instant(t *time.Time) time.Time {
	if t == nil {
		return epoch
	}
	return *t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}
