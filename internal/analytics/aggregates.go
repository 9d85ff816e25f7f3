package analytics

import (
	"time"

	"github.com/xavierca1/sba-tracking/internal/entity"
)

type StatusShare struct {
	Status     entity.Status `json:"status"`
	Count      int           `json:"count"`
	Percentage float64       `json:"percentage"`
}

// Aggregates are the dashboard metrics. StatusBreakdown is nil, and omitted
// from JSON, when there are no past appointments.
type Aggregates struct {
	TotalSubmissions               int           `json:"totalSubmissions"`
	AppointmentsBooked             int           `json:"appointmentsBooked"`
	QualifiedShowUps               int           `json:"qualifiedShowUps"`
	NoShows                        int           `json:"noShows"`
	Disqualified                   int           `json:"disqualified"`
	Closed                         int           `json:"closed"`
	Untracked                      int           `json:"untracked"`
	UpcomingAppointments           int           `json:"upcomingAppointments"`
	PastAppointments               int           `json:"pastAppointments"`
	ApplicationToMeetingConversion float64       `json:"applicationToMeetingConversion"`
	MeetingToCloseRate             float64       `json:"meetingToCloseRate"`
	StatusBreakdown                []StatusShare `json:"statusBreakdown,omitempty"`
}

// ComputeAggregates recomputes every metric from the full collection.
func ComputeAggregates(records []*entity.Questionnaire, now time.Time) Aggregates {
	var agg Aggregates
	var past []*entity.Questionnaire

	for _, q := range records {
		agg.TotalSubmissions++

		if q.AppointmentBooked {
			agg.AppointmentsBooked++
		}

		switch q.Status {
		case entity.StatusQualifiedShowUp:
			agg.QualifiedShowUps++
		case entity.StatusNoShow:
			agg.NoShows++
		case entity.StatusDisqualified:
			agg.Disqualified++
		case entity.StatusClosed:
			agg.Closed++
		case entity.StatusUntracked:
			agg.Untracked++
		}

		if !q.HasAppointmentTime() {
			continue
		}
		if q.AppointmentTime.After(now) {
			agg.UpcomingAppointments++
		} else if q.AppointmentTime.Before(now) {
			past = append(past, q)
		}
	}

	agg.ApplicationToMeetingConversion = percent(agg.AppointmentsBooked, agg.TotalSubmissions)
	// meetings held = qualified show-ups + closed; no qualified show-ups means no rate
	if agg.QualifiedShowUps > 0 {
		agg.MeetingToCloseRate = percent(agg.Closed, agg.QualifiedShowUps+agg.Closed)
	}
	agg.PastAppointments = len(past)
	agg.StatusBreakdown = breakdown(past)

	return agg
}

func breakdown(past []*entity.Questionnaire) []StatusShare {
	if len(past) == 0 {
		return nil
	}

	counts := make(map[entity.Status]int, 5)
	for _, q := range past {
		counts[q.Status]++
	}

	shares := make([]StatusShare, 0, 5)
	for _, st := range entity.Statuses() {
		shares = append(shares, StatusShare{
			Status:     st,
			Count:      counts[st],
			Percentage: percent(counts[st], len(past)),
		})
	}
	return shares
}

// percent returns 0 instead of dividing by zero.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
