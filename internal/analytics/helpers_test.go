package analytics

import (
	"time"

	"github.com/xavierca1/sba-tracking/internal/entity"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type option func(*entity.Questionnaire)

func record(id string, opts ...option) *entity.Questionnaire {
	q := &entity.Questionnaire{
		ID:        id,
		CreatedAt: now.Add(-time.Hour),
		Submission: entity.Submission{
			Name:    "Lead " + id,
			EventID: "evt-" + id,
		},
		Status: entity.StatusUntracked,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func withStatus(s entity.Status) option {
	return func(q *entity.Questionnaire) { q.Status = s }
}

func booked(at *time.Time) option {
	return func(q *entity.Questionnaire) {
		q.AppointmentBooked = true
		q.AppointmentTime = at
	}
}

func createdAt(t time.Time) option {
	return func(q *entity.Questionnaire) { q.CreatedAt = t }
}

func closer(name string) option {
	return func(q *entity.Questionnaire) { q.CloserName = &name }
}

func named(name string) option {
	return func(q *entity.Questionnaire) { q.Name = name }
}

func at(t time.Time) *time.Time {
	return &t
}

func ids(records []*entity.Questionnaire) []string {
	out := make([]string, 0, len(records))
	for _, q := range records {
		out = append(out, q.ID)
	}
	return out
}
