package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrQuestionnaireNotFound = errors.New("questionnaire not found")
	ErrEventIDAlreadyExists  = errors.New("a questionnaire with this event ID already exists")
)

// Submission holds the answers captured by the public questionnaire form.
// Every field is required and never changes after creation.
type Submission struct {
	Name                    string `json:"name"`
	Email                   string `json:"email"`
	Phone                   string `json:"phone"`
	EventID                 string `json:"eventId"`
	EntrepreneurAtHeart     string `json:"entrepreneurAtHeart"`
	GoalWithLaunching       string `json:"goalWithLaunching"`
	InterestInSolarBusiness string `json:"interestInSolarBusiness"`
	DesiredMonthlyRevenue   string `json:"desiredMonthlyRevenue"`
	HelpNeededMost          string `json:"helpNeededMost"`
	CurrentMonthlyIncome    string `json:"currentMonthlyIncome"`
	PriorityReason          string `json:"priorityReason"`
	InvestmentWillingness   string `json:"investmentWillingness"`
	StrategyCallCommitment  string `json:"strategyCallCommitment"`
}

// Appointment is the mutable scheduling side of a questionnaire.
type Appointment struct {
	AppointmentBooked bool       `json:"appointmentBooked"`
	AppointmentTime   *time.Time `json:"appointmentTime"`
	CloserName        *string    `json:"closerName"`
	GHLLink           *string    `json:"ghlLink"`
}

type Questionnaire struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Submission
	Status Status `json:"status"`
	Appointment
}

// NewQuestionnaire always starts in StatusUntracked.
func NewQuestionnaire(s Submission, a Appointment) *Questionnaire {
	return &Questionnaire{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now().UTC(),
		Submission:  s,
		Status:      StatusUntracked,
		Appointment: a,
	}
}

// HasAppointmentTime reports whether an appointment is booked with a known time.
func (q *Questionnaire) HasAppointmentTime() bool {
	return q.AppointmentBooked && q.AppointmentTime != nil
}

type QuestionnaireRepositoryInterface interface {
	Ping(ctx context.Context) error
	Create(ctx context.Context, q *Questionnaire) error
	FindByID(ctx context.Context, id string) (*Questionnaire, error)
	FindByEventID(ctx context.Context, eventID string) (*Questionnaire, error)
	FindAll(ctx context.Context) ([]*Questionnaire, error)
	UpdateByID(ctx context.Context, id string, patch QuestionnairePatch) (*Questionnaire, error)
	UpdateByEventID(ctx context.Context, eventID string, patch QuestionnairePatch) (*Questionnaire, error)
}
