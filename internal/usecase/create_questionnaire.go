package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/sba-tracking/internal/entity"
	"github.com/xavierca1/sba-tracking/internal/infra/queue"
	"github.com/xavierca1/sba-tracking/internal/logger"
)

type CreateQuestionnaireInput struct {
	entity.Submission

	GHLLink           *string    `json:"ghlLink"`
	AppointmentTime   *time.Time `json:"appointmentTime"`
	CloserName        *string    `json:"closerName"`
	AppointmentBooked bool       `json:"appointmentBooked"`

	// Status is accepted for compatibility with older form builds and ignored.
	Status string `json:"status,omitempty"`
}

type CreateQuestionnaireOutput struct {
	Success   bool   `json:"success"`
	ID        string `json:"id"`
	ReviewURL string `json:"reviewUrl"`
	Message   string `json:"message"`
}

type CreateQuestionnaireUseCase struct {
	Repo      entity.QuestionnaireRepositoryInterface
	Publisher SubmissionPublisher
	BaseURL   string
}

func NewCreateQuestionnaireUseCase(
	repo entity.QuestionnaireRepositoryInterface,
	publisher SubmissionPublisher,
	baseURL string,
) *CreateQuestionnaireUseCase {
	return &CreateQuestionnaireUseCase{
		Repo:      repo,
		Publisher: publisher,
		BaseURL:   baseURL,
	}
}

func (uc *CreateQuestionnaireUseCase) Execute(ctx context.Context, input CreateQuestionnaireInput) (*CreateQuestionnaireOutput, error) {
	if errs := ValidateCreateQuestionnaireInput(input); len(errs) > 0 {
		return nil, missingField(errs[0].Field)
	}

	if err := ensureStorage(ctx, uc.Repo); err != nil {
		return nil, err
	}

	q := entity.NewQuestionnaire(input.Submission, entity.Appointment{
		AppointmentBooked: input.AppointmentBooked,
		AppointmentTime:   input.AppointmentTime,
		CloserName:        nonEmpty(input.CloserName),
		GHLLink:           nonEmpty(input.GHLLink),
	})

	if err := uc.Repo.Create(ctx, q); err != nil {
		return nil, mapRepositoryError(err, "Questionnaire not found")
	}

	reviewURL := "/review/" + q.ID
	logger.Log.Info().
		Str("questionnaire_id", q.ID).
		Str("event_id", q.EventID).
		Msg("questionnaire created")

	if uc.Publisher != nil {
		payload := queue.SubmissionPayload{
			QuestionnaireID: q.ID,
			EventID:         q.EventID,
			Name:            q.Name,
			Email:           q.Email,
			Phone:           q.Phone,
			ReviewURL:       uc.BaseURL + reviewURL,
			SubmittedAt:     q.CreatedAt,
		}
		if err := uc.Publisher.PublishSubmission(ctx, payload); err != nil {
			// the record is already stored; the notification is best effort
			logger.Log.Warn().Err(err).Str("questionnaire_id", q.ID).Msg("submission event not published")
		}
	}

	return &CreateQuestionnaireOutput{
		Success:   true,
		ID:        q.ID,
		ReviewURL: reviewURL,
		Message:   "Questionnaire created successfully",
	}, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
