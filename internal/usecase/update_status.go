package usecase

import (
	"context"

	"github.com/xavierca1/sba-tracking/internal/entity"
	"github.com/xavierca1/sba-tracking/internal/logger"
)

type UpdateStatusInput struct {
	EventID string `json:"eventId"`
	Status  string `json:"status"`
}

type UpdateStatusOutput struct {
	Success bool          `json:"success"`
	ID      string        `json:"id"`
	EventID string        `json:"eventId"`
	Status  entity.Status `json:"status"`
	Message string        `json:"message"`
}

// UpdateStatusUseCase sets the disposition of the questionnaire owning an event ID.
// Any status may follow any other.
type UpdateStatusUseCase struct {
	Repo entity.QuestionnaireRepositoryInterface
}

func NewUpdateStatusUseCase(repo entity.QuestionnaireRepositoryInterface) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{Repo: repo}
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, input UpdateStatusInput) (*UpdateStatusOutput, error) {
	if input.EventID == "" || input.Status == "" {
		field := "eventId"
		if input.EventID != "" {
			field = "status"
		}
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: "Missing required fields: eventId and status",
			Field:   field,
		}
	}

	status, err := entity.ParseStatus(input.Status)
	if err != nil {
		return nil, invalidStatus(input.Status)
	}

	if err := ensureStorage(ctx, uc.Repo); err != nil {
		return nil, err
	}

	q, err := uc.Repo.UpdateByEventID(ctx, input.EventID, entity.QuestionnairePatch{Status: &status})
	if err != nil {
		return nil, mapRepositoryError(err, "Questionnaire not found with the provided event ID")
	}

	logger.Log.Info().
		Str("questionnaire_id", q.ID).
		Str("event_id", q.EventID).
		Str("status", status.String()).
		Msg("status updated")

	return &UpdateStatusOutput{
		Success: true,
		ID:      q.ID,
		EventID: q.EventID,
		Status:  q.Status,
		Message: "Status updated to: " + status.String(),
	}, nil
}
