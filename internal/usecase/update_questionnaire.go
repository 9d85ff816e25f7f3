package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/sba-tracking/internal/entity"
	"github.com/xavierca1/sba-tracking/internal/logger"
)

// UpdateQuestionnaireInput is the analytics edit: appointment fields plus status.
type UpdateQuestionnaireInput struct {
	Status            *string                    `json:"status"`
	GHLLink           entity.Optional[string]    `json:"ghlLink"`
	AppointmentTime   entity.Optional[time.Time] `json:"appointmentTime"`
	CloserName        entity.Optional[string]    `json:"closerName"`
	AppointmentBooked *bool                      `json:"appointmentBooked"`
}

type UpdateQuestionnaireUseCase struct {
	Repo entity.QuestionnaireRepositoryInterface
}

func NewUpdateQuestionnaireUseCase(repo entity.QuestionnaireRepositoryInterface) *UpdateQuestionnaireUseCase {
	return &UpdateQuestionnaireUseCase{Repo: repo}
}

func (uc *UpdateQuestionnaireUseCase) Execute(ctx context.Context, id string, input UpdateQuestionnaireInput) (*UpdateQuestionnaireOutput, error) {
	if id == "" {
		return nil, missingField("id")
	}

	patch := entity.QuestionnairePatch{
		AppointmentBooked: input.AppointmentBooked,
		AppointmentTime:   input.AppointmentTime,
		CloserName:        input.CloserName,
		GHLLink:           input.GHLLink,
	}
	if input.Status != nil {
		status, err := entity.ParseStatus(*input.Status)
		if err != nil {
			return nil, invalidStatus(*input.Status)
		}
		patch.Status = &status
	}

	if err := ensureStorage(ctx, uc.Repo); err != nil {
		return nil, err
	}

	q, err := uc.Repo.UpdateByID(ctx, id, patch)
	if err != nil {
		return nil, mapRepositoryError(err, "Questionnaire not found")
	}

	if patch.Status != nil {
		logger.Log.Info().
			Str("questionnaire_id", q.ID).
			Str("status", q.Status.String()).
			Msg("status updated from analytics")
	}

	return &UpdateQuestionnaireOutput{
		Success:       true,
		Questionnaire: q,
		Message:       "Questionnaire updated successfully",
	}, nil
}
