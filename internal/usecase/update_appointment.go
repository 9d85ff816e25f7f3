package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/sba-tracking/internal/entity"
)

// UpdateAppointmentInput carries no status field. This path never changes the disposition.
type UpdateAppointmentInput struct {
	ID                string                     `json:"id"`
	AppointmentTime   entity.Optional[time.Time] `json:"appointmentTime"`
	CloserName        entity.Optional[string]    `json:"closerName"`
	AppointmentBooked *bool                      `json:"appointmentBooked"`
	GHLLink           entity.Optional[string]    `json:"ghlLink"`
}

type UpdateQuestionnaireOutput struct {
	Success       bool                  `json:"success"`
	Questionnaire *entity.Questionnaire `json:"questionnaire"`
	Message       string                `json:"message"`
}

type UpdateAppointmentUseCase struct {
	Repo entity.QuestionnaireRepositoryInterface
}

func NewUpdateAppointmentUseCase(repo entity.QuestionnaireRepositoryInterface) *UpdateAppointmentUseCase {
	return &UpdateAppointmentUseCase{Repo: repo}
}

func (uc *UpdateAppointmentUseCase) Execute(ctx context.Context, input UpdateAppointmentInput) (*UpdateQuestionnaireOutput, error) {
	if input.ID == "" {
		return nil, missingField("id")
	}

	if err := ensureStorage(ctx, uc.Repo); err != nil {
		return nil, err
	}

	patch := entity.QuestionnairePatch{
		AppointmentBooked: input.AppointmentBooked,
		AppointmentTime:   input.AppointmentTime,
		CloserName:        input.CloserName,
		GHLLink:           input.GHLLink,
	}

	q, err := uc.Repo.UpdateByID(ctx, input.ID, patch)
	if err != nil {
		return nil, mapRepositoryError(err, "Questionnaire not found")
	}

	return &UpdateQuestionnaireOutput{
		Success:       true,
		Questionnaire: q,
		Message:       "Appointment information updated successfully",
	}, nil
}
