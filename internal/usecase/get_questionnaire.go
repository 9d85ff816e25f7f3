package usecase

import (
	"context"

	"github.com/xavierca1/sba-tracking/internal/entity"
)

type GetQuestionnaireUseCase struct {
	Repo entity.QuestionnaireRepositoryInterface
}

func NewGetQuestionnaireUseCase(repo entity.QuestionnaireRepositoryInterface) *GetQuestionnaireUseCase {
	return &GetQuestionnaireUseCase{Repo: repo}
}

func (uc *GetQuestionnaireUseCase) Execute(ctx context.Context, id string) (*entity.Questionnaire, error) {
	if id == "" {
		return nil, missingField("id")
	}

	if err := ensureStorage(ctx, uc.Repo); err != nil {
		return nil, err
	}

	q, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err, "Questionnaire not found")
	}
	return q, nil
}
