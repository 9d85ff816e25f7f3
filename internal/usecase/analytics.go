package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/sba-tracking/internal/analytics"
	"github.com/xavierca1/sba-tracking/internal/entity"
)

// AnalyticsUseCase reads the whole collection on every call; nothing is cached.
type AnalyticsUseCase struct {
	Repo entity.QuestionnaireRepositoryInterface
	Now  func() time.Time
}

func NewAnalyticsUseCase(repo entity.QuestionnaireRepositoryInterface) *AnalyticsUseCase {
	return &AnalyticsUseCase{Repo: repo, Now: time.Now}
}

// List returns every questionnaire, newest first.
func (uc *AnalyticsUseCase) List(ctx context.Context) ([]*entity.Questionnaire, error) {
	if err := ensureStorage(ctx, uc.Repo); err != nil {
		return nil, err
	}

	records, err := uc.Repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err, "Questionnaire not found")
	}
	return records, nil
}

func (uc *AnalyticsUseCase) Summary(ctx context.Context) (*analytics.Aggregates, error) {
	records, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}

	agg := analytics.ComputeAggregates(records, uc.Now())
	return &agg, nil
}

func (uc *AnalyticsUseCase) Table(ctx context.Context, state analytics.TableState) (*analytics.Page, error) {
	records, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}

	page := state.Apply(records, uc.Now())
	return &page, nil
}
