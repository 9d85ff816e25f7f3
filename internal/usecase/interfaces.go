package usecase

import (
	"context"

	"github.com/xavierca1/sba-tracking/internal/entity"
	"github.com/xavierca1/sba-tracking/internal/infra/queue"
	"github.com/xavierca1/sba-tracking/internal/logger"
)

type SubmissionPublisher interface {
	PublishSubmission(ctx context.Context, payload queue.SubmissionPayload) error
}

// ensureStorage runs the connectivity check that precedes every operation.
func ensureStorage(ctx context.Context, repo entity.QuestionnaireRepositoryInterface) error {
	if err := repo.Ping(ctx); err != nil {
		logger.Log.Error().Err(err).Msg("database connection failed")
		return &TechnicalError{
			Code:    CodeStorageUnavailable,
			Message: "Database connection failed",
			Err:     err,
		}
	}
	return nil
}
