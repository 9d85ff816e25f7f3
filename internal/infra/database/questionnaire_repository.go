package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/xavierca1/sba-tracking/internal/entity"
	"github.com/xavierca1/sba-tracking/internal/logger"
)

const uniqueViolation = "23505"

const questionnaireColumns = `id, created_at, name, email, phone, event_id,
	entrepreneur_at_heart, goal_with_launching, interest_in_solar_business,
	desired_monthly_revenue, help_needed_most, current_monthly_income,
	priority_reason, investment_willingness, strategy_call_commitment,
	status, appointment_booked, appointment_time, closer_name, ghl_link`

type QuestionnaireRepository struct {
	DB *sql.DB
}

func NewQuestionnaireRepository(db *sql.DB) *QuestionnaireRepository {
	return &QuestionnaireRepository{DB: db}
}

func (r *QuestionnaireRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

func (r *QuestionnaireRepository) Create(ctx context.Context, q *entity.Questionnaire) error {
	query := `
		INSERT INTO questionnaires (` + questionnaireColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.DB.ExecContext(ctx, query,
		q.ID,
		q.CreatedAt,
		q.Name,
		q.Email,
		q.Phone,
		q.EventID,
		q.EntrepreneurAtHeart,
		q.GoalWithLaunching,
		q.InterestInSolarBusiness,
		q.DesiredMonthlyRevenue,
		q.HelpNeededMost,
		q.CurrentMonthlyIncome,
		q.PriorityReason,
		q.InvestmentWillingness,
		q.StrategyCallCommitment,
		string(q.Status),
		q.AppointmentBooked,
		nullTime(q.AppointmentTime),
		nullString(q.CloserName),
		nullString(q.GHLLink),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrEventIDAlreadyExists
		}
		logger.Log.Error().Err(err).Str("event_id", q.EventID).Msg("failed to insert questionnaire")
		return err
	}

	return nil
}

func (r *QuestionnaireRepository) FindByID(ctx context.Context, id string) (*entity.Questionnaire, error) {
	return r.findOne(ctx, "id", id)
}

func (r *QuestionnaireRepository) FindByEventID(ctx context.Context, eventID string) (*entity.Questionnaire, error) {
	return r.findOne(ctx, "event_id", eventID)
}

func (r *QuestionnaireRepository) findOne(ctx context.Context, column, value string) (*entity.Questionnaire, error) {
	query := `SELECT ` + questionnaireColumns + ` FROM questionnaires WHERE ` + column + ` = $1`

	q, err := scanQuestionnaire(r.DB.QueryRowContext(ctx, query, value))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrQuestionnaireNotFound
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// FindAll returns every questionnaire, newest first.
func (r *QuestionnaireRepository) FindAll(ctx context.Context) ([]*entity.Questionnaire, error) {
	query := `SELECT ` + questionnaireColumns + ` FROM questionnaires ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Questionnaire
	for rows.Next() {
		q, err := scanQuestionnaire(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *QuestionnaireRepository) UpdateByID(ctx context.Context, id string, patch entity.QuestionnairePatch) (*entity.Questionnaire, error) {
	return r.update(ctx, "id", id, patch)
}

func (r *QuestionnaireRepository) UpdateByEventID(ctx context.Context, eventID string, patch entity.QuestionnairePatch) (*entity.Questionnaire, error) {
	return r.update(ctx, "event_id", eventID, patch)
}

// update writes only the columns present in patch and returns the stored row.
// An empty patch is a plain lookup.
func (r *QuestionnaireRepository) update(ctx context.Context, column, value string, patch entity.QuestionnairePatch) (*entity.Questionnaire, error) {
	if patch.IsEmpty() {
		return r.findOne(ctx, column, value)
	}

	var sets []string
	var args []any
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Status != nil {
		set("status", string(*patch.Status))
	}
	if patch.AppointmentBooked != nil {
		set("appointment_booked", *patch.AppointmentBooked)
	}
	if patch.AppointmentTime.Set {
		set("appointment_time", nullTime(patch.AppointmentTime.Value))
	}
	if patch.CloserName.Set {
		set("closer_name", nullString(patch.CloserName.Value))
	}
	if patch.GHLLink.Set {
		set("ghl_link", nullString(patch.GHLLink.Value))
	}

	args = append(args, value)
	query := fmt.Sprintf(`UPDATE questionnaires SET %s WHERE %s = $%d RETURNING %s`,
		strings.Join(sets, ", "), column, len(args), questionnaireColumns)

	q, err := scanQuestionnaire(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrQuestionnaireNotFound
	}
	if err != nil {
		logger.Log.Error().Err(err).Str(column, value).Msg("failed to update questionnaire")
		return nil, err
	}
	return q, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestionnaire(row scanner) (*entity.Questionnaire, error) {
	var (
		q               entity.Questionnaire
		appointmentTime sql.NullTime
		closerName      sql.NullString
		ghlLink         sql.NullString
	)

	err := row.Scan(
		&q.ID,
		&q.CreatedAt,
		&q.Name,
		&q.Email,
		&q.Phone,
		&q.EventID,
		&q.EntrepreneurAtHeart,
		&q.GoalWithLaunching,
		&q.InterestInSolarBusiness,
		&q.DesiredMonthlyRevenue,
		&q.HelpNeededMost,
		&q.CurrentMonthlyIncome,
		&q.PriorityReason,
		&q.InvestmentWillingness,
		&q.StrategyCallCommitment,
		&q.Status,
		&q.AppointmentBooked,
		&appointmentTime,
		&closerName,
		&ghlLink,
	)
	if err != nil {
		return nil, err
	}

	if appointmentTime.Valid {
		t := appointmentTime.Time
		q.AppointmentTime = &t
	}
	if closerName.Valid {
		q.CloserName = &closerName.String
	}
	if ghlLink.Valid {
		q.GHLLink = &ghlLink.String
	}
	return &q, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
