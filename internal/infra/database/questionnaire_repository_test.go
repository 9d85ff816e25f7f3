package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/sba-tracking/internal/entity"
	"github.com/xavierca1/sba-tracking/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Discard()
	m.Run()
}

var columns = []string{
	"id", "created_at", "name", "email", "phone", "event_id",
	"entrepreneur_at_heart", "goal_with_launching", "interest_in_solar_business",
	"desired_monthly_revenue", "help_needed_most", "current_monthly_income",
	"priority_reason", "investment_willingness", "strategy_call_commitment",
	"status", "appointment_booked", "appointment_time", "closer_name", "ghl_link",
}

var createdAt = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func setupMockDB(t *testing.T) (*QuestionnaireRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewQuestionnaireRepository(db), mock
}

func rowFor(id, status string, booked bool, appointmentTime, closer, ghl any) *sqlmock.Rows {
	return sqlmock.NewRows(columns).AddRow(
		id, createdAt, "Dana Reyes", "dana@example.com", "+1 555 0100", "evt-100",
		"Yes", "Financial freedom", "Recurring revenue", "$20k+", "Lead generation",
		"$5k-$10k", "Ready to scale", "Yes", "Yes",
		status, booked, appointmentTime, closer, ghl,
	)
}

func sampleQuestionnaire() *entity.Questionnaire {
	q := entity.NewQuestionnaire(entity.Submission{
		Name:                    "Dana Reyes",
		Email:                   "dana@example.com",
		Phone:                   "+1 555 0100",
		EventID:                 "evt-100",
		EntrepreneurAtHeart:     "Yes",
		GoalWithLaunching:       "Financial freedom",
		InterestInSolarBusiness: "Recurring revenue",
		DesiredMonthlyRevenue:   "$20k+",
		HelpNeededMost:          "Lead generation",
		CurrentMonthlyIncome:    "$5k-$10k",
		PriorityReason:          "Ready to scale",
		InvestmentWillingness:   "Yes",
		StrategyCallCommitment:  "Yes",
	}, entity.Appointment{})
	q.ID = "q-1"
	q.CreatedAt = createdAt
	return q
}

func TestPing(t *testing.T) {
	repo, mock := setupMockDB(t)
	mock.ExpectPing()

	assert.NoError(t, repo.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	repo, mock := setupMockDB(t)
	q := sampleQuestionnaire()

	mock.ExpectExec(`INSERT INTO questionnaires`).
		WithArgs(
			"q-1", createdAt, "Dana Reyes", "dana@example.com", "+1 555 0100", "evt-100",
			"Yes", "Financial freedom", "Recurring revenue", "$20k+", "Lead generation",
			"$5k-$10k", "Ready to scale", "Yes", "Yes",
			"Untracked", false, nil, nil, nil,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repo.Create(context.Background(), q))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicateEventID(t *testing.T) {
	cases := map[string]error{
		"pgx": &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"},
		"pq":  &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"},
	}

	for name, driverErr := range cases {
		t.Run(name, func(t *testing.T) {
			repo, mock := setupMockDB(t)
			mock.ExpectExec(`INSERT INTO questionnaires`).WillReturnError(driverErr)

			err := repo.Create(context.Background(), sampleQuestionnaire())

			assert.ErrorIs(t, err, entity.ErrEventIDAlreadyExists)
		})
	}
}

func TestCreateOtherError(t *testing.T) {
	repo, mock := setupMockDB(t)
	dbErr := errors.New("connection reset by peer")
	mock.ExpectExec(`INSERT INTO questionnaires`).WillReturnError(dbErr)

	err := repo.Create(context.Background(), sampleQuestionnaire())

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, entity.ErrEventIDAlreadyExists)
}

func TestFindByID(t *testing.T) {
	repo, mock := setupMockDB(t)
	at := time.Date(2025, 6, 20, 17, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM questionnaires WHERE id = \$1`).
		WithArgs("q-1").
		WillReturnRows(rowFor("q-1", "Qualified Show-Up", true, at, "Sam", nil))

	q, err := repo.FindByID(context.Background(), "q-1")

	require.NoError(t, err)
	assert.Equal(t, "q-1", q.ID)
	assert.Equal(t, entity.StatusQualifiedShowUp, q.Status)
	assert.True(t, q.AppointmentBooked)
	assert.Equal(t, at, *q.AppointmentTime)
	assert.Equal(t, "Sam", *q.CloserName)
	assert.Nil(t, q.GHLLink)
	assert.Equal(t, "Ready to scale", q.PriorityReason)
}

func TestFindByEventIDNotFound(t *testing.T) {
	repo, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT .+ FROM questionnaires WHERE event_id = \$1`).
		WithArgs("evt-missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEventID(context.Background(), "evt-missing")

	assert.ErrorIs(t, err, entity.ErrQuestionnaireNotFound)
}

func TestFindAll(t *testing.T) {
	repo, mock := setupMockDB(t)
	rows := sqlmock.NewRows(columns).
		AddRow("q-2", createdAt.Add(time.Hour), "B", "b@example.com", "2", "evt-2",
			"a", "a", "a", "a", "a", "a", "a", "a", "a", "Closed", true, nil, nil, "https://ghl/2").
		AddRow("q-1", createdAt, "A", "a@example.com", "1", "evt-1",
			"a", "a", "a", "a", "a", "a", "a", "a", "a", "Untracked", false, nil, nil, nil)

	mock.ExpectQuery(`SELECT .+ FROM questionnaires ORDER BY created_at DESC`).WillReturnRows(rows)

	all, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "q-2", all[0].ID)
	assert.Equal(t, "https://ghl/2", *all[0].GHLLink)
	assert.Equal(t, entity.StatusUntracked, all[1].Status)
}

func TestFindAllRejectsUnknownStatus(t *testing.T) {
	repo, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT .+ FROM questionnaires`).
		WillReturnRows(rowFor("q-1", "Lost", false, nil, nil, nil))

	_, err := repo.FindAll(context.Background())

	assert.Error(t, err)
}

func TestUpdateByEventIDStatusOnly(t *testing.T) {
	repo, mock := setupMockDB(t)
	closed := entity.StatusClosed

	mock.ExpectQuery(`UPDATE questionnaires SET status = \$1 WHERE event_id = \$2 RETURNING`).
		WithArgs("Closed", "evt-100").
		WillReturnRows(rowFor("q-1", "Closed", false, nil, nil, nil))

	q, err := repo.UpdateByEventID(context.Background(), "evt-100", entity.QuestionnairePatch{Status: &closed})

	require.NoError(t, err)
	assert.Equal(t, entity.StatusClosed, q.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByEventIDSequentialStatuses(t *testing.T) {
	repo, mock := setupMockDB(t)
	noShow := entity.StatusNoShow
	closed := entity.StatusClosed

	mock.ExpectQuery(`UPDATE questionnaires SET status = \$1 WHERE event_id = \$2 RETURNING`).
		WithArgs("No Show", "evt-100").
		WillReturnRows(rowFor("q-1", "No Show", false, nil, nil, nil))
	mock.ExpectQuery(`UPDATE questionnaires SET status = \$1 WHERE event_id = \$2 RETURNING`).
		WithArgs("Closed", "evt-100").
		WillReturnRows(rowFor("q-1", "Closed", false, nil, nil, nil))

	first, err := repo.UpdateByEventID(context.Background(), "evt-100", entity.QuestionnairePatch{Status: &noShow})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusNoShow, first.Status)

	second, err := repo.UpdateByEventID(context.Background(), "evt-100", entity.QuestionnairePatch{Status: &closed})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusClosed, second.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByIDWritesOnlyProvidedColumns(t *testing.T) {
	repo, mock := setupMockDB(t)
	booked := true
	at := time.Date(2025, 6, 20, 17, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE questionnaires SET appointment_booked = \$1, appointment_time = \$2, closer_name = \$3 WHERE id = \$4 RETURNING`).
		WithArgs(true, at, nil, "q-1").
		WillReturnRows(rowFor("q-1", "Untracked", true, at, nil, "https://ghl/1"))

	q, err := repo.UpdateByID(context.Background(), "q-1", entity.QuestionnairePatch{
		AppointmentBooked: &booked,
		AppointmentTime:   entity.Some(at),
		CloserName:        entity.Null[string](),
	})

	require.NoError(t, err)
	assert.Nil(t, q.CloserName)
	assert.Equal(t, "https://ghl/1", *q.GHLLink, "untouched column keeps its value")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByIDNotFound(t *testing.T) {
	repo, mock := setupMockDB(t)
	link := "https://ghl/1"

	mock.ExpectQuery(`UPDATE questionnaires SET ghl_link = \$1 WHERE id = \$2`).
		WithArgs(link, "nope").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.UpdateByID(context.Background(), "nope", entity.QuestionnairePatch{GHLLink: entity.Some(link)})

	assert.ErrorIs(t, err, entity.ErrQuestionnaireNotFound)
}

func TestUpdateEmptyPatchIsLookup(t *testing.T) {
	repo, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT .+ FROM questionnaires WHERE id = \$1`).
		WithArgs("q-1").
		WillReturnRows(rowFor("q-1", "No Show", false, nil, nil, nil))

	q, err := repo.UpdateByID(context.Background(), "q-1", entity.QuestionnairePatch{})

	require.NoError(t, err)
	assert.Equal(t, entity.StatusNoShow, q.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS questionnaires`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS idx_questionnaires_created_at`).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, EnsureSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewDBConnectionRejectsUnknownDriver(t *testing.T) {
	_, err := NewDBConnection("mysql", "user@/db")
	assert.Error(t, err)
}
