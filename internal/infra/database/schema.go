package database

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS questionnaires (
		id                         TEXT PRIMARY KEY,
		created_at                 TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		name                       TEXT NOT NULL,
		email                      TEXT NOT NULL,
		phone                      TEXT NOT NULL,
		event_id                   TEXT NOT NULL UNIQUE,
		entrepreneur_at_heart      TEXT NOT NULL,
		goal_with_launching        TEXT NOT NULL,
		interest_in_solar_business TEXT NOT NULL,
		desired_monthly_revenue    TEXT NOT NULL,
		help_needed_most           TEXT NOT NULL,
		current_monthly_income     TEXT NOT NULL,
		priority_reason            TEXT NOT NULL,
		investment_willingness     TEXT NOT NULL,
		strategy_call_commitment   TEXT NOT NULL,
		status                     TEXT NOT NULL DEFAULT 'Untracked'
			CHECK (status IN ('Untracked', 'Qualified Show-Up', 'No Show', 'Disqualified', 'Closed')),
		appointment_booked         BOOLEAN NOT NULL DEFAULT FALSE,
		appointment_time           TIMESTAMPTZ,
		closer_name                TEXT,
		ghl_link                   TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_questionnaires_created_at ON questionnaires (created_at DESC)`,
}

// EnsureSchema creates the questionnaires table and its indexes when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
