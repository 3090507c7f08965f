package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema statements are idempotent so the API can bootstrap an empty database
// on startup without a separate migration step.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id              BIGSERIAL PRIMARY KEY,
		name            TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		product_details TEXT NOT NULL DEFAULT '',
		target_audience TEXT NOT NULL DEFAULT '',
		value_arguments TEXT NOT NULL DEFAULT '',
		approach_guide  TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive')),
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS objections (
		id             BIGSERIAL PRIMARY KEY,
		project_id     BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		objection_text TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS conversations (
		id           BIGSERIAL PRIMARY KEY,
		project_id   BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		lead_name    TEXT NOT NULL,
		lead_company TEXT NOT NULL,
		lead_source  TEXT,
		lead_notes   TEXT,
		status       TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS messages (
		id              BIGSERIAL PRIMARY KEY,
		conversation_id BIGINT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
		message_type    TEXT NOT NULL CHECK (message_type IN ('user', 'ai', 'system')),
		content         TEXT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS conversation_analytics (
		conversation_id               BIGINT PRIMARY KEY REFERENCES conversations(id) ON DELETE CASCADE,
		total_messages                BIGINT NOT NULL DEFAULT 0,
		user_messages                 BIGINT NOT NULL DEFAULT 0,
		ai_messages                   BIGINT NOT NULL DEFAULT 0,
		conversation_duration_minutes DOUBLE PRECISION,
		first_response_time_minutes   DOUBLE PRECISION,
		last_activity_at              TIMESTAMPTZ,
		refreshed_at                  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_objections_project_id ON objections(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_conversations_project_id ON conversations(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_conversations_status ON conversations(status)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_conversation_id ON messages(conversation_id)`,
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
