package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type tableDef struct {
	name string
	ddl  string
}

var schema = []tableDef{
	{
		name: "users",
		ddl: `CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "channels",
		ddl: `CREATE TABLE IF NOT EXISTS channels (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			owner_id UUID NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "streams",
		ddl: `CREATE TABLE IF NOT EXISTS streams (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			channel_id UUID NOT NULL REFERENCES channels(id) ON DELETE CASCADE,
			status TEXT NOT NULL DEFAULT 'scheduled'
				CHECK (status IN ('scheduled', 'live', 'ended')),
			started_at TIMESTAMPTZ,
			ended_at TIMESTAMPTZ,
			recording_path TEXT,
			transcript_path TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "viewers",
		ddl: `CREATE TABLE IF NOT EXISTS viewers (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL,
			stream_id UUID NOT NULL REFERENCES streams(id) ON DELETE CASCADE,
			joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			left_at TIMESTAMPTZ
		)`,
	},
	{
		name: "chat_messages",
		ddl: `CREATE TABLE IF NOT EXISTS chat_messages (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			stream_id UUID NOT NULL REFERENCES streams(id) ON DELETE CASCADE,
			viewer_id UUID REFERENCES viewers(id),
			message TEXT NOT NULL,
			sentiment TEXT CHECK (sentiment IN ('positive', 'negative', 'neutral')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		// Written by the external mood-analysis collaborator; read-only here.
		name: "mood_logs",
		ddl: `CREATE TABLE IF NOT EXISTS mood_logs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			stream_id UUID NOT NULL REFERENCES streams(id) ON DELETE CASCADE,
			mood TEXT NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		// Written by the external keyword-extraction collaborator; read-only here.
		name: "keywords",
		ddl: `CREATE TABLE IF NOT EXISTS keywords (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			stream_id UUID NOT NULL REFERENCES streams(id) ON DELETE CASCADE,
			keyword TEXT NOT NULL,
			frequency INTEGER NOT NULL DEFAULT 1
		)`,
	},
}

// EnsureSchema creates all tables once at process start. The extension
// must exist before the transaction; the table DDLs run inside a single
// transaction and roll back together on any failure.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS "pgcrypto"`); err != nil {
		return fmt.Errorf("failed to ensure pgcrypto extension: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, table := range schema {
		if _, err := tx.ExecContext(ctx, table.ddl); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}
