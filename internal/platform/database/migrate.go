package database

import "log"

// Schema kept inline; the service owns its two tables and no external
// migration tooling is assumed. Statements run one at a time since the
// driver's extended protocol rejects multi-statement batches.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
	    id              UUID PRIMARY KEY,
	    name            TEXT NOT NULL,
	    email           TEXT NOT NULL UNIQUE,
	    hashed_password TEXT NOT NULL,
	    role            TEXT NOT NULL DEFAULT 'user',
	    avatar          TEXT NOT NULL DEFAULT '',
	    created_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	    updated_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
	    id          UUID PRIMARY KEY,
	    title       TEXT NOT NULL,
	    description TEXT NOT NULL DEFAULT '',
	    status      TEXT NOT NULL DEFAULT 'todo',
	    priority    TEXT NOT NULL DEFAULT 'medium',
	    due_date    TIMESTAMPTZ,
	    assigned_to UUID NOT NULL REFERENCES users(id),
	    created_by  UUID NOT NULL REFERENCES users(id),
	    created_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	    updated_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_assigned_to ON tasks (assigned_to, created_at DESC)`,
}

func Migrate() {
	for _, stmt := range schema {
		if _, err := DB.Exec(stmt); err != nil {
			log.Fatalf("Error applying schema: %v", err)
		}
	}
	log.Println("Database schema ensured")
}
