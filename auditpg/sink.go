// Package auditpg persists account lifecycle audit rows to PostgreSQL.
//
// One table per stream (onboarding, offboarding), one row per attempt.
// Rows are written with the plaintext initial password so the credential
// recovery flow can read it back later.
package auditpg

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alares-it/adaccounts"
)

// Sink writes audit rows through a pgx connection pool. It satisfies
// adaccounts.AuditSink.
type Sink struct {
	pool *pgxpool.Pool
}

// New connects to the database at dsn and verifies the connection.
func New(ctx context.Context, dsn string) (*Sink, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect audit database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping audit database: %w", err)
	}
	return &Sink{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Sink) Close() {
	s.pool.Close()
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS onboarding_attempts (
	attempt_id UUID PRIMARY KEY,
	issue_key VARCHAR(64) NOT NULL,
	issue_id INTEGER NOT NULL,
	full_name VARCHAR(255) NOT NULL,
	username VARCHAR(255),
	email VARCHAR(255),
	password VARCHAR(255),
	description VARCHAR(255),
	department VARCHAR(255),
	organizational_unit VARCHAR(255),
	city VARCHAR(255),
	state VARCHAR(64),
	country VARCHAR(8),
	status VARCHAR(16) NOT NULL,
	error_message TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS offboarding_attempts (
	attempt_id UUID PRIMARY KEY,
	issue_key VARCHAR(64) NOT NULL,
	issue_id INTEGER NOT NULL,
	full_name VARCHAR(255) NOT NULL,
	username VARCHAR(255),
	email VARCHAR(255),
	password VARCHAR(255),
	description VARCHAR(255),
	department VARCHAR(255),
	organizational_unit VARCHAR(255),
	city VARCHAR(255),
	state VARCHAR(64),
	country VARCHAR(8),
	status VARCHAR(16) NOT NULL,
	error_message TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// EnsureSchema creates the audit tables when they do not exist yet.
func (s *Sink) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create audit tables: %w", err)
	}
	return nil
}

const insertAttemptSQL = `
INSERT INTO %s (
	attempt_id, issue_key, issue_id, full_name, username, email, password,
	description, department, organizational_unit, city, state, country,
	status, error_message
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`

// RecordAttempt inserts one audit row into the table matching kind.
func (s *Sink) RecordAttempt(ctx context.Context, kind adaccounts.AttemptKind, rec adaccounts.AuditRecord) error {
	table := "onboarding_attempts"
	if kind == adaccounts.AttemptOffboarding {
		table = "offboarding_attempts"
	}

	_, err := s.pool.Exec(ctx, fmt.Sprintf(insertAttemptSQL, table),
		uuid.New(),
		rec.IssueKey,
		rec.IssueID,
		rec.FullName,
		rec.Username,
		rec.Email,
		rec.Password,
		rec.Description,
		rec.Department,
		rec.OrganizationalUnit,
		rec.City,
		rec.State,
		rec.Country,
		string(rec.Status),
		rec.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("insert %s row for %s: %w", table, rec.IssueKey, err)
	}
	return nil
}
