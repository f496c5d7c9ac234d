package adaccounts

import (
	"context"
	"strings"
)

// AuditStatus is the outcome recorded for an onboarding/offboarding attempt.
type AuditStatus string

const (
	AuditSuccess AuditStatus = "Success"
	AuditFailed  AuditStatus = "Failed"
)

// AttemptKind distinguishes the two audit streams.
type AttemptKind string

const (
	AttemptOnboarding  AttemptKind = "onboarding"
	AttemptOffboarding AttemptKind = "offboarding"
)

// AuditRecord is one row per lifecycle attempt. The plaintext password is
// persisted on purpose: the recovery flow reads it back when a new hire
// never received their credentials. This is an explicit business contract,
// not an oversight.
type AuditRecord struct {
	IssueKey           string
	IssueID            int
	FullName           string
	Username           string
	Email              string
	Password           string
	Description        string
	Department         string
	OrganizationalUnit string
	City               string
	State              string
	Country            string
	Status             AuditStatus
	ErrorMessage       string
}

// sanitized returns a copy with null bytes stripped from every string
// field. Directory error payloads can carry embedded NULs that the audit
// store rejects.
func (r AuditRecord) sanitized() AuditRecord {
	clean := func(s string) string { return strings.ReplaceAll(s, "\x00", "") }
	r.IssueKey = clean(r.IssueKey)
	r.FullName = clean(r.FullName)
	r.Username = clean(r.Username)
	r.Email = clean(r.Email)
	r.Password = clean(r.Password)
	r.Description = clean(r.Description)
	r.Department = clean(r.Department)
	r.OrganizationalUnit = clean(r.OrganizationalUnit)
	r.City = clean(r.City)
	r.State = clean(r.State)
	r.Country = clean(r.Country)
	r.ErrorMessage = clean(r.ErrorMessage)
	return r
}

// AuditSink persists lifecycle attempts. Implementations must tolerate
// being called after the directory operation has already concluded; sink
// failures are logged by the Manager and never propagate to the caller.
type AuditSink interface {
	RecordAttempt(ctx context.Context, kind AttemptKind, rec AuditRecord) error
}

// NopSink discards every record.
type NopSink struct{}

func (NopSink) RecordAttempt(context.Context, AttemptKind, AuditRecord) error { return nil }
