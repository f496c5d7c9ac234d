package adaccounts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-ldap/ldap/v3"
)

// Sentinel errors for business-rule failures. Callers branch on these with
// errors.Is; they never carry transport details.
var (
	// ErrInvalidInput is returned when a required argument is empty or
	// malformed (missing username, missing password, empty tax ID).
	ErrInvalidInput = errors.New("invalid input")

	// ErrPolicyViolation is returned when a generated or supplied password
	// fails the directory password policy.
	ErrPolicyViolation = errors.New("password does not meet the directory policy")

	// ErrNotFound is returned when no directory entry matches the lookup.
	ErrNotFound = errors.New("account not found")

	// ErrAccountDisabled is returned when an operation refuses to proceed
	// against a disabled account.
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrInsufficientNameTokens is returned when a name has fewer than two
	// usable tokens and no username can be derived from it.
	ErrInsufficientNameTokens = errors.New("name must contain at least two tokens")

	// ErrUsernameSpaceExhausted is returned when every candidate username
	// derived from the name already exists in the directory.
	ErrUsernameSpaceExhausted = errors.New("no unique username could be derived")
)

// DirectoryErrorKind is the closed set of directory transport failure
// categories this system distinguishes.
type DirectoryErrorKind string

const (
	DirectoryConnectionClosed   DirectoryErrorKind = "connection_closed"
	DirectoryAlreadyExists      DirectoryErrorKind = "already_exists"
	DirectoryNoSuchObject       DirectoryErrorKind = "no_such_object"
	DirectoryInsufficientAccess DirectoryErrorKind = "insufficient_access"
	DirectoryServerDown         DirectoryErrorKind = "server_down"
	DirectoryBusy               DirectoryErrorKind = "busy"
	DirectoryInvalidCredentials DirectoryErrorKind = "invalid_credentials"
	DirectoryWillNotPerform     DirectoryErrorKind = "will_not_perform"
	DirectoryConstraint         DirectoryErrorKind = "constraint_violation"
	DirectoryGeneric            DirectoryErrorKind = "generic"
)

// DirectoryError wraps a transport failure with its classified kind and a
// user-facing message.
type DirectoryError struct {
	Op      string
	Kind    DirectoryErrorKind
	Message string
	Err     error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("directory %s failed (%s): %s", e.Op, e.Kind, e.Message)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// Is lets errors.Is match two DirectoryErrors by kind.
func (e *DirectoryError) Is(target error) bool {
	var de *DirectoryError
	if errors.As(target, &de) {
		return e.Kind == de.Kind
	}
	return false
}

// directoryRule maps a transport error onto a DirectoryErrorKind. A rule
// matches when the LDAP result code equals code (if non-zero) or when the
// error text contains pattern (if non-empty). Rules are evaluated in order;
// the connection-closed text match deliberately precedes all code rules.
type directoryRule struct {
	kind    DirectoryErrorKind
	code    uint16
	pattern string
	message string
}

var directoryRules = []directoryRule{
	{DirectoryConnectionClosed, 0, "Connection closed before message response was received",
		"the directory connection was closed before a response was received"},
	{DirectoryAlreadyExists, ldap.LDAPResultEntryAlreadyExists, "ENTRY_EXISTS",
		"an entry with this name already exists in the directory"},
	{DirectoryNoSuchObject, ldap.LDAPResultNoSuchObject, "NO_SUCH_OBJECT",
		"the target container or entry does not exist in the directory"},
	{DirectoryInsufficientAccess, ldap.LDAPResultInsufficientAccessRights, "INSUFFICIENT_ACCESS",
		"the service account lacks permission for this operation"},
	{DirectoryServerDown, ldap.LDAPResultServerDown, "SERVER_DOWN",
		"the directory server is unreachable"},
	{DirectoryBusy, ldap.LDAPResultBusy, "BUSY",
		"the directory server is busy, try again later"},
	{DirectoryInvalidCredentials, ldap.LDAPResultInvalidCredentials, "INVALID_CREDENTIALS",
		"the service bind credentials were rejected"},
	{DirectoryWillNotPerform, ldap.LDAPResultUnwillingToPerform, "WILL_NOT_PERFORM",
		"the directory refused the operation, check TLS and permissions"},
	{DirectoryConstraint, ldap.LDAPResultConstraintViolation, "CONSTRAINT_VIOLATION",
		"the value violates a directory constraint"},
}

// ClassifyDirectoryError maps a raw transport error to a *DirectoryError
// using the rule table above. A nil err yields nil.
func ClassifyDirectoryError(op string, err error) *DirectoryError {
	if err == nil {
		return nil
	}

	code := uint16(0)
	var ldapErr *ldap.Error
	if errors.As(err, &ldapErr) {
		code = ldapErr.ResultCode
	}
	text := err.Error()

	for _, rule := range directoryRules {
		if rule.code != 0 && rule.code == code {
			return &DirectoryError{Op: op, Kind: rule.kind, Message: rule.message, Err: err}
		}
		if rule.pattern != "" && strings.Contains(text, rule.pattern) {
			return &DirectoryError{Op: op, Kind: rule.kind, Message: rule.message, Err: err}
		}
	}

	return &DirectoryError{
		Op:      op,
		Kind:    DirectoryGeneric,
		Message: "unexpected directory failure",
		Err:     err,
	}
}

// AuthFailure is the closed set of bind failure categories reported by
// TestAuthentication.
type AuthFailure string

const (
	AuthInvalidPassword    AuthFailure = "invalid_password"
	AuthUserNotFound       AuthFailure = "user_not_found"
	AuthAccountLocked      AuthFailure = "account_locked"
	AuthPasswordExpired    AuthFailure = "password_expired"
	AuthAccountDisabled    AuthFailure = "account_disabled"
	AuthStrongAuthRequired AuthFailure = "strong_auth_required"
	AuthAccountExpired     AuthFailure = "account_expired"
	AuthGeneric            AuthFailure = "auth_failed"
)

// AuthError reports a failed authentication test with its classified cause.
type AuthError struct {
	Kind    AuthFailure
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (%s): %s", e.Kind, e.Message)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Is lets errors.Is match two AuthErrors by kind.
func (e *AuthError) Is(target error) bool {
	var ae *AuthError
	if errors.As(target, &ae) {
		return e.Kind == ae.Kind
	}
	return false
}

// authRule order mirrors the classification precedence of the reference
// behavior: invalid-credentials wins over the AD sub-code patterns, so a
// locked account that surfaces as code 49 with "data 775" still reports as
// an invalid password unless the text names the lock explicitly first.
type authRule struct {
	kind     AuthFailure
	patterns []string
	message  string
}

var authRules = []authRule{
	{AuthInvalidPassword, []string{"INVALID_CREDENTIALS", "49"}, "invalid credentials, wrong password"},
	{AuthUserNotFound, []string{"NO_SUCH_OBJECT", "32"}, "user not found in the directory"},
	{AuthAccountLocked, []string{"ACCOUNT_LOCKED", "775"}, "user account is locked"},
	{AuthPasswordExpired, []string{"PASSWORD_EXPIRED", "532"}, "password has expired"},
	{AuthAccountDisabled, []string{"ACCOUNT_DISABLED", "533"}, "user account is disabled"},
	{AuthStrongAuthRequired, []string{"LDAP_STRONG_AUTH_REQUIRED"}, "strong authentication (SSL/TLS) required"},
}

// ClassifyAuthError maps the final bind failure of an authentication test to
// a *AuthError by pattern-matching the transport error text.
func ClassifyAuthError(err error) *AuthError {
	if err == nil {
		return nil
	}

	text := err.Error()
	for _, rule := range authRules {
		for _, p := range rule.patterns {
			if strings.Contains(text, p) {
				return &AuthError{Kind: rule.kind, Message: rule.message, Err: err}
			}
		}
	}

	return &AuthError{Kind: AuthGeneric, Message: "authentication failed", Err: err}
}

// ConfigError reports an invalid Manager configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (c *ConfigError) Error() string {
	return fmt.Sprintf("configuration error in field %q: %s", c.Field, c.Message)
}

// NewConfigError creates a new configuration error.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}
