package adaccounts

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-ldap/ldap/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDirectoryError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want DirectoryErrorKind
	}{
		{
			name: "nil",
			err:  nil,
			want: "",
		},
		{
			name: "entry already exists by code",
			err:  ldap.NewError(ldap.LDAPResultEntryAlreadyExists, fmt.Errorf("entry exists")),
			want: DirectoryAlreadyExists,
		},
		{
			name: "entry already exists by text",
			err:  fmt.Errorf("operation failed: ENTRY_EXISTS"),
			want: DirectoryAlreadyExists,
		},
		{
			name: "no such object",
			err:  ldap.NewError(ldap.LDAPResultNoSuchObject, fmt.Errorf("missing container")),
			want: DirectoryNoSuchObject,
		},
		{
			name: "insufficient access",
			err:  ldap.NewError(ldap.LDAPResultInsufficientAccessRights, fmt.Errorf("denied")),
			want: DirectoryInsufficientAccess,
		},
		{
			name: "server down",
			err:  ldap.NewError(ldap.LDAPResultServerDown, fmt.Errorf("connection refused")),
			want: DirectoryServerDown,
		},
		{
			name: "busy",
			err:  ldap.NewError(ldap.LDAPResultBusy, fmt.Errorf("try later")),
			want: DirectoryBusy,
		},
		{
			name: "invalid credentials",
			err:  ldap.NewError(ldap.LDAPResultInvalidCredentials, fmt.Errorf("bad bind")),
			want: DirectoryInvalidCredentials,
		},
		{
			name: "unwilling to perform",
			err:  ldap.NewError(ldap.LDAPResultUnwillingToPerform, fmt.Errorf("needs TLS")),
			want: DirectoryWillNotPerform,
		},
		{
			name: "constraint violation",
			err:  ldap.NewError(ldap.LDAPResultConstraintViolation, fmt.Errorf("policy")),
			want: DirectoryConstraint,
		},
		{
			name: "connection closed text wins over any code",
			err: ldap.NewError(ldap.LDAPResultUnwillingToPerform,
				fmt.Errorf("Connection closed before message response was received")),
			want: DirectoryConnectionClosed,
		},
		{
			name: "unknown error is generic",
			err:  fmt.Errorf("something odd happened"),
			want: DirectoryGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyDirectoryError("Test", tt.err)
			if tt.err == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, "Test", got.Op)
			assert.True(t, errors.Is(got, tt.err), "the original error must stay unwrappable")
		})
	}
}

func TestDirectoryErrorIsMatchesByKind(t *testing.T) {
	a := ClassifyDirectoryError("OpA", ldap.NewError(ldap.LDAPResultBusy, fmt.Errorf("x")))
	b := ClassifyDirectoryError("OpB", ldap.NewError(ldap.LDAPResultBusy, fmt.Errorf("y")))
	c := ClassifyDirectoryError("OpC", ldap.NewError(ldap.LDAPResultNoSuchObject, fmt.Errorf("z")))

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestClassifyAuthError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want AuthFailure
	}{
		{"invalid credentials text", fmt.Errorf("INVALID_CREDENTIALS"), AuthInvalidPassword},
		{"result code 49", fmt.Errorf("LDAP Result Code 49"), AuthInvalidPassword},
		{"user not found", fmt.Errorf("NO_SUCH_OBJECT"), AuthUserNotFound},
		{"account locked", fmt.Errorf("bind rejected, data 775"), AuthAccountLocked},
		{"password expired", fmt.Errorf("bind rejected, data 532"), AuthPasswordExpired},
		{"account disabled", fmt.Errorf("bind rejected, data 533"), AuthAccountDisabled},
		{"strong auth required", fmt.Errorf("LDAP_STRONG_AUTH_REQUIRED"), AuthStrongAuthRequired},
		{"unknown", fmt.Errorf("network unreachable"), AuthGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyAuthError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Kind)
		})
	}
}

func TestClassifyAuthErrorPrecedence(t *testing.T) {
	// A code-49 failure carrying an AD sub-code still classifies as an
	// invalid password; the sub-code patterns only apply when 49 is absent.
	got := ClassifyAuthError(fmt.Errorf("LDAP Result Code 49: data 775"))
	assert.Equal(t, AuthInvalidPassword, got.Kind)
}

func TestClassifyAuthErrorNil(t *testing.T) {
	assert.Nil(t, ClassifyAuthError(nil))
}

func TestConfigErrorMessage(t *testing.T) {
	err := NewConfigError("URL", "server URL cannot be empty")
	assert.Contains(t, err.Error(), "URL")
	assert.Contains(t, err.Error(), "server URL cannot be empty")
}
