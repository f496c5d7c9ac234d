package adaccounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUACFromUint32(t *testing.T) {
	tests := []struct {
		name string
		raw  uint32
		want UAC
	}{
		{
			name: "normal enabled account",
			raw:  512,
			want: UAC{Raw: 512, NormalAccount: true},
		},
		{
			name: "disabled account",
			raw:  514,
			want: UAC{Raw: 514, NormalAccount: true, AccountDisabled: true},
		},
		{
			name: "new account preset",
			raw:  544,
			want: UAC{Raw: 544, NormalAccount: true, PasswordNotRequired: true},
		},
		{
			name: "locked out",
			raw:  528,
			want: UAC{Raw: 528, NormalAccount: true, Lockout: true},
		},
		{
			name: "password never expires",
			raw:  66048,
			want: UAC{Raw: 66048, NormalAccount: true, DontExpirePassword: true},
		},
		{
			name: "password expired",
			raw:  512 | 0x800000,
			want: UAC{Raw: 512 | 0x800000, NormalAccount: true, PasswordExpired: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UACFromUint32(tt.raw))
		})
	}
}

func TestUACWithDisabled(t *testing.T) {
	assert.Equal(t, uint32(514), UACFromUint32(512).WithDisabled())
	assert.Equal(t, uint32(514), UACFromUint32(514).WithDisabled(), "idempotent on already-disabled")
	assert.Equal(t, uint32(66050), UACFromUint32(66048).WithDisabled(), "unrelated flags survive")

	// Bits this package does not model must survive a disable.
	withUnknown := uint32(512 | 0x1000000)
	assert.Equal(t, withUnknown|2, UACFromUint32(withUnknown).WithDisabled())
}

func TestNewAccountControl(t *testing.T) {
	assert.Equal(t, uint32(544), newAccountControl())
}

func TestParseUAC(t *testing.T) {
	uac, err := parseUAC("514")
	require.NoError(t, err)
	assert.True(t, uac.AccountDisabled)

	_, err = parseUAC("")
	assert.Error(t, err)

	_, err = parseUAC("not-a-number")
	assert.Error(t, err)
}
