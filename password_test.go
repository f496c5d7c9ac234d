package adaccounts

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordPolicyValidate(t *testing.T) {
	var policy PasswordPolicy

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid generated shape", "Gomugomu125@", false},
		{"valid without digit or symbol", "Abcdefghijkl", false},
		{"too short", "Abcdef1@", true},
		{"exactly eleven characters", "Abcdefghij1", true},
		{"no uppercase", "abcdefghijk1@", true},
		{"no lowercase", "ABCDEFGHIJK1@", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Validate(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrPolicyViolation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPasswordPolicyGenerate(t *testing.T) {
	var policy PasswordPolicy

	for i := 0; i < 200; i++ {
		password := policy.Generate()

		require.Len(t, password, passwordMinLength)
		assert.NoError(t, policy.Validate(password))

		first := password[0]
		assert.True(t, first >= 'A' && first <= 'Z', "first char must be uppercase: %q", password)

		digit := password[len(password)-2]
		assert.True(t, strings.ContainsRune(passwordDigits, rune(digit)), "penultimate char must be a digit: %q", password)

		symbol := password[len(password)-1]
		assert.True(t, strings.ContainsRune(passwordSymbols, rune(symbol)), "last char must be a symbol: %q", password)
	}
}

func TestPasswordPolicyGenerateInitial(t *testing.T) {
	var policy PasswordPolicy

	for i := 0; i < 200; i++ {
		password := policy.GenerateInitial()

		require.Len(t, password, passwordMinLength)
		assert.NoError(t, policy.Validate(password))

		assert.True(t, password[0] >= 'A' && password[0] <= 'Z', "first char must be uppercase: %q", password)
		for j := 1; j < 10; j++ {
			assert.True(t, password[j] >= 'a' && password[j] <= 'z', "char %d must be lowercase: %q", j, password)
		}
		assert.True(t, strings.ContainsRune(passwordDigits, rune(password[10])), "char 10 must be a digit: %q", password)
		assert.True(t, strings.ContainsRune(initialPasswordSymbols, rune(password[11])), "last char must be @, # or !: %q", password)
	}
}

func TestPasswordPolicyEncode(t *testing.T) {
	var policy PasswordPolicy

	encoded, err := policy.Encode("Secret1@")
	require.NoError(t, err)

	want := []byte{
		'"', 0x00,
		'S', 0x00, 'e', 0x00, 'c', 0x00, 'r', 0x00,
		'e', 0x00, 't', 0x00, '1', 0x00, '@', 0x00,
		'"', 0x00,
	}
	assert.Equal(t, want, []byte(encoded))
}

func TestPasswordPolicyEncodeQuotesAlways(t *testing.T) {
	var policy PasswordPolicy

	encoded, err := policy.Encode("")
	require.NoError(t, err)
	assert.Equal(t, []byte{'"', 0x00, '"', 0x00}, []byte(encoded))
}
