package adaccounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForceTLSURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ldap://dc01.example.com:389", "ldaps://dc01.example.com:636"},
		{"ldap://dc01.example.com", "ldaps://dc01.example.com"},
		{"ldaps://dc01.example.com:636", "ldaps://dc01.example.com:636"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, forceTLSURL(tt.in))
	}
}
