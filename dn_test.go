package adaccounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCNFromDN(t *testing.T) {
	tests := []struct {
		name string
		dn   string
		want string
	}{
		{"full dn", "CN=John Doe,OU=TI,DC=example,DC=com", "John Doe"},
		{"cn only", "CN=John Doe", "John Doe"},
		{"no cn returns input", "OU=TI,DC=example,DC=com", "OU=TI,DC=example,DC=com"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cnFromDN(tt.dn))
		})
	}
}

func TestOUSegments(t *testing.T) {
	tests := []struct {
		name           string
		dn             string
		wantDepartment string
		wantOrgUnit    string
	}{
		{
			name:           "standard account dn",
			dn:             "CN=John Doe,OU=Service Desk,OU=TI,OU=Usuarios,DC=example,DC=com",
			wantDepartment: "Service Desk",
			wantOrgUnit:    "TI",
		},
		{
			name: "too few containers",
			dn:   "CN=John Doe,OU=TI,DC=example,DC=com",
		},
		{
			name: "no containers",
			dn:   "CN=John Doe,DC=example,DC=com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			department, orgUnit := ouSegments(tt.dn)
			assert.Equal(t, tt.wantDepartment, department)
			assert.Equal(t, tt.wantOrgUnit, orgUnit)
		})
	}
}

func TestFriendlyPath(t *testing.T) {
	tests := []struct {
		name string
		dn   string
		want string
	}{
		{
			name: "drops dc and reverses",
			dn:   "CN=John Doe,OU=Service Desk,OU=TI,OU=Usuarios,DC=example,DC=com",
			want: "Usuarios/TI/Service Desk/John Doe",
		},
		{"single component", "CN=John Doe", "John Doe"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, friendlyPath(tt.dn))
		})
	}
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "12345678900", digitsOnly("123.456.789-00"))
	assert.Equal(t, "12345678900", digitsOnly("12345678900"))
	assert.Equal(t, "", digitsOnly("no digits here"))
	assert.Equal(t, "", digitsOnly(""))
}
