package adaccounts

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-ldap/ldap/v3"
)

// DirectoryConn is the subset of directory operations the lifecycle core
// performs. *ldap.Conn satisfies it directly; tests substitute a stub.
//
// Unbind must be safe to call exactly once per connection and must not be
// called twice. Callers guarantee release on every exit path via defer.
type DirectoryConn interface {
	Bind(username, password string) error
	Search(req *ldap.SearchRequest) (*ldap.SearchResult, error)
	Modify(req *ldap.ModifyRequest) error
	Add(req *ldap.AddRequest) error
	Unbind() error
}

// DialFunc opens a new, unauthenticated connection to the directory server
// at url. The default implementation uses ldap.DialURL.
type DialFunc func(ctx context.Context, url string) (DirectoryConn, error)

// Config carries the connection and naming context for a Manager.
type Config struct {
	// URL of the directory server, e.g. "ldap://dc01.example.com:389".
	URL string

	// BindDN and BindPassword are the service credentials used for every
	// administrative bind.
	BindDN       string
	BindPassword string

	// BaseDN is the subtree all searches and account creations operate on,
	// e.g. "dc=GRUPOCONEXAO,dc=com,dc=br".
	BaseDN string

	// UPNSuffix is appended to resolved usernames to form the
	// userPrincipalName, e.g. "alaresinternet.com.br".
	UPNSuffix string

	// NetBIOSDomain, when set, enables the DOMAIN\username bind format
	// during authentication tests.
	NetBIOSDomain string

	// Logger receives structured operation logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Dial overrides how connections are opened. Defaults to ldap.DialURL.
	Dial DialFunc
}

func (c *Config) validate() error {
	switch {
	case c.URL == "":
		return NewConfigError("URL", "server URL cannot be empty")
	case c.BindDN == "":
		return NewConfigError("BindDN", "bind DN cannot be empty")
	case c.BindPassword == "":
		return NewConfigError("BindPassword", "bind password cannot be empty")
	case c.BaseDN == "":
		return NewConfigError("BaseDN", "base DN cannot be empty")
	}
	return nil
}

// defaultDial opens a plain go-ldap connection.
func defaultDial(ctx context.Context, url string) (DirectoryConn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	conn, err := ldap.DialURL(url)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// forceTLSURL rewrites a plain LDAP URL to its LDAPS equivalent. Password
// writes against Active Directory require an encrypted connection, so the
// TLS reset variant dials this rewritten URL regardless of the configured
// scheme.
func forceTLSURL(url string) string {
	url = strings.Replace(url, "ldap://", "ldaps://", 1)
	return strings.Replace(url, ":389", ":636", 1)
}
