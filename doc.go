// Package adaccounts implements the Active Directory account lifecycle used
// by the onboarding/offboarding automation: unique username resolution,
// password generation and policy validation, password reset with fallback
// strategies, authentication testing and account deactivation.
//
// The package talks to the directory through the small DirectoryConn
// interface, which *ldap.Conn from github.com/go-ldap/ldap/v3 satisfies
// directly. Every public operation opens its own connection and releases it
// before returning; there is no pooling and no shared connection state.
//
// # Basic Usage
//
//	mgr, err := adaccounts.NewManager(adaccounts.Config{
//		URL:          "ldap://dc01.example.com:389",
//		BindDN:       "svc-automation@example.com",
//		BindPassword: "secret",
//		BaseDN:       "dc=example,dc=com",
//		UPNSuffix:    "example.com",
//	}, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := mgr.ResetPassword(ctx, "john.doe", "")
//	if err != nil {
//		log.Printf("reset failed: %v", err)
//		return
//	}
//	fmt.Printf("new password: %s (strategy %s)\n", res.Password, res.Strategy)
//
// # Error Handling
//
// Business failures are reported through sentinel errors (ErrNotFound,
// ErrPolicyViolation, ErrInsufficientNameTokens, ...) usable with errors.Is.
// Directory transport failures are classified into *DirectoryError values
// carrying a closed DirectoryErrorKind; failed authentication tests yield
// *AuthError values with an AuthFailure kind.
package adaccounts
