package adaccounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-ldap/ldap/v3"
)

// Manager orchestrates the account lifecycle operations. Each public method
// opens its own directory connection, performs a short synchronous sequence
// of round-trips and releases the connection before returning; concurrent
// calls never share connection state.
type Manager struct {
	config   Config
	sink     AuditSink
	policy   PasswordPolicy
	resolver *UsernameResolver
	logger   *slog.Logger
	dial     DialFunc
}

// NewManager validates the configuration and builds a Manager. A nil sink
// disables audit persistence.
func NewManager(config Config, sink AuditSink) (*Manager, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	dial := config.Dial
	if dial == nil {
		dial = defaultDial
	}
	if sink == nil {
		sink = NopSink{}
	}

	return &Manager{
		config:   config,
		sink:     sink,
		resolver: &UsernameResolver{BaseDN: config.BaseDN, Logger: logger},
		logger:   logger,
		dial:     dial,
	}, nil
}

// connect dials url and binds with the service credentials. On bind failure
// the freshly opened connection is released before the error is returned, so
// callers only ever own fully established connections.
func (m *Manager) connect(ctx context.Context, url string) (DirectoryConn, error) {
	conn, err := m.dial(ctx, url)
	if err != nil {
		m.logger.Error("directory_dial_failed",
			slog.String("url", url),
			slog.String("error", err.Error()))
		return nil, ClassifyDirectoryError("Dial", err)
	}

	if err := conn.Bind(m.config.BindDN, m.config.BindPassword); err != nil {
		m.unbind(conn)
		m.logger.Error("directory_service_bind_failed",
			slog.String("url", url),
			slog.String("error", err.Error()))
		return nil, ClassifyDirectoryError("Bind", err)
	}

	return conn, nil
}

// unbind releases a connection. Release failures are logged and swallowed
// so they never mask the primary operation's outcome.
func (m *Manager) unbind(conn DirectoryConn) {
	if err := conn.Unbind(); err != nil {
		m.logger.Warn("directory_unbind_failed", slog.String("error", err.Error()))
	}
}

// findAccount searches the subtree for an exact sAMAccountName match.
func (m *Manager) findAccount(conn DirectoryConn, username string, attrs []string) (*ldap.Entry, error) {
	res, err := conn.Search(&ldap.SearchRequest{
		BaseDN:       m.config.BaseDN,
		Scope:        ldap.ScopeWholeSubtree,
		DerefAliases: ldap.NeverDerefAliases,
		Filter:       fmt.Sprintf("(&(objectClass=user)(sAMAccountName=%s))", ldap.EscapeFilter(username)),
		Attributes:   attrs,
	})
	if err != nil {
		return nil, ClassifyDirectoryError("FindAccount", err)
	}
	if len(res.Entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, username)
	}
	return res.Entries[0], nil
}

// recordAttempt persists an audit row, fire-and-forget: sink failures are
// logged as warnings and never propagate.
func (m *Manager) recordAttempt(ctx context.Context, kind AttemptKind, rec AuditRecord) {
	if err := m.sink.RecordAttempt(ctx, kind, rec.sanitized()); err != nil {
		m.logger.Warn("audit_record_failed",
			slog.String("kind", string(kind)),
			slog.String("issue_key", rec.IssueKey),
			slog.String("error", err.Error()))
	}
}

// AccountAttributes is the canonical attribute record produced by the
// intake transformation for a new account.
type AccountAttributes struct {
	IssueKey string
	IssueID  int

	FullName string
	// NameTokens is the particle-filtered token sequence (see SplitName)
	// the username is derived from.
	NameTokens []string
	FirstName  string
	LastName   string

	// TaxID is the cleaned tax-ID-plus-mask string stored in the
	// description attribute for later offboarding lookups.
	TaxID string

	Title              string
	Company            string
	Department         string
	OrganizationalUnit string
	// Manager is the manager's account name; the manager's DN is resolved
	// by prefix search and left empty when not found.
	Manager string
	City    string
	State   string

	InitialPassword string
}

// CreatedAccount describes a successfully provisioned account. Password is
// the plaintext initial password, returned exactly once.
type CreatedAccount struct {
	DN        string
	Username  string
	Email     string
	Password  string
	ManagerDN string
}

// CreateAccount provisions a new directory account: resolves a unique
// username, resolves the manager's DN (non-fatal when absent), composes the
// DN under the configured base and issues the Add. Success and failure are
// both recorded to the audit sink; failures are returned as classified
// errors after recording.
func (m *Manager) CreateAccount(ctx context.Context, attrs AccountAttributes) (*CreatedAccount, error) {
	start := time.Now()

	if attrs.FullName == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}

	conn, err := m.connect(ctx, m.config.URL)
	if err != nil {
		m.recordAttempt(ctx, AttemptOnboarding, m.onboardingRecord(attrs, "", "", AuditFailed, err))
		return nil, err
	}
	defer m.unbind(conn)

	username, err := m.resolver.Resolve(conn, attrs.NameTokens)
	if err != nil {
		m.recordAttempt(ctx, AttemptOnboarding, m.onboardingRecord(attrs, "", "", AuditFailed, err))
		return nil, err
	}

	managerDN := m.lookupManagerDN(conn, attrs.Manager)
	email := username + "@" + m.config.UPNSuffix
	dn := fmt.Sprintf("CN=%s,OU=%s,OU=%s,OU=Usuarios,%s",
		attrs.FullName, attrs.Department, attrs.OrganizationalUnit, m.config.BaseDN)

	add := ldap.NewAddRequest(dn, nil)
	add.Attribute("objectClass", []string{"User", "top", "person", "organizationalPerson"})
	add.Attribute("cn", []string{attrs.FullName})
	add.Attribute("name", []string{attrs.FullName})
	add.Attribute("displayName", []string{attrs.FullName})
	add.Attribute("givenName", []string{attrs.FirstName})
	add.Attribute("sn", []string{attrs.LastName})
	add.Attribute("uid", []string{attrs.LastName})
	add.Attribute("sAMAccountName", []string{username})
	add.Attribute("userPrincipalName", []string{email})
	add.Attribute("description", []string{attrs.TaxID})
	add.Attribute("title", []string{attrs.Title})
	add.Attribute("company", []string{attrs.Company})
	add.Attribute("department", []string{attrs.Department})
	add.Attribute("l", []string{attrs.City})
	add.Attribute("st", []string{attrs.State})
	add.Attribute("c", []string{"BR"})
	add.Attribute("userAccountControl", []string{strconv.FormatUint(uint64(newAccountControl()), 10)})
	add.Attribute("userPassword", []string{attrs.InitialPassword})
	if managerDN != "" {
		add.Attribute("manager", []string{managerDN})
	}

	if err := conn.Add(add); err != nil {
		derr := ClassifyDirectoryError("CreateAccount", err)
		m.logger.Error("account_creation_failed",
			slog.String("issue_key", attrs.IssueKey),
			slog.String("username", username),
			slog.String("dn", dn),
			slog.String("kind", string(derr.Kind)),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		m.recordAttempt(ctx, AttemptOnboarding, m.onboardingRecord(attrs, username, email, AuditFailed, derr))
		return nil, derr
	}

	m.logger.Info("account_created",
		slog.String("issue_key", attrs.IssueKey),
		slog.String("username", username),
		slog.String("dn", dn),
		slog.Duration("duration", time.Since(start)))
	m.recordAttempt(ctx, AttemptOnboarding, m.onboardingRecord(attrs, username, email, AuditSuccess, nil))

	return &CreatedAccount{
		DN:        dn,
		Username:  username,
		Email:     email,
		Password:  attrs.InitialPassword,
		ManagerDN: managerDN,
	}, nil
}

func (m *Manager) onboardingRecord(attrs AccountAttributes, username, email string, status AuditStatus, opErr error) AuditRecord {
	rec := AuditRecord{
		IssueKey:           attrs.IssueKey,
		IssueID:            attrs.IssueID,
		FullName:           attrs.FullName,
		Username:           username,
		Email:              email,
		Password:           attrs.InitialPassword,
		Description:        attrs.TaxID,
		Department:         attrs.Department,
		OrganizationalUnit: attrs.OrganizationalUnit,
		City:               attrs.City,
		State:              attrs.State,
		Country:            "BR",
		Status:             status,
	}
	if opErr != nil {
		var derr *DirectoryError
		if errors.As(opErr, &derr) {
			rec.ErrorMessage = derr.Message
		} else {
			rec.ErrorMessage = opErr.Error()
		}
	}
	return rec
}

// lookupManagerDN resolves a manager account name to its DN via prefix
// search. Lookup failures are non-fatal: the account is created without a
// manager reference.
func (m *Manager) lookupManagerDN(conn DirectoryConn, managerAccount string) string {
	if managerAccount == "" {
		return ""
	}

	res, err := conn.Search(&ldap.SearchRequest{
		BaseDN:       m.config.BaseDN,
		Scope:        ldap.ScopeWholeSubtree,
		DerefAliases: ldap.NeverDerefAliases,
		Filter:       fmt.Sprintf("(&(objectClass=user)(sAMAccountName=%s*))", ldap.EscapeFilter(managerAccount)),
		Attributes:   []string{"sAMAccountName"},
	})
	if err != nil || len(res.Entries) == 0 {
		m.logger.Warn("manager_lookup_failed",
			slog.String("manager", managerAccount))
		return ""
	}
	return res.Entries[0].DN
}

// ResetStrategy identifies which of the fallback password-write strategies
// succeeded.
type ResetStrategy string

const (
	StrategyUnicodeReplace ResetStrategy = "unicodePwd_replace"
	StrategyPlainReplace   ResetStrategy = "userPassword_replace"
	StrategyUnicodeRewrite ResetStrategy = "unicodePwd_delete_add"
)

// ResetResult reports a completed password reset. Password carries the
// plaintext exactly once; secure transport from here on is the caller's
// responsibility.
type ResetResult struct {
	Username string
	DN       string
	Password string
	Strategy ResetStrategy
	// ForcedChangeAtLogon is true when the account was marked to require a
	// password change at next logon (plain variant only; the TLS variant
	// waives it).
	ForcedChangeAtLogon bool
}

// ResetPassword resets an account password over the configured connection
// URL. An empty newPassword generates a policy-compliant one. Resets are
// refused for disabled accounts on this path.
func (m *Manager) ResetPassword(ctx context.Context, username, newPassword string) (*ResetResult, error) {
	return m.resetPassword(ctx, username, newPassword, false)
}

// ResetPasswordTLS behaves like ResetPassword but rewrites the connection
// URL to force LDAPS on port 636 before binding, and waives the mandatory
// password change at next logon instead of forcing it.
func (m *Manager) ResetPasswordTLS(ctx context.Context, username, newPassword string) (*ResetResult, error) {
	return m.resetPassword(ctx, username, newPassword, true)
}

func (m *Manager) resetPassword(ctx context.Context, username, newPassword string, forceTLS bool) (*ResetResult, error) {
	start := time.Now()

	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	password := newPassword
	if password == "" {
		password = m.policy.Generate()
	}
	if err := m.policy.Validate(password); err != nil {
		return nil, err
	}

	url := m.config.URL
	if forceTLS {
		url = forceTLSURL(url)
	}

	conn, err := m.connect(ctx, url)
	if err != nil {
		return nil, err
	}
	defer m.unbind(conn)

	entry, err := m.findAccount(conn, username, []string{"sAMAccountName", "userPrincipalName", "userAccountControl"})
	if err != nil {
		return nil, err
	}

	if !forceTLS {
		if uac, err := parseUAC(entry.GetAttributeValue("userAccountControl")); err == nil && uac.AccountDisabled {
			return nil, fmt.Errorf("%w: password reset refused for %s", ErrAccountDisabled, username)
		}
	}

	strategy, err := m.applyPasswordChange(conn, entry.DN, password)
	if err != nil {
		m.logger.Error("password_reset_failed",
			slog.String("username", username),
			slog.String("dn", entry.DN),
			slog.Bool("tls_forced", forceTLS),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return nil, err
	}

	m.setPwdLastSet(conn, entry.DN, forceTLS)

	m.logger.Info("password_reset_successful",
		slog.String("username", username),
		slog.String("dn", entry.DN),
		slog.String("strategy", string(strategy)),
		slog.Bool("tls_forced", forceTLS),
		slog.Duration("duration", time.Since(start)))

	return &ResetResult{
		Username:            username,
		DN:                  entry.DN,
		Password:            password,
		Strategy:            strategy,
		ForcedChangeAtLogon: !forceTLS,
	}, nil
}

// applyPasswordChange attempts the three password-write strategies in
// strict order, stopping at the first success: replace unicodePwd, replace
// userPassword, delete+add unicodePwd. These are three semantically
// different operations, not retries of one; when all three fail the last
// error is surfaced.
func (m *Manager) applyPasswordChange(conn DirectoryConn, dn, password string) (ResetStrategy, error) {
	encoded, err := m.policy.Encode(password)
	if err != nil {
		return "", fmt.Errorf("encode password: %w", err)
	}

	replace := ldap.NewModifyRequest(dn, nil)
	replace.Replace("unicodePwd", []string{encoded})
	err = conn.Modify(replace)
	if err == nil {
		return StrategyUnicodeReplace, nil
	}
	m.logger.Debug("password_strategy_failed",
		slog.String("strategy", string(StrategyUnicodeReplace)),
		slog.String("error", err.Error()))

	plain := ldap.NewModifyRequest(dn, nil)
	plain.Replace("userPassword", []string{password})
	err = conn.Modify(plain)
	if err == nil {
		return StrategyPlainReplace, nil
	}
	m.logger.Debug("password_strategy_failed",
		slog.String("strategy", string(StrategyPlainReplace)),
		slog.String("error", err.Error()))

	rewrite := ldap.NewModifyRequest(dn, nil)
	rewrite.Delete("unicodePwd", []string{})
	rewrite.Add("unicodePwd", []string{encoded})
	err = conn.Modify(rewrite)
	if err == nil {
		return StrategyUnicodeRewrite, nil
	}

	return "", ClassifyDirectoryError("ResetPassword", err)
}

// setPwdLastSet writes the pwdLastSet marker after a successful reset:
// "0" forces a password change at next logon, "-1" waives it (TLS
// variant). Best effort: a failure here is logged and never fails the
// reset.
func (m *Manager) setPwdLastSet(conn DirectoryConn, dn string, waive bool) {
	value := "0"
	if waive {
		value = "-1"
	}

	req := ldap.NewModifyRequest(dn, nil)
	req.Replace("pwdLastSet", []string{value})
	if err := conn.Modify(req); err != nil {
		m.logger.Warn("pwd_last_set_update_failed",
			slog.String("dn", dn),
			slog.String("value", value),
			slog.String("error", err.Error()))
	}
}

// AuthResult reports a successful authentication test.
type AuthResult struct {
	Username    string
	Email       string
	DisplayName string
	DN          string
	// BindPrincipal is the identity format that finally bound: the DN, the
	// account name, the UPN or DOMAIN\name.
	BindPrincipal   string
	Elapsed         time.Duration
	PasswordLastSet time.Time
}

// TestAuthentication verifies a user's credentials. The account is first
// resolved and vetted with the service connection (disabled, locked and
// expired accounts are rejected before any bind as the user), then a second
// connection attempts to bind as the user with each candidate identity
// format in turn. The failure of the final attempt is classified into a
// typed *AuthError.
func (m *Manager) TestAuthentication(ctx context.Context, username, password string) (*AuthResult, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	entry, err := m.fetchAccountForAuth(ctx, username)
	if err != nil {
		return nil, err
	}

	if uac, err := parseUAC(entry.GetAttributeValue("userAccountControl")); err == nil {
		if uac.AccountDisabled {
			return nil, &AuthError{Kind: AuthAccountDisabled, Message: "user account is disabled"}
		}
		if uac.Lockout {
			return nil, &AuthError{Kind: AuthAccountLocked, Message: "user account is locked"}
		}
	}
	if accountExpired(entry.GetAttributeValue("accountExpires"), time.Now()) {
		return nil, &AuthError{Kind: AuthAccountExpired, Message: "user account has expired"}
	}

	principals := bindPrincipals(entry, username, m.config.NetBIOSDomain)

	conn, err := m.dial(ctx, m.config.URL)
	if err != nil {
		return nil, ClassifyDirectoryError("TestAuthentication", err)
	}
	defer m.unbind(conn)

	var lastErr error
	for _, principal := range principals {
		bindStart := time.Now()
		if err := conn.Bind(principal, password); err != nil {
			lastErr = err
			m.logger.Debug("authentication_format_failed",
				slog.String("username", username),
				slog.String("principal", principal),
				slog.String("error", err.Error()))
			continue
		}

		elapsed := time.Since(bindStart)
		m.logger.Info("authentication_successful",
			slog.String("username", username),
			slog.String("principal", principal),
			slog.Duration("bind_time", elapsed))

		return &AuthResult{
			Username:        entry.GetAttributeValue("sAMAccountName"),
			Email:           entry.GetAttributeValue("userPrincipalName"),
			DisplayName:     entry.GetAttributeValue("displayName"),
			DN:              entry.DN,
			BindPrincipal:   principal,
			Elapsed:         elapsed,
			PasswordLastSet: pwdLastSetTime(entry.GetAttributeValue("pwdLastSet")),
		}, nil
	}

	authErr := ClassifyAuthError(lastErr)
	m.logger.Warn("authentication_failed",
		slog.String("username", username),
		slog.String("kind", string(authErr.Kind)),
		slog.Int("formats_tried", len(principals)))
	return nil, authErr
}

// fetchAccountForAuth resolves the target account with a dedicated service
// connection, released before the bind-as-user connection is opened.
func (m *Manager) fetchAccountForAuth(ctx context.Context, username string) (*ldap.Entry, error) {
	conn, err := m.connect(ctx, m.config.URL)
	if err != nil {
		return nil, err
	}
	defer m.unbind(conn)

	return m.findAccount(conn, username, []string{
		"sAMAccountName", "userPrincipalName", "displayName",
		"userAccountControl", "accountExpires", "pwdLastSet", "lockoutTime",
	})
}

// bindPrincipals lists the candidate identity formats for a user bind, in
// attempt order: DN, account name, UPN, DOMAIN\name. Empty and duplicate
// values are dropped.
func bindPrincipals(entry *ldap.Entry, username, netbiosDomain string) []string {
	candidates := []string{
		entry.DN,
		entry.GetAttributeValue("sAMAccountName"),
		entry.GetAttributeValue("userPrincipalName"),
	}
	if netbiosDomain != "" {
		candidates = append(candidates, netbiosDomain+"\\"+username)
	}

	seen := make(map[string]struct{}, len(candidates))
	principals := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		principals = append(principals, c)
	}
	return principals
}

// DeactivateResult reports an account deactivation. AlreadyDisabled marks
// the idempotent no-op case.
type DeactivateResult struct {
	Username        string
	DN              string
	AlreadyDisabled bool
}

// Deactivate disables an account by exact account name. Disabling an
// already-disabled account is a no-op success and issues no write.
func (m *Manager) Deactivate(ctx context.Context, username string) (*DeactivateResult, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	conn, err := m.connect(ctx, m.config.URL)
	if err != nil {
		return nil, err
	}
	defer m.unbind(conn)

	entry, err := m.findAccount(conn, username, []string{"userAccountControl"})
	if err != nil {
		return nil, err
	}

	res, err := m.disableEntry(conn, entry, username)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// OffboardingIssue identifies an offboarding request whose only account
// identifier is the tax ID embedded in the description attribute at
// onboarding time.
type OffboardingIssue struct {
	IssueKey string
	IssueID  int
	TaxID    string
}

// DeactivateByTaxID disables the account whose description starts with the
// digits of the issue's tax ID, and records the attempt (success or
// failure) to the audit sink including the department and organizational
// unit derived from the account's DN.
func (m *Manager) DeactivateByTaxID(ctx context.Context, issue OffboardingIssue) (*DeactivateResult, error) {
	digits := digitsOnly(issue.TaxID)
	if digits == "" {
		return nil, fmt.Errorf("%w: tax ID is required", ErrInvalidInput)
	}

	conn, err := m.connect(ctx, m.config.URL)
	if err != nil {
		return nil, err
	}
	defer m.unbind(conn)

	res, err := conn.Search(&ldap.SearchRequest{
		BaseDN:       m.config.BaseDN,
		Scope:        ldap.ScopeWholeSubtree,
		DerefAliases: ldap.NeverDerefAliases,
		Filter:       fmt.Sprintf("(&(objectClass=user)(description=%s*))", ldap.EscapeFilter(digits)),
		Attributes: []string{
			"userAccountControl", "sAMAccountName", "userPrincipalName",
			"description", "l", "st", "c", "name",
		},
	})
	if err != nil {
		return nil, ClassifyDirectoryError("DeactivateByTaxID", err)
	}
	if len(res.Entries) == 0 {
		return nil, fmt.Errorf("%w: no account with description prefix %s", ErrNotFound, digits)
	}

	entry := res.Entries[0]
	department, orgUnit := ouSegments(entry.DN)

	result, err := m.disableEntry(conn, entry, entry.GetAttributeValue("sAMAccountName"))
	if err != nil {
		m.recordAttempt(ctx, AttemptOffboarding,
			offboardingRecord(issue, entry, department, orgUnit, AuditFailed, err))
		return nil, err
	}
	if result.AlreadyDisabled {
		return result, nil
	}

	m.recordAttempt(ctx, AttemptOffboarding,
		offboardingRecord(issue, entry, department, orgUnit, AuditSuccess, nil))
	return result, nil
}

// disableEntry ORs the disable bit into the entry's userAccountControl,
// preserving all other flags. Already-disabled entries return immediately
// with no write.
func (m *Manager) disableEntry(conn DirectoryConn, entry *ldap.Entry, username string) (*DeactivateResult, error) {
	uac, err := parseUAC(entry.GetAttributeValue("userAccountControl"))
	if err != nil {
		return nil, fmt.Errorf("parse userAccountControl for %s: %w", username, err)
	}

	if uac.AccountDisabled {
		m.logger.Info("account_already_disabled",
			slog.String("username", username),
			slog.String("dn", entry.DN))
		return &DeactivateResult{Username: username, DN: entry.DN, AlreadyDisabled: true}, nil
	}

	req := ldap.NewModifyRequest(entry.DN, nil)
	req.Replace("userAccountControl", []string{strconv.FormatUint(uint64(uac.WithDisabled()), 10)})
	if err := conn.Modify(req); err != nil {
		derr := ClassifyDirectoryError("Deactivate", err)
		m.logger.Error("account_deactivation_failed",
			slog.String("username", username),
			slog.String("dn", entry.DN),
			slog.String("error", err.Error()))
		return nil, derr
	}

	m.logger.Info("account_deactivated",
		slog.String("username", username),
		slog.String("dn", entry.DN))
	return &DeactivateResult{Username: username, DN: entry.DN}, nil
}

func offboardingRecord(issue OffboardingIssue, entry *ldap.Entry, department, orgUnit string, status AuditStatus, opErr error) AuditRecord {
	fullName := entry.GetAttributeValue("name")
	if fullName == "" {
		fullName = cnFromDN(entry.DN)
	}

	rec := AuditRecord{
		IssueKey:           issue.IssueKey,
		IssueID:            issue.IssueID,
		FullName:           fullName,
		Username:           entry.GetAttributeValue("sAMAccountName"),
		Email:              entry.GetAttributeValue("userPrincipalName"),
		Password:           "password",
		Description:        entry.GetAttributeValue("description"),
		Department:         department,
		OrganizationalUnit: orgUnit,
		City:               entry.GetAttributeValue("l"),
		State:              entry.GetAttributeValue("st"),
		Country:            entry.GetAttributeValue("c"),
		Status:             status,
	}
	if opErr != nil {
		rec.ErrorMessage = opErr.Error()
	}
	return rec
}

// AccountInfo is the read-model returned by LookupAccount.
type AccountInfo struct {
	Username    string
	Email       string
	DisplayName string
	DN          string
	// Path is the DN rendered as a friendly container path without the DC
	// components, e.g. "Usuarios/TI/Service Desk/John Doe".
	Path       string
	ManagerCN  string
	Department string
	Enabled    bool
}

// LookupAccount fetches an account by account-name prefix and returns a
// friendly view of it: container path instead of raw DN, manager CN instead
// of manager DN.
func (m *Manager) LookupAccount(ctx context.Context, username string) (*AccountInfo, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	conn, err := m.connect(ctx, m.config.URL)
	if err != nil {
		return nil, err
	}
	defer m.unbind(conn)

	res, err := conn.Search(&ldap.SearchRequest{
		BaseDN:       m.config.BaseDN,
		Scope:        ldap.ScopeWholeSubtree,
		DerefAliases: ldap.NeverDerefAliases,
		Filter:       fmt.Sprintf("(&(objectClass=user)(sAMAccountName=%s*))", ldap.EscapeFilter(username)),
		Attributes: []string{
			"sAMAccountName", "userPrincipalName", "displayName",
			"department", "manager", "userAccountControl",
		},
	})
	if err != nil {
		return nil, ClassifyDirectoryError("LookupAccount", err)
	}
	if len(res.Entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, username)
	}

	entry := res.Entries[0]
	enabled := true
	if uac, err := parseUAC(entry.GetAttributeValue("userAccountControl")); err == nil {
		enabled = !uac.AccountDisabled
	}

	return &AccountInfo{
		Username:    entry.GetAttributeValue("sAMAccountName"),
		Email:       entry.GetAttributeValue("userPrincipalName"),
		DisplayName: entry.GetAttributeValue("displayName"),
		DN:          entry.DN,
		Path:        friendlyPath(entry.DN),
		ManagerCN:   cnFromDN(entry.GetAttributeValue("manager")),
		Department:  entry.GetAttributeValue("department"),
		Enabled:     enabled,
	}, nil
}
