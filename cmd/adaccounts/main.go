// Command adaccounts drives the account lifecycle operations from the
// terminal: create, reset, test-auth, deactivate, offboard and lookup.
//
// Configuration comes from the environment, optionally loaded from a
// dotenv file named by -env. Results are printed as indented JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/alares-it/adaccounts"
	"github.com/alares-it/adaccounts/auditpg"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: adaccounts [-env FILE] [-v] COMMAND [ARGS]

Commands:
  create       provision a new account
  reset        reset an account password (forces change at next logon)
  reset-tls    reset an account password over LDAPS (no forced change)
  test-auth    verify a user's credentials
  deactivate   disable an account by account name
  offboard     disable an account by tax ID, recording an audit row
  lookup       show a friendly view of an account

Environment:
  LDAP_URL, LDAP_USERNAME, LDAP_PASSWORD, LDAP_BASE_DN,
  LDAP_UPN_SUFFIX, LDAP_DOMAIN, DATABASE_URL (optional)
`)
	os.Exit(2)
}

func loadConfig(envFile string, logger *slog.Logger) (adaccounts.Config, string) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			logger.Error("env_file_load_failed", slog.String("file", envFile), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	return adaccounts.Config{
		URL:           os.Getenv("LDAP_URL"),
		BindDN:        os.Getenv("LDAP_USERNAME"),
		BindPassword:  os.Getenv("LDAP_PASSWORD"),
		BaseDN:        os.Getenv("LDAP_BASE_DN"),
		UPNSuffix:     os.Getenv("LDAP_UPN_SUFFIX"),
		NetBIOSDomain: os.Getenv("LDAP_DOMAIN"),
		Logger:        logger,
	}, os.Getenv("DATABASE_URL")
}

func main() {
	envFile := flag.String("env", "", "dotenv file to load before reading the environment")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	config, databaseURL := loadConfig(*envFile, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var sink adaccounts.AuditSink
	if databaseURL != "" {
		pgSink, err := auditpg.New(ctx, databaseURL)
		if err != nil {
			fatal(logger, err)
		}
		defer pgSink.Close()
		if err := pgSink.EnsureSchema(ctx); err != nil {
			fatal(logger, err)
		}
		sink = pgSink
	}

	manager, err := adaccounts.NewManager(config, sink)
	if err != nil {
		fatal(logger, err)
	}

	if err := run(ctx, manager, flag.Arg(0), flag.Args()[1:]); err != nil {
		fatal(logger, err)
	}
}

func run(ctx context.Context, manager *adaccounts.Manager, command string, args []string) error {
	switch command {
	case "create":
		return runCreate(ctx, manager, args)
	case "reset":
		return runReset(ctx, manager, args, false)
	case "reset-tls":
		return runReset(ctx, manager, args, true)
	case "test-auth":
		return runTestAuth(ctx, manager, args)
	case "deactivate":
		return runDeactivate(ctx, manager, args)
	case "offboard":
		return runOffboard(ctx, manager, args)
	case "lookup":
		return runLookup(ctx, manager, args)
	default:
		usage()
		return nil
	}
}

func runCreate(ctx context.Context, manager *adaccounts.Manager, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	issueKey := fs.String("issue", "", "issue key of the onboarding request")
	issueID := fs.Int("issue-id", 0, "numeric issue id")
	fullName := fs.String("name", "", "employee full name")
	taxID := fs.String("tax-id", "", "employee tax ID")
	title := fs.String("title", "", "job title")
	company := fs.String("company", "", "company name")
	department := fs.String("department", "", "department OU")
	orgUnit := fs.String("org-unit", "", "organizational unit OU")
	managerName := fs.String("manager", "", "manager account name")
	city := fs.String("city", "", "city")
	state := fs.String("state", "", "state abbreviation")
	fs.Parse(args)

	tokens := adaccounts.SplitName(*fullName)
	if len(tokens) < 2 {
		return fmt.Errorf("-name must contain at least a first and a last name")
	}

	var policy adaccounts.PasswordPolicy
	attrs := adaccounts.AccountAttributes{
		IssueKey:           *issueKey,
		IssueID:            *issueID,
		FullName:           *fullName,
		NameTokens:         tokens,
		FirstName:          tokens[0],
		LastName:           tokens[len(tokens)-1],
		TaxID:              *taxID,
		Title:              *title,
		Company:            *company,
		Department:         *department,
		OrganizationalUnit: *orgUnit,
		Manager:            *managerName,
		City:               *city,
		State:              *state,
		InitialPassword:    policy.GenerateInitial(),
	}

	created, err := manager.CreateAccount(ctx, attrs)
	if err != nil {
		return err
	}
	return printJSON(created)
}

func runReset(ctx context.Context, manager *adaccounts.Manager, args []string, tls bool) error {
	fs := flag.NewFlagSet("reset", flag.ExitOnError)
	username := fs.String("user", "", "account name")
	password := fs.String("password", "", "new password (generated when empty)")
	fs.Parse(args)

	var result *adaccounts.ResetResult
	var err error
	if tls {
		result, err = manager.ResetPasswordTLS(ctx, *username, *password)
	} else {
		result, err = manager.ResetPassword(ctx, *username, *password)
	}
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runTestAuth(ctx context.Context, manager *adaccounts.Manager, args []string) error {
	fs := flag.NewFlagSet("test-auth", flag.ExitOnError)
	username := fs.String("user", "", "account name")
	password := fs.String("password", "", "password to verify")
	fs.Parse(args)

	result, err := manager.TestAuthentication(ctx, *username, *password)
	if err != nil {
		var authErr *adaccounts.AuthError
		if errors.As(err, &authErr) {
			return printJSON(map[string]string{
				"authenticated": "false",
				"kind":          string(authErr.Kind),
				"message":       authErr.Message,
			})
		}
		return err
	}
	return printJSON(result)
}

func runDeactivate(ctx context.Context, manager *adaccounts.Manager, args []string) error {
	fs := flag.NewFlagSet("deactivate", flag.ExitOnError)
	username := fs.String("user", "", "account name")
	fs.Parse(args)

	result, err := manager.Deactivate(ctx, *username)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runOffboard(ctx context.Context, manager *adaccounts.Manager, args []string) error {
	fs := flag.NewFlagSet("offboard", flag.ExitOnError)
	issueKey := fs.String("issue", "", "issue key of the offboarding request")
	issueID := fs.Int("issue-id", 0, "numeric issue id")
	taxID := fs.String("tax-id", "", "employee tax ID (any formatting)")
	fs.Parse(args)

	result, err := manager.DeactivateByTaxID(ctx, adaccounts.OffboardingIssue{
		IssueKey: *issueKey,
		IssueID:  *issueID,
		TaxID:    *taxID,
	})
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runLookup(ctx context.Context, manager *adaccounts.Manager, args []string) error {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	username := fs.String("user", "", "account name or prefix")
	fs.Parse(args)

	info, err := manager.LookupAccount(ctx, *username)
	if err != nil {
		return err
	}
	return printJSON(info)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func fatal(logger *slog.Logger, err error) {
	logger.Error("command_failed", slog.String("error", err.Error()))
	os.Exit(1)
}
