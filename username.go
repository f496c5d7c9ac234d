package adaccounts

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/go-ldap/ldap/v3"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Connective particles dropped from names before deriving usernames:
// "José de Souza e Silva" tokenizes to [José Souza Silva].
var nameParticles = map[string]struct{}{
	"de": {}, "da": {}, "do": {}, "dos": {}, "das": {}, "e": {},
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// removeAccents strips diacritics so "José" becomes "Jose". On a transform
// failure the input is returned unchanged.
func removeAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// SplitName tokenizes a full name for username derivation, dropping the
// connective particles. Matching is case-insensitive; accents are preserved
// here and stripped later during candidate generation.
func SplitName(fullName string) []string {
	fields := strings.Fields(strings.TrimSpace(fullName))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, skip := nameParticles[strings.ToLower(f)]; skip {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// UsernameCandidates enumerates candidate account names for a tokenized
// name: "first.token[i]" for i from the last token down to (but excluding)
// the first, so surname-based combinations come before middle-name ones.
// Candidates are lowercase and accent-free.
func UsernameCandidates(tokens []string) ([]string, error) {
	if len(tokens) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientNameTokens, len(tokens))
	}

	first := strings.ToLower(tokens[0])
	candidates := make([]string, 0, len(tokens)-1)
	for i := len(tokens) - 1; i > 0; i-- {
		candidate := fmt.Sprintf("%s.%s", first, strings.ToLower(tokens[i]))
		candidates = append(candidates, removeAccents(candidate))
	}

	return candidates, nil
}

// UsernameResolver probes the directory for the first candidate username
// not already taken.
type UsernameResolver struct {
	BaseDN string
	Logger *slog.Logger
}

// Resolve returns the first candidate derived from tokens that has no
// matching account in the directory. conn must already be bound with
// credentials allowed to search the subtree.
//
// Uniqueness holds only at probe time: a concurrent creation can win the
// race, in which case the subsequent Add fails with DirectoryAlreadyExists.
func (r *UsernameResolver) Resolve(conn DirectoryConn, tokens []string) (string, error) {
	candidates, err := UsernameCandidates(tokens)
	if err != nil {
		return "", err
	}

	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	for _, candidate := range candidates {
		taken, err := r.exists(conn, candidate)
		if err != nil {
			return "", ClassifyDirectoryError("ResolveUsername", err)
		}
		if !taken {
			logger.Debug("username_resolved",
				slog.String("username", candidate),
				slog.Int("candidates_considered", len(candidates)))
			return candidate, nil
		}
		logger.Debug("username_candidate_taken", slog.String("candidate", candidate))
	}

	return "", fmt.Errorf("%w: tried %d candidates", ErrUsernameSpaceExhausted, len(candidates))
}

// exists reports whether any account name starts with candidate.
func (r *UsernameResolver) exists(conn DirectoryConn, candidate string) (bool, error) {
	res, err := conn.Search(&ldap.SearchRequest{
		BaseDN:       r.BaseDN,
		Scope:        ldap.ScopeWholeSubtree,
		DerefAliases: ldap.NeverDerefAliases,
		Filter:       fmt.Sprintf("(&(objectClass=user)(sAMAccountName=%s*))", ldap.EscapeFilter(candidate)),
		Attributes:   []string{"sAMAccountName"},
	})
	if err != nil {
		return false, err
	}
	return len(res.Entries) > 0, nil
}
