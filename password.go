package adaccounts

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"

	textunicode "golang.org/x/text/encoding/unicode"
)

var utf16le = textunicode.UTF16(textunicode.LittleEndian, textunicode.IgnoreBOM)

// Word lists for the themed password generators. These are a product
// decision, not placeholders: the help desk reads the generated passwords to
// new hires over the phone, so they must be pronounceable.
var (
	passwordNames = []string{
		"Luffy", "Zoro", "Nami", "Usopp", "Sanji", "Chopper", "Robin",
		"Franky", "Brook", "Jinbe",
		"Shanks", "Buggy", "Crocodile", "Doflamingo", "Katakuri", "Marco",
		"Ace", "Sabo",
		"Garp", "Sengoku", "Aokiji", "Akainu", "Kizaru", "Smoker",
		"Tashigi", "Koby",
		"Vivi", "Hancock", "Rayleigh", "Whitebeard", "Kaido", "BigMom",
		"Yamato", "Carrot", "Law", "Kid", "Bonney", "Drake", "Hawkins",
		"Bege", "Urouge", "Apoo", "Mihawk", "Perona", "Moria", "Kuma",
		"Ivankov", "Jinbei", "Fisher", "Otohime",
	}

	passwordNameSuffixes = []string{
		"san", "kun", "chan", "sama", "nha", "ito", "eta", "oso", "ada",
		"pirate", "marine", "crew", "ship", "king", "queen", "captain",
	}

	passwordThemes = []string{
		"Gomugomu", "Meramera", "Hiehie", "Yamiami", "Nikanic",
		"Gearfour", "Santoryu", "Diableja", "Roomsham", "Kingkon",
		"Grandlin", "Redlinea", "Fishman", "Skypiea", "Wanocou",
	}

	passwordThemeSuffixes = []string{"ne", "ta", "ro", "sa", "mi", "ka", "to"}
)

const (
	passwordDigits = "0123456789"
	// Symbol set for generated passwords.
	passwordSymbols = "@#!%*"
	// Smaller symbol set used by the initial-password generator.
	initialPasswordSymbols = "@#!"
	lowercaseLetters       = "abcdefghijklmnopqrstuvwxyz"
	uppercaseLetters       = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	passwordBaseLength = 10
	passwordMinLength  = 12
)

// PasswordPolicy generates, validates and encodes passwords for the
// directory.
type PasswordPolicy struct{}

// Generate produces a policy-compliant 12-character password: a themed
// 10-character base with the first letter capitalized, one digit and one
// symbol. The name-based family is picked 60% of the time, the thematic
// family otherwise.
func (PasswordPolicy) Generate() string {
	if rand.Float64() < 0.6 {
		return generateFromWordList(passwordNames, passwordNameSuffixes, 8)
	}
	return generateFromWordList(passwordThemes, passwordThemeSuffixes, 0)
}

// generateFromWordList builds the shared shape of both generator families:
// pick a base word, pad it with a suffix when shorter than minBeforeSuffix,
// normalize to exactly passwordBaseLength characters, capitalize, then
// append one digit and one symbol.
func generateFromWordList(words, suffixes []string, minBeforeSuffix int) string {
	base := strings.ToLower(words[rand.IntN(len(words))])

	if minBeforeSuffix > 0 && len(base) < minBeforeSuffix {
		base += suffixes[rand.IntN(len(suffixes))]
	}

	if len(base) > passwordBaseLength {
		base = base[:passwordBaseLength]
	} else if len(base) < passwordBaseLength {
		base += suffixes[rand.IntN(len(suffixes))]
		if len(base) > passwordBaseLength {
			base = base[:passwordBaseLength]
		}
		// A short word plus a short suffix can still fall below the target;
		// keep padding until the base is full.
		for len(base) < passwordBaseLength {
			base += suffixes[rand.IntN(len(suffixes))]
		}
		base = base[:passwordBaseLength]
	}

	base = strings.ToUpper(base[:1]) + base[1:]

	digit := passwordDigits[rand.IntN(len(passwordDigits))]
	symbol := passwordSymbols[rand.IntN(len(passwordSymbols))]

	return base + string(digit) + string(symbol)
}

// GenerateInitial produces the simpler password shape assigned at account
// creation: one uppercase letter, nine lowercase letters, one digit and one
// symbol from the reduced set.
func (PasswordPolicy) GenerateInitial() string {
	var b strings.Builder
	b.WriteByte(uppercaseLetters[rand.IntN(len(uppercaseLetters))])
	for i := 0; i < 9; i++ {
		b.WriteByte(lowercaseLetters[rand.IntN(len(lowercaseLetters))])
	}
	b.WriteByte(passwordDigits[rand.IntN(len(passwordDigits))])
	b.WriteByte(initialPasswordSymbols[rand.IntN(len(initialPasswordSymbols))])
	return b.String()
}

// Validate checks a password against the directory policy: at least 12
// characters, at least one uppercase and one lowercase letter. Digit and
// symbol presence is intentionally not checked even though both generators
// always inject them; the directory accepts such passwords and callers may
// supply their own.
func (PasswordPolicy) Validate(password string) error {
	if len(password) < passwordMinLength {
		return fmt.Errorf("%w: shorter than %d characters", ErrPolicyViolation, passwordMinLength)
	}

	var hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("%w: missing an uppercase letter", ErrPolicyViolation)
	}
	if !hasLower {
		return fmt.Errorf("%w: missing a lowercase letter", ErrPolicyViolation)
	}

	return nil
}

// Encode wraps the password in double quotes and encodes it as UTF-16LE,
// the transport form the unicodePwd attribute requires.
// https://learn.microsoft.com/en-us/openspecs/windows_protocols/ms-adts/6e803168-f140-4d23-b2d3-c3a8ab5917d2
func (PasswordPolicy) Encode(password string) (string, error) {
	encoded, err := utf16le.NewEncoder().String("\"" + password + "\"")
	if err != nil {
		return "", err
	}
	return encoded, nil
}
