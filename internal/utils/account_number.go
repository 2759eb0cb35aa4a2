package utils

import (
	"crypto/rand"
	"fmt"
	"regexp"
)

// AccountNumberPrefix is the fixed bank-issuer prefix on every account number.
const AccountNumberPrefix = "1000"

// AccountNumberLength is the total length of an account number in digits.
const AccountNumberLength = 16

var accountNumberPattern = regexp.MustCompile(`^` + AccountNumberPrefix + `\d{12}$`)

// GenerateAccountNumber returns a 16-digit account number starting with the
// issuer prefix. The suffix comes from crypto/rand so numbers are not guessable.
func GenerateAccountNumber() (string, error) {
	suffix := make([]byte, AccountNumberLength-len(AccountNumberPrefix))
	raw := make([]byte, len(suffix))
	for i := 0; i < len(suffix); {
		if _, err := rand.Read(raw); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range raw {
			// Reject bytes above the largest multiple of 10; 256 % 10 != 0, so a
			// plain modulo would skew towards the low digits.
			if b >= 250 {
				continue
			}
			suffix[i] = '0' + b%10
			i++
			if i == len(suffix) {
				break
			}
		}
	}
	return AccountNumberPrefix + string(suffix), nil
}

// IsValidAccountNumber reports whether s has the issuer prefix and exactly 16 digits.
func IsValidAccountNumber(s string) bool {
	return accountNumberPattern.MatchString(s)
}
