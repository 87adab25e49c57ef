package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"
)

const (
	passwordLetters = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	passwordDigits  = "23456789"
)

// GenerateSecurePassword creates a random password of the given length
// that always contains at least one letter and one digit
func GenerateSecurePassword(length int) string {
	// Ensure minimum length
	if length < 8 {
		length = 8
	}

	alphabet := passwordLetters + passwordDigits
	for {
		var b strings.Builder
		for i := 0; i < length; i++ {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
			if err != nil {
				// crypto/rand does not fail on supported platforms
				panic(err)
			}
			b.WriteByte(alphabet[n.Int64()])
		}

		password := b.String()
		if strings.ContainsFunc(password, unicode.IsDigit) && strings.ContainsFunc(password, unicode.IsLetter) {
			return password
		}
	}
}
