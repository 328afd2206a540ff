package domain

import (
	"github.com/google/uuid"
)

const tokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// TokenSource produces random lower-case alphanumeric tokens. Tokens only need
// to be unique within one session; they are cosmetic, not secrets.
type TokenSource interface {
	Token(n int) string
}

// RandomTokens draws token characters from random UUID bytes
type RandomTokens struct{}

// NewRandomTokens returns the default token source
func NewRandomTokens() RandomTokens {
	return RandomTokens{}
}

// Token returns n characters from [0-9a-z]
func (RandomTokens) Token(n int) string {
	out := make([]byte, 0, n)
	for len(out) < n {
		id := uuid.New()
		for _, b := range id {
			if len(out) == n {
				break
			}
			out = append(out, tokenAlphabet[int(b)%len(tokenAlphabet)])
		}
	}
	return string(out)
}
