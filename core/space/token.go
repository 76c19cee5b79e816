package space

import (
	"crypto/rand"
	"log"
	"math/big"
	"strings"
)

// Invite codes are 8 characters over a 36-symbol uppercase alphanumeric
// alphabet: a 4-character prefix derived from the space name (human-memorable)
// followed by 4 random characters.
const (
	tokenLen  = 8
	prefixLen = 4
)

var (
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	randIndexFunc = randIndex // mockable
)

func randIndex(n int) int {
	i, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		log.Fatalf("space.randIndex: %v", err)
	}
	return int(i.Int64())
}

// NormalizeToken uppercases the input and strips everything outside the
// token alphabet. User-facing surfaces may display codes as "ABCD-1234";
// normalization makes both spellings equivalent.
func NormalizeToken(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MintToken derives a fresh invite code from the space name: the first
// prefixLen usable characters of the name, random-padded when the name is
// short or non-Latin, plus a random suffix.
func MintToken(name string) string {
	prefix := NormalizeToken(name)
	if len(prefix) > prefixLen {
		prefix = prefix[:prefixLen]
	}

	b := strings.Builder{}
	b.Grow(tokenLen)
	b.WriteString(prefix)
	for i := b.Len(); i < tokenLen; i++ {
		b.WriteByte(tokenAlphabet[randIndexFunc(len(tokenAlphabet))])
	}
	return b.String()
}
