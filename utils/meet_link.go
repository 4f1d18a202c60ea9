package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const meetAlphabet = "abcdefghijklmnopqrstuvwxyz"

// GenerateMeetLink formats a cosmetic https://meet.google.com/xxx-xxxx-xxx link.
// No meeting is provisioned.
func GenerateMeetLink() (string, error) {
	var b strings.Builder
	b.WriteString("https://meet.google.com/")
	for i, n := range []int{3, 4, 3} {
		if i > 0 {
			b.WriteByte('-')
		}
		for j := 0; j < n; j++ {
			idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(meetAlphabet))))
			if err != nil {
				return "", err
			}
			b.WriteByte(meetAlphabet[idx.Int64()])
		}
	}
	return b.String(), nil
}
