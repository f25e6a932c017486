package utils

import (
	"crypto/rand"
	"math/big"
)

const referenceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewBookingReference generates a human-readable booking reference of the
// form "REF-XXXXXXXX" where X is an uppercase base36 character.
func NewBookingReference() string {
	return "REF-" + randomBase36(8)
}

func randomBase36(n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(referenceAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand should not fail; fall back to a fixed character
			// rather than aborting a booking.
			out[i] = '0'
			continue
		}
		out[i] = referenceAlphabet[idx.Int64()]
	}
	return string(out)
}
