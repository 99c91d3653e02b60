package payment

import (
	"math/rand/v2"
	"strconv"
	"time"
)

const txidAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewTransactionID returns "TXN" followed by the unix milliseconds of now
// and nine random upper-case alphanumerics.
func NewTransactionID(now time.Time) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = txidAlphabet[rand.IntN(len(txidAlphabet))]
	}

	return "TXN" + strconv.FormatInt(now.UnixMilli(), 10) + string(suffix)
}
