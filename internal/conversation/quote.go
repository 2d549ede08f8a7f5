package conversation

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const quoteAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewQuoteID returns a short customer-facing id like "PR-K3F9X2AB": the last
// four base36 digits of the current unix millis followed by four random ones.
func NewQuoteID() string {
	return newQuoteIDAt(time.Now())
}

func newQuoteIDAt(now time.Time) string {
	stamp := strconv.FormatInt(now.UnixMilli(), 36)
	if len(stamp) > 4 {
		stamp = stamp[len(stamp)-4:]
	}

	var b strings.Builder
	b.WriteString("PR-")
	b.WriteString(strings.ToUpper(stamp))
	max := big.NewInt(int64(len(quoteAlphabet)))
	for i := 0; i < 4; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			b.WriteByte('0')
			continue
		}
		b.WriteByte(strings.ToUpper(quoteAlphabet)[n.Int64()])
	}
	return b.String()
}
