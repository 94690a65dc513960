package utils

import (
	"HavenCare/config"
	"math/rand"
	"strings"
	"sync"
	"time"
)

var codeRand = struct {
	sync.Mutex
	*rand.Rand
}{Rand: rand.New(rand.NewSource(time.Now().UnixNano()))}

// GenerateBillingCode generates a random deferred-payment code of the given
// length from the billing-code alphabet. Selection is uniform: the alphabet
// has 32 symbols, so modulo bias is not a concern with Intn.
func GenerateBillingCode(length int) string {
	codeRand.Lock()
	defer codeRand.Unlock()

	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(config.BillingCodeAlphabet[codeRand.Intn(len(config.BillingCodeAlphabet))])
	}
	return b.String()
}
