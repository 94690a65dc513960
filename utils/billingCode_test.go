package utils

import (
	"HavenCare/config"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateBillingCode_Length(t *testing.T) {
	assert.Len(t, GenerateBillingCode(8), 8)
	assert.Len(t, GenerateBillingCode(12), 12)
	assert.Empty(t, GenerateBillingCode(0))
}

func TestGenerateBillingCode_Alphabet(t *testing.T) {
	for i := 0; i < 200; i++ {
		code := GenerateBillingCode(8)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(config.BillingCodeAlphabet, r),
				"code %q contains %q outside the alphabet", code, r)
		}
		// The ambiguous glyphs are excluded by construction.
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
	}
}

func TestGenerateBillingCode_Varies(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		seen[GenerateBillingCode(8)] = struct{}{}
	}
	// 32^8 possibilities; 100 draws colliding down to a handful would mean
	// the generator is broken.
	assert.Greater(t, len(seen), 90)
}
