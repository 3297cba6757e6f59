package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPhoneValid(t *testing.T) {
	for _, ok := range []string{"+55 11 98765-4321", "(11) 3456-7890", "5551234", "+1 (415) 555-0100"} {
		assert.True(t, IsPhoneValid(ok), ok)
	}
	for _, bad := range []string{"", "123", "phone", "+55 11 9876-ABCD", "1234567890123456789"} {
		assert.False(t, IsPhoneValid(bad), bad)
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+5511987654321", NormalizePhone(" +55 (11) 98765-4321 "))
	assert.Equal(t, "1134567890", NormalizePhone("(11) 3456-7890"))
}
