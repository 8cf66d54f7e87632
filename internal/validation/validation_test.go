package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.com", "deniz@ornek.email.com"}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{"", "plain", "@nohost.com", "user@", "user@host", "a b@c.com"}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), email)
	}

	t.Run("too long", func(t *testing.T) {
		email := strings.Repeat("a", 250) + "@b.co"
		assert.Error(t, ValidateEmail(email))
	})
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 129)))
	assert.NoError(t, ValidatePassword("secret1"))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("deniz_42"))
	assert.NoError(t, ValidateUsername("user.name"))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername(strings.Repeat("a", 31)))
	assert.Error(t, ValidateUsername("has space"))
	assert.Error(t, ValidateUsername("emoji✨"))
}

func TestValidateDate(t *testing.T) {
	assert.NoError(t, ValidateDate("2024-06-01"))
	assert.Error(t, ValidateDate("01-06-2024"))
	assert.Error(t, ValidateDate("2024-13-01"))
	assert.Error(t, ValidateDate(""))
}

func TestValidateCoordinate(t *testing.T) {
	assert.NoError(t, ValidateCoordinate(41.0082, 28.9784))
	assert.Error(t, ValidateCoordinate(91, 0))
	assert.Error(t, ValidateCoordinate(-91, 0))
	assert.Error(t, ValidateCoordinate(0, 181))
	assert.Error(t, ValidateCoordinate(0, -181))
}
