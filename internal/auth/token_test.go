package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	raw, exp, err := issuer.Issue(42, "ADMIN", "a@shop.com", "jti-1", time.Now())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := issuer.Parse(raw)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "a@shop.com", claims.Email)
	assert.Equal(t, "jti-1", claims.ID)
}

func TestParseRejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	other, _, err := NewTokenIssuer("other", time.Hour).Issue(1, "CLIENT", "", "jti", time.Now())
	require.NoError(t, err)
	_, err = issuer.Parse(other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, _, err := issuer.Issue(1, "CLIENT", "", "jti", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = issuer.Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noJTI, _, err := issuer.Issue(1, "CLIENT", "", "", time.Now())
	require.NoError(t, err)
	_, err = issuer.Parse(noJTI)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
