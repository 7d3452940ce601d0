package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/captable/pkg/auth"
)

func testUser() auth.User {
	return auth.User{Email: "user@example.com", Role: auth.RoleShareholder, IsActive: true}
}

func TestPairAndVerify(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("test-secret", "captable", 30*time.Minute, 7*24*time.Hour)
	pair, err := gen.Pair(context.Background(), testUser())
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	email, err := gen.Verify(pair.AccessToken, KindAccess)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)

	email, err = gen.VerifyRefresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
}

func TestVerify_RejectsWrongKind(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("test-secret", "captable", 30*time.Minute, 7*24*time.Hour)
	pair, err := gen.Pair(context.Background(), testUser())
	require.NoError(t, err)

	_, err = gen.Verify(pair.AccessToken, KindRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken, "access token must not pass as refresh")

	_, err = gen.Verify(pair.RefreshToken, KindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken, "refresh token must not pass as access")
}

func TestVerify_RejectsExpired(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("test-secret", "captable", -time.Minute, -time.Minute)
	pair, err := gen.Pair(context.Background(), testUser())
	require.NoError(t, err)

	_, err = gen.Verify(pair.AccessToken, KindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("secret-a", "captable", time.Hour, time.Hour)
	other := NewGenerator("secret-b", "captable", time.Hour, time.Hour)

	pair, err := gen.Pair(context.Background(), testUser())
	require.NoError(t, err)

	_, err = other.Verify(pair.AccessToken, KindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("test-secret", "captable", time.Hour, time.Hour)
	other := NewGenerator("test-secret", "someone-else", time.Hour, time.Hour)

	pair, err := gen.Pair(context.Background(), testUser())
	require.NoError(t, err)

	_, err = other.Verify(pair.AccessToken, KindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsGarbage(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("test-secret", "captable", time.Hour, time.Hour)
	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := gen.Verify(token, KindAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
