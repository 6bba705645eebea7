package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/bookhaven/library-service/pkg/auth"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseToken(t *testing.T) {
	t.Parallel()
	secret := []byte("test-secret")

	tok, err := auth.IssueToken("reader@example.com", "Reader", secret, time.Hour)
	require.NoError(t, err)

	claims, err := auth.ParseToken(tok, secret)
	require.NoError(t, err)
	require.Equal(t, "reader@example.com", claims.Email)
	require.Equal(t, "Reader", claims.Name)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()
	secret := []byte("test-secret")

	tok, err := auth.IssueToken("reader@example.com", "", secret, -time.Minute)
	require.NoError(t, err)

	_, err = auth.ParseToken(tok, secret)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := auth.IssueToken("reader@example.com", "", []byte("one"), time.Hour)
	require.NoError(t, err)

	_, err = auth.ParseToken(tok, []byte("another"))
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthContext(t *testing.T) {
	t.Parallel()

	_, err := auth.EmailFromContext(context.Background())
	require.ErrorIs(t, err, auth.ErrNoAuth)

	ctx := auth.SetAuthContext(context.Background(), "reader@example.com")
	email, err := auth.EmailFromContext(ctx)
	require.NoError(t, err)
	require.Equal(t, "reader@example.com", email)
}
