package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify_RoundTrip(t *testing.T) {
	j := New("secret")

	tok, err := j.Sign("user-1", time.Hour)
	require.NoError(t, err)

	uid, err := j.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
}

func TestVerify_WrongSecret(t *testing.T) {
	tok, err := New("secret").Sign("user-1", time.Hour)
	require.NoError(t, err)

	_, err = New("other").Verify(tok)
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	j := New("secret")
	tok, err := j.Sign("user-1", -time.Minute)
	require.NoError(t, err)

	_, err = j.Verify(tok)
	assert.Error(t, err)
}

func TestSign_EmptyUID(t *testing.T) {
	_, err := New("secret").Sign("", time.Hour)
	assert.Error(t, err)
}

func TestContextUser(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "anon", UserID(ctx))

	ctx = WithUser(ctx, "user-1")
	assert.Equal(t, "user-1", UserID(ctx))
}
