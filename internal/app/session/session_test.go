package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	m, err := NewManager("test-signing-key", time.Hour)
	require.NoError(t, err)

	token, err := m.Issue("alice")
	require.NoError(t, err)

	name, err := m.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice", name)
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	issuer, err := NewManager("key-one", time.Hour)
	require.NoError(t, err)
	verifier, err := NewManager("key-two", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue("alice")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m, err := NewManager("test-signing-key", time.Nanosecond)
	require.NoError(t, err)

	token, err := m.Issue("alice")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = m.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m, err := NewManager("test-signing-key", time.Hour)
	require.NoError(t, err)

	_, err = m.Verify("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewManagerRequiresKey(t *testing.T) {
	_, err := NewManager("", time.Hour)
	require.Error(t, err)
}
