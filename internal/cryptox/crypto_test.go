package cryptox

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/dmitrijs2005/admissions/internal/common"
	"github.com/stretchr/testify/require"
)

func newTestSealer(t *testing.T) *Sealer {
	t.Helper()
	s, err := NewSealer(DeriveKey([]byte("device-secret"), []byte("fixed-salt")))
	require.NoError(t, err)
	return s
}

func TestDeriveKey_Deterministic(t *testing.T) {
	key1 := DeriveKey([]byte("secret"), []byte("salt"))
	key2 := DeriveKey([]byte("secret"), []byte("salt"))

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	if len(key1) != 32 {
		t.Errorf("expected 32-byte key, got %d", len(key1))
	}
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	key1 := DeriveKey([]byte("secret"), []byte("salt-1"))
	key2 := DeriveKey([]byte("secret"), []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestSealer_RoundTrip(t *testing.T) {
	s := newTestSealer(t)

	sealed := s.Seal("eyJhbGciOiJIUzI1NiJ9.payload.sig")
	require.True(t, strings.HasPrefix(sealed, "v1."))
	require.NotContains(t, sealed, "payload")

	got, err := s.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, "eyJhbGciOiJIUzI1NiJ9.payload.sig", got)
}

func TestSealer_FreshNoncePerSeal(t *testing.T) {
	s := newTestSealer(t)
	require.NotEqual(t, s.Seal("token"), s.Seal("token"))
}

func TestSealer_OpenRejectsTamperedAndForeign(t *testing.T) {
	s := newTestSealer(t)
	sealed := s.Seal("token")

	_, err := s.Open("raw-token")
	require.ErrorIs(t, err, ErrNotSealed)

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(sealed, "v1."))
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xFF
	_, err = s.Open("v1." + base64.RawURLEncoding.EncodeToString(raw))
	require.ErrorIs(t, err, common.ErrInvalidToken)

	other, err := NewSealer(DeriveKey([]byte("another"), []byte("fixed-salt")))
	require.NoError(t, err)
	_, err = other.Open(sealed)
	require.ErrorIs(t, err, common.ErrInvalidToken)

	_, err = s.Open("v1.!!!")
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestNewSealer_BadKeyLength(t *testing.T) {
	_, err := NewSealer([]byte("short"))
	require.Error(t, err)
}
