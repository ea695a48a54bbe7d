package auth_test

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"heyjob-backend/pkg/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwksServer(t *testing.T, kid string, pub *rsa.PublicKey, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		_ = json.NewEncoder(w).Encode(auth.JWKS{Keys: []auth.JSONWebKey{{
			Kid: kid,
			Kty: "RSA",
			Alg: "RS256",
			N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}}})
	}))
}

func TestProviderKeyFunc(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	var hits int32
	srv := jwksServer(t, "kid-1", &key.PublicKey, &hits)
	defer srv.Close()

	provider := auth.NewProvider(srv.URL)

	t.Run("Should verify a token signed by a published key", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(time.Hour).Unix()})
		tok.Header["kid"] = "kid-1"
		signed, err := tok.SignedString(key)
		require.NoError(t, err)

		parsed, err := jwt.Parse(signed, provider.KeyFunc)
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
	})

	t.Run("Should not refetch for an unknown kid within the refresh interval", func(t *testing.T) {
		before := atomic.LoadInt32(&hits)
		tok := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{"sub": "u1"})
		tok.Header["kid"] = "kid-unknown"
		signed, err := tok.SignedString(key)
		require.NoError(t, err)

		_, err = jwt.Parse(signed, provider.KeyFunc)
		assert.Error(t, err)
		assert.Equal(t, before, atomic.LoadInt32(&hits))
	})

	t.Run("Should reject HMAC tokens", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"})
		signed, err := tok.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = jwt.Parse(signed, provider.KeyFunc)
		assert.Error(t, err)
	})
}

func TestProviderNotConfigured(t *testing.T) {
	provider := auth.NewProvider("")
	assert.False(t, provider.Configured())
	_, err := provider.GetKey(t.Context(), "any")
	assert.Error(t, err)
}
