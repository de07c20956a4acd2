package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func jwksServer(t *testing.T, key *rsa.PublicKey, kid string, hits *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*hits++
		n := base64.RawURLEncoding.EncodeToString(key.N.Bytes())
		e := base64.RawURLEncoding.EncodeToString([]byte{1, 0, 1})
		fmt.Fprintf(w, `{"keys":[{"kid":%q,"kty":"RSA","alg":"RS256","use":"sig","n":%q,"e":%q}]}`, kid, n, e)
	}))
}

func rsaToken(kid string) *jwt.Token {
	return &jwt.Token{
		Method: jwt.SigningMethodRS256,
		Header: map[string]interface{}{"alg": "RS256", "kid": kid},
	}
}

func TestProviderKeyFunc(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.NoError(t, err)

	hits := 0
	srv := jwksServer(t, &priv.PublicKey, "key-1", &hits)
	defer srv.Close()

	t.Run("resolves the key for a known kid", func(t *testing.T) {
		provider := NewProvider(srv.URL)

		got, err := provider.KeyFunc(rsaToken("key-1"))
		assert.NoError(t, err)

		pub, ok := got.(*rsa.PublicKey)
		assert.True(t, ok)
		assert.Equal(t, 0, priv.PublicKey.N.Cmp(pub.N))
		assert.Equal(t, priv.PublicKey.E, pub.E)
	})

	t.Run("caches the key set between lookups", func(t *testing.T) {
		provider := NewProvider(srv.URL)
		before := hits

		_, err := provider.KeyFunc(rsaToken("key-1"))
		assert.NoError(t, err)
		_, err = provider.KeyFunc(rsaToken("key-1"))
		assert.NoError(t, err)

		assert.Equal(t, before+1, hits)
	})

	t.Run("rejects an unknown kid", func(t *testing.T) {
		provider := NewProvider(srv.URL)

		_, err := provider.KeyFunc(rsaToken("key-2"))
		assert.Error(t, err)
	})

	t.Run("rejects non-RSA signing methods", func(t *testing.T) {
		provider := NewProvider(srv.URL)

		token := &jwt.Token{Method: jwt.SigningMethodHS256, Header: map[string]interface{}{"alg": "HS256"}}
		_, err := provider.KeyFunc(token)
		assert.Error(t, err)
	})

	t.Run("rejects a token without a kid", func(t *testing.T) {
		provider := NewProvider(srv.URL)

		token := &jwt.Token{Method: jwt.SigningMethodRS256, Header: map[string]interface{}{"alg": "RS256"}}
		_, err := provider.KeyFunc(token)
		assert.Error(t, err)
	})
}
