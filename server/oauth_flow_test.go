package server_test

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/nelindogu/userdir/session"
)

// fakeIdP is a minimal OIDC provider: discovery document, JWKS, and a token
// endpoint that returns a signed ID token carrying whatever claims the test
// configured.
type fakeIdP struct {
	srv   *httptest.Server
	key   *rsa.PrivateKey
	nonce string
	email string
	name  string
}

func newFakeIdP(t *testing.T) *fakeIdP {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	idp := &fakeIdP{key: key, email: "ada@example.com", name: "Ada"}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"issuer":                                idp.URL(),
			"authorization_endpoint":                idp.URL() + "/auth",
			"token_endpoint":                        idp.URL() + "/token",
			"jwks_uri":                              idp.URL() + "/keys",
			"userinfo_endpoint":                     idp.URL() + "/userinfo",
			"id_token_signing_alg_values_supported": []string{"RS256"},
		})
	})
	mux.HandleFunc("GET /keys", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]any{{
				"kty": "RSA",
				"alg": "RS256",
				"use": "sig",
				"kid": "test-key",
				"n":   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
			}},
		})
	})
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "fake-access-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
			"id_token":     idp.signIDToken(t),
		})
	})

	idp.srv = httptest.NewServer(mux)
	t.Cleanup(idp.srv.Close)
	return idp
}

func (idp *fakeIdP) URL() string {
	return idp.srv.URL
}

func (idp *fakeIdP) signIDToken(t *testing.T) string {
	t.Helper()

	now := time.Now()
	claims := jwtlib.MapClaims{
		"iss":   idp.URL(),
		"sub":   "google-subject-1",
		"aud":   "test-client-id",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
		"nonce": idp.nonce,
		"email": idp.email,
		"name":  idp.name,
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodRS256, claims)
	token.Header["kid"] = "test-key"
	signed, err := token.SignedString(idp.key)
	require.NoError(t, err)
	return signed
}

// beginLogin drives GET /login and returns the state and nonce the server
// sent to the provider.
func beginLogin(t *testing.T, f *testFixture, idp *fakeIdP) (state, nonce string) {
	t.Helper()

	w := f.get("/login")
	require.Equal(t, http.StatusSeeOther, w.Code)

	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, idp.URL()+"/auth", location.Scheme+"://"+location.Host+location.Path)

	query := location.Query()
	require.Equal(t, "test-client-id", query.Get("client_id"))
	require.Equal(t, "http://app.example.com/signin-google", query.Get("redirect_uri"))
	require.Equal(t, "S256", query.Get("code_challenge_method"))
	require.NotEmpty(t, query.Get("code_challenge"))
	require.NotEmpty(t, query.Get("state"))
	require.NotEmpty(t, query.Get("nonce"))
	return query.Get("state"), query.Get("nonce")
}

func TestLoginHandler_RedirectsToProvider(t *testing.T) {
	idp := newFakeIdP(t)
	f := setupTestFixture(t, testConfig{issuer: idp.URL()})

	beginLogin(t, f, idp)
}

func TestCallbackHandler(t *testing.T) {
	t.Run("completed round trip establishes a session", func(t *testing.T) {
		idp := newFakeIdP(t)
		f := setupTestFixture(t, testConfig{issuer: idp.URL()})

		state, nonce := beginLogin(t, f, idp)
		idp.nonce = nonce

		w := f.get("/signin-google?state=" + url.QueryEscape(state) + "&code=fake-code")
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/", w.Header().Get("Location"))

		cookie := sessionCookieFrom(t, w)
		identity, err := f.sessions.Verify(cookie.Value)
		require.NoError(t, err)
		require.Equal(t, session.Identity{Name: "Ada", Email: "ada@example.com"}, identity)
	})

	t.Run("state cannot be replayed", func(t *testing.T) {
		idp := newFakeIdP(t)
		f := setupTestFixture(t, testConfig{issuer: idp.URL()})

		state, nonce := beginLogin(t, f, idp)
		idp.nonce = nonce

		w := f.get("/signin-google?state=" + url.QueryEscape(state) + "&code=fake-code")
		require.Equal(t, http.StatusSeeOther, w.Code)

		w = f.get("/signin-google?state=" + url.QueryEscape(state) + "&code=fake-code")
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/", w.Header().Get("Location"))
		requireNoSessionCookie(t, w)
	})

	t.Run("nonce mismatch leaves the visitor anonymous", func(t *testing.T) {
		idp := newFakeIdP(t)
		f := setupTestFixture(t, testConfig{issuer: idp.URL()})

		state, _ := beginLogin(t, f, idp)
		idp.nonce = "some-other-nonce"

		w := f.get("/signin-google?state=" + url.QueryEscape(state) + "&code=fake-code")
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/", w.Header().Get("Location"))
		requireNoSessionCookie(t, w)
	})

	t.Run("provider denial redirects home without a session", func(t *testing.T) {
		f := setupTestFixture(t, testConfig{})

		w := f.get("/signin-google?error=access_denied&error_description=user+cancelled")
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/", w.Header().Get("Location"))
		requireNoSessionCookie(t, w)
	})

	t.Run("unknown state redirects home without a session", func(t *testing.T) {
		f := setupTestFixture(t, testConfig{})

		w := f.get("/signin-google?state=never-issued&code=fake-code")
		require.Equal(t, http.StatusSeeOther, w.Code)
		requireNoSessionCookie(t, w)
	})

	t.Run("missing parameters redirect home without a session", func(t *testing.T) {
		f := setupTestFixture(t, testConfig{})

		w := f.get("/signin-google")
		require.Equal(t, http.StatusSeeOther, w.Code)
		requireNoSessionCookie(t, w)
	})
}

func sessionCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == sessionCookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("expected a session cookie to be set")
	return nil
}

func requireNoSessionCookie(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == sessionCookieName && cookie.Value != "" {
			t.Fatal("expected no session cookie to be set")
		}
	}
}
