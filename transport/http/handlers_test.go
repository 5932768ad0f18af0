package http

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penpalhq/warden/adapters/password"
	"github.com/penpalhq/warden/adapters/store"
	"github.com/penpalhq/warden/adapters/tokenizer"
	"github.com/penpalhq/warden/core"
	"github.com/penpalhq/warden/service"
)

type staticMembers map[string]core.Member

func (m staticMembers) FindBySubject(_ context.Context, subject string) (core.Member, error) {
	member, ok := m[subject]
	if !ok {
		return core.Member{}, core.ErrMemberNotFound
	}
	return member, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	hasher := password.NewBcrypt()
	hash, err := hasher.Hash("1q2w3e4r")
	require.NoError(t, err)

	members := staticMembers{
		"a@x.com": {Subject: "a@x.com", Name: "Ada", PasswordHash: hash},
	}

	authService := service.NewAuthService(
		tokenizer.NewJWTTokenizer(key),
		members,
		hasher,
		store.NewMemoryStore(),
		nil,
		service.Config{},
	)

	return SetupRouter(authService)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, router *gin.Engine, email, pw string) (access, refresh string) {
	t.Helper()

	rec := doJSON(t, router, nethttp.MethodPost, "/auth/login", gin.H{"email": email, "password": pw}, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	return resp.AccessToken, resp.RefreshToken
}

func TestLoginLogoutFlow(t *testing.T) {
	router := newTestRouter(t)

	access, refresh := login(t, router, "a@x.com", "1q2w3e4r")

	// The bearer credential opens protected routes
	rec := doJSON(t, router, nethttp.MethodGet, "/health", nil, map[string]string{
		"Authorization": "Bearer " + access,
	})
	require.Equal(t, nethttp.StatusOK, rec.Code)

	rec = doJSON(t, router, nethttp.MethodGet, "/api/me", nil, map[string]string{
		"Authorization": "Bearer " + access,
	})
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@x.com")

	// Logout kills the bearer credential ahead of its natural expiry
	rec = doJSON(t, router, nethttp.MethodPost, "/auth/logout", gin.H{"subject": "a@x.com"}, map[string]string{
		"Authorization": "Bearer " + access,
	})
	require.Equal(t, nethttp.StatusOK, rec.Code)

	rec = doJSON(t, router, nethttp.MethodGet, "/health", nil, map[string]string{
		"Authorization": "Bearer " + access,
	})
	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)

	// The renewal session died with it
	rec = doJSON(t, router, nethttp.MethodPost, "/auth/reissue", nil, map[string]string{
		"RefreshToken": "Bearer " + refresh,
	})
	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Session expired")
}

func TestLoginRejected(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, nethttp.MethodPost, "/auth/login", gin.H{"email": "a@x.com", "password": "wrong"}, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, nethttp.MethodPost, "/auth/login", gin.H{"email": "a@x.com"}, nil)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestReissueReturnsFreshBearer(t *testing.T) {
	router := newTestRouter(t)

	access, refresh := login(t, router, "a@x.com", "1q2w3e4r")

	rec := doJSON(t, router, nethttp.MethodPost, "/auth/reissue", nil, map[string]string{
		"RefreshToken": "Bearer " + refresh,
	})
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEqual(t, access, resp.AccessToken)
	// Default TTLs leave the renewal credential comfortably above the
	// rotation threshold, so it comes back unchanged
	assert.Equal(t, refresh, resp.RefreshToken)

	rec = doJSON(t, router, nethttp.MethodGet, "/health", nil, map[string]string{
		"Authorization": "Bearer " + resp.AccessToken,
	})
	assert.Equal(t, nethttp.StatusOK, rec.Code)
}

func TestReissueWithSupersededSession(t *testing.T) {
	router := newTestRouter(t)

	_, firstRefresh := login(t, router, "a@x.com", "1q2w3e4r")
	_, secondRefresh := login(t, router, "a@x.com", "1q2w3e4r")

	rec := doJSON(t, router, nethttp.MethodPost, "/auth/reissue", nil, map[string]string{
		"RefreshToken": "Bearer " + firstRefresh,
	})
	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, nethttp.MethodPost, "/auth/reissue", nil, map[string]string{
		"RefreshToken": "Bearer " + secondRefresh,
	})
	assert.Equal(t, nethttp.StatusOK, rec.Code)
}

func TestDoubleLogout(t *testing.T) {
	router := newTestRouter(t)

	access, _ := login(t, router, "a@x.com", "1q2w3e4r")

	for i := 0; i < 2; i++ {
		rec := doJSON(t, router, nethttp.MethodPost, "/auth/logout", gin.H{"subject": "a@x.com"}, map[string]string{
			"Authorization": "Bearer " + access,
		})
		require.Equal(t, nethttp.StatusOK, rec.Code)
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, nethttp.MethodGet, "/health", nil, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, nethttp.MethodGet, "/health", nil, map[string]string{
		"Authorization": "Bearer garbage",
	})
	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
}

func TestLogoutWithGarbageToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, nethttp.MethodPost, "/auth/logout", gin.H{"subject": "a@x.com"}, map[string]string{
		"Authorization": "Bearer garbage",
	})
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}
