package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*chi.Mux, *Handler) {
	t.Helper()
	os.Setenv("JWT_SECRET_KEY", "test-secret")

	h := NewHandler(nil, nil, nil, nil, nil, nil)
	h.InitAuth()

	r := chi.NewRouter()
	h.SetRoutes(r)
	return r, h
}

func tokenFor(t *testing.T, h *Handler, userID, role string) string {
	t.Helper()
	_, tokenString, err := h.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)
	return tokenString
}

func TestHealthIsPublic(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecureRoutesRequireToken(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/leaderboard?gameId=g1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLeaderboardRequiresGameID(t *testing.T) {
	r, h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/leaderboard", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, h, "u1", "PLAYER"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGameRoutesRequireOrganizerRole(t *testing.T) {
	r, h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/games", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, h, "u1", "PLAYER"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestActorFromClaims(t *testing.T) {
	os.Setenv("JWT_SECRET_KEY", "test-secret")
	h := NewHandler(nil, nil, nil, nil, nil, nil)
	h.InitAuth()

	token := tokenFor(t, h, "u-42", "ORGANIZER")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	var called bool
	handler := jwtauth.Verifier(h.tokenAuth)(jwtauth.Authenticator(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			actor, err := h.Actor(r)
			require.NoError(t, err)
			assert.Equal(t, "u-42", actor.UserID)
			assert.Equal(t, "ORGANIZER", actor.Role)
		})))

	handler.ServeHTTP(httptest.NewRecorder(), req)
	require.True(t, called)
}
