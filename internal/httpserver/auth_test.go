package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrenko/online_store/internal/models"
	"github.com/mpetrenko/online_store/internal/session"
	"github.com/mpetrenko/online_store/internal/transport"
)

func TestSignup(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/signup", transport.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "longenough",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp transport.UserResponse
	decode(t, rec, &resp)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)

	// No session is established by signup.
	assert.Empty(t, rec.Result().Cookies())
}

func TestSignup_ShortPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/signup", transport.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "1234567",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignup_Duplicate(t *testing.T) {
	env := newTestEnv(t)

	body := transport.SignupRequest{Username: "alice", Email: "alice@example.com", Password: "longenough"}
	rec := env.do(t, http.MethodPost, "/auth/signup", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/auth/signup", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/signup", transport.SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "longenough",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/auth/login", transport.LoginRequest{
		Username: "alice", Password: "longenough",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var ck *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			ck = c
		}
	}
	require.NotNil(t, ck)
	assert.NotEmpty(t, ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)

	var resp transport.UserResponse
	decode(t, rec, &resp)
	assert.Equal(t, "alice", resp.Username)
	assert.NotNil(t, resp.LastLogin)
}

// Unknown user and wrong password must return the same status and body.
func TestLogin_UniformRejection(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/signup", transport.SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "longenough",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	unknown := env.do(t, http.MethodPost, "/auth/login", transport.LoginRequest{Username: "ghost", Password: "longenough"})
	wrongPw := env.do(t, http.MethodPost, "/auth/login", transport.LoginRequest{Username: "alice", Password: "wrongpassword"})

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, unknown.Body.String(), wrongPw.Body.String())
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	_, ck := env.signupAndLogin(t, "alice", "user")

	rec := env.do(t, http.MethodPost, "/auth/logout", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	// The session is revoked server-side, so reusing the old cookie fails.
	rec = env.do(t, http.MethodGet, "/auth/me", nil, ck)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_WithoutSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	user, ck := env.signupAndLogin(t, "alice", "user")

	rec := env.do(t, http.MethodGet, "/auth/me", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.UserResponse
	decode(t, rec, &resp)
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, "alice", resp.Username)
}

func TestMe_WithoutSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe_DeletedUserClearsSession(t *testing.T) {
	env := newTestEnv(t)
	user, ck := env.signupAndLogin(t, "alice", "user")

	require.NoError(t, env.Repo.DB.Delete(&models.User{}, user.ID).Error)

	rec := env.do(t, http.MethodGet, "/auth/me", nil, ck)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// The stale session must not survive the 404.
	rec = env.do(t, http.MethodGet, "/auth/me", nil, ck)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
