package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mpetrenko/online_store/internal/hash"
	"github.com/mpetrenko/online_store/internal/models"
	"github.com/mpetrenko/online_store/internal/repo"
	"github.com/mpetrenko/online_store/internal/service"
	"github.com/mpetrenko/online_store/internal/session"
)

type testEnv struct {
	E        *echo.Echo
	Repo     *repo.GormRepo
	Sessions *session.MemoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}))

	store := &repo.GormRepo{DB: db}
	sessions := session.NewMemoryStore()

	deps := &Deps{
		Auth:    &AuthHTTP{Svc: &service.AuthService{Repo: store, Sessions: sessions}},
		Catalog: &CatalogHTTP{Svc: &service.CatalogService{Repo: store}},
		Cart:    &CartHTTP{Svc: &service.CartService{Repo: store}},
		Session: &SessionMiddleware{Store: sessions, Repo: store},
	}

	e := echo.New()
	Register(e, deps)

	return &testEnv{E: e, Repo: store, Sessions: sessions}
}

func (env *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

// signupAndLogin creates a user directly and hands back a valid session
// cookie, skipping the HTTP round trip the auth tests already cover.
func (env *testEnv) signupAndLogin(t *testing.T, username, role string) (*models.User, *http.Cookie) {
	t.Helper()

	pwHash, err := hash.HashPassword("longenough")
	require.NoError(t, err)
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: pwHash,
		Role:         role,
	}
	require.NoError(t, env.Repo.DB.Create(user).Error)

	sid, err := env.Sessions.Create(context.Background(), session.Session{UserID: user.ID, Username: username})
	require.NoError(t, err)

	return user, &http.Cookie{Name: session.CookieName, Value: sid, Path: "/"}
}

func (env *testEnv) seedProduct(t *testing.T, price float64, quantity uint) *models.Product {
	t.Helper()

	p := &models.Product{Name: "widget", Description: "a widget", Price: price, Quantity: quantity}
	require.NoError(t, env.Repo.DB.Create(p).Error)
	return p
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
