package httpserver

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrenko/online_store/internal/models"
	"github.com/mpetrenko/online_store/internal/transport"
)

func TestGetProducts_RequiresSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetProducts(t *testing.T) {
	env := newTestEnv(t)
	_, ck := env.signupAndLogin(t, "alice", "user")
	env.seedProduct(t, 10, 5)
	env.seedProduct(t, 20, 3)

	rec := env.do(t, http.MethodGet, "/products", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Products []models.Product `json:"products"`
	}
	decode(t, rec, &resp)
	assert.Len(t, resp.Products, 2)
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	_, ck := env.signupAndLogin(t, "alice", "user")
	p := env.seedProduct(t, 10, 5)

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/products/%d", p.ID), nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Product models.Product `json:"product"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, p.ID, resp.Product.ID)

	rec = env.do(t, http.MethodGet, "/products/999", nil, ck)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetQuantity_AdminOnly(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, 10, 5)
	body := transport.SetQuantityRequest{Quantity: intPtr(42)}

	rec := env.do(t, http.MethodPut, fmt.Sprintf("/products/%d", p.ID), body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	_, userCk := env.signupAndLogin(t, "alice", "user")
	rec = env.do(t, http.MethodPut, fmt.Sprintf("/products/%d", p.ID), body, userCk)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	_, adminCk := env.signupAndLogin(t, "root", "admin")
	rec = env.do(t, http.MethodPut, fmt.Sprintf("/products/%d", p.ID), body, adminCk)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Product models.Product `json:"product"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, uint(42), resp.Product.Quantity)
}

func TestSetQuantity_Validation(t *testing.T) {
	env := newTestEnv(t)
	_, ck := env.signupAndLogin(t, "root", "admin")
	p := env.seedProduct(t, 10, 5)

	rec := env.do(t, http.MethodPut, fmt.Sprintf("/products/%d", p.ID), map[string]any{}, ck)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, fmt.Sprintf("/products/%d", p.ID), transport.SetQuantityRequest{Quantity: intPtr(-1)}, ck)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, "/products/999", transport.SetQuantityRequest{Quantity: intPtr(1)}, ck)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAndDeleteProduct_AdminOnly(t *testing.T) {
	env := newTestEnv(t)
	_, userCk := env.signupAndLogin(t, "alice", "user")
	_, adminCk := env.signupAndLogin(t, "root", "admin")

	body := transport.CreateProductRequest{Name: "widget", Description: "a widget", Price: 9.99, Quantity: 3}

	rec := env.do(t, http.MethodPost, "/products", body, userCk)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/products", body, adminCk)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Product
	decode(t, rec, &created)
	require.NotZero(t, created.ID)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/products/%d", created.ID), nil, adminCk)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/products/%d", created.ID), nil, adminCk)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func intPtr(v int) *int { return &v }
