package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	Auth    *AuthHTTP
	Catalog *CatalogHTTP
	Cart    *CartHTTP
	Session *SessionMiddleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	auth := e.Group("/auth")
	auth.POST("/signup", d.Auth.Signup)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/logout", d.Auth.Logout, d.Session.RequireSession)
	auth.GET("/me", d.Auth.Me, d.Session.RequireSession)

	products := e.Group("/products")
	products.GET("", d.Catalog.GetProducts, d.Session.RequireSession)
	products.GET("/search", d.Catalog.SearchProducts, d.Session.RequireSession)
	products.GET("/:id", d.Catalog.GetProduct, d.Session.RequireSession)
	products.POST("", d.Catalog.CreateProduct, d.Session.RequireAdmin)
	products.PUT("/:id", d.Catalog.SetQuantity, d.Session.RequireAdmin)
	products.DELETE("/:id", d.Catalog.DeleteProduct, d.Session.RequireAdmin)

	cart := e.Group("/cart", d.Session.RequireSession)
	cart.GET("/my-cart", d.Cart.GetCart)
	cart.POST("/add/:productId", d.Cart.AddToCart)
	cart.POST("/remove/:productId", d.Cart.RemoveFromCart)
}
