package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mpetrenko/online_store/internal/logging"
	"github.com/mpetrenko/online_store/internal/service"
	"github.com/mpetrenko/online_store/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

// Body quantity defaults to 1; an empty or absent body means one unit.
func bindQuantity(c echo.Context) (int, error) {
	var req transport.CartQuantityRequest
	if err := c.Bind(&req); err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity == nil {
		return 1, nil
	}
	return *req.Quantity, nil
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")
	sess := CurrentSession(c)

	view, err := h.Svc.GetCart(ctx, sess.UserID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch cart items")
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")
	sess := CurrentSession(c)

	productID, err := parseID(c, "productId")
	if err != nil {
		return err
	}
	quantity, err := bindQuantity(c)
	if err != nil {
		return err
	}

	if _, err := h.Svc.AddToCart(ctx, sess.UserID, productID, quantity); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("add_to_cart_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "quantity must be positive")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("add_to_cart_not_found", "status", 404, "product_id", productID)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrInsufficientStock):
			l.Warn("add_to_cart_insufficient_stock", "status", 400, "product_id", productID)
			return echo.NewHTTPError(http.StatusBadRequest, "insufficient stock")
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add item to cart")
	}

	l.Info("add_to_cart_success", "product_id", productID, "quantity", quantity)
	return c.JSON(http.StatusCreated, echo.Map{
		"message":        "product added to cart",
		"quantity_added": quantity,
	})
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")
	sess := CurrentSession(c)

	productID, err := parseID(c, "productId")
	if err != nil {
		return err
	}
	quantity, err := bindQuantity(c)
	if err != nil {
		return err
	}

	if _, _, err := h.Svc.RemoveFromCart(ctx, sess.UserID, productID, quantity); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("remove_from_cart_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			l.Warn("remove_from_cart_not_found", "status", 404, "product_id", productID)
			return echo.NewHTTPError(http.StatusNotFound, "product not in cart")
		}
		l.Error("remove_from_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to remove item from cart")
	}

	l.Info("remove_from_cart_success", "product_id", productID, "quantity", quantity)
	return c.JSON(http.StatusOK, echo.Map{
		"message":          "product removed from cart",
		"quantity_removed": quantity,
	})
}
