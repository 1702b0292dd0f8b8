package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	authmw "github.com/Skotchmaster/storefront/pkg/middleware/auth"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	items, err := h.Svc.Cart(c.Request().Context(), authmw.Principal(c))
	if err != nil {
		return toHTTP(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil || req.ItemID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "item_id is required")
	}
	row, err := h.Svc.AddToCart(c.Request().Context(), authmw.Principal(c), req.ItemID)
	if err != nil {
		return toHTTP(err)
	}
	return c.JSON(http.StatusOK, row)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.RemoveFromCart(c.Request().Context(), authmw.Principal(c), id); err != nil {
		return toHTTP(err)
	}
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "removed"})
}

func (h *CartHTTP) Decrement(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	row, err := h.Svc.DecrementCartItem(c.Request().Context(), authmw.Principal(c), id)
	if err != nil {
		return toHTTP(err)
	}
	if row == nil {
		return c.JSON(http.StatusOK, echo.Map{"deleted": true})
	}
	return c.JSON(http.StatusOK, row)
}
