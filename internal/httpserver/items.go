package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	authmw "github.com/Skotchmaster/storefront/pkg/middleware/auth"
)

type ItemsHTTP struct {
	Svc *service.ItemService
}

func (h *ItemsHTTP) CreateItem(c echo.Context) error {
	var req transport.ItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	item, err := h.Svc.CreateItem(c.Request().Context(), authmw.Principal(c), service.ItemInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		LargeImage:  req.LargeImage,
	})
	if err != nil {
		return toHTTP(err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *ItemsHTTP) PatchItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req transport.ItemPatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	item, err := h.Svc.UpdateItem(c.Request().Context(), authmw.Principal(c), id, service.ItemPatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return toHTTP(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ItemsHTTP) DeleteItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteItem(c.Request().Context(), authmw.Principal(c), id); err != nil {
		return toHTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}
