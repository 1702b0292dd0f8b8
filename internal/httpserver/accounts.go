package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	authmw "github.com/Skotchmaster/storefront/pkg/middleware/auth"
)

type AccountsHTTP struct {
	Svc *service.AccountService
}

func (h *AccountsHTTP) ListAccounts(c echo.Context) error {
	accounts, err := h.Svc.ListAccounts(c.Request().Context(), authmw.Principal(c))
	if err != nil {
		return toHTTP(err)
	}
	out := make([]*transport.AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, transport.NewAccountResponse(&accounts[i]))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AccountsHTTP) UpdatePermissions(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req transport.PermissionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid permissions")
	}
	acc, err := h.Svc.UpdatePermissions(c.Request().Context(), authmw.Principal(c), id, req.Permissions)
	if err != nil {
		return toHTTP(err)
	}
	return c.JSON(http.StatusOK, transport.NewAccountResponse(acc))
}
