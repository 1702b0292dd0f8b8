package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/middleware/csrf"
	authmw "github.com/Skotchmaster/storefront/pkg/middleware/auth"
	loggingmw "github.com/Skotchmaster/storefront/pkg/middleware/logging"
)

type Deps struct {
	Logger *slog.Logger

	Auth     *AuthHTTP
	Cart     *CartHTTP
	Items    *ItemsHTTP
	Accounts *AccountsHTTP

	Session *authmw.SessionMiddleware
	CSRF    csrf.Config

	// Ready backs /health/ready; nil means always ready.
	Ready func(ctx context.Context) error
}

// New builds the server for a browser frontend served from frontendURL: CORS
// with credentials for that origin, which is also trusted by CSRF.
func New(frontendURL string, d *Deps) *echo.Echo {
	if d.CSRF.HeaderName == "" {
		d.CSRF.HeaderName = csrf.DefaultConfig().HeaderName
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{frontendURL},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, d.CSRF.HeaderName},
		ExposeHeaders:    []string{d.CSRF.HeaderName},
		AllowCredentials: true,
	}))

	d.CSRF.TrustedOrigins = append(d.CSRF.TrustedOrigins, frontendURL)
	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler(e)

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("")
	api.Use(loggingmw.RequestLogger(d.Logger))
	api.Use(csrf.Middleware(d.CSRF))
	api.Use(d.Session.Resolve)

	auth := api.Group("/auth")
	auth.POST("/signup", d.Auth.Signup)
	auth.POST("/signin", d.Auth.Signin)
	auth.POST("/signout", d.Auth.Signout)
	auth.GET("/me", d.Auth.Me)
	auth.POST("/reset/request", d.Auth.RequestReset)
	auth.GET("/reset/:token", d.Auth.ValidateReset)
	auth.POST("/reset/:token", d.Auth.ConsumeReset)

	cart := api.Group("/cart", authmw.RequireAuth)
	cart.GET("", d.Cart.GetCart)
	cart.POST("/items", d.Cart.AddToCart)
	cart.DELETE("/items/:id", d.Cart.RemoveFromCart)
	cart.POST("/items/:id/decrement", d.Cart.Decrement)

	items := api.Group("/items", authmw.RequireAuth)
	items.POST("", d.Items.CreateItem)
	items.PATCH("/:id", d.Items.PatchItem)
	items.DELETE("/:id", d.Items.DeleteItem)

	accounts := api.Group("/accounts", authmw.RequirePermission(domain.PermissionAdmin, domain.PermissionPermissionUpdate))
	accounts.GET("", d.Accounts.ListAccounts)
	accounts.PUT("/:id/permissions", d.Accounts.UpdatePermissions)
}
