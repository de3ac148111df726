package server

import (
	"storefront/internal/config"
	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	productH *handler.ProductHandler,
	cartH *handler.CartHandler,
	orderH *handler.OrderHandler,
	addressH *handler.AddressHandler,
	wishlistH *handler.WishlistHandler,
	settingsH *handler.SettingsHandler,
	adminOrderH *handler.AdminOrderHandler,
	adminProductH *handler.AdminProductHandler,
) {
	productH.RegisterRoutes(e)
	cartH.RegisterRoutes(e, cfg)
	orderH.RegisterRoutes(e, cfg)
	addressH.RegisterRoutes(e, cfg)
	wishlistH.RegisterRoutes(e, cfg)
	settingsH.RegisterRoutes(e, cfg)
	adminOrderH.RegisterRoutes(e, cfg)
	adminProductH.RegisterRoutes(e, cfg)
}
