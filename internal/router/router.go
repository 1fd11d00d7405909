package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"parkhub/internal/config"
	"parkhub/internal/handler"
	"parkhub/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	bookingHandler *handler.BookingHandler,
	spaceHandler *handler.SpaceHandler,
	vehicleHandler *handler.VehicleHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/me", func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		claims, _ := token.Claims.(jwt.MapClaims)
		return c.JSON(http.StatusOK, echo.Map{"token_claims": claims})
	})

	// Parking space routes
	secured.GET("/spaces", spaceHandler.SearchSpaces)
	secured.GET("/spaces/:id", spaceHandler.GetSpace)
	secured.POST("/spaces/:id/book", spaceHandler.BookSpot)

	// Booking routes
	secured.POST("/bookings", bookingHandler.CreateBooking)
	secured.GET("/bookings", bookingHandler.ListBookings)
	secured.PUT("/bookings/:id", bookingHandler.UpdateBooking)
	secured.DELETE("/bookings/:id", bookingHandler.CancelBooking)
	secured.POST("/bookings/:id/extend", bookingHandler.ExtendBooking)

	// Dashboard routes
	secured.GET("/dashboard/stats", bookingHandler.DashboardStats)
	secured.GET("/dashboard/recent", bookingHandler.RecentBookings)

	// Vehicle routes
	secured.POST("/vehicles", vehicleHandler.RegisterVehicle)
	secured.GET("/vehicles", vehicleHandler.ListVehicles)
	secured.DELETE("/vehicles/:id", vehicleHandler.RemoveVehicle)

	// Admin routes (require the admin role claim)
	admin := secured.Group("/admin", requireRole(string(model.RoleAdmin)))
	admin.GET("/stats", adminHandler.GetStats)
	admin.GET("/locations", adminHandler.ListLocations)
	admin.POST("/locations", adminHandler.CreateLocation)
	admin.PUT("/locations/:id", adminHandler.UpdateLocation)
}

// requireRole rejects requests whose JWT role claim does not match.
func requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			if claimed, _ := claims["role"].(string); claimed != role {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
