package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"parkhub/internal/errors"
	"parkhub/internal/model"
	"parkhub/internal/service"
)

// AdminHandler handles admin endpoints for stats and location management.
type AdminHandler struct {
	spaceService service.SpaceService
	statsService service.StatsService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(spaceService service.SpaceService, statsService service.StatsService) *AdminHandler {
	return &AdminHandler{
		spaceService: spaceService,
		statsService: statsService,
	}
}

// CreateLocationRequest represents a parking space creation request.
type CreateLocationRequest struct {
	Name         string  `json:"name" validate:"required"`
	Address      string  `json:"address" validate:"required"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	TotalSpots   int     `json:"total_spots" validate:"gte=0"`
	PricePerHour string  `json:"price_per_hour" validate:"required"`
	Features     string  `json:"features"`
}

// UpdateLocationRequest represents a partial parking space update.
// Only allow-listed fields are applied; available_spots is not among them.
type UpdateLocationRequest struct {
	Name         *string `json:"name"`
	Address      *string `json:"address"`
	TotalSpots   *int    `json:"total_spots"`
	PricePerHour *string `json:"price_per_hour"`
	Features     *string `json:"features"`
}

// GetStats godoc
// @Summary Get platform-wide statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.AdminStats
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) GetStats(c echo.Context) error {
	stats, err := h.statsService.GetAdminStats(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}

// ListLocations godoc
// @Summary List all parking locations
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ParkingSpace
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/locations [get]
func (h *AdminHandler) ListLocations(c echo.Context) error {
	spaces, err := h.spaceService.ListSpaces(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, spaces)
}

// CreateLocation godoc
// @Summary Create a parking location
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLocationRequest true "Location data"
// @Success 201 {object} model.ParkingSpace
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/locations [post]
func (h *AdminHandler) CreateLocation(c echo.Context) error {
	var req CreateLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	price, err := decimal.NewFromString(req.PricePerHour)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid price_per_hour",
			Code:  "INVALID_PRICE",
		})
	}

	space := &model.ParkingSpace{
		Name:         req.Name,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		TotalSpots:   req.TotalSpots,
		PricePerHour: price,
		Features:     req.Features,
	}
	if err := h.spaceService.CreateSpace(c.Request().Context(), space); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, space)
}

// UpdateLocation godoc
// @Summary Update a parking location
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Location ID"
// @Param request body UpdateLocationRequest true "Fields to update"
// @Success 200 {object} model.ParkingSpace
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/locations/{id} [put]
func (h *AdminHandler) UpdateLocation(c echo.Context) error {
	id, err := parseSpaceID(c)
	if err != nil {
		return err
	}

	var req UpdateLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	update := service.SpaceUpdate{
		Name:       req.Name,
		Address:    req.Address,
		TotalSpots: req.TotalSpots,
		Features:   req.Features,
	}
	if req.PricePerHour != nil {
		price, err := decimal.NewFromString(*req.PricePerHour)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid price_per_hour",
				Code:  "INVALID_PRICE",
			})
		}
		update.PricePerHour = &price
	}

	space, err := h.spaceService.UpdateSpace(c.Request().Context(), id, update)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, space)
}
