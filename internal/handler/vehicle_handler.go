package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"parkhub/internal/errors"
	"parkhub/internal/service"
)

// VehicleHandler handles vehicle endpoints.
type VehicleHandler struct {
	vehicleService service.VehicleService
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(vehicleService service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// RegisterVehicleRequest represents a vehicle registration request.
type RegisterVehicleRequest struct {
	PlateNumber string `json:"plate_number" validate:"required"`
	Model       string `json:"model"`
	Color       string `json:"color"`
}

// RegisterVehicle godoc
// @Summary Register a vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterVehicleRequest true "Vehicle data"
// @Success 201 {object} model.Vehicle
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /vehicles [post]
func (h *VehicleHandler) RegisterVehicle(c echo.Context) error {
	driverID, err := driverIDFromContext(c)
	if err != nil {
		return err
	}

	var req RegisterVehicleRequest
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

	vehicle, err := h.vehicleService.RegisterVehicle(c.Request().Context(), driverID, req.PlateNumber, req.Model, req.Color)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, vehicle)
}

// ListVehicles godoc
// @Summary List the caller's vehicles
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Vehicle
// @Failure 401 {object} errors.ErrorResponse
// @Router /vehicles [get]
func (h *VehicleHandler) ListVehicles(c echo.Context) error {
	driverID, err := driverIDFromContext(c)
	if err != nil {
		return err
	}

	vehicles, err := h.vehicleService.ListVehicles(c.Request().Context(), driverID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, vehicles)
}

// RemoveVehicle godoc
// @Summary Remove a vehicle
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /vehicles/{id} [delete]
func (h *VehicleHandler) RemoveVehicle(c echo.Context) error {
	driverID, err := driverIDFromContext(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid vehicle ID",
			Code:  "INVALID_ID",
		})
	}

	if err := h.vehicleService.RemoveVehicle(c.Request().Context(), driverID, uint(id)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "vehicle removed"})
}
