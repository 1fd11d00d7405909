package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"parkhub/internal/errors"
	"parkhub/internal/repository"
	"parkhub/internal/service"
)

const defaultSearchRadius = 0.1

// SpaceHandler handles parking space endpoints.
type SpaceHandler struct {
	spaceService   service.SpaceService
	bookingService service.BookingService
}

// NewSpaceHandler creates a new parking space handler.
func NewSpaceHandler(spaceService service.SpaceService, bookingService service.BookingService) *SpaceHandler {
	return &SpaceHandler{
		spaceService:   spaceService,
		bookingService: bookingService,
	}
}

// BookSpotRequest represents a book-by-spot request.
type BookSpotRequest struct {
	StartTime     time.Time `json:"start_time" validate:"required"`
	DurationHours float64   `json:"duration_hours" validate:"required"`
	PaymentMethod string    `json:"payment_method"`
}

// SearchSpaces godoc
// @Summary Search parking spaces
// @Tags spaces
// @Produce json
// @Security BearerAuth
// @Param lat query number false "Latitude of the search center"
// @Param lng query number false "Longitude of the search center"
// @Param radius query number false "Bounding box half-width in degrees"
// @Param search query string false "Substring match on name/address"
// @Param filter query string false "Availability filter (all, available, full)"
// @Success 200 {array} model.ParkingSpace
// @Failure 400 {object} errors.ErrorResponse
// @Router /spaces [get]
func (h *SpaceHandler) SearchSpaces(c echo.Context) error {
	params := repository.SpaceSearch{
		Radius: defaultSearchRadius,
		Search: c.QueryParam("search"),
		Filter: repository.AvailabilityFilter(c.QueryParam("filter")),
	}

	if latStr := c.QueryParam("lat"); latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid lat",
				Code:  "INVALID_COORDINATE",
			})
		}
		params.Latitude = &lat
	}
	if lngStr := c.QueryParam("lng"); lngStr != "" {
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid lng",
				Code:  "INVALID_COORDINATE",
			})
		}
		params.Longitude = &lng
	}
	if radiusStr := c.QueryParam("radius"); radiusStr != "" {
		radius, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid radius",
				Code:  "INVALID_COORDINATE",
			})
		}
		params.Radius = radius
	}

	spaces, err := h.spaceService.SearchSpaces(c.Request().Context(), params)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, spaces)
}

// GetSpace godoc
// @Summary Get a parking space
// @Tags spaces
// @Produce json
// @Security BearerAuth
// @Param id path int true "Space ID"
// @Success 200 {object} model.ParkingSpace
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /spaces/{id} [get]
func (h *SpaceHandler) GetSpace(c echo.Context) error {
	id, err := parseSpaceID(c)
	if err != nil {
		return err
	}

	space, err := h.spaceService.GetSpace(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, space)
}

// BookSpot godoc
// @Summary Book a spot at a parking space
// @Tags spaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Space ID"
// @Param request body BookSpotRequest true "Booking data"
// @Success 201 {object} BookingResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /spaces/{id}/book [post]
func (h *SpaceHandler) BookSpot(c echo.Context) error {
	driverID, err := driverIDFromContext(c)
	if err != nil {
		return err
	}

	spaceID, err := parseSpaceID(c)
	if err != nil {
		return err
	}

	var req BookSpotRequest
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

	booking, err := h.bookingService.BookSpot(
		c.Request().Context(),
		driverID,
		spaceID,
		req.StartTime,
		req.DurationHours,
		req.PaymentMethod,
	)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, BookingResponse{Booking: booking})
}

func parseSpaceID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid space ID",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}
