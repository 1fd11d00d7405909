package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"parkhub/internal/errors"
	"parkhub/internal/model"
	"parkhub/internal/service"
)

// BookingHandler handles booking endpoints.
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBookingRequest represents a booking creation request.
type CreateBookingRequest struct {
	ParkingSpaceID uint      `json:"parking_space_id" validate:"required"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	EndTime        time.Time `json:"end_time" validate:"required"`
	PaymentMethod  string    `json:"payment_method"`
}

// UpdateBookingRequest represents a partial booking update request.
type UpdateBookingRequest struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

// ExtendBookingRequest represents a booking extension request.
type ExtendBookingRequest struct {
	AdditionalHours float64 `json:"additional_hours" validate:"required"`
}

// BookingResponse wraps a booking record.
type BookingResponse struct {
	Booking *model.Booking `json:"booking"`
}

// ExtendBookingResponse wraps a booking record and the extension cost.
type ExtendBookingResponse struct {
	Booking        *model.Booking `json:"booking"`
	AdditionalCost string         `json:"additional_cost"`
}

// CreateBooking godoc
// @Summary Create a booking and claim a spot
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBookingRequest true "Booking data"
// @Success 201 {object} BookingResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	driverID, err := driverIDFromContext(c)
	if err != nil {
		return err
	}

	var req CreateBookingRequest
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

	booking, err := h.bookingService.CreateBooking(
		c.Request().Context(),
		driverID,
		req.ParkingSpaceID,
		req.StartTime,
		req.EndTime,
		req.PaymentMethod,
	)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, BookingResponse{Booking: booking})
}

// ListBookings godoc
// @Summary List the caller's bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter (all, pending, active, completed, cancelled)"
// @Param search query string false "Substring match on space name/address"
// @Success 200 {array} model.Booking
// @Failure 401 {object} errors.ErrorResponse
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c echo.Context) error {
	driverID, err := driverIDFromContext(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookingService.ListBookings(
		c.Request().Context(),
		driverID,
		c.QueryParam("status"),
		c.QueryParam("search"),
	)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, bookings)
}

// UpdateBooking godoc
// @Summary Update a booking's time window
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body UpdateBookingRequest true "Fields to update"
// @Success 200 {object} BookingResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookings/{id} [put]
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	driverID, err := driverIDFromContext(c)
	if err != nil {
		return err
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid booking ID",
			Code:  "INVALID_UUID",
		})
	}

	var req UpdateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	booking, err := h.bookingService.UpdateBooking(c.Request().Context(), driverID, bookingID, req.StartTime, req.EndTime)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, BookingResponse{Booking: booking})
}

// CancelBooking godoc
// @Summary Cancel a booking and release its spot
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /bookings/{id} [delete]
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	driverID, err := driverIDFromContext(c)
	if err != nil {
		return err
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid booking ID",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.bookingService.CancelBooking(c.Request().Context(), driverID, bookingID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "booking cancelled"})
}

// ExtendBooking godoc
// @Summary Extend a booking's duration
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body ExtendBookingRequest true "Extension data"
// @Success 200 {object} ExtendBookingResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /bookings/{id}/extend [post]
func (h *BookingHandler) ExtendBooking(c echo.Context) error {
	driverID, err := driverIDFromContext(c)
	if err != nil {
		return err
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid booking ID",
			Code:  "INVALID_UUID",
		})
	}

	var req ExtendBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	booking, cost, err := h.bookingService.ExtendBooking(c.Request().Context(), driverID, bookingID, req.AdditionalHours)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, ExtendBookingResponse{
		Booking:        booking,
		AdditionalCost: cost.String(),
	})
}

// DashboardStats godoc
// @Summary Get the caller's dashboard summary
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DashboardStats
// @Failure 401 {object} errors.ErrorResponse
// @Router /dashboard/stats [get]
func (h *BookingHandler) DashboardStats(c echo.Context) error {
	driverID, err := driverIDFromContext(c)
	if err != nil {
		return err
	}

	stats, err := h.bookingService.GetDashboardStats(c.Request().Context(), driverID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, stats)
}

// RecentBookings godoc
// @Summary List the caller's most recent bookings
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Booking
// @Failure 401 {object} errors.ErrorResponse
// @Router /dashboard/recent [get]
func (h *BookingHandler) RecentBookings(c echo.Context) error {
	driverID, err := driverIDFromContext(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookingService.RecentBookings(c.Request().Context(), driverID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, bookings)
}
