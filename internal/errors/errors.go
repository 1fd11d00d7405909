package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrSpaceNotFound is returned when a parking space is not found.
	ErrSpaceNotFound = errors.New("parking space not found")
	// ErrBookingNotFound is returned when a booking is absent or not
	// owned by the caller. The two cases share one error so that
	// non-owners cannot probe for booking existence.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrSpotUnavailable is returned when a claim loses the availability
	// check at commit time.
	ErrSpotUnavailable = errors.New("no available spots")
	// ErrInvalidTimeRange is returned when start_time is not before end_time.
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	// ErrInvalidDuration is returned when a duration is zero or negative.
	ErrInvalidDuration = errors.New("duration must be greater than 0")
	// ErrAlreadyReleased is returned when releasing a booking that no
	// longer holds a spot.
	ErrAlreadyReleased = errors.New("booking already cancelled or completed")
	// ErrInvalidCapacity is returned when a space's total spots is negative.
	ErrInvalidCapacity = errors.New("total spots must not be negative")
	// ErrEmailTaken is returned when registering with an email that exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrPlateTaken is returned when registering a duplicate plate number.
	ErrPlateTaken = errors.New("plate number already registered")
	// ErrVehicleNotFound is returned when a vehicle is absent or not
	// owned by the caller.
	ErrVehicleNotFound = errors.New("vehicle not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrSpaceNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SPACE_NOT_FOUND")
	case errors.Is(err, ErrBookingNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BOOKING_NOT_FOUND")
	case errors.Is(err, ErrSpotUnavailable):
		return NewHTTPError(http.StatusConflict, err.Error(), "SPOT_UNAVAILABLE")
	case errors.Is(err, ErrInvalidTimeRange):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TIME_RANGE")
	case errors.Is(err, ErrInvalidDuration):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DURATION")
	case errors.Is(err, ErrAlreadyReleased):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_RELEASED")
	case errors.Is(err, ErrInvalidCapacity):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CAPACITY")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrPlateTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "PLATE_TAKEN")
	case errors.Is(err, ErrVehicleNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "VEHICLE_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
