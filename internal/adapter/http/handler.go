package http

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/interconnecting-flights/internal/adapter/http/response"
	"github.com/flight-search/interconnecting-flights/internal/domain"
	"github.com/flight-search/interconnecting-flights/internal/infrastructure/logger"
	"github.com/flight-search/interconnecting-flights/internal/usecase"
)

// InterconnectionHandler handles the itinerary search endpoints.
type InterconnectionHandler struct {
	useCase usecase.InterconnectionSearchUseCase
	limits  StopLimits
}

// NewInterconnectionHandler creates a new InterconnectionHandler.
func NewInterconnectionHandler(uc usecase.InterconnectionSearchUseCase, limits StopLimits) *InterconnectionHandler {
	return &InterconnectionHandler{
		useCase: uc,
		limits:  limits,
	}
}

// SearchInterconnections handles GET /api/v1/interconnections
//
// @Summary Search interconnecting flights
// @Description Lists direct and connecting itineraries between two airports within a time window, grouped by number of stops
// @Tags interconnections
// @Produce json
// @Param departure query string true "Departure airport IATA code" example(DUB)
// @Param departureDateTime query string true "Earliest departure, local time" example(2018-03-01T07:00)
// @Param arrival query string true "Arrival airport IATA code" example(WRO)
// @Param arrivalDateTime query string true "Latest arrival, local time" example(2018-03-03T21:00)
// @Param maxStops query int false "Maximum number of intermediate airports" default(1)
// @Success 200 {array} SwaggerItinerary
// @Failure 400 {object} SwaggerErrorResponse "Validation error"
// @Failure 500 {object} SwaggerErrorResponse "Internal error"
// @Failure 504 {object} SwaggerErrorResponse "Search timed out"
// @Router /interconnections [get]
func (h *InterconnectionHandler) SearchInterconnections(c echo.Context) error {
	var req SearchInterconnectionsRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidQuery(c)
	}

	criteria, err := req.ToCriteria(h.limits)
	if err != nil {
		return h.handleValidationError(c, err)
	}

	ctx := c.Request().Context()
	itineraries, err := h.useCase.Search(ctx, criteria)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.OK(c, ToItineraryDTOs(itineraries))
}

// handleValidationError writes a 400 with per-field details when available.
func (h *InterconnectionHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps use case errors to HTTP responses.
func (h *InterconnectionHandler) handleError(c echo.Context, err error) error {
	switch {
	case domain.IsInvalidRequest(err):
		var fieldErr *domain.ValidationError
		if errors.As(err, &fieldErr) {
			return response.ValidationError(c, map[string]string{fieldErr.Field: fieldErr.Message})
		}
		return response.ValidationErrorWithMessage(c, validationMessage(err))
	case errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c)
	case errors.Is(err, context.Canceled):
		return response.RequestCancelled(c)
	}

	logger.FromContext(c.Request().Context()).Error().Err(err).Msg("Search failed")
	return response.InternalServerError(c)
}

// validationMessage strips the ErrInvalidRequest prefix so the client sees
// only the violated precondition.
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), domain.ErrInvalidRequest.Error()+": ")
}

// Health handles GET /health
func (h *InterconnectionHandler) Health(c echo.Context) error {
	return response.Health(c)
}
