package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecopilot/trip-planner/internal/api/metrics"
	"github.com/ecopilot/trip-planner/internal/core/domain"
	"github.com/ecopilot/trip-planner/internal/core/ports"
)

// ItineraryHandler serves trip generation and destination autocomplete.
type ItineraryHandler struct {
	service ports.ItineraryService
}

func NewItineraryHandler(service ports.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{service: service}
}

// Suggest handles GET /destinations/suggest?q=<text>.
//
// @Summary      Destination autocomplete
// @Tags         itineraries
// @Produce      json
// @Param        q    query     string  true  "Partial destination name (3+ characters)"
// @Success      200  {object}  suggestionsResponse
// @Router       /destinations/suggest [get]
func (h *ItineraryHandler) Suggest(c echo.Context) error {
	names, err := h.service.Suggest(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return domain.WithOp(domain.OpItinerary, err)
	}
	return c.JSON(http.StatusOK, suggestionsResponse{Suggestions: names})
}

// Generate handles POST /itineraries. Premium users only.
//
// @Summary      Generate itineraries
// @Tags         itineraries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      generateItinerariesRequest  true  "Trip details"
// @Success      200   {object}  itinerariesResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /itineraries [post]
func (h *ItineraryHandler) Generate(c echo.Context) error {
	var req generateItinerariesRequest
	if err := c.Bind(&req); err != nil {
		return domain.WithOp(domain.OpItinerary, domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Generate(c.Request().Context(), ports.GenerateItinerariesInput{
		Destination: req.Destination,
		Dates:       req.Dates,
		Theme:       req.Theme,
	})
	if err != nil {
		return domain.WithOp(domain.OpItinerary, err)
	}

	metrics.ItinerariesGeneratedTotal.WithLabelValues(string(result.Theme)).Inc()

	return c.JSON(http.StatusOK, itinerariesResponse{
		Success:     true,
		Message:     domain.MsgItinerariesReady,
		Destination: result.Destination,
		Theme:       string(result.Theme),
		Itineraries: result.Itineraries,
		Map:         result.Map,
	})
}
