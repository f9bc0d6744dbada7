package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zenapticlabs/expense-management-server/internal/core/ports/services"
	"github.com/zenapticlabs/expense-management-server/internal/dto"
	"github.com/zenapticlabs/expense-management-server/internal/utils"
)

// rateHandler serves the cached exchange-rate table and conversion factors.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rs}
}

// registerRateRoutes sets up the routes for exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rs portssvc.RateSvcFacade) {
	h := newRateHandler(rs)

	rates := rg.Group("/exchange-rates")
	{
		rates.GET("", h.listRates)
		rates.GET("/convert", h.conversionRate)
	}
}

// listRates godoc
// @Summary List exchange rates
// @Description Returns the current rate table, re-based to the requested currency (USD when omitted).
// @Tags rates
// @Produce json
// @Param base query string false "Base currency code (ISO 4217)"
// @Success 200 {object} dto.ListRatesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *rateHandler) listRates(c *gin.Context) {
	base := c.DefaultQuery("base", "USD")

	resp, err := h.rateService.ListRates(c.Request.Context(), base)
	if err != nil {
		respondServiceError(c, err, "Failed to list exchange rates")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// conversionRate godoc
// @Summary Conversion factor between two currencies
// @Description Returns the factor f such that amount_to = amount_from * f, resolved against one snapshot.
// @Tags rates
// @Produce json
// @Param from query string true "Source currency code"
// @Param to query string true "Target currency code"
// @Success 200 {object} dto.ConversionRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/convert [get]
func (h *rateHandler) conversionRate(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Query parameters 'from' and 'to' are required"})
		return
	}

	fromCode, err := utils.NormalizeCurrencyCode(from)
	if err != nil {
		respondServiceError(c, err, "Failed to compute conversion rate")
		return
	}
	toCode, err := utils.NormalizeCurrencyCode(to)
	if err != nil {
		respondServiceError(c, err, "Failed to compute conversion rate")
		return
	}

	rate, err := h.rateService.ConversionRate(c.Request.Context(), fromCode, toCode)
	if err != nil {
		respondServiceError(c, err, "Failed to compute conversion rate")
		return
	}

	c.JSON(http.StatusOK, dto.ConversionRateResponse{
		FromCurrency: fromCode,
		ToCurrency:   toCode,
		Rate:         rate,
	})
}
