package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	portssvc "github.com/zenapticlabs/expense-management-server/internal/core/ports/services"
	"github.com/zenapticlabs/expense-management-server/internal/dto"
)

// lookupKinds maps URL segments to reference tables. Unknown segments 404
// before touching the database.
var lookupKinds = map[string]domain.LookupKind{
	"airlines":          domain.LookupAirline,
	"rental-agencies":   domain.LookupRentalAgency,
	"car-types":         domain.LookupCarType,
	"meal-categories":   domain.LookupMealCategory,
	"pai-relationships": domain.LookupRelationshipToPAI,
	"cities":            domain.LookupCity,
}

// lookupHandler serves the reference tables consumed by the expense UI.
type lookupHandler struct {
	lookupService portssvc.LookupSvcFacade
}

func newLookupHandler(ls portssvc.LookupSvcFacade) *lookupHandler {
	return &lookupHandler{lookupService: ls}
}

// registerLookupRoutes sets up the routes for reference data.
func registerLookupRoutes(rg *gin.RouterGroup, ls portssvc.LookupSvcFacade) {
	h := newLookupHandler(ls)

	lookups := rg.Group("/lookups")
	{
		lookups.GET("/hotel-rates", h.listHotelRates)
		lookups.GET("/mileage-rates", h.listMileageRates)
		lookups.GET("/:kind", h.listValues)
	}
}

// listValues godoc
// @Summary List reference values
// @Description Lists the values of one reference table (airlines, rental-agencies, car-types, meal-categories, pai-relationships, cities).
// @Tags lookups
// @Produce json
// @Param kind path string true "Reference table"
// @Success 200 {array} dto.LookupValueResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /lookups/{kind} [get]
func (h *lookupHandler) listValues(c *gin.Context) {
	kind, ok := lookupKinds[c.Param("kind")]
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Unknown lookup kind"})
		return
	}

	values, err := h.lookupService.ListValues(c.Request.Context(), kind)
	if err != nil {
		respondServiceError(c, err, "Failed to list lookup values")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLookupValueResponse(values))
}

// listHotelRates godoc
// @Summary List hotel daily base rates
// @Description Lists the allowed nightly base rate per city.
// @Tags lookups
// @Produce json
// @Success 200 {array} dto.HotelDailyBaseRateResponse
// @Security BearerAuth
// @Router /lookups/hotel-rates [get]
func (h *lookupHandler) listHotelRates(c *gin.Context) {
	rates, err := h.lookupService.ListHotelRates(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list hotel rates")
		return
	}

	c.JSON(http.StatusOK, dto.ToListHotelRateResponse(rates))
}

// listMileageRates godoc
// @Summary List mileage rates
// @Description Lists the per-distance reimbursement rates by company.
// @Tags lookups
// @Produce json
// @Success 200 {array} dto.MileageRateResponse
// @Security BearerAuth
// @Router /lookups/mileage-rates [get]
func (h *lookupHandler) listMileageRates(c *gin.Context) {
	rates, err := h.lookupService.ListMileageRates(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list mileage rates")
		return
	}

	c.JSON(http.StatusOK, dto.ToListMileageRateResponse(rates))
}
