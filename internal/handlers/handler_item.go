package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zenapticlabs/expense-management-server/internal/core/ports/services"
	"github.com/zenapticlabs/expense-management-server/internal/dto"
)

// itemHandler drives the expense-item lifecycle nested under a report.
type itemHandler struct {
	itemService portssvc.ItemSvcFacade
}

func newItemHandler(is portssvc.ItemSvcFacade) *itemHandler {
	return &itemHandler{itemService: is}
}

// registerItemRoutes sets up the item routes nested under /reports/:reportID.
func registerItemRoutes(rg *gin.RouterGroup, is portssvc.ItemSvcFacade) {
	h := newItemHandler(is)

	items := rg.Group("/reports/:reportID/items")
	{
		items.POST("", h.createItem)
		items.GET("", h.listItems)
		items.GET("/:itemID", h.getItem)
		items.PUT("/:itemID", h.updateItem)
		items.DELETE("/:itemID", h.deleteItem)
		items.GET("/:itemID/receipts/:receiptID/download", h.receiptDownloadURL)
	}
}

// createItem godoc
// @Summary Add expense item
// @Description Adds an item to a report; its contribution at the current exchange rate is settled into the report total atomically.
// @Tags items
// @Accept json
// @Produce json
// @Param reportID path string true "Report ID"
// @Param item body dto.CreateExpenseItemRequest true "Item data"
// @Success 201 {object} dto.ExpenseItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/{reportID}/items [post]
func (h *itemHandler) createItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateExpenseItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	item, uploadURLs, err := h.itemService.CreateItem(c.Request.Context(), userID, c.Param("reportID"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create item")
		return
	}

	c.JSON(http.StatusCreated, dto.ToExpenseItemResponse(item, uploadURLs))
}

// listItems godoc
// @Summary List expense items
// @Description Lists all items on a report, receipts included.
// @Tags items
// @Produce json
// @Param reportID path string true "Report ID"
// @Success 200 {array} dto.ExpenseItemResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/{reportID}/items [get]
func (h *itemHandler) listItems(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	items, err := h.itemService.ListItems(c.Request.Context(), userID, c.Param("reportID"))
	if err != nil {
		respondServiceError(c, err, "Failed to list items")
		return
	}

	c.JSON(http.StatusOK, dto.ToListExpenseItemResponse(items))
}

// getItem godoc
// @Summary Get expense item
// @Description Fetches one item scoped to its report.
// @Tags items
// @Produce json
// @Param reportID path string true "Report ID"
// @Param itemID path string true "Item ID"
// @Success 200 {object} dto.ExpenseItemResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/{reportID}/items/{itemID} [get]
func (h *itemHandler) getItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), userID, c.Param("reportID"), c.Param("itemID"))
	if err != nil {
		respondServiceError(c, err, "Failed to get item")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseItemResponse(item, nil))
}

// updateItem godoc
// @Summary Update expense item
// @Description Patches an item. Amount or currency changes reverse the old contribution at its stored rate and apply the new one at the current rate, atomically with the report total.
// @Tags items
// @Accept json
// @Produce json
// @Param reportID path string true "Report ID"
// @Param itemID path string true "Item ID"
// @Param item body dto.UpdateExpenseItemRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/{reportID}/items/{itemID} [put]
func (h *itemHandler) updateItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateExpenseItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	item, uploadURLs, err := h.itemService.UpdateItem(c.Request.Context(), userID, c.Param("reportID"), c.Param("itemID"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update item")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseItemResponse(item, uploadURLs))
}

// deleteItem godoc
// @Summary Delete expense item
// @Description Removes an item and reverses its contribution at the stored rate.
// @Tags items
// @Param reportID path string true "Report ID"
// @Param itemID path string true "Item ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/{reportID}/items/{itemID} [delete]
func (h *itemHandler) deleteItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), userID, c.Param("reportID"), c.Param("itemID")); err != nil {
		respondServiceError(c, err, "Failed to delete item")
		return
	}

	c.Status(http.StatusNoContent)
}

// receiptDownloadURL godoc
// @Summary Presign receipt download
// @Description Returns a short-lived presigned URL for a stored receipt file.
// @Tags items
// @Produce json
// @Param reportID path string true "Report ID"
// @Param itemID path string true "Item ID"
// @Param receiptID path int true "Receipt ID"
// @Success 200 {object} dto.PresignedURLResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/{reportID}/items/{itemID}/receipts/{receiptID}/download [get]
func (h *itemHandler) receiptDownloadURL(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	receiptID, err := strconv.ParseInt(c.Param("receiptID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid receipt ID"})
		return
	}

	url, err := h.itemService.ReceiptDownloadURL(c.Request.Context(), userID, c.Param("reportID"), c.Param("itemID"), receiptID)
	if err != nil {
		respondServiceError(c, err, "Failed to presign receipt download")
		return
	}

	c.JSON(http.StatusOK, dto.PresignedURLResponse{PresignedURL: url})
}
