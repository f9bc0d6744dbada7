package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zenapticlabs/expense-management-server/internal/core/ports/services"
	"github.com/zenapticlabs/expense-management-server/internal/dto"
)

// reportHandler drives the expense-report lifecycle for the authenticated user.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

func newReportHandler(rs portssvc.ReportSvcFacade) *reportHandler {
	return &reportHandler{reportService: rs}
}

// registerReportRoutes sets up the routes for expense reports.
func registerReportRoutes(rg *gin.RouterGroup, rs portssvc.ReportSvcFacade) {
	h := newReportHandler(rs)

	reports := rg.Group("/reports")
	{
		reports.POST("", h.createReport)
		reports.GET("", h.listReports)
		reports.GET("/:reportID", h.getReport)
		reports.PUT("/:reportID", h.updateReport)
		reports.DELETE("/:reportID", h.deleteReport)
		reports.POST("/:reportID/submit", h.submitReport)
		reports.PUT("/:reportID/status", h.updateReportStatus)
	}
}

// createReport godoc
// @Summary Create expense report
// @Description Opens a new expense report with a zero running amount.
// @Tags reports
// @Accept json
// @Produce json
// @Param report body dto.CreateReportRequest true "Report data"
// @Success 201 {object} dto.ExpenseReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports [post]
func (h *reportHandler) createReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	report, err := h.reportService.CreateReport(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create report")
		return
	}

	c.JSON(http.StatusCreated, dto.ToExpenseReportResponse(report))
}

// listReports godoc
// @Summary List expense reports
// @Description Lists the caller's reports; staff users see every report.
// @Tags reports
// @Produce json
// @Success 200 {array} dto.ExpenseReportResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports [get]
func (h *reportHandler) listReports(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	reports, err := h.reportService.ListReports(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list reports")
		return
	}

	c.JSON(http.StatusOK, dto.ToListExpenseReportResponse(reports))
}

// getReport godoc
// @Summary Get expense report
// @Description Fetches one report. Reports owned by other users look missing.
// @Tags reports
// @Produce json
// @Param reportID path string true "Report ID"
// @Success 200 {object} dto.ExpenseReportResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/{reportID} [get]
func (h *reportHandler) getReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), userID, c.Param("reportID"))
	if err != nil {
		respondServiceError(c, err, "Failed to get report")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseReportResponse(report))
}

// updateReport godoc
// @Summary Update expense report
// @Description Updates report metadata. The running amount, number and workflow state are not writable here.
// @Tags reports
// @Accept json
// @Produce json
// @Param reportID path string true "Report ID"
// @Param report body dto.UpdateReportRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/{reportID} [put]
func (h *reportHandler) updateReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	report, err := h.reportService.UpdateReport(c.Request.Context(), userID, c.Param("reportID"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update report")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseReportResponse(report))
}

// deleteReport godoc
// @Summary Delete expense report
// @Description Deletes a report and, through the database, its items and receipts.
// @Tags reports
// @Param reportID path string true "Report ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/{reportID} [delete]
func (h *reportHandler) deleteReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.reportService.DeleteReport(c.Request.Context(), userID, c.Param("reportID")); err != nil {
		respondServiceError(c, err, "Failed to delete report")
		return
	}

	c.Status(http.StatusNoContent)
}

// submitReport godoc
// @Summary Submit expense report
// @Description Advances an Open report to Submitted, stamping the submit date.
// @Tags reports
// @Produce json
// @Param reportID path string true "Report ID"
// @Success 200 {object} dto.ExpenseReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/{reportID}/submit [post]
func (h *reportHandler) submitReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	report, err := h.reportService.SubmitReport(c.Request.Context(), userID, c.Param("reportID"))
	if err != nil {
		respondServiceError(c, err, "Failed to submit report")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseReportResponse(report))
}

// updateReportStatus godoc
// @Summary Override report status
// @Description Administrative status override; only staff users may call this.
// @Tags reports
// @Accept json
// @Produce json
// @Param reportID path string true "Report ID"
// @Param status body dto.UpdateReportStatusRequest true "Status override"
// @Success 200 {object} dto.ExpenseReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/{reportID}/status [put]
func (h *reportHandler) updateReportStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	report, err := h.reportService.UpdateReportStatus(c.Request.Context(), userID, c.Param("reportID"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update report status")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseReportResponse(report))
}
