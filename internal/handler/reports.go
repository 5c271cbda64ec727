package handler

import (
	"net/http"

	"github.com/leaox77/Inventory-System-Backend/internal/apierror"
	"github.com/leaox77/Inventory-System-Backend/internal/dto"
	"github.com/leaox77/Inventory-System-Backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// SalesSummary godoc
// @Summary  Resumen de ventas por rango de fechas
// @Tags     reports
// @Security Bearer
// @Produce  json
// @Param    from      query string true  "YYYY-MM-DD"
// @Param    to        query string true  "YYYY-MM-DD (inclusivo)"
// @Param    branch_id query string false "Sucursal"
// @Success  200 {object} dto.SalesReportResponse
// @Router   /v1/reports/sales [get]
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	var filter dto.SalesReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.reports.SalesSummary(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SalesCSV streams the detail-level export as a CSV attachment.
func (h *ReportHandler) SalesCSV(c *gin.Context) {
	var filter dto.SalesReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	data, err := h.reports.SalesCSV(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="ventas_`+filter.From+"_"+filter.To+`.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *ReportHandler) InventoryCSV(c *gin.Context) {
	var branchID *uuid.UUID
	if raw := c.Query("branch_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("branch_id invalido"))
			return
		}
		branchID = &id
	}
	data, err := h.reports.InventoryCSV(c.Request.Context(), branchID)
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="inventario.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// InvoicePDF godoc
// @Summary  Descargar el recibo PDF de una venta
// @Tags     reports
// @Security Bearer
// @Produce  application/pdf
// @Param    id path string true "ID de la venta"
// @Router   /v1/sales/{id}/receipt [get]
func (h *ReportHandler) InvoicePDF(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	data, filename, err := h.reports.InvoicePDF(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
