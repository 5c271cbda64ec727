package handler

import (
	"net/http"

	"github.com/leaox77/Inventory-System-Backend/internal/apierror"
	"github.com/leaox77/Inventory-System-Backend/internal/dto"
	"github.com/leaox77/Inventory-System-Backend/internal/middleware"
	"github.com/leaox77/Inventory-System-Backend/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventory service.InventoryService
}

func NewInventoryHandler(inventory service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// List godoc
// @Summary  Consultar el inventario
// @Tags     inventory
// @Security Bearer
// @Produce  json
// @Param    branch_id  query string false "Sucursal"
// @Param    product_id query string false "Producto"
// @Success  200 {array} dto.InventoryRecordResponse
// @Router   /v1/inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	var filter dto.InventoryFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.inventory.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	productID, ok := uuidParam(c, "product_id")
	if !ok {
		return
	}
	branchID, ok := uuidParam(c, "branch_id")
	if !ok {
		return
	}
	resp, err := h.inventory.Get(c.Request.Context(), productID, branchID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Adjust godoc
// @Summary  Ajuste manual de inventario
// @Description Aplica un delta con motivo obligatorio (merma, recuento,
// @Description rotura). Un delta negativo que dejaria stock negativo devuelve 409.
// @Tags     inventory
// @Security Bearer
// @Accept   json
// @Produce  json
// @Param    body body dto.AdjustInventoryRequest true "Ajuste"
// @Success  200 {object} dto.InventoryRecordResponse
// @Failure  409 {object} apierror.APIError
// @Router   /v1/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("token requerido"))
		return
	}
	var req dto.AdjustInventoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.inventory.Adjust(c.Request.Context(), userID, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LowStock godoc
// @Summary  Productos bajo stock minimo
// @Tags     inventory
// @Security Bearer
// @Produce  json
// @Success  200 {array} dto.LowStockAlertResponse
// @Router   /v1/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *gin.Context) {
	resp, err := h.inventory.LowStock(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
