package handler

import (
	"net/http"

	"github.com/leaox77/Inventory-System-Backend/internal/apierror"
	"github.com/leaox77/Inventory-System-Backend/internal/dto"
	"github.com/leaox77/Inventory-System-Backend/internal/middleware"
	"github.com/leaox77/Inventory-System-Backend/internal/service"

	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	purchases service.PurchaseService
}

func NewPurchaseHandler(purchases service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

// Create godoc
// @Summary  Crear orden de compra
// @Description La orden nace en estado PENDING y no afecta inventario hasta
// @Description ser aprobada.
// @Tags     purchases
// @Security Bearer
// @Accept   json
// @Produce  json
// @Param    body body dto.CreatePurchaseOrderRequest true "Orden"
// @Success  201 {object} dto.PurchaseOrderResponse
// @Failure  400 {object} apierror.APIError "Productos inexistentes"
// @Router   /v1/purchase-orders [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("token requerido"))
		return
	}
	var req dto.CreatePurchaseOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.purchases.CreateOrder(c.Request.Context(), userID, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.purchases.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PurchaseHandler) List(c *gin.Context) {
	var filter dto.PurchaseOrderFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.purchases.ListOrders(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary  Cambiar el estado de una orden
// @Description PENDING→APPROVED incrementa el inventario de la sucursal en la
// @Description misma transaccion. Transiciones invalidas devuelven 409.
// @Tags     purchases
// @Security Bearer
// @Accept   json
// @Produce  json
// @Param    id   path string true "ID de la orden"
// @Param    body body dto.UpdateOrderStatusRequest true "Nuevo estado"
// @Success  200 {object} dto.PurchaseOrderResponse
// @Failure  409 {object} apierror.APIError
// @Router   /v1/purchase-orders/{id}/status [patch]
func (h *PurchaseHandler) UpdateStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.purchases.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
