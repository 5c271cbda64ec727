package handler

import (
	"net/http"

	"github.com/leaox77/Inventory-System-Backend/internal/apierror"
	"github.com/leaox77/Inventory-System-Backend/internal/dto"
	"github.com/leaox77/Inventory-System-Backend/internal/middleware"
	"github.com/leaox77/Inventory-System-Backend/internal/service"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	sales service.SaleService
}

func NewSaleHandler(sales service.SaleService) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// Create godoc
// @Summary  Registrar una venta
// @Description Valida stock, calcula totales y descuenta inventario en una
// @Description sola transaccion. Devuelve 409 si el stock se agoto en paralelo.
// @Tags     sales
// @Security Bearer
// @Accept   json
// @Produce  json
// @Param    body body dto.CreateSaleRequest true "Venta"
// @Success  201 {object} dto.SaleResponse
// @Failure  409 {object} apierror.APIError
// @Failure  422 {object} apierror.ValidationFields
// @Router   /v1/sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("token requerido"))
		return
	}
	var req dto.CreateSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.sales.CreateSale(c.Request.Context(), userID, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary  Consultar una venta
// @Tags     sales
// @Security Bearer
// @Produce  json
// @Param    id path string true "ID de la venta"
// @Success  200 {object} dto.SaleResponse
// @Router   /v1/sales/{id} [get]
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.sales.GetSale(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary  Listar ventas
// @Tags     sales
// @Security Bearer
// @Produce  json
// @Param    date      query string false "YYYY-MM-DD"
// @Param    branch_id query string false "Sucursal"
// @Success  200 {object} dto.SaleListResponse
// @Router   /v1/sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.sales.ListSales(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
