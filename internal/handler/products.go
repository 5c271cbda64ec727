package handler

import (
	"net/http"

	"github.com/leaox77/Inventory-System-Backend/internal/apierror"
	"github.com/leaox77/Inventory-System-Backend/internal/dto"
	"github.com/leaox77/Inventory-System-Backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductHandler struct {
	products service.ProductService
}

func NewProductHandler(products service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create godoc
// @Summary  Crear producto
// @Tags     products
// @Security Bearer
// @Accept   json
// @Produce  json
// @Param    body body dto.CreateProductRequest true "Producto"
// @Success  201 {object} dto.ProductResponse
// @Router   /v1/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary  Listar productos
// @Tags     products
// @Security Bearer
// @Produce  json
// @Param    name    query string false "Busqueda parcial por nombre"
// @Param    barcode query string false "Codigo de barras exacto"
// @Param    active  query string false "false | all (por defecto solo activos)"
// @Success  200 {object} dto.ProductListResponse
// @Router   /v1/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deactivate soft-deletes: the product disappears from listings and can no
// longer be sold, but historical sales keep their reference.
func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.products.Deactivate(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) Reactivate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.products.Reactivate(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PriceCheck godoc
// @Summary  Verificador de precios por codigo de barras
// @Description Endpoint publico para los verificadores de tienda; cacheado.
// @Tags     products
// @Produce  json
// @Param    barcode   path  string true  "Codigo de barras"
// @Param    branch_id query string false "Stock de una sucursal concreta"
// @Success  200 {object} dto.PriceCheckResponse
// @Router   /v1/price-check/{barcode} [get]
func (h *ProductHandler) PriceCheck(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		c.JSON(http.StatusBadRequest, apierror.New("codigo de barras requerido"))
		return
	}
	var branchID *uuid.UUID
	if raw := c.Query("branch_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("branch_id invalido"))
			return
		}
		branchID = &id
	}
	resp, err := h.products.PriceCheck(c.Request.Context(), barcode, branchID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
