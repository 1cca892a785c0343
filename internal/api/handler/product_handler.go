package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bizsphere/marketplace/internal/api/metrics"
	"github.com/bizsphere/marketplace/internal/core/ports"
)

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	service ports.CatalogService
}

func NewProductHandler(service ports.CatalogService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /products: active products, optionally filtered.
//
// @Summary      List public products
// @Tags         products
// @Produce      json
// @Param        category  query     string  false  "Category, or \"all\""
// @Param        business  query     string  false  "Owning business id"
// @Success      200       {array}   domain.ProductListing
// @Failure      500       {object}  messageResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	var q listProductsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	listings, err := h.service.ListPublic(c.Request().Context(), ports.ListPublicInput{
		Category:   q.Category,
		BusinessID: q.Business,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

// Get handles GET /products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.ProductListing
// @Failure      404  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	listing, err := h.service.GetOne(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// Mine handles GET /products/my-products: every product of the caller, inactive included.
//
// @Summary      List my products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Product
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /products/my-products [get]
func (h *ProductHandler) Mine(c echo.Context) error {
	owner, err := ctxAccount(c)
	if err != nil {
		return err
	}

	products, err := h.service.ListMine(c.Request().Context(), owner)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Create handles POST /products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product"
// @Success      201   {object}  productMessageResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	owner, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Create(c.Request().Context(), owner, toCreateInput(req))
	if err != nil {
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, productMessageResponse{
		Message: "Product created successfully",
		Product: product,
	})
}

// Update handles PUT /products/:id: partial update of one of the caller's products.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  productMessageResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	owner, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Update(c.Request().Context(), owner, c.Param("id"), toProductPatch(req))
	if err != nil {
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, productMessageResponse{
		Message: "Product updated successfully",
		Product: product,
	})
}

// Delete handles DELETE /products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	owner, err := ctxAccount(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), owner, c.Param("id")); err != nil {
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

// Stats handles GET /products/stats/business.
//
// @Summary      Catalog stats for the caller's business
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.BusinessStats
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /products/stats/business [get]
func (h *ProductHandler) Stats(c echo.Context) error {
	owner, err := ctxAccount(c)
	if err != nil {
		return err
	}

	stats, err := h.service.BusinessStats(c.Request().Context(), owner)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
