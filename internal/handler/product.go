package handler

import (
	"net/http"
	"pharmacy-store/internal/dto"
	"pharmacy-store/internal/repository"
	"pharmacy-store/internal/service"
	"strconv"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	catalogService service.CatalogService
}

func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
	}
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	filter := repository.ProductFilter{
		Search:       c.QueryParam("search"),
		FeaturedOnly: c.QueryParam("featured") == "true",
	}
	if raw := c.QueryParam("category"); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid category")
		}
		filter.CategoryID = uint(categoryID)
	}

	products, err := h.catalogService.ListProducts(ctx, filter)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Featured(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalogService.FeaturedProducts(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Categories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.catalogService.Categories(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *ProductHandler) ByCategory(c echo.Context) error {
	ctx := c.Request().Context()

	categoryID, err := parseID(c, "categoryId")
	if err != nil {
		return err
	}

	products, err := h.catalogService.ProductsByCategory(ctx, categoryID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.catalogService.GetProduct(ctx, productID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	productID, err := h.catalogService.CreateProduct(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":    "product created successfully",
		"product_id": productID,
	})
}

func (h *ProductHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	if err := h.catalogService.UpdateProduct(ctx, productID, &req); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "product updated successfully",
	})
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogService.DeleteProduct(ctx, productID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "product deleted successfully",
	})
}
