package controller

import (
	"net/http"

	"github.com/alimikegami/point-of-sales/catalog-service/internal/dto"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/service"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/response"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type Controller struct {
	service service.ProductService
}

func CreateProductController(e *echo.Group, service service.ProductService, isLoggedIn echo.MiddlewareFunc) {
	c := Controller{
		service: service,
	}
	e.GET("/products", c.GetProducts, isLoggedIn)
	e.GET("/products/featured", c.GetFeaturedProducts)
	e.GET("/products/recommendations", c.GetRecommendedProducts)
	e.GET("/products/category/:category", c.GetProductsByCategory)
	e.POST("/products", c.AddProduct, isLoggedIn)
	e.PATCH("/products/:id", c.ToggleFeaturedProduct, isLoggedIn)
	e.DELETE("/products/:id", c.DeleteProduct, isLoggedIn)
}

func (c *Controller) GetProducts(e echo.Context) error {
	resp, err := c.service.GetProducts(e.Request().Context())
	if err != nil {
		return writeError(e, "GetProducts", err)
	}

	return response.WriteJSON(e, http.StatusOK, resp)
}

func (c *Controller) GetFeaturedProducts(e echo.Context) error {
	ctx := e.Request().Context()

	snapshot, sideEffects, err := c.service.GetFeaturedProducts(ctx)
	sideEffects.Log(ctx, "GetFeaturedProducts")
	if err != nil {
		return writeError(e, "GetFeaturedProducts", err)
	}

	return response.WriteJSONBlob(e, http.StatusOK, snapshot)
}

func (c *Controller) AddProduct(e echo.Context) error {
	ctx := e.Request().Context()

	payload := dto.ProductRequest{}
	err := e.Bind(&payload)
	if err != nil {
		return writeError(e, "AddProduct", err)
	}

	product, sideEffects, err := c.service.AddProduct(ctx, payload)
	sideEffects.Log(ctx, "AddProduct")
	if err != nil {
		return writeError(e, "AddProduct", err)
	}

	logActor(e, "AddProduct", product.ID)

	return response.WriteJSON(e, http.StatusCreated, product)
}

func (c *Controller) DeleteProduct(e echo.Context) error {
	ctx := e.Request().Context()
	id := e.Param("id")

	sideEffects, err := c.service.DeleteProduct(ctx, id)
	sideEffects.Log(ctx, "DeleteProduct")
	if err != nil {
		return writeError(e, "DeleteProduct", err)
	}

	logActor(e, "DeleteProduct", id)

	return response.WriteJSON(e, http.StatusOK, dto.MessageResponse{Message: "product deleted successfully"})
}

func (c *Controller) GetRecommendedProducts(e echo.Context) error {
	products, err := c.service.GetRecommendedProducts(e.Request().Context())
	if err != nil {
		return writeError(e, "GetRecommendedProducts", err)
	}

	return response.WriteJSON(e, http.StatusOK, products)
}

func (c *Controller) GetProductsByCategory(e echo.Context) error {
	resp, err := c.service.GetProductsByCategory(e.Request().Context(), e.Param("category"))
	if err != nil {
		return writeError(e, "GetProductsByCategory", err)
	}

	return response.WriteJSON(e, http.StatusOK, resp)
}

func (c *Controller) ToggleFeaturedProduct(e echo.Context) error {
	ctx := e.Request().Context()
	id := e.Param("id")

	product, sideEffects, err := c.service.ToggleFeaturedProduct(ctx, id)
	sideEffects.Log(ctx, "ToggleFeaturedProduct")
	if err != nil {
		return writeError(e, "ToggleFeaturedProduct", err)
	}

	logActor(e, "ToggleFeaturedProduct", id)

	return response.WriteJSON(e, http.StatusOK, product)
}

func writeError(e echo.Context, component string, err error) error {
	if !errs.IsNotFound(err) {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", component).Msg("")
	}

	return response.WriteErrorResponse(e, err)
}

func logActor(e echo.Context, component string, productID string) {
	userID, name, _ := utils.ExtractTokenUser(e)
	log.Ctx(e.Request().Context()).Info().
		Str("component", component).
		Str("product_id", productID).
		Uint64("user_id", userID).
		Str("user_name", name).
		Msg("")
}
