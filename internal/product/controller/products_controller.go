package controller

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"backoffice/internal/domain"
	"backoffice/internal/dto"
	"backoffice/internal/infrastructure/httpio"
)

type ProductService interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error)
	UpdateProductDetails(ctx context.Context, id string, req dto.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type InventoryService interface {
	SetColorQuantity(ctx context.Context, productID, color string, newQty int) (*domain.Product, error)
	IncrementColorQuantity(ctx context.Context, productID, color string, delta int) (*domain.Product, error)
	SetStock(ctx context.Context, productID string, newStock int) (*domain.Product, error)
}

type Controller struct {
	products  ProductService
	inventory InventoryService
	logger    *zap.Logger
}

func NewController(products ProductService, inventory InventoryService, logger *zap.Logger) *Controller {
	return &Controller{
		products:  products,
		inventory: inventory,
		logger:    logger,
	}
}

// Routes mounts the product endpoints.
func (c *Controller) Routes(r chi.Router) {
	r.Get("/", c.HandleListProducts)
	r.Post("/", c.HandleCreateProduct)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", c.HandleGetProduct)
		r.Patch("/", c.HandleUpdateProduct)
		r.Delete("/", c.HandleDeleteProduct)
		r.Put("/colors/quantity", c.HandleSetColorQuantity)
		r.Post("/colors/increment", c.HandleIncrementColorQuantity)
		r.Put("/stock", c.HandleSetStock)
	})
}

func (c *Controller) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	filter := domain.ProductFilter{
		Title:    strings.TrimSpace(r.URL.Query().Get("title")),
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
	}

	products, err := c.products.ListProducts(r.Context(), filter)
	if err != nil {
		httpio.WriteError(w, r, c.logger, err)
		return
	}

	resp := dto.ListProductsResponse{Products: make([]dto.ProductDTO, 0, len(products))}
	for _, p := range products {
		resp.Products = append(resp.Products, dto.NewProductDTO(p))
	}
	httpio.WriteJSON(w, c.logger, http.StatusOK, resp)
}

func (c *Controller) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := httpio.DecodeStrict(w, r, &req); err != nil {
		httpio.WriteError(w, r, c.logger, err)
		return
	}

	p, err := c.products.CreateProduct(r.Context(), req)
	c.writeProduct(w, r, http.StatusCreated, p, err)
}

func (c *Controller) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := c.products.GetProduct(r.Context(), chi.URLParam(r, "id"))
	c.writeProduct(w, r, http.StatusOK, p, err)
}

func (c *Controller) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProductRequest
	if err := httpio.DecodeStrict(w, r, &req); err != nil {
		httpio.WriteError(w, r, c.logger, err)
		return
	}

	p, err := c.products.UpdateProductDetails(r.Context(), chi.URLParam(r, "id"), req)
	c.writeProduct(w, r, http.StatusOK, p, err)
}

func (c *Controller) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := c.products.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpio.WriteError(w, r, c.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) HandleSetColorQuantity(w http.ResponseWriter, r *http.Request) {
	var req dto.SetColorQuantityRequest
	if err := httpio.DecodeStrict(w, r, &req); err != nil {
		httpio.WriteError(w, r, c.logger, err)
		return
	}

	if req.Quantity == nil {
		httpio.WriteError(w, r, c.logger, httpio.RequiredField("quantity"))
		return
	}

	p, err := c.inventory.SetColorQuantity(r.Context(), chi.URLParam(r, "id"), req.SelectedColor, req.Quantity.Int())
	c.writeProduct(w, r, http.StatusOK, p, err)
}

func (c *Controller) HandleIncrementColorQuantity(w http.ResponseWriter, r *http.Request) {
	var req dto.IncrementColorQuantityRequest
	if err := httpio.DecodeStrict(w, r, &req); err != nil {
		httpio.WriteError(w, r, c.logger, err)
		return
	}

	if req.Delta == nil {
		httpio.WriteError(w, r, c.logger, httpio.RequiredField("delta"))
		return
	}

	p, err := c.inventory.IncrementColorQuantity(r.Context(), chi.URLParam(r, "id"), req.SelectedColor, req.Delta.Int())
	c.writeProduct(w, r, http.StatusOK, p, err)
}

func (c *Controller) HandleSetStock(w http.ResponseWriter, r *http.Request) {
	var req dto.SetStockRequest
	if err := httpio.DecodeStrict(w, r, &req); err != nil {
		httpio.WriteError(w, r, c.logger, err)
		return
	}

	if req.Stock == nil {
		httpio.WriteError(w, r, c.logger, httpio.RequiredField("stock"))
		return
	}

	p, err := c.inventory.SetStock(r.Context(), chi.URLParam(r, "id"), req.Stock.Int())
	c.writeProduct(w, r, http.StatusOK, p, err)
}

func (c *Controller) writeProduct(w http.ResponseWriter, r *http.Request, status int, p *domain.Product, err error) {
	if err != nil {
		httpio.WriteError(w, r, c.logger, err)
		return
	}
	httpio.WriteJSON(w, c.logger, status, dto.NewProductDTO(*p))
}
