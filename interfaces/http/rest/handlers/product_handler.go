package handlers

import (
	"errors"
	"io"
	"net/http"

	"catalog-backend/application/catalog"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies on the create route.
const maxBodyBytes = 1 << 20

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	create  *catalog.CreateProductHandler
	queries *catalog.ProductQueryHandler
	logger  *zap.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(
	create *catalog.CreateProductHandler,
	queries *catalog.ProductQueryHandler,
	logger *zap.Logger,
) *ProductHandler {
	return &ProductHandler{
		create:  create,
		queries: queries,
		logger:  logger,
	}
}

// CreateProduct godoc
// @Summary      Create a product with its stock
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        product  body      product.Product  true  "Product"
// @Success      201      {object}  catalog.CreatedBody
// @Failure      400      {object}  catalog.MessageBody
// @Failure      409      {object}  catalog.MessageBody
// @Failure      500      {object}  catalog.MessageBody
// @Router       /products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RenderMessage(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		h.logger.Warn("Failed to read request body", zap.Error(err))
		RenderMessage(w, http.StatusBadRequest, catalog.MsgInvalidJSON)
		return
	}

	Render(w, h.create.Handle(r.Context(), body))
}

// ListProducts godoc
// @Summary      List products with stock counts
// @Tags         products
// @Produce      json
// @Success      200  {array}   product.Product
// @Failure      500  {object}  catalog.MessageBody
// @Router       /products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	Render(w, h.queries.List(r.Context()))
}

// GetProduct godoc
// @Summary      Get a product with its stock count
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  product.Product
// @Failure      400  {object}  catalog.MessageBody
// @Failure      404  {object}  catalog.MessageBody
// @Failure      500  {object}  catalog.MessageBody
// @Router       /products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	Render(w, h.queries.Get(r.Context(), chi.URLParam(r, "id")))
}
