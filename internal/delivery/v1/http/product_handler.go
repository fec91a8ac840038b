package http

import (
	"net/http"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/internal/locale"
	"github.com/DRSN-tech/autovarka/internal/usecase"
	"github.com/DRSN-tech/autovarka/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	handler
	products usecase.ProductUC
}

func NewProductHandler(products usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{handler: handler{logger: logger}, products: products}
}

type ProductResponse struct {
	Success bool            `json:"success"`
	Product *domain.Product `json:"product"`
}

type ProductsResponse []domain.Product

type CatalogResponse struct {
	Success  bool                 `json:"success"`
	Locale   string               `json:"locale"`
	Products []domain.ProductView `json:"products"`
}

// listProducts
//
//	@Summary	Все товары со всеми переводами
//	@Tags		products
//	@Produce	json
//	@Success	200	{array}		domain.Product
//	@Router		/products [get]
func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if products == nil {
		products = []domain.Product{}
	}

	WriteSuccess(w, http.StatusOK, ProductsResponse(products))
}

func (h *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, ProductResponse{Success: true, Product: product})
}

// catalog
//
//	@Summary		Каталог на языке запроса
//	@Description	Язык берётся из префикса пути (/en/api/v1/catalog), по умолчанию uk
//	@Tags			products
//	@Produce		json
//	@Param			featured	query		bool	false	"Только рекомендуемые"
//	@Success		200			{object}	CatalogResponse
//	@Router			/catalog [get]
func (h *ProductHandler) catalog(w http.ResponseWriter, r *http.Request) {
	code := locale.FromContext(r.Context())
	featured := r.URL.Query().Get("featured") == "true"

	views, err := h.products.Catalog(r.Context(), code, featured)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if views == nil {
		views = []domain.ProductView{}
	}

	WriteSuccess(w, http.StatusOK, CatalogResponse{Success: true, Locale: code, Products: views})
}

// createProduct
//
//	@Summary	Создание товара
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		product	body		usecase.ProductInput	true	"Товар"
//	@Success	201		{object}	ProductResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Router		/admin/products [post]
func (h *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req usecase.ProductInput
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	product, err := h.products.Create(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, ProductResponse{Success: true, Product: product})
}

func (h *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var patch usecase.ProductPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		h.fail(w, r, err)
		return
	}

	product, err := h.products.Update(r.Context(), chi.URLParam(r, "id"), &patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, ProductResponse{Success: true, Product: product})
}

func (h *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, SuccessResponse{Success: true})
}
