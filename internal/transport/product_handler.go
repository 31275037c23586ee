package transport

import (
	"net/http"

	"storefront/internal/product"
	"storefront/internal/utils"
)

func (h *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	page, limit := utils.Pagination(r, product.DefaultListLimit)

	res, err := h.svc.Products.List(r.Context(), page, limit)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteOK(w, res, "")
}

func (h *handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Products.Search(r.Context(), r.URL.Query().Get("keyword"))
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteOK(w, res, "")
}

func (h *handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "product id")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	p, err := h.svc.Products.Get(r.Context(), id)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteOK(w, p, "")
}

func (h *handler) listCategories(w http.ResponseWriter, r *http.Request) {
	utils.WriteOK(w, h.svc.Categories.List(), "")
}
