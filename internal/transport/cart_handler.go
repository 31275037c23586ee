package transport

import (
	"net/http"

	"storefront/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type cartSelectRequest struct {
	ProductIDs []string `json:"productIds"`
	Selected   bool     `json:"selected"`
}

// optionalProductID leaves a missing id as the zero value so the cart
// service reports it as missing rather than malformed.
func optionalProductID(hex string) (primitive.ObjectID, error) {
	if hex == "" {
		return primitive.NilObjectID, nil
	}
	return utils.ParseObjectID(hex, "product id")
}

func (h *handler) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Carts.GetCart(r.Context())
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteOK(w, view, "")
}

func (h *handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	productID, err := optionalProductID(req.ProductID)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	view, err := h.svc.Carts.AddItem(r.Context(), productID, req.Quantity)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteOK(w, view, "")
}

func (h *handler) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	productID, err := utils.ParseObjectID(req.ProductID, "product id")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	view, err := h.svc.Carts.SetQuantity(r.Context(), productID, req.Quantity)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteOK(w, view, "")
}

func (h *handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "product id")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	view, err := h.svc.Carts.RemoveItem(r.Context(), productID)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteOK(w, view, "")
}

func (h *handler) setCartSelection(w http.ResponseWriter, r *http.Request) {
	var req cartSelectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	ids := make([]primitive.ObjectID, 0, len(req.ProductIDs))
	for _, hex := range req.ProductIDs {
		id, err := utils.ParseObjectID(hex, "product id")
		if err != nil {
			utils.WriteError(w, r, err)
			return
		}
		ids = append(ids, id)
	}

	view, err := h.svc.Carts.SetSelection(r.Context(), ids, req.Selected)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteOK(w, view, "")
}
