package transport

import (
	"net/http"

	"storefront/internal/order"
	"storefront/internal/payment"
	"storefront/internal/utils"
)

type payRequest struct {
	PaymentMethod payment.Method `json:"paymentMethod"`
}

func (h *handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var input order.CreateInput
	if err := decodeJSON(w, r, &input); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	o, err := h.svc.Orders.CreateOrder(r.Context(), input)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteOK(w, o, "Order created")
}

func (h *handler) listOrders(w http.ResponseWriter, r *http.Request) {
	page, limit := utils.Pagination(r, order.DefaultListLimit)

	res, err := h.svc.Orders.ListOrders(r.Context(), page, limit)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteOK(w, res, "")
}

func (h *handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "order id")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	o, err := h.svc.Orders.GetOrder(r.Context(), id)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteOK(w, o, "")
}

func (h *handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "order id")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	o, err := h.svc.Orders.CancelOrder(r.Context(), id)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteOK(w, o, "Order cancelled")
}

func (h *handler) payOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "order id")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	var req payRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	o, err := h.svc.Orders.PayOrder(r.Context(), id, req.PaymentMethod)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteOK(w, o, "Payment successful")
}
