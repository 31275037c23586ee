package transport

import (
	"net/http"

	"storefront/internal/address"
	"storefront/internal/user"
	"storefront/internal/utils"
)

func (h *handler) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.Users.GetProfile(r.Context())
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteOK(w, profile, "")
}

func (h *handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var params user.UpdateProfileParams
	if err := decodeJSON(w, r, &params); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	profile, err := h.svc.Users.UpdateProfile(r.Context(), params)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteOK(w, profile, "Profile updated")
}

func (h *handler) listAddresses(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Addresses.List(r.Context())
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if list == nil {
		list = []address.Address{}
	}
	utils.WriteOK(w, list, "")
}

func (h *handler) createAddress(w http.ResponseWriter, r *http.Request) {
	var input address.Input
	if err := decodeJSON(w, r, &input); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	a, err := h.svc.Addresses.Create(r.Context(), input)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteOK(w, a, "Address added")
}

func (h *handler) updateAddress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "address id")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	var input address.Input
	if err := decodeJSON(w, r, &input); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	a, err := h.svc.Addresses.Update(r.Context(), id, input)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteOK(w, a, "Address updated")
}

func (h *handler) deleteAddress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "address id")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	if err := h.svc.Addresses.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteOK(w, nil, "Address deleted")
}

func (h *handler) setDefaultAddress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "address id")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	if err := h.svc.Addresses.SetDefaultAddress(r.Context(), id); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteOK(w, nil, "Default address updated")
}
