package transport

import (
	"net/http"

	"storefront/internal/user"
	"storefront/internal/utils"
)

func (h *handler) captcha(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.svc.Captcha.Issue(r.Context())
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	utils.WriteOK(w, challenge, "")
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var input user.RegisterInput
	if err := decodeJSON(w, r, &input); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	profile, err := h.svc.Users.Register(r.Context(), input)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.WriteOK(w, profile, "Registration successful, please check your email to verify your account")
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var input user.LoginInput
	if err := decodeJSON(w, r, &input); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Users.Login(r.Context(), input)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.WriteOK(w, res, "Login successful")
}

func (h *handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.Users.VerifyEmail(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}

	utils.WriteOK(w, profile, "Email verified")
}
