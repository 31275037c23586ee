package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"storefront/internal/apperror"
	"storefront/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type handler struct {
	svc Services
}

var errInvalidBody = apperror.Validation("invalid request body")

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errInvalidBody
	}
	return nil
}

func pathID(r *http.Request, field string) (primitive.ObjectID, error) {
	return utils.ParseObjectID(chi.URLParam(r, "id"), field)
}

func writeNotFound(w http.ResponseWriter) {
	utils.WriteJSONError(w, "route not found", http.StatusNotFound)
}

type healthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteOK(w, healthStatus{Status: "ok", Timestamp: time.Now().UTC()}, "")
}
