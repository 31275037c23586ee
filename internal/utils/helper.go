package utils

import (
	"encoding/json"
	"net/http"
	"strconv"

	"storefront/internal/apperror"
	"storefront/internal/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Envelope is the body of every API response. Code is 0 on success and the
// HTTP status otherwise.
type Envelope struct {
	Code    int    `json:"code"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, data any, message string) {
	code := 0
	if status >= http.StatusBadRequest {
		code = status
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Code: code, Data: data, Message: message})
}

func WriteOK(w http.ResponseWriter, data any, message string) {
	if message == "" {
		message = "Success"
	}
	WriteJSON(w, http.StatusOK, data, message)
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, nil, message)
}

// WriteError renders err with the status of its kind. Internal causes are
// logged and replaced with a generic message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	WriteJSONError(w, apperror.PublicMessage(err), apperror.HTTPStatus(kind))
}

// ParseObjectID converts a hex id from a path or body into an ObjectID.
func ParseObjectID(id, field string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperror.Validation("invalid " + field)
	}
	return oid, nil
}

// Pagination normalizes page and limit query values.
func Pagination(r *http.Request, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return NormalizePage(page, limit, defaultLimit)
}

func NormalizePage(page, limit, defaultLimit int) (int, int) {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	} else if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func Skip(page, limit int) int64 {
	return int64((page - 1) * limit)
}
