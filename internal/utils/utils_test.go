package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"storefront/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserContext(t *testing.T) {
	t.Run("SetUserContext and GetUserIDFromContext", func(t *testing.T) {
		userID := primitive.NewObjectID()
		ctx := SetUserContext(context.Background(), userID, "user@example.com", "user")

		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, userID, id)
		assert.Equal(t, "user@example.com", GetUserEmailFromContext(ctx))
		assert.Equal(t, "user", GetUserRoleFromContext(ctx))
	})

	t.Run("GetUserIDFromContext with empty context", func(t *testing.T) {
		_, ok := GetUserIDFromContext(context.Background())
		assert.False(t, ok)
		assert.Empty(t, GetUserEmailFromContext(context.Background()))
	})

	t.Run("Zero id is not a user", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), primitive.NilObjectID, "", "")
		_, ok := GetUserIDFromContext(ctx)
		assert.False(t, ok)
	})
}

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2026, 10, 19, 14, 25, 1, 42*int(time.Millisecond), time.UTC)

	no := GenerateOrderNumber(now)
	assert.Regexp(t, regexp.MustCompile(`^ORD-20261019-142501-042-\d{4}$`), no)
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	return env
}

func TestWriteOK(t *testing.T) {
	w := httptest.NewRecorder()
	WriteOK(w, map[string]string{"key": "abc"}, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	env := decodeEnvelope(t, w)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "Success", env.Message)
	assert.Equal(t, map[string]any{"key": "abc"}, env.Data)
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/orders/1", nil)

	t.Run("Kinded error", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, req, apperror.NotFound("order not found"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, http.StatusNotFound, env.Code)
		assert.Equal(t, "order not found", env.Message)
		assert.Nil(t, env.Data)
	})

	t.Run("Unknown error hides cause", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, req, errors.New("mongo: socket closed"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "internal server error", env.Message)
	})
}

func TestParseObjectID(t *testing.T) {
	id := primitive.NewObjectID()

	got, err := ParseObjectID(id.Hex(), "product id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseObjectID("not-hex", "product id")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.EqualError(t, err, "invalid product id")
}

func TestPagination(t *testing.T) {
	tests := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 12},
		{"?page=3&limit=5", 3, 5},
		{"?page=-1&limit=0", 1, 12},
		{"?page=abc&limit=1000", 1, MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/products"+tt.query, nil)
			page, limit := Pagination(req, 12)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}

	assert.Equal(t, int64(20), Skip(3, 10))
	assert.Equal(t, int64(0), Skip(1, 10))
}
