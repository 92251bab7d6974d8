package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/recipe-api/internal/middlewares"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/stretchr/testify/require"
)

var testUser = &models.UserDB{ID: 1, Email: "john@example.com", Name: "John", IsActive: true}

// newRequest builds a request with an optional JSON body, authenticated user
// and {id} URL parameter.
func newRequest(t *testing.T, method, target, body string, user *models.UserDB, id string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	ctx := req.Context()
	if user != nil {
		ctx = middlewares.WithUser(ctx, user, "validtoken")
	}
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}
