package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"munchmarket/cart"
	"munchmarket/middleware"
)

func TestAddItemRejectsDuplicateSubmission(t *testing.T) {
	cc := NewCartController(cart.NewMemoryStore(), nil, zap.NewNop())
	router := mux.NewRouter()
	router.Use(middleware.Session)
	router.HandleFunc("/cart/items", cc.AddItem).Methods("POST")

	// The session already has an add pending; a second submission of the
	// same operation must bounce instead of running twice.
	require.True(t, cc.pending.begin("session-1:add"))
	defer cc.pending.end("session-1:add")

	req := httptest.NewRequest(http.MethodPost, "/cart/items",
		strings.NewReader(`{"name":"Chapati","unitPrice":{"amount":"30","currency":"KES"}}`))
	req.Header.Set(middleware.SessionHeader, "session-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	// A different session is unaffected.
	req = httptest.NewRequest(http.MethodPost, "/cart/items",
		strings.NewReader(`{"name":"Chapati","unitPrice":{"amount":"30","currency":"KES"}}`))
	req.Header.Set(middleware.SessionHeader, "session-2")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NotEqual(t, http.StatusConflict, w.Code)
}

func TestInflightBeginEnd(t *testing.T) {
	g := newInflight()

	require.True(t, g.begin("s:checkout"))
	assert.False(t, g.begin("s:checkout"))
	assert.True(t, g.begin("other:checkout"))

	g.end("s:checkout")
	assert.True(t, g.begin("s:checkout"))
}
