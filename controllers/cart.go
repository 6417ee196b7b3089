package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"munchmarket/cart"
	"munchmarket/middleware"
	"munchmarket/models"
)

// CartController handles the session cart
type CartController struct {
	Store  cart.Store
	Orders cart.OrderWriter
	Logger *zap.Logger

	pending *inflight
}

// NewCartController creates a new CartController
func NewCartController(store cart.Store, orders cart.OrderWriter, logger *zap.Logger) *CartController {
	return &CartController{
		Store:   store,
		Orders:  orders,
		Logger:  logger,
		pending: newInflight(),
	}
}

type addItemRequest struct {
	Name      string       `json:"name"`
	UnitPrice models.Money `json:"unitPrice"`
	VendorID  string       `json:"vendorId"`
}

// manager builds the session's cart manager and restores its persisted
// state, mirroring the restore-on-page-load step.
func (cc *CartController) manager(ctx context.Context, view *responseUI) *cart.Manager {
	uid := ""
	if claims, ok := middleware.ClaimsFrom(ctx); ok {
		uid = claims.UID
	}
	m := cart.NewManager(middleware.SessionFrom(ctx), uid, cc.Store, view, cc.Logger)
	m.Restore(ctx)
	return m
}

// GetCart returns the cart's items in display order
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	view := newResponseUI()
	m := cc.manager(ctx, view)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": m.Items(),
		"count": m.Count(),
		"total": m.Total(),
	})
}

// AddItem appends a line item to the session cart
func (cc *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	opKey := middleware.SessionFrom(r.Context()) + ":add"
	if !cc.pending.begin(opKey) {
		writeError(w, http.StatusConflict, "Add to cart already in progress")
		return
	}
	defer cc.pending.end(opKey)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	view := newResponseUI()
	m := cc.manager(ctx, view)

	item, err := m.Add(ctx, req.Name, req.UnitPrice, req.VendorID)
	if err != nil {
		if errors.Is(err, cart.ErrAuthRequired) {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"error":         "Please log in to add items to your cart",
				"loginRequired": view.LoginRequired,
			})
			return
		}
		cc.Logger.Error("add to cart failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Could not add item to cart")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"item":          item,
		"count":         m.Count(),
		"notifications": view.Notifications,
		"busyControls":  view.BusyControls,
	})
}

// Checkout turns the cart into a pending order and empties it
func (cc *CartController) Checkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	sid := middleware.SessionFrom(r.Context())
	opKey := sid + ":checkout"
	if !cc.pending.begin(opKey) {
		writeError(w, http.StatusConflict, "Checkout already in progress")
		return
	}
	defer cc.pending.end(opKey)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	view := newResponseUI()
	m := cc.manager(ctx, view)

	order, err := m.Checkout(ctx, cc.Orders, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrAuthRequired):
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"error":         "Please log in to check out",
				"loginRequired": view.LoginRequired,
			})
		case errors.Is(err, cart.ErrEmptyCart):
			writeError(w, http.StatusBadRequest, "Your cart is empty")
		default:
			cc.Logger.Error("checkout failed", zap.String("session", sid), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Could not place your order. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"order":        order,
		"busyControls": view.BusyControls,
	})
}
