// Package cart manages a session's ordered list of line items: auth-gated
// adds, persistence to the session store, and the checkout handoff.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"munchmarket/models"
	"munchmarket/ui"
)

// ErrAuthRequired is returned by Add when no shopper is signed in. The
// login prompt has already been raised by then; the cart is untouched.
var ErrAuthRequired = errors.New("authentication required")

// ErrEmptyCart is returned by Checkout when there is nothing to order.
var ErrEmptyCart = errors.New("cart is empty")

// OrderWriter records a checked-out cart.
type OrderWriter interface {
	Create(ctx context.Context, order models.Order) (models.Order, error)
}

// Manager owns one session's cart. Construct it per request, Restore,
// then operate; every mutation persists the whole list.
type Manager struct {
	sessionID string
	userID    string // empty when unauthenticated
	items     []models.CartItem

	store  Store
	collab ui.Collaborator
	logger *zap.Logger
}

func NewManager(sessionID, userID string, store Store, collab ui.Collaborator, logger *zap.Logger) *Manager {
	if collab == nil {
		collab = ui.NopCollaborator{}
	}
	return &Manager{
		sessionID: sessionID,
		userID:    userID,
		store:     store,
		collab:    collab,
		logger:    logger,
	}
}

// Authenticated reports whether a signed-in shopper owns this session.
func (m *Manager) Authenticated() bool { return m.userID != "" }

// Count returns the number of items in the cart.
func (m *Manager) Count() int { return len(m.items) }

// Items returns a copy of the cart in insertion order.
func (m *Manager) Items() []models.CartItem {
	return append([]models.CartItem(nil), m.items...)
}

// Add appends a line item and persists the cart. When unauthenticated it
// prompts for login and leaves the cart untouched.
func (m *Manager) Add(ctx context.Context, name string, unitPrice models.Money, vendorID string) (models.CartItem, error) {
	if !m.Authenticated() {
		m.collab.PromptLogin()
		return models.CartItem{}, ErrAuthRequired
	}
	if !unitPrice.Positive() {
		return models.CartItem{}, fmt.Errorf("unit price must be positive, got %s", unitPrice)
	}

	m.collab.SetControlBusy("add-to-cart", true)
	defer m.collab.SetControlBusy("add-to-cart", false)

	item := models.CartItem{
		ID:        uuid.New().String(),
		Name:      name,
		UnitPrice: unitPrice,
		VendorID:  vendorID,
	}
	m.items = append(m.items, item)

	if err := m.Persist(ctx); err != nil {
		return models.CartItem{}, err
	}

	m.collab.SetCartCount(len(m.items))
	m.collab.Notify(fmt.Sprintf("%s added to cart!", name), ui.SeveritySuccess)
	return item, nil
}

// Persist writes the whole item list to the session store.
func (m *Manager) Persist(ctx context.Context) error {
	data, err := json.Marshal(m.items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := m.store.Save(ctx, m.sessionID, data); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Restore loads the persisted cart. No persisted value leaves the cart
// as is; corrupt data is logged and treated as an empty cart. Restore
// never fails the request.
func (m *Manager) Restore(ctx context.Context) {
	data, err := m.store.Load(ctx, m.sessionID)
	if err != nil {
		m.logger.Warn("cart restore failed", zap.String("session", m.sessionID), zap.Error(err))
		return
	}
	if data == nil {
		return
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		m.logger.Warn("corrupt cart data, starting empty",
			zap.String("session", m.sessionID), zap.Error(err))
		m.items = nil
		return
	}
	m.items = items
}

// Clear empties the cart and removes it from the session store.
func (m *Manager) Clear(ctx context.Context) error {
	m.items = nil
	if err := m.store.Delete(ctx, m.sessionID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	m.collab.SetCartCount(0)
	return nil
}

// Total sums the cart's unit prices in the default currency.
func (m *Manager) Total() models.Money {
	total := decimal.Zero
	for _, item := range m.items {
		total = total.Add(item.UnitPrice.Amount)
	}
	return models.KES(total)
}

// Checkout records the cart as a pending order and destroys the cart.
// Payment stays a stub; the order is written with the method string only.
func (m *Manager) Checkout(ctx context.Context, orders OrderWriter, paymentMethod string) (models.Order, error) {
	if !m.Authenticated() {
		m.collab.PromptLogin()
		return models.Order{}, ErrAuthRequired
	}
	if len(m.items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	m.collab.SetControlBusy("checkout", true)
	defer m.collab.SetControlBusy("checkout", false)

	order := models.Order{
		UserID:        m.userID,
		SessionID:     m.sessionID,
		Items:         m.Items(),
		Total:         m.Total(),
		PaymentMethod: paymentMethod,
		Status:        "Pending",
		CreatedAt:     time.Now().UTC(),
	}

	created, err := orders.Create(ctx, order)
	if err != nil {
		return models.Order{}, fmt.Errorf("create order: %w", err)
	}

	if err := m.Clear(ctx); err != nil {
		// The order exists; a stale cart copy is the lesser problem.
		m.logger.Warn("cart clear after checkout failed",
			zap.String("session", m.sessionID), zap.Error(err))
	}
	return created, nil
}
