package cart_test

import (
	"context"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"munchmarket/cart"
	"munchmarket/models"
	"munchmarket/ui"
)

type recordingUI struct {
	mu       sync.Mutex
	prompts  int
	counts   []int
	notices  []string
	controls []string
}

func (r *recordingUI) Notify(message string, _ ui.Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, message)
}

func (r *recordingUI) PromptLogin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts++
}

func (r *recordingUI) SetControlBusy(control string, busy bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if busy {
		r.controls = append(r.controls, control)
	}
}

func (r *recordingUI) SetCartCount(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = append(r.counts, n)
}

type fakeOrders struct {
	created []models.Order
	err     error
}

func (f *fakeOrders) Create(_ context.Context, order models.Order) (models.Order, error) {
	if f.err != nil {
		return models.Order{}, f.err
	}
	f.created = append(f.created, order)
	return order, nil
}

func price(amount int64) models.Money {
	return models.KES(decimal.NewFromInt(amount))
}

func TestAddUnauthenticatedPromptsLogin(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	rec := &recordingUI{}
	m := cart.NewManager("session-1", "", store, rec, zap.NewNop())

	_, err := m.Add(ctx, "Beef Samosa", price(120), "vendor-1")

	require.ErrorIs(t, err, cart.ErrAuthRequired)
	assert.Zero(t, m.Count())
	assert.Equal(t, 1, rec.prompts)

	// Nothing was persisted either.
	data, loadErr := store.Load(ctx, "session-1")
	require.NoError(t, loadErr)
	assert.Nil(t, data)
}

func TestAddAppendsPersistsAndCounts(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	rec := &recordingUI{}
	m := cart.NewManager("session-1", "uid-1", store, rec, zap.NewNop())

	names := []string{"Beef Samosa", "Chapati", "Masala Chips"}
	for i, name := range names {
		item, err := m.Add(ctx, name, price(int64(100+i)), "vendor-1")
		require.NoError(t, err)
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, i+1, m.Count())
	}

	// IDs are unique within the snapshot; order is insertion order.
	items := m.Items()
	seen := make(map[string]bool)
	for i, item := range items {
		assert.Equal(t, names[i], item.Name)
		assert.False(t, seen[item.ID], "duplicate item id %s", item.ID)
		seen[item.ID] = true
	}

	assert.Equal(t, []int{1, 2, 3}, rec.counts)
	assert.Contains(t, rec.notices, "Beef Samosa added to cart!")
}

func TestPersistRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	m := cart.NewManager("session-1", "uid-1", store, nil, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := m.Add(ctx, gofakeit.Dinner(), price(int64(gofakeit.Number(50, 900))), "")
		require.NoError(t, err)
	}
	want := m.Items()

	restored := cart.NewManager("session-1", "uid-1", store, nil, zap.NewNop())
	restored.Restore(ctx)

	got := restored.Items()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].VendorID, got[i].VendorID)
		assert.True(t, want[i].UnitPrice.Amount.Equal(got[i].UnitPrice.Amount))
		assert.Equal(t, want[i].UnitPrice.Currency, got[i].UnitPrice.Currency)
	}
}

func TestRestoreWithoutPersistedValueIsIdentity(t *testing.T) {
	m := cart.NewManager("fresh-session", "uid-1", cart.NewMemoryStore(), nil, zap.NewNop())
	m.Restore(context.Background())
	assert.Zero(t, m.Count())
}

func TestRestoreCorruptDataFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	require.NoError(t, store.Save(ctx, "session-1", []byte("{definitely not json")))

	m := cart.NewManager("session-1", "uid-1", store, nil, zap.NewNop())
	m.Restore(ctx)

	assert.Zero(t, m.Count())

	// The cart keeps working after a corrupt restore.
	_, err := m.Add(ctx, "Chapati", price(30), "")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Count())
}

func TestAddRejectsNonPositivePrice(t *testing.T) {
	m := cart.NewManager("session-1", "uid-1", cart.NewMemoryStore(), nil, zap.NewNop())

	_, err := m.Add(context.Background(), "Free Lunch", price(0), "")
	require.Error(t, err)
	assert.Zero(t, m.Count())
}

func TestCheckoutWritesOrderAndDestroysCart(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	rec := &recordingUI{}
	orders := &fakeOrders{}
	m := cart.NewManager("session-1", "uid-1", store, rec, zap.NewNop())

	_, err := m.Add(ctx, "Beef Samosa", price(120), "vendor-1")
	require.NoError(t, err)
	_, err = m.Add(ctx, "Chapati", price(30), "vendor-2")
	require.NoError(t, err)

	order, err := m.Checkout(ctx, orders, "mpesa")
	require.NoError(t, err)

	require.Len(t, orders.created, 1)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "uid-1", order.UserID)
	assert.Equal(t, "Pending", order.Status)
	assert.True(t, order.Total.Amount.Equal(decimal.NewFromInt(150)))

	// Cart is destroyed, both in memory and in the store.
	assert.Zero(t, m.Count())
	data, loadErr := store.Load(ctx, "session-1")
	require.NoError(t, loadErr)
	assert.Nil(t, data)
}

func TestCheckoutRequiresAuthAndItems(t *testing.T) {
	ctx := context.Background()
	orders := &fakeOrders{}

	anon := cart.NewManager("session-1", "", cart.NewMemoryStore(), &recordingUI{}, zap.NewNop())
	_, err := anon.Checkout(ctx, orders, "mpesa")
	require.ErrorIs(t, err, cart.ErrAuthRequired)

	empty := cart.NewManager("session-1", "uid-1", cart.NewMemoryStore(), nil, zap.NewNop())
	_, err = empty.Checkout(ctx, orders, "mpesa")
	require.ErrorIs(t, err, cart.ErrEmptyCart)

	assert.Empty(t, orders.created)
}
