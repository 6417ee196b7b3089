package controllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"munchmarket/ui"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// notification mirrors the toast the page would show.
type notification struct {
	Message  string      `json:"message"`
	Severity ui.Severity `json:"severity"`
}

type emptyState struct {
	Kind    ui.EmptyStateKind `json:"kind"`
	Message string            `json:"message"`
}

// responseUI is the HTTP-side implementation of the view and
// collaborator surfaces: it records what the core asked the page to do
// so the handler can ship it in the response body.
type responseUI struct {
	Cards         []ui.VendorCard
	Empty         *emptyState
	Notifications []notification
	LoginRequired bool
	CartCount     *int
	BusyControls  map[string]bool
}

func newResponseUI() *responseUI {
	return &responseUI{BusyControls: make(map[string]bool)}
}

func (u *responseUI) Render(cards []ui.VendorCard) {
	u.Cards = cards
	u.Empty = nil
}

func (u *responseUI) RenderEmptyState(kind ui.EmptyStateKind) {
	u.Cards = nil
	u.Empty = &emptyState{Kind: kind, Message: ui.EmptyStateMessage(kind)}
}

func (u *responseUI) Notify(message string, severity ui.Severity) {
	u.Notifications = append(u.Notifications, notification{Message: message, Severity: severity})
}

func (u *responseUI) PromptLogin() {
	u.LoginRequired = true
}

func (u *responseUI) SetControlBusy(control string, busy bool) {
	u.BusyControls[control] = busy
}

func (u *responseUI) SetCartCount(n int) {
	u.CartCount = &n
}

// inflight guards against duplicate submissions of the same operation
// from the same session while a request is pending.
type inflight struct {
	mu  sync.Mutex
	ops map[string]bool
}

func newInflight() *inflight {
	return &inflight{ops: make(map[string]bool)}
}

// begin marks the operation pending; it reports false when the same
// session already has it pending.
func (g *inflight) begin(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ops[key] {
		return false
	}
	g.ops[key] = true
	return true
}

func (g *inflight) end(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.ops, key)
}
