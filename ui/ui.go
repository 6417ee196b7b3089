// Package ui defines the surface the marketplace core expects from the
// presentation layer. The core never touches markup directly; it hands
// view models to a View and signals through a Collaborator.
package ui

// Severity classifies a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// EmptyStateKind distinguishes "nothing to sell" from "nothing matched".
// The two states must never share copy.
type EmptyStateKind string

const (
	EmptyCatalog   EmptyStateKind = "empty_catalog"
	EmptyNoMatches EmptyStateKind = "no_matches"
)

// EmptyStateMessage returns the shopper-facing copy for an empty state.
func EmptyStateMessage(kind EmptyStateKind) string {
	switch kind {
	case EmptyNoMatches:
		return "No vendors matched your search. Try a different keyword."
	default:
		return "No vendors are available yet. Check back soon!"
	}
}

// VendorCard is the view model for one catalog entry.
type VendorCard struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	CuisineType  string  `json:"cuisineType"`
	DeliveryTime int     `json:"deliveryTime"`
	MinPrice     int64   `json:"minPrice"`
	Rating       float64 `json:"rating"`
	ReviewCount  int     `json:"reviewCount"`
}

// View renders the catalog.
type View interface {
	Render(cards []VendorCard)
	RenderEmptyState(kind EmptyStateKind)
}

// Collaborator receives out-of-band signals from the core.
type Collaborator interface {
	Notify(message string, severity Severity)
	PromptLogin()
	SetControlBusy(control string, busy bool)
	SetCartCount(n int)
}

// NopCollaborator ignores every signal. Useful where no presentation
// layer is attached, e.g. background work.
type NopCollaborator struct{}

func (NopCollaborator) Notify(string, Severity) {}

func (NopCollaborator) PromptLogin() {}

func (NopCollaborator) SetControlBusy(string, bool) {}

func (NopCollaborator) SetCartCount(int) {}
