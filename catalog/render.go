package catalog

import (
	"time"

	"munchmarket/models"
	"munchmarket/ui"
)

// SearchDelay is the quiet period before a search input fires.
const SearchDelay = 300 * time.Millisecond

// Presenter binds the catalog to a view: full renders, filtered renders
// and debounced search input.
type Presenter struct {
	svc      *Service
	view     ui.View
	debounce *Debouncer
}

func NewPresenter(svc *Service, view ui.View) *Presenter {
	return &Presenter{
		svc:      svc,
		view:     view,
		debounce: NewDebouncer(SearchDelay),
	}
}

// Show renders the whole catalog.
func (p *Presenter) Show() {
	p.present(p.svc.Vendors())
}

// ShowFiltered renders the vendors matching the query immediately.
func (p *Presenter) ShowFiltered(query string) {
	p.present(p.svc.Filter(query))
}

// Search schedules a filtered render after the quiet period. Rapid
// inputs replace each other; only the last one renders.
func (p *Presenter) Search(query string) {
	p.debounce.Trigger(func() {
		p.ShowFiltered(query)
	})
}

// Close cancels any pending search.
func (p *Presenter) Close() {
	p.debounce.Stop()
}

func (p *Presenter) present(vendors []models.Vendor) {
	if len(vendors) == 0 {
		// An empty catalog and a search with no matches are different
		// situations and get different copy.
		kind := ui.EmptyNoMatches
		if p.svc.Size() == 0 {
			kind = ui.EmptyCatalog
		}
		p.view.RenderEmptyState(kind)
		return
	}
	p.view.Render(Cards(vendors))
}

// Card maps a vendor to its view model.
func Card(v models.Vendor) ui.VendorCard {
	return ui.VendorCard{
		ID:           v.ID,
		Name:         v.BusinessName,
		Location:     v.BusinessLocation,
		Description:  v.Description,
		Image:        ResolveDisplayImage(v),
		CuisineType:  v.CuisineType,
		DeliveryTime: v.DeliveryTime,
		MinPrice:     v.MinPrice,
		Rating:       v.Rating,
		ReviewCount:  v.ReviewCount,
	}
}

// Cards maps a vendor list to view models, preserving order.
func Cards(vendors []models.Vendor) []ui.VendorCard {
	cards := make([]ui.VendorCard, 0, len(vendors))
	for _, v := range vendors {
		cards = append(cards, Card(v))
	}
	return cards
}
