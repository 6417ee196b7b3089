package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"munchmarket/catalog"
)

// CatalogController serves the shopper-facing vendor listing
type CatalogController struct {
	Catalog *catalog.Service
	Logger  *zap.Logger
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(svc *catalog.Service, logger *zap.Logger) *CatalogController {
	return &CatalogController{Catalog: svc, Logger: logger}
}

// GetVendors renders the catalog, optionally filtered by ?q=. The load
// degrades to the cached snapshot or an empty catalog; it never fails
// the request.
func (cc *CatalogController) GetVendors(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cc.Catalog.Load(ctx)

	view := newResponseUI()
	presenter := catalog.NewPresenter(cc.Catalog, view)
	defer presenter.Close()

	presenter.ShowFiltered(r.URL.Query().Get("q"))

	if view.Empty != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"emptyState": view.Empty})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"vendors": view.Cards})
}
