// Package catalog holds the shopper-facing vendor list: loading it from
// the document store (with a cached fallback), filtering it on search,
// and mapping vendors to cards for the view.
package catalog

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"munchmarket/models"
)

// VendorSource queries the live vendor records eligible for display.
type VendorSource interface {
	ActiveVendors(ctx context.Context) ([]models.Vendor, error)
}

// Service is the in-memory catalog. Load replaces the snapshot; Filter
// and Vendors read it. Safe for concurrent use.
type Service struct {
	mu      sync.RWMutex
	vendors []models.Vendor

	source VendorSource
	cache  SnapshotCache
	logger *zap.Logger
}

func NewService(source VendorSource, cache SnapshotCache, logger *zap.Logger) *Service {
	return &Service{
		source: source,
		cache:  cache,
		logger: logger,
	}
}

// Load refreshes the catalog from the live query, falling back to the
// last-known-good snapshot and finally to an empty catalog. Load never
// fails; degradation is logged and the shopper sees what is available.
func (s *Service) Load(ctx context.Context) []models.Vendor {
	vendors, err := s.source.ActiveVendors(ctx)
	if err == nil {
		s.replace(vendors)
		if s.cache != nil {
			if err := s.cache.Save(ctx, vendors); err != nil {
				s.logger.Warn("catalog snapshot save failed", zap.Error(err))
			}
		}
		return s.Vendors()
	}

	s.logger.Warn("catalog load failed, trying cached snapshot", zap.Error(err))

	if s.cache != nil {
		cached, ok, cacheErr := s.cache.Load(ctx)
		if cacheErr != nil {
			// A corrupt or unreadable snapshot counts as absent.
			s.logger.Warn("catalog snapshot load failed", zap.Error(cacheErr))
		} else if ok {
			s.replace(cached)
			return s.Vendors()
		}
	}

	s.replace(nil)
	return s.Vendors()
}

// Filter returns the vendors whose business name or description contains
// the query, case-insensitively, preserving catalog order. An empty
// query returns the whole catalog.
func (s *Service) Filter(query string) []models.Vendor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]models.Vendor(nil), s.vendors...)
	}

	var matched []models.Vendor
	for _, v := range s.vendors {
		if strings.Contains(strings.ToLower(v.BusinessName), q) ||
			strings.Contains(strings.ToLower(v.Description), q) {
			matched = append(matched, v)
		}
	}
	return matched
}

// Vendors returns a copy of the current catalog snapshot.
func (s *Service) Vendors() []models.Vendor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Vendor(nil), s.vendors...)
}

// Size returns the number of vendors currently in the catalog.
func (s *Service) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vendors)
}

func (s *Service) replace(vendors []models.Vendor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vendors = vendors
}
