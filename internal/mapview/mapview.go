// Package mapview keeps a map renderer in sync with a filtered set of
// crypto-accepting stores. The renderer itself (tiles, WebGL, SDK bindings)
// lives behind the Renderer interface; this package owns only the state and
// the synchronisation rules.
package mapview

import (
	"context"
	"log"
	"sync"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/models"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/services"
)

// Marker is one pin on the map.
type Marker struct {
	StoreID   string
	Name      string
	Latitude  float64
	Longitude float64
	Category  string
}

// Renderer is the drawing surface the locator controls. SetMarkers replaces
// the full marker set; FitBounds adjusts the viewport to contain the given
// markers.
type Renderer interface {
	SetMarkers(markers []Marker)
	FitBounds(markers []Marker)
}

// Locator drives a Renderer from the store list and the active category
// filter. Every change rebuilds the marker set from scratch rather than
// diffing, so the renderer can never show a pin for a store the filter has
// excluded.
type Locator struct {
	mu       sync.Mutex
	renderer Renderer
	stores   []models.Store
	category *string
	service  services.IStoreService

	// OnStoreClick, when set, is invoked with the store behind a clicked
	// marker.
	OnStoreClick func(store models.Store)
}

// NewLocator creates a locator bound to a renderer.
func NewLocator(renderer Renderer, service services.IStoreService) *Locator {
	return &Locator{renderer: renderer, service: service}
}

// Refresh fetches the store list and redraws. A fetch failure leaves an
// empty map rather than stale pins.
func (l *Locator) Refresh(ctx context.Context) error {
	stores, err := l.service.FetchAll(ctx)
	if err != nil {
		log.Printf("ERROR fetching stores for map: %v", err)
		l.mu.Lock()
		l.stores = nil
		l.mu.Unlock()
		l.render()
		return err
	}
	l.mu.Lock()
	l.stores = stores
	l.mu.Unlock()
	l.render()
	return nil
}

// SetCategory changes the category filter (nil clears it) and redraws.
func (l *Locator) SetCategory(category *string) {
	l.mu.Lock()
	l.category = category
	l.mu.Unlock()
	l.render()
}

// SetStores replaces the store list directly and redraws.
func (l *Locator) SetStores(stores []models.Store) {
	l.mu.Lock()
	l.stores = stores
	l.mu.Unlock()
	l.render()
}

// Click reports a marker click to the OnStoreClick callback.
func (l *Locator) Click(storeID string) {
	l.mu.Lock()
	var clicked *models.Store
	for i := range l.stores {
		if l.stores[i].ID == storeID {
			clicked = &l.stores[i]
			break
		}
	}
	callback := l.OnStoreClick
	l.mu.Unlock()

	if clicked != nil && callback != nil {
		callback(*clicked)
	}
}

// render rebuilds the marker set from the current stores and filter and
// pushes it to the renderer. The viewport is only refit when there is
// something to fit.
func (l *Locator) render() {
	l.mu.Lock()
	filtered := services.FilterStoresByCategory(l.stores, l.category)
	markers := make([]Marker, 0, len(filtered))
	for _, store := range filtered {
		category := ""
		if store.Category != nil {
			category = *store.Category
		}
		markers = append(markers, Marker{
			StoreID:   store.ID,
			Name:      store.Name,
			Latitude:  store.Latitude,
			Longitude: store.Longitude,
			Category:  category,
		})
	}
	renderer := l.renderer
	l.mu.Unlock()

	renderer.SetMarkers(markers)
	if len(markers) > 0 {
		renderer.FitBounds(markers)
	}
}
