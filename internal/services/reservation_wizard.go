package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/models"
)

// WizardState identifies which step of the booking flow the wizard is on.
type WizardState string

const (
	WizardStateSearch  WizardState = "search"
	WizardStateDetails WizardState = "details"
)

// Wizard errors.
var (
	ErrNoOfferSelected    = errors.New("no offer selected")
	ErrOfferNotFound      = errors.New("offer not found in current results")
	ErrConfirmInFlight    = errors.New("a confirmation is already in progress")
	ErrNotOnDetailsStep   = errors.New("wizard is not on the details step")
	ErrReturnBeforeDepart = errors.New("return date must not precede departure date")
	ErrDepartureInPast    = errors.New("departure date must not be in the past")
)

// SearchCriteria collects the reservation search form fields.
type SearchCriteria struct {
	Type          models.TripType `json:"type" validate:"omitempty,oneof=flight hotel both"`
	Destination   string          `json:"destination" validate:"required"`
	DepartureDate time.Time       `json:"departure_date" validate:"required"`
	ReturnDate    *time.Time      `json:"return_date,omitempty"`
	Adults        int             `json:"adults" validate:"min=1"`
	Children      int             `json:"children" validate:"min=0"`
}

var criteriaValidator = validator.New()

// Validate checks the criteria against the form rules: destination and
// departure date are required, departure must not fall on a day before today,
// the party has at least one adult, and an optional return date must not
// precede departure. Dates compare at calendar-day granularity, so booking
// for later today is allowed.
func (c *SearchCriteria) Validate() error {
	if c.Type == "" {
		c.Type = models.TripTypeBoth
	}
	if c.Adults == 0 {
		c.Adults = 1
	}
	if err := criteriaValidator.Struct(c); err != nil {
		return err
	}
	if beforeToday(c.DepartureDate) {
		return ErrDepartureInPast
	}
	if c.ReturnDate != nil && c.ReturnDate.Before(c.DepartureDate) {
		return ErrReturnBeforeDepart
	}
	return nil
}

// beforeToday reports whether d falls on a calendar day before today in d's
// location.
func beforeToday(d time.Time) bool {
	dy, dm, dd := d.Date()
	ty, tm, td := time.Now().In(d.Location()).Date()
	day := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	today := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return day.Before(today)
}

// SetDepartureDate changes the departure date, clearing a previously chosen
// return date when the new departure falls after it.
func (c *SearchCriteria) SetDepartureDate(d time.Time) {
	c.DepartureDate = d
	if c.ReturnDate != nil && c.ReturnDate.Before(d) {
		c.ReturnDate = nil
	}
}

// offerTemplate is one entry of the fixed mock inventory. Search results are
// synthesized from this catalogue; no real provider is consulted.
type offerTemplate struct {
	id       string
	tripType models.TripType
	provider string
	price    int64
	roomType string
}

var offerCatalogue = []offerTemplate{
	{id: "flight-1", tripType: models.TripTypeFlight, provider: "Thai Airways", price: 12500},
	{id: "flight-2", tripType: models.TripTypeFlight, provider: "Bangkok Airways", price: 8900},
	{id: "hotel-1", tripType: models.TripTypeHotel, provider: "Hilton", price: 5600, roomType: "Deluxe"},
	{id: "hotel-2", tripType: models.TripTypeHotel, provider: "Marriott", price: 4800, roomType: "Standard"},
}

// SearchOffers produces the mock result set for a submitted search: two
// flight and two hotel offers tagged with the criteria's destination and
// dates, all available.
func SearchOffers(criteria SearchCriteria) []models.Offer {
	offers := make([]models.Offer, 0, len(offerCatalogue))
	for _, tmpl := range offerCatalogue {
		offers = append(offers, models.Offer{
			ID:            tmpl.id,
			Type:          tmpl.tripType,
			Provider:      tmpl.provider,
			Destination:   criteria.Destination,
			DepartureDate: criteria.DepartureDate,
			ReturnDate:    criteria.ReturnDate,
			Price:         tmpl.price,
			Available:     true,
			RoomType:      tmpl.roomType,
		})
	}
	return offers
}

// ReservationWizard drives the three-step booking flow:
// search -> details -> (confirmed | back-to-search). It holds at most one
// selected offer; selecting an offer from the results is the only transition
// into details, and a confirmed booking collapses back to search.
type ReservationWizard struct {
	mu         sync.Mutex
	state      WizardState
	criteria   SearchCriteria
	results    []models.Offer
	selected   *models.Offer
	submitting bool

	reservations IReservationService
}

// NewReservationWizard creates a wizard in the search state.
func NewReservationWizard(reservations IReservationService) *ReservationWizard {
	return &ReservationWizard{
		state:        WizardStateSearch,
		reservations: reservations,
	}
}

// State returns the wizard's current step.
func (w *ReservationWizard) State() WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Results returns the current search result set.
func (w *ReservationWizard) Results() []models.Offer {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.results
}

// Selected returns the currently selected offer, or nil.
func (w *ReservationWizard) Selected() *models.Offer {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selected
}

// Search validates the criteria and replaces the result set with the mock
// inventory. Any previous selection is discarded and the wizard returns to
// the search step.
func (w *ReservationWizard) Search(criteria SearchCriteria) ([]models.Offer, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.criteria = criteria
	w.results = SearchOffers(criteria)
	w.selected = nil
	w.state = WizardStateSearch
	return w.results, nil
}

// Select picks one offer from the current results and moves to details.
func (w *ReservationWizard) Select(offerID string) (*models.Offer, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.results {
		if w.results[i].ID == offerID {
			offer := w.results[i]
			w.selected = &offer
			w.state = WizardStateDetails
			return w.selected, nil
		}
	}
	return nil, ErrOfferNotFound
}

// Back returns to the search step, clearing the selection. The result set is
// kept so the user can pick a different offer.
func (w *ReservationWizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selected = nil
	w.state = WizardStateSearch
}

// Confirm performs the single reservation insert for the selected offer. The
// call is guarded by an in-flight flag so a double click cannot issue two
// inserts concurrently; there is no idempotency key, so retrying after a lost
// response can still duplicate the booking. On success the wizard collapses
// back to search with the selection cleared; on failure it stays on details.
func (w *ReservationWizard) Confirm(ctx context.Context, userID string) (*models.Reservation, error) {
	w.mu.Lock()
	if w.state != WizardStateDetails {
		w.mu.Unlock()
		return nil, ErrNotOnDetailsStep
	}
	if w.selected == nil {
		w.mu.Unlock()
		return nil, ErrNoOfferSelected
	}
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrConfirmInFlight
	}
	w.submitting = true
	offer := *w.selected
	criteria := w.criteria
	w.mu.Unlock()

	res := &models.Reservation{
		Type:          offer.Type,
		Destination:   offer.Destination,
		DepartureDate: offer.DepartureDate,
		ReturnDate:    offer.ReturnDate,
		Adults:        criteria.Adults,
		Children:      criteria.Children,
		Provider:      offer.Provider,
		Price:         offer.Price,
	}

	created, err := w.reservations.Create(ctx, userID, res)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		// Stay on details so the user can retry or go back.
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}
	w.selected = nil
	w.state = WizardStateSearch
	return created, nil
}
