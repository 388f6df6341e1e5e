package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sportsbridge/platform/middleware"
	"github.com/sportsbridge/platform/models"
	"github.com/sportsbridge/platform/services"
)

// OpportunityHandler обслуживает каталог возможностей: публичные листинги
// и публикацию от имени организации.
type OpportunityHandler struct {
	opportunityService services.OpportunityService
}

func NewOpportunityHandler(opportunityService services.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{opportunityService: opportunityService}
}

func (h *OpportunityHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.opportunityService.ListEvents(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"events": events}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *OpportunityHandler) ListSponsorships(w http.ResponseWriter, r *http.Request) {
	sponsorships, err := h.opportunityService.ListSponsorships(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"sponsorships": sponsorships}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *OpportunityHandler) ListTravelSupports(w http.ResponseWriter, r *http.Request) {
	supports, err := h.opportunityService.ListTravelSupports(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"travel_supports": supports}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Create — POST /api/organizations/opportunities/{type}.
// Диспетчеризация по сегменту пути: event | sponsorship | travel.
func (h *OpportunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	typ, ok := models.ParseOpportunityType(chi.URLParam(r, "type"))
	if !ok {
		badRequestResponse(w, r, fmt.Errorf("%w: %q", services.ErrUnknownOpportunity, chi.URLParam(r, "type")))
		return
	}

	switch typ {
	case models.OpportunityEvent:
		h.CreateEvent(w, r)
	case models.OpportunitySponsorship:
		h.CreateSponsorship(w, r)
	case models.OpportunityTravel:
		h.CreateTravelSupport(w, r)
	}
}

func (h *OpportunityHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	organizationID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.CreateEventInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.opportunityService.CreateEvent(r.Context(), organizationID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"event": event}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *OpportunityHandler) CreateSponsorship(w http.ResponseWriter, r *http.Request) {
	organizationID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.CreateSponsorshipInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sponsorship, err := h.opportunityService.CreateSponsorship(r.Context(), organizationID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"sponsorship": sponsorship}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *OpportunityHandler) CreateTravelSupport(w http.ResponseWriter, r *http.Request) {
	organizationID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.CreateTravelSupportInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	support, err := h.opportunityService.CreateTravelSupport(r.Context(), organizationID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"travel_support": support}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
