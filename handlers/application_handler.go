package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sportsbridge/platform/middleware"
	"github.com/sportsbridge/platform/models"
	"github.com/sportsbridge/platform/services"
)

// ApplicationHandler обслуживает заявки: подачу атлетом, листинги для обеих
// сторон и решение организации.
type ApplicationHandler struct {
	applicationService services.ApplicationService
}

func NewApplicationHandler(applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// Apply — POST /api/athletes/apply/{type}/{opportunityID}.
// Тип возможности приходит сегментом пути, тело опционально.
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	athleteID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	typ, ok := models.ParseOpportunityType(chi.URLParam(r, "type"))
	if !ok {
		badRequestResponse(w, r, fmt.Errorf("%w: %q", services.ErrUnknownOpportunity, chi.URLParam(r, "type")))
		return
	}

	opportunityID, err := getIDFromURL(r, "opportunityID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Message      string `json:"message"`
		Requirements string `json:"requirements"`
	}
	// Пустое тело допустимо: сервис подставит тексты по умолчанию.
	if r.ContentLength > 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}

	application, err := h.applicationService.Submit(r.Context(), athleteID, typ, opportunityID, input.Message, input.Requirements)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"application": application}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMine — GET /api/athletes/applications.
func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	athleteID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	applications, err := h.applicationService.ListForAthlete(r.Context(), athleteID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"applications": applications}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListForOrganization — GET /api/organizations/applications.
func (h *ApplicationHandler) ListForOrganization(w http.ResponseWriter, r *http.Request) {
	organizationID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	applications, err := h.applicationService.ListForOrganization(r.Context(), organizationID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"applications": applications}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Review — PUT /api/organizations/applications/{applicationID}.
// Тело: {"status": "accepted"|"rejected"}.
func (h *ApplicationHandler) Review(w http.ResponseWriter, r *http.Request) {
	organizationID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	applicationID, err := getIDFromURL(r, "applicationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Status models.ApplicationStatus `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	application, err := h.applicationService.Review(r.Context(), applicationID, organizationID, input.Status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"application": application}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
