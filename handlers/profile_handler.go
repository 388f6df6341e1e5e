package handlers

import (
	"net/http"

	"github.com/sportsbridge/platform/filters"
	"github.com/sportsbridge/platform/middleware"
	"github.com/sportsbridge/platform/services"
)

// ProfileHandler обслуживает профили атлетов: свой профиль, чужой по id
// и поиск по фильтрам.
type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetMine — GET /api/athletes/profile.
func (h *ProfileHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	athleteID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	profile, err := h.profileService.Get(r.Context(), athleteID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"profile": profile}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByID — GET /api/athletes/{athleteID}/profile. Доступен организациям и
// донорам для просмотра кандидата.
func (h *ProfileHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	athleteID, err := getIDFromURL(r, "athleteID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	profile, err := h.profileService.Get(r.Context(), athleteID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"profile": profile}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Update — PUT /api/athletes/profile. Профиль заменяется целиком.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	athleteID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.ProfileInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	profile, err := h.profileService.Update(r.Context(), athleteID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"profile": profile}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Search — GET /api/athletes/search?name=&location=&age=&sport=&gender=.
func (h *ProfileHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter, err := filters.ParseAthleteFilter(r.URL.Query())
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	profiles, err := h.profileService.Search(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"athletes": profiles}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
