package handlers

import (
	"errors"
	"net/http"

	"github.com/sportsbridge/platform/filters"
	"github.com/sportsbridge/platform/middleware"
	"github.com/sportsbridge/platform/services"
)

// DonationHandler обслуживает пожертвования: перевод атлету, историю донора
// с фильтрацией, очистку истории и подтверждение оплаты шлюзом.
type DonationHandler struct {
	donationService services.DonationService
}

func NewDonationHandler(donationService services.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// Donate — POST /api/donors/donate/{athleteID}. Тело: {"amount": 500}.
func (h *DonationHandler) Donate(w http.ResponseWriter, r *http.Request) {
	donorID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	athleteID, err := getIDFromURL(r, "athleteID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Amount float64 `json:"amount"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	donation, err := h.donationService.Record(r.Context(), donorID, athleteID, input.Amount)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"donation": donation}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMine — GET /api/donors/donations.
// Фильтры в query: startDate, endDate, minAmount, maxAmount, athleteName.
// Все заданные предикаты комбинируются по AND.
func (h *DonationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	donorID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	filter, err := filters.ParseDonationFilter(r.URL.Query())
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	donations, err := h.donationService.ListForDonor(r.Context(), donorID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	donations = filter.Apply(donations)

	if err := writeJSON(w, http.StatusOK, jsonResponse{"donations": donations}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ClearHistory — DELETE /api/donors/donations. Удаляет историю безвозвратно.
func (h *DonationHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	donorID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	if err := h.donationService.ClearAll(r.Context(), donorID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "donation history cleared"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ConfirmPayment — POST /api/payments/webhook.
// Колбэк шлюза после успешной оплаты: помечает пожертвование завершённым.
func (h *DonationHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var input struct {
		OrderID   string `json:"order_id"`
		PaymentID string `json:"payment_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.OrderID == "" || input.PaymentID == "" {
		badRequestResponse(w, r, errors.New("order_id and payment_id are required"))
		return
	}

	donation, err := h.donationService.Settle(r.Context(), input.OrderID, input.PaymentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"donation": donation}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
