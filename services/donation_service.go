package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/sportsbridge/platform/models"
	"github.com/sportsbridge/platform/payments"
	"github.com/sportsbridge/platform/realtime"
	"github.com/sportsbridge/platform/repositories"
)

// DonationService — append-only леджер переводов донор → атлет.
// Сумма и ссылки записи неизменяемы; платёжный коллаборатор обновляет только
// status и payment_id через Settle.
type DonationService interface {
	Record(ctx context.Context, donorID, athleteID int, amount float64) (*models.Donation, error)
	Settle(ctx context.Context, orderID, paymentID string) (*models.Donation, error)
	ListForDonor(ctx context.Context, donorID int) ([]*models.Donation, error)
	// ClearAll необратимо удаляет историю донора. Подтверждение — забота
	// вызывающей стороны; здесь выполняется безусловно.
	ClearAll(ctx context.Context, donorID int) error
}

type donationService struct {
	repo     repositories.DonationRepository
	userRepo repositories.UserRepository
	gateway  payments.Gateway
	hub      *realtime.Hub
	logger   *slog.Logger
}

func NewDonationService(
	repo repositories.DonationRepository,
	userRepo repositories.UserRepository,
	gateway payments.Gateway,
	hub *realtime.Hub,
	logger *slog.Logger,
) DonationService {
	return &donationService{
		repo:     repo,
		userRepo: userRepo,
		gateway:  gateway,
		hub:      hub,
		logger:   logger,
	}
}

func (s *donationService) Record(ctx context.Context, donorID, athleteID int, amount float64) (*models.Donation, error) {
	// Валидация суммы — до любых побочных эффектов: ни строки в БД, ни
	// ордера на шлюзе при невалидном входе.
	if amount <= 0 {
		return nil, ErrAmountNotPositive
	}

	athlete, err := s.userRepo.GetByID(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, fmt.Errorf("failed to check athlete: %w", err)
	}
	if athlete.Role != models.RoleAthlete {
		return nil, ErrAthleteNotFound
	}

	order, err := s.gateway.CreateOrder(ctx, amount, "inr", map[string]string{
		"donor_id":   strconv.Itoa(donorID),
		"athlete_id": strconv.Itoa(athleteID),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: payment gateway: %v", ErrUpstreamFailure, err)
	}

	donation := &models.Donation{
		DonorID:   donorID,
		AthleteID: athleteID,
		Amount:    amount,
		Status:    models.DonationPending,
		OrderID:   order.OrderID,
	}

	if err := s.repo.Create(ctx, donation); err != nil {
		if errors.Is(err, repositories.ErrDonationAthleteInvalid) {
			return nil, ErrAthleteNotFound
		}
		return nil, fmt.Errorf("failed to record donation: %w", err)
	}

	return donation, nil
}

func (s *donationService) Settle(ctx context.Context, orderID, paymentID string) (*models.Donation, error) {
	if orderID == "" || paymentID == "" {
		return nil, fmt.Errorf("%w: order id and payment id are required", ErrValidationFailed)
	}

	donation, err := s.repo.Settle(ctx, orderID, paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrDonationNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to settle donation: %w", err)
	}

	if s.hub != nil {
		s.hub.NotifyUser(donation.DonorID, realtime.EventDonationSettled, map[string]interface{}{
			"donation_id": donation.ID,
			"order_id":    donation.OrderID,
			"amount":      donation.Amount,
		})
	}

	return donation, nil
}

func (s *donationService) ListForDonor(ctx context.Context, donorID int) ([]*models.Donation, error) {
	donations, err := s.repo.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	return donations, nil
}

func (s *donationService) ClearAll(ctx context.Context, donorID int) error {
	if err := s.repo.DeleteAllByDonor(ctx, donorID); err != nil {
		return fmt.Errorf("failed to clear donation history: %w", err)
	}
	s.logger.InfoContext(ctx, "donation history cleared", slog.Int("donor_id", donorID))
	return nil
}
