package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sportsbridge/platform/models"
	"github.com/sportsbridge/platform/repositories"
)

// OpportunityService обслуживает каталог возможностей: листинг по типу,
// поиск по (тип, id) и публикацию организациями. Опубликованная возможность
// неизменяема с точки зрения атлета; редактирование не поддерживается.
type OpportunityService interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListSponsorships(ctx context.Context) ([]models.Sponsorship, error)
	ListTravelSupports(ctx context.Context) ([]models.TravelSupport, error)
	GetSummary(ctx context.Context, typ models.OpportunityType, id int) (*models.OpportunitySummary, error)

	CreateEvent(ctx context.Context, organizationID int, input CreateEventInput) (*models.Event, error)
	CreateSponsorship(ctx context.Context, organizationID int, input CreateSponsorshipInput) (*models.Sponsorship, error)
	CreateTravelSupport(ctx context.Context, organizationID int, input CreateTravelSupportInput) (*models.TravelSupport, error)
}

type CreateEventInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Location    models.Location `json:"location"`
}

type CreateSponsorshipInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type CreateTravelSupportInput struct {
	Title        string             `json:"title"`
	Details      string             `json:"details"`
	CoverageType string             `json:"coverage_type"`
	AmountRange  models.AmountRange `json:"amount_range"`
	ValidTill    time.Time          `json:"valid_till"`
}

type opportunityService struct {
	repo repositories.OpportunityRepository
}

func NewOpportunityService(repo repositories.OpportunityRepository) OpportunityService {
	return &opportunityService{repo: repo}
}

func (s *opportunityService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.repo.ListEvents(ctx)
}

func (s *opportunityService) ListSponsorships(ctx context.Context) ([]models.Sponsorship, error) {
	return s.repo.ListSponsorships(ctx)
}

func (s *opportunityService) ListTravelSupports(ctx context.Context) ([]models.TravelSupport, error) {
	return s.repo.ListTravelSupports(ctx)
}

func (s *opportunityService) GetSummary(ctx context.Context, typ models.OpportunityType, id int) (*models.OpportunitySummary, error) {
	summary, err := s.repo.FindSummary(ctx, typ, id)
	if err != nil {
		if errors.Is(err, repositories.ErrOpportunityNotFound) {
			return nil, ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity summary: %w", err)
	}
	return summary, nil
}

func (s *opportunityService) CreateEvent(ctx context.Context, organizationID int, input CreateEventInput) (*models.Event, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.Date.IsZero() {
		return nil, ErrEventDateRequired
	}
	if strings.TrimSpace(input.Location.City) == "" || strings.TrimSpace(input.Location.State) == "" {
		return nil, ErrEventLocationNeeded
	}

	event := &models.Event{
		OrganizationID: organizationID,
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Date:           input.Date,
		Location:       input.Location,
	}
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (s *opportunityService) CreateSponsorship(ctx context.Context, organizationID int, input CreateSponsorshipInput) (*models.Sponsorship, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.Amount <= 0 {
		return nil, ErrAmountNotPositive
	}

	sponsorship := &models.Sponsorship{
		OrganizationID: organizationID,
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Amount:         input.Amount,
	}
	if err := s.repo.CreateSponsorship(ctx, sponsorship); err != nil {
		return nil, fmt.Errorf("failed to create sponsorship: %w", err)
	}
	return sponsorship, nil
}

func (s *opportunityService) CreateTravelSupport(ctx context.Context, organizationID int, input CreateTravelSupportInput) (*models.TravelSupport, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.CoverageType) == "" {
		return nil, ErrCoverageTypeRequired
	}
	if input.AmountRange.Min < 0 || input.AmountRange.Max < input.AmountRange.Min {
		return nil, ErrAmountRangeInverted
	}

	support := &models.TravelSupport{
		OrganizationID: organizationID,
		Title:          strings.TrimSpace(input.Title),
		Details:        input.Details,
		CoverageType:   strings.TrimSpace(input.CoverageType),
		AmountRange:    input.AmountRange,
		ValidTill:      input.ValidTill,
	}
	if err := s.repo.CreateTravelSupport(ctx, support); err != nil {
		return nil, fmt.Errorf("failed to create travel support: %w", err)
	}
	return support, nil
}
