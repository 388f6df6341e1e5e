package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sportsbridge/platform/models"
)

var (
	ErrOpportunityNotFound            = errors.New("opportunity not found")
	ErrOpportunityOrganizationInvalid = errors.New("opportunity organization conflict or invalid")
)

// OpportunityRepository обслуживает три таблицы вариантов возможностей.
// Общие операции переключаются по тегу типа явно.
type OpportunityRepository interface {
	CreateEvent(ctx context.Context, e *models.Event) error
	CreateSponsorship(ctx context.Context, s *models.Sponsorship) error
	CreateTravelSupport(ctx context.Context, t *models.TravelSupport) error

	ListEvents(ctx context.Context) ([]models.Event, error)
	ListSponsorships(ctx context.Context) ([]models.Sponsorship, error)
	ListTravelSupports(ctx context.Context) ([]models.TravelSupport, error)

	// FindSummary ищет возможность по (тип, id) и возвращает денормализованное
	// представление для обогащения заявок.
	FindSummary(ctx context.Context, typ models.OpportunityType, id int) (*models.OpportunitySummary, error)
}

type postgresOpportunityRepository struct {
	db *sql.DB
}

func NewPostgresOpportunityRepository(db *sql.DB) OpportunityRepository {
	return &postgresOpportunityRepository{db: db}
}

func (r *postgresOpportunityRepository) CreateEvent(ctx context.Context, e *models.Event) error {
	query := `
		INSERT INTO events (organization_id, title, description, date, city, state)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		e.OrganizationID,
		e.Title,
		e.Description,
		e.Date,
		e.Location.City,
		e.Location.State,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", translateOrganizationFK(err))
	}
	return nil
}

func (r *postgresOpportunityRepository) CreateSponsorship(ctx context.Context, s *models.Sponsorship) error {
	query := `
		INSERT INTO sponsorships (organization_id, title, description, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		s.OrganizationID,
		s.Title,
		s.Description,
		s.Amount,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create sponsorship: %w", translateOrganizationFK(err))
	}
	return nil
}

func (r *postgresOpportunityRepository) CreateTravelSupport(ctx context.Context, t *models.TravelSupport) error {
	query := `
		INSERT INTO travel_supports (organization_id, title, details, coverage_type, min_amount, max_amount, valid_till)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.OrganizationID,
		t.Title,
		t.Details,
		t.CoverageType,
		t.AmountRange.Min,
		t.AmountRange.Max,
		t.ValidTill,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create travel support: %w", translateOrganizationFK(err))
	}
	return nil
}

func (r *postgresOpportunityRepository) ListEvents(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT id, organization_id, title, description, date, city, state, created_at
		FROM events
		ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.OrganizationID, &e.Title, &e.Description, &e.Date, &e.Location.City, &e.Location.State, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *postgresOpportunityRepository) ListSponsorships(ctx context.Context) ([]models.Sponsorship, error) {
	query := `
		SELECT id, organization_id, title, description, amount, created_at
		FROM sponsorships
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sponsorships: %w", err)
	}
	defer rows.Close()

	sponsorships := make([]models.Sponsorship, 0)
	for rows.Next() {
		var s models.Sponsorship
		if err := rows.Scan(&s.ID, &s.OrganizationID, &s.Title, &s.Description, &s.Amount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sponsorship row: %w", err)
		}
		sponsorships = append(sponsorships, s)
	}
	return sponsorships, rows.Err()
}

func (r *postgresOpportunityRepository) ListTravelSupports(ctx context.Context) ([]models.TravelSupport, error) {
	query := `
		SELECT id, organization_id, title, details, coverage_type, min_amount, max_amount, valid_till, created_at
		FROM travel_supports
		ORDER BY valid_till ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list travel supports: %w", err)
	}
	defer rows.Close()

	supports := make([]models.TravelSupport, 0)
	for rows.Next() {
		var t models.TravelSupport
		if err := rows.Scan(&t.ID, &t.OrganizationID, &t.Title, &t.Details, &t.CoverageType, &t.AmountRange.Min, &t.AmountRange.Max, &t.ValidTill, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan travel support row: %w", err)
		}
		supports = append(supports, t)
	}
	return supports, rows.Err()
}

func (r *postgresOpportunityRepository) FindSummary(ctx context.Context, typ models.OpportunityType, id int) (*models.OpportunitySummary, error) {
	var query string
	switch typ {
	case models.OpportunityEvent:
		query = `SELECT id, title, description, organization_id FROM events WHERE id = $1`
	case models.OpportunitySponsorship:
		query = `SELECT id, title, description, organization_id FROM sponsorships WHERE id = $1`
	case models.OpportunityTravel:
		query = `SELECT id, title, details, organization_id FROM travel_supports WHERE id = $1`
	default:
		return nil, fmt.Errorf("unknown opportunity type %q: %w", typ, ErrOpportunityNotFound)
	}

	summary := &models.OpportunitySummary{Type: typ}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&summary.ID,
		&summary.Title,
		&summary.Description,
		&summary.OrganizationID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("failed to find %s summary: %w", typ, err)
	}
	return summary, nil
}

func translateOrganizationFK(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" { // foreign_key_violation
			return ErrOpportunityOrganizationInvalid
		}
	}
	return err
}
