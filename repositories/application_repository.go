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
	ErrApplicationNotFound   = errors.New("application not found")
	ErrApplicationConflict   = errors.New("application conflict: athlete already applied to this opportunity")
	ErrApplicationNotPending = errors.New("application is not pending")
)

type ApplicationRepository interface {
	Create(ctx context.Context, a *models.Application) error
	FindByID(ctx context.Context, id int) (*models.Application, error)
	// UpdateStatusFromPending выполняет единственный легальный переход
	// pending → terminal одним условным UPDATE. Для не-pending строки
	// возвращает ErrApplicationNotPending, для отсутствующей —
	// ErrApplicationNotFound.
	UpdateStatusFromPending(ctx context.Context, id int, status models.ApplicationStatus) error
	ListByAthlete(ctx context.Context, athleteID int) ([]*models.Application, error)
	ListByOrganization(ctx context.Context, organizationID int) ([]*models.Application, error)
}

type postgresApplicationRepository struct {
	db *sql.DB
}

func NewPostgresApplicationRepository(db *sql.DB) ApplicationRepository {
	return &postgresApplicationRepository{db: db}
}

func (r *postgresApplicationRepository) Create(ctx context.Context, a *models.Application) error {
	query := `
		INSERT INTO applications (athlete_id, opportunity_type, opportunity_id, organization_id, message, requirements, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		a.AthleteID,
		a.OpportunityType,
		a.OpportunityID,
		a.OrganizationID,
		a.Message,
		a.Requirements,
		a.Status,
	).Scan(&a.ID, &a.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "applications_athlete_opportunity_key" {
					return ErrApplicationConflict
				}
			case "23503": // foreign_key_violation
				return fmt.Errorf("application references invalid row (%s): %w", pqErr.Constraint, err)
			}
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (r *postgresApplicationRepository) FindByID(ctx context.Context, id int) (*models.Application, error) {
	query := `
		SELECT id, athlete_id, opportunity_type, opportunity_id, organization_id, message, requirements, status, created_at
		FROM applications
		WHERE id = $1`

	a := &models.Application{}
	err := r.scanApplication(r.db.QueryRowContext(ctx, query, id), a)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return a, nil
}

func (r *postgresApplicationRepository) UpdateStatusFromPending(ctx context.Context, id int, status models.ApplicationStatus) error {
	// Условие status = 'pending' сериализует конкурирующие ревью на строке:
	// второй UPDATE не затронет ни одной строки.
	query := `UPDATE applications SET status = $1 WHERE id = $2 AND status = $3`
	result, err := r.db.ExecContext(ctx, query, status, id, models.ApplicationPending)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}

	if err := checkAffectedRows(result, ErrApplicationNotPending); err != nil {
		// Различаем "не найдена" и "уже решена": UI объясняет их по-разному.
		if errors.Is(err, ErrApplicationNotPending) {
			if _, findErr := r.FindByID(ctx, id); errors.Is(findErr, ErrApplicationNotFound) {
				return ErrApplicationNotFound
			}
		}
		return err
	}
	return nil
}

func (r *postgresApplicationRepository) ListByAthlete(ctx context.Context, athleteID int) ([]*models.Application, error) {
	query := `
		SELECT id, athlete_id, opportunity_type, opportunity_id, organization_id, message, requirements, status, created_at
		FROM applications
		WHERE athlete_id = $1
		ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query, athleteID)
}

func (r *postgresApplicationRepository) ListByOrganization(ctx context.Context, organizationID int) ([]*models.Application, error) {
	query := `
		SELECT id, athlete_id, opportunity_type, opportunity_id, organization_id, message, requirements, status, created_at
		FROM applications
		WHERE organization_id = $1
		ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query, organizationID)
}

func (r *postgresApplicationRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	applications := make([]*models.Application, 0)
	for rows.Next() {
		a := &models.Application{}
		if err := r.scanApplication(rows, a); err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		applications = append(applications, a)
	}
	return applications, rows.Err()
}

func (r *postgresApplicationRepository) scanApplication(rowScanner interface {
	Scan(dest ...interface{}) error
}, a *models.Application) error {
	return rowScanner.Scan(
		&a.ID,
		&a.AthleteID,
		&a.OpportunityType,
		&a.OpportunityID,
		&a.OrganizationID,
		&a.Message,
		&a.Requirements,
		&a.Status,
		&a.CreatedAt,
	)
}
