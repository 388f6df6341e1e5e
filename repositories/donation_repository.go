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
	ErrDonationNotFound       = errors.New("donation not found")
	ErrDonationAthleteInvalid = errors.New("donation athlete conflict or invalid")
)

type DonationRepository interface {
	Create(ctx context.Context, d *models.Donation) error
	// Settle проставляет payment_id и переводит запись в completed.
	// Единственный путь мутации после создания.
	Settle(ctx context.Context, orderID, paymentID string) (*models.Donation, error)
	ListByDonor(ctx context.Context, donorID int) ([]*models.Donation, error)
	// DeleteAllByDonor — жёсткое удаление истории донора. Необратимо.
	DeleteAllByDonor(ctx context.Context, donorID int) error
}

type postgresDonationRepository struct {
	db *sql.DB
}

func NewPostgresDonationRepository(db *sql.DB) DonationRepository {
	return &postgresDonationRepository{db: db}
}

func (r *postgresDonationRepository) Create(ctx context.Context, d *models.Donation) error {
	query := `
		INSERT INTO donations (donor_id, athlete_id, amount, status, order_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		d.DonorID,
		d.AthleteID,
		d.Amount,
		d.Status,
		d.OrderID,
	).Scan(&d.ID, &d.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" && pqErr.Constraint == "donations_athlete_id_fkey" {
				return ErrDonationAthleteInvalid
			}
		}
		return fmt.Errorf("failed to create donation: %w", err)
	}
	return nil
}

func (r *postgresDonationRepository) Settle(ctx context.Context, orderID, paymentID string) (*models.Donation, error) {
	query := `
		UPDATE donations
		SET status = $1, payment_id = $2
		WHERE order_id = $3
		RETURNING id, donor_id, athlete_id, amount, status, order_id, payment_id, created_at`

	d := &models.Donation{}
	err := r.db.QueryRowContext(ctx, query, models.DonationCompleted, paymentID, orderID).Scan(
		&d.ID,
		&d.DonorID,
		&d.AthleteID,
		&d.Amount,
		&d.Status,
		&d.OrderID,
		&d.PaymentID,
		&d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to settle donation (order %s): %w", orderID, err)
	}
	return d, nil
}

func (r *postgresDonationRepository) ListByDonor(ctx context.Context, donorID int) ([]*models.Donation, error) {
	// Имя атлета подтягивается из профиля для фильтрации и отображения.
	query := `
		SELECT
			d.id, d.donor_id, d.athlete_id, d.amount, d.status, d.order_id, d.payment_id, d.created_at,
			p.user_id, p.full_name, p.age, p.gender, p.sports_category, p.current_level, p.city, p.state
		FROM donations d
		LEFT JOIN athlete_profiles p ON p.user_id = d.athlete_id
		WHERE d.donor_id = $1
		ORDER BY d.created_at DESC, d.id DESC`

	rows, err := r.db.QueryContext(ctx, query, donorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations by donor: %w", err)
	}
	defer rows.Close()

	donations := make([]*models.Donation, 0)
	for rows.Next() {
		d := &models.Donation{}
		var (
			userID         sql.NullInt64
			fullName       sql.NullString
			age            sql.NullInt64
			gender         sql.NullString
			sportsCategory sql.NullString
			currentLevel   sql.NullString
			city           sql.NullString
			state          sql.NullString
		)
		err := rows.Scan(
			&d.ID, &d.DonorID, &d.AthleteID, &d.Amount, &d.Status, &d.OrderID, &d.PaymentID, &d.CreatedAt,
			&userID, &fullName, &age, &gender, &sportsCategory, &currentLevel, &city, &state,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan donation row: %w", err)
		}
		if userID.Valid {
			d.Athlete = &models.AthleteSummary{
				UserID:         int(userID.Int64),
				FullName:       fullName.String,
				Age:            int(age.Int64),
				Gender:         gender.String,
				SportsCategory: sportsCategory.String,
				CurrentLevel:   currentLevel.String,
				City:           city.String,
				State:          state.String,
			}
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}

func (r *postgresDonationRepository) DeleteAllByDonor(ctx context.Context, donorID int) error {
	query := `DELETE FROM donations WHERE donor_id = $1`
	if _, err := r.db.ExecContext(ctx, query, donorID); err != nil {
		return fmt.Errorf("failed to clear donations for donor %d: %w", donorID, err)
	}
	// Пустая история — не ошибка: clearAll идемпотентен по результату.
	return nil
}
