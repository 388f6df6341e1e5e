package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/sportsbridge/platform/filters"
	"github.com/sportsbridge/platform/models"
)

var (
	ErrProfileNotFound    = errors.New("athlete profile not found")
	ErrProfileUserInvalid = errors.New("profile user conflict or invalid")
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int) (*models.AthleteProfile, error)
	// Upsert создаёт профиль при первом сохранении и целиком перезаписывает
	// его дальше: ровно один профиль на атлета (UNIQUE user_id).
	Upsert(ctx context.Context, p *models.AthleteProfile) error
	// Search выполняет фильтрацию на стороне БД: население атлетов не
	// ограничено, в отличие от истории пожертвований одного донора.
	Search(ctx context.Context, f filters.AthleteFilter) ([]models.AthleteProfile, error)
}

type postgresProfileRepository struct {
	db *sql.DB
}

func NewPostgresProfileRepository(db *sql.DB) ProfileRepository {
	return &postgresProfileRepository{db: db}
}

const profileColumns = `id, user_id, full_name, age, gender, sports_category, current_level, city, state, bio, achievements, contact_number, guardian_name, school, coach, created_at, updated_at`

func (r *postgresProfileRepository) GetByUserID(ctx context.Context, userID int) (*models.AthleteProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM athlete_profiles WHERE user_id = $1`

	p := &models.AthleteProfile{}
	err := r.scanProfile(r.db.QueryRowContext(ctx, query, userID), p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find athlete profile: %w", err)
	}
	return p, nil
}

func (r *postgresProfileRepository) Upsert(ctx context.Context, p *models.AthleteProfile) error {
	query := `
		INSERT INTO athlete_profiles (user_id, full_name, age, gender, sports_category, current_level, city, state, bio, achievements, contact_number, guardian_name, school, coach)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			sports_category = EXCLUDED.sports_category,
			current_level = EXCLUDED.current_level,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			bio = EXCLUDED.bio,
			achievements = EXCLUDED.achievements,
			contact_number = EXCLUDED.contact_number,
			guardian_name = EXCLUDED.guardian_name,
			school = EXCLUDED.school,
			coach = EXCLUDED.coach,
			updated_at = now()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.UserID,
		p.FullName,
		p.Age,
		p.Gender,
		p.SportsCategory,
		p.CurrentLevel,
		p.City,
		p.State,
		p.Bio,
		p.Achievements,
		p.ContactNumber,
		p.GuardianName,
		p.School,
		p.Coach,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" && pqErr.Constraint == "athlete_profiles_user_id_fkey" {
				return ErrProfileUserInvalid
			}
		}
		return fmt.Errorf("failed to upsert athlete profile: %w", err)
	}
	return nil
}

func (r *postgresProfileRepository) Search(ctx context.Context, f filters.AthleteFilter) ([]models.AthleteProfile, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + profileColumns + ` FROM athlete_profiles WHERE 1=1`)

	args := make([]interface{}, 0, 5)
	argCounter := 0
	next := func() int {
		argCounter++
		return argCounter
	}

	if f.Name != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND full_name ILIKE $%d", next()))
		args = append(args, "%"+f.Name+"%")
	}
	if f.Location != "" {
		n := next()
		queryBuilder.WriteString(fmt.Sprintf(" AND (city ILIKE $%d OR state ILIKE $%d)", n, n))
		args = append(args, "%"+f.Location+"%")
	}
	if f.Age != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND age = $%d", next()))
		args = append(args, *f.Age)
	}
	if f.Sport != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND lower(sports_category) = lower($%d)", next()))
		args = append(args, f.Sport)
	}
	if f.Gender != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND lower(gender) = lower($%d)", next()))
		args = append(args, f.Gender)
	}

	queryBuilder.WriteString(" ORDER BY full_name ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search athlete profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]models.AthleteProfile, 0)
	for rows.Next() {
		var p models.AthleteProfile
		if err := r.scanProfile(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan athlete profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *postgresProfileRepository) scanProfile(rowScanner interface {
	Scan(dest ...interface{}) error
}, p *models.AthleteProfile) error {
	return rowScanner.Scan(
		&p.ID,
		&p.UserID,
		&p.FullName,
		&p.Age,
		&p.Gender,
		&p.SportsCategory,
		&p.CurrentLevel,
		&p.City,
		&p.State,
		&p.Bio,
		&p.Achievements,
		&p.ContactNumber,
		&p.GuardianName,
		&p.School,
		&p.Coach,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}
