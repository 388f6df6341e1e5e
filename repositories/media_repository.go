package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sportsbridge/platform/models"
)

var ErrMediaNotFound = errors.New("media asset not found")

type MediaRepository interface {
	// CreateBatch вставляет все элементы в одной транзакции: либо вся партия,
	// либо ничего.
	CreateBatch(ctx context.Context, assets []*models.MediaAsset) error
	FindByIDAndKind(ctx context.Context, athleteID, id int, kind models.MediaKind) (*models.MediaAsset, error)
	Delete(ctx context.Context, id int) error
	ListByAthlete(ctx context.Context, athleteID int) ([]models.MediaAsset, error)
}

type postgresMediaRepository struct {
	db *sql.DB
}

func NewPostgresMediaRepository(db *sql.DB) MediaRepository {
	return &postgresMediaRepository{db: db}
}

func (r *postgresMediaRepository) CreateBatch(ctx context.Context, assets []*models.MediaAsset) error {
	if len(assets) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin media batch transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO media_assets (athlete_id, kind, object_key, url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	for _, asset := range assets {
		err := tx.QueryRowContext(ctx, query,
			asset.AthleteID,
			asset.Kind,
			asset.ObjectKey,
			asset.URL,
		).Scan(&asset.ID, &asset.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert media asset (key %s): %w", asset.ObjectKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit media batch: %w", err)
	}
	return nil
}

func (r *postgresMediaRepository) FindByIDAndKind(ctx context.Context, athleteID, id int, kind models.MediaKind) (*models.MediaAsset, error) {
	query := `
		SELECT id, athlete_id, kind, object_key, url, created_at
		FROM media_assets
		WHERE id = $1 AND athlete_id = $2 AND kind = $3`

	asset := &models.MediaAsset{}
	err := r.db.QueryRowContext(ctx, query, id, athleteID, kind).Scan(
		&asset.ID,
		&asset.AthleteID,
		&asset.Kind,
		&asset.ObjectKey,
		&asset.URL,
		&asset.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to find media asset: %w", err)
	}
	return asset, nil
}

func (r *postgresMediaRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM media_assets WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete media asset: %w", err)
	}
	return checkAffectedRows(result, ErrMediaNotFound)
}

func (r *postgresMediaRepository) ListByAthlete(ctx context.Context, athleteID int) ([]models.MediaAsset, error) {
	query := `
		SELECT id, athlete_id, kind, object_key, url, created_at
		FROM media_assets
		WHERE athlete_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, athleteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list media assets: %w", err)
	}
	defer rows.Close()

	assets := make([]models.MediaAsset, 0)
	for rows.Next() {
		var asset models.MediaAsset
		if err := rows.Scan(&asset.ID, &asset.AthleteID, &asset.Kind, &asset.ObjectKey, &asset.URL, &asset.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan media asset row: %w", err)
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}
