package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sportsbridge/platform/models"
	"github.com/sportsbridge/platform/repositories"
	"github.com/sportsbridge/platform/storage"
	"golang.org/x/sync/errgroup"
)

// MediaFile — один элемент партии загрузки.
type MediaFile struct {
	Kind        models.MediaKind
	Filename    string
	ContentType string
	Reader      io.Reader
}

// MediaService — реестр вложений галереи атлета. Партия загружается целиком
// или не загружается вовсе; удаление — поштучно по (id, kind).
type MediaService interface {
	Upload(ctx context.Context, athleteID int, files []MediaFile) (*models.Gallery, error)
	Remove(ctx context.Context, athleteID, mediaID int, kind models.MediaKind) (*models.Gallery, error)
	Gallery(ctx context.Context, athleteID int) (*models.Gallery, error)
}

type mediaService struct {
	repo     repositories.MediaRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewMediaService(repo repositories.MediaRepository, uploader storage.FileUploader, logger *slog.Logger) MediaService {
	return &mediaService{
		repo:     repo,
		uploader: uploader,
		logger:   logger,
	}
}

func (s *mediaService) Upload(ctx context.Context, athleteID int, files []MediaFile) (*models.Gallery, error) {
	if len(files) == 0 {
		return nil, ErrEmptyMediaBatch
	}
	for _, f := range files {
		if f.Kind != models.MediaPhoto && f.Kind != models.MediaVideo {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMediaKind, f.Kind)
		}
	}

	// Объекты уходят в хранилище параллельно; любая ошибка отменяет группу.
	assets := make([]*models.MediaAsset, len(files))
	g, gCtx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			key := mediaObjectKey(athleteID, f.Kind, f.ContentType)
			result, err := s.uploader.Upload(gCtx, key, f.ContentType, f.Reader)
			if err != nil {
				return fmt.Errorf("%w: object store: %v", ErrUpstreamFailure, err)
			}
			assets[i] = &models.MediaAsset{
				AthleteID: athleteID,
				Kind:      f.Kind,
				ObjectKey: result.Key,
				URL:       result.Location,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Партия либо целиком, либо никак: подчищаем уже загруженное.
		s.cleanupObjects(ctx, assets)
		return nil, err
	}

	if err := s.repo.CreateBatch(ctx, assets); err != nil {
		s.cleanupObjects(ctx, assets)
		return nil, fmt.Errorf("failed to persist media batch: %w", err)
	}

	return s.Gallery(ctx, athleteID)
}

func (s *mediaService) Remove(ctx context.Context, athleteID, mediaID int, kind models.MediaKind) (*models.Gallery, error) {
	asset, err := s.repo.FindByIDAndKind(ctx, athleteID, mediaID, kind)
	if err != nil {
		if errors.Is(err, repositories.ErrMediaNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to find media asset: %w", err)
	}

	if err := s.repo.Delete(ctx, asset.ID); err != nil {
		if errors.Is(err, repositories.ErrMediaNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to delete media asset: %w", err)
	}

	// Строка удалена; осиротевший объект в хранилище — меньшее зло, чем
	// запись без объекта. Ошибку удаления только логируем.
	if err := s.uploader.Delete(ctx, asset.ObjectKey); err != nil {
		s.logger.WarnContext(ctx, "failed to delete media object",
			slog.String("key", asset.ObjectKey), slog.Any("error", err))
	}

	return s.Gallery(ctx, athleteID)
}

func (s *mediaService) Gallery(ctx context.Context, athleteID int) (*models.Gallery, error) {
	assets, err := s.repo.ListByAthlete(ctx, athleteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load gallery: %w", err)
	}
	return splitGallery(assets), nil
}

func (s *mediaService) cleanupObjects(ctx context.Context, assets []*models.MediaAsset) {
	for _, asset := range assets {
		if asset == nil || asset.ObjectKey == "" {
			continue
		}
		if err := s.uploader.Delete(ctx, asset.ObjectKey); err != nil {
			s.logger.WarnContext(ctx, "failed to clean up media object after batch failure",
				slog.String("key", asset.ObjectKey), slog.Any("error", err))
		}
	}
}

func splitGallery(assets []models.MediaAsset) *models.Gallery {
	gallery := &models.Gallery{
		Photos: make([]models.MediaAsset, 0),
		Videos: make([]models.MediaAsset, 0),
	}
	for _, asset := range assets {
		switch asset.Kind {
		case models.MediaPhoto:
			gallery.Photos = append(gallery.Photos, asset)
		case models.MediaVideo:
			gallery.Videos = append(gallery.Videos, asset)
		}
	}
	return gallery
}

func mediaObjectKey(athleteID int, kind models.MediaKind, contentType string) string {
	ext := extensionFromContentType(contentType)
	return fmt.Sprintf("athletes/%d/%ss/%s%s", athleteID, kind, uuid.NewString(), ext)
}
