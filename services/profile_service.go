package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sportsbridge/platform/filters"
	"github.com/sportsbridge/platform/models"
	"github.com/sportsbridge/platform/repositories"
)

// ProfileService — профиль атлета: ровно один на аккаунт, целиком
// редактируется владельцем, читается организациями и донорами.
type ProfileService interface {
	Get(ctx context.Context, userID int) (*models.AthleteProfile, error)
	Update(ctx context.Context, userID int, input ProfileInput) (*models.AthleteProfile, error)
	Search(ctx context.Context, f filters.AthleteFilter) ([]models.AthleteProfile, error)
}

type ProfileInput struct {
	FullName       string `json:"full_name"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	SportsCategory string `json:"sports_category"`
	CurrentLevel   string `json:"current_level"`
	City           string `json:"city"`
	State          string `json:"state"`
	Bio            string `json:"bio"`
	Achievements   string `json:"achievements"`
	ContactNumber  string `json:"contact_number"`
	GuardianName   string `json:"guardian_name"`
	School         string `json:"school"`
	Coach          string `json:"coach"`
}

type profileService struct {
	repo      repositories.ProfileRepository
	mediaRepo repositories.MediaRepository
	logger    *slog.Logger
}

func NewProfileService(repo repositories.ProfileRepository, mediaRepo repositories.MediaRepository, logger *slog.Logger) ProfileService {
	return &profileService{
		repo:      repo,
		mediaRepo: mediaRepo,
		logger:    logger,
	}
}

func (s *profileService) Get(ctx context.Context, userID int) (*models.AthleteProfile, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get athlete profile: %w", err)
	}
	s.attachGallery(ctx, profile)
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, userID int, input ProfileInput) (*models.AthleteProfile, error) {
	if strings.TrimSpace(input.FullName) == "" {
		return nil, ErrFullNameRequired
	}

	profile := &models.AthleteProfile{
		UserID:         userID,
		FullName:       strings.TrimSpace(input.FullName),
		Age:            input.Age,
		Gender:         input.Gender,
		SportsCategory: input.SportsCategory,
		CurrentLevel:   input.CurrentLevel,
		City:           input.City,
		State:          input.State,
		Bio:            input.Bio,
		Achievements:   input.Achievements,
		ContactNumber:  input.ContactNumber,
		GuardianName:   input.GuardianName,
		School:         input.School,
		Coach:          input.Coach,
	}

	if err := s.repo.Upsert(ctx, profile); err != nil {
		if errors.Is(err, repositories.ErrProfileUserInvalid) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update athlete profile: %w", err)
	}

	s.attachGallery(ctx, profile)
	return profile, nil
}

func (s *profileService) Search(ctx context.Context, f filters.AthleteFilter) ([]models.AthleteProfile, error) {
	profiles, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to search athletes: %w", err)
	}
	for i := range profiles {
		s.attachGallery(ctx, &profiles[i])
	}
	return profiles, nil
}

// attachGallery — read-time обогащение профиля галереей; ошибка логируется,
// профиль отдаётся с пустой галереей.
func (s *profileService) attachGallery(ctx context.Context, p *models.AthleteProfile) {
	p.Photos = make([]models.MediaAsset, 0)
	p.Videos = make([]models.MediaAsset, 0)

	assets, err := s.mediaRepo.ListByAthlete(ctx, p.UserID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to attach gallery",
			slog.Int("user_id", p.UserID), slog.Any("error", err))
		return
	}
	gallery := splitGallery(assets)
	p.Photos = gallery.Photos
	p.Videos = gallery.Videos
}
