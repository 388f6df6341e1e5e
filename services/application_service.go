package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sportsbridge/platform/models"
	"github.com/sportsbridge/platform/realtime"
	"github.com/sportsbridge/platform/repositories"
)

// Тексты по умолчанию для заявки без сообщения/требований.
const (
	defaultMessageFormat = "I am interested in this %s opportunity and would like to apply."
	defaultRequirements  = "No specific requirements"
)

// ApplicationService — машина состояний заявок атлетов: создание,
// рассмотрение организацией и проекции для обеих сторон.
// Легальные переходы: pending → accepted | rejected; терминальный статус
// не пересматривается.
type ApplicationService interface {
	Submit(ctx context.Context, athleteID int, typ models.OpportunityType, opportunityID int, message, requirements string) (*models.Application, error)
	Review(ctx context.Context, applicationID, organizationID int, decision models.ApplicationStatus) (*models.Application, error)
	ListForAthlete(ctx context.Context, athleteID int) ([]AthleteApplicationView, error)
	ListForOrganization(ctx context.Context, organizationID int) ([]*models.Application, error)
}

// AthleteApplicationView — проекция заявки для атлета: accepted показывается
// как approved, хранимое значение не меняется.
type AthleteApplicationView struct {
	models.Application
	DisplayStatus string `json:"display_status"`
}

type applicationService struct {
	repo        repositories.ApplicationRepository
	oppRepo     repositories.OpportunityRepository
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
	hub         *realtime.Hub
	mailer      *EmailService
	logger      *slog.Logger
}

func NewApplicationService(
	repo repositories.ApplicationRepository,
	oppRepo repositories.OpportunityRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	hub *realtime.Hub,
	mailer *EmailService,
	logger *slog.Logger,
) ApplicationService {
	return &applicationService{
		repo:        repo,
		oppRepo:     oppRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		hub:         hub,
		mailer:      mailer,
		logger:      logger,
	}
}

func (s *applicationService) Submit(ctx context.Context, athleteID int, typ models.OpportunityType, opportunityID int, message, requirements string) (*models.Application, error) {
	summary, err := s.oppRepo.FindSummary(ctx, typ, opportunityID)
	if err != nil {
		if errors.Is(err, repositories.ErrOpportunityNotFound) {
			return nil, ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("failed to resolve opportunity: %w", err)
	}

	message = strings.TrimSpace(message)
	if message == "" {
		message = fmt.Sprintf(defaultMessageFormat, typ.Label())
	}
	requirements = strings.TrimSpace(requirements)
	if requirements == "" {
		requirements = defaultRequirements
	}

	application := &models.Application{
		AthleteID:       athleteID,
		OpportunityType: typ,
		OpportunityID:   opportunityID,
		OrganizationID:  summary.OrganizationID,
		Message:         message,
		Requirements:    requirements,
		Status:          models.ApplicationPending,
	}

	if err := s.repo.Create(ctx, application); err != nil {
		if errors.Is(err, repositories.ErrApplicationConflict) {
			return nil, ErrApplicationConflict
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	application.Opportunity = summary
	return application, nil
}

func (s *applicationService) Review(ctx context.Context, applicationID, organizationID int, decision models.ApplicationStatus) (*models.Application, error) {
	if decision != models.ApplicationAccepted && decision != models.ApplicationRejected {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecision, decision)
	}

	application, err := s.repo.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	if application.OrganizationID != organizationID {
		return nil, ErrApplicationReviewForbidden
	}
	if application.Status.IsTerminal() {
		return nil, ErrApplicationAlreadyDecided
	}

	// Условный UPDATE — единственный путь мутации статуса. Конкурирующее
	// ревью, успевшее первым, оставит эту ветку с ErrApplicationNotPending.
	if err := s.repo.UpdateStatusFromPending(ctx, applicationID, decision); err != nil {
		switch {
		case errors.Is(err, repositories.ErrApplicationNotPending):
			return nil, ErrApplicationAlreadyDecided
		case errors.Is(err, repositories.ErrApplicationNotFound):
			return nil, ErrApplicationNotFound
		default:
			return nil, fmt.Errorf("failed to update application status: %w", err)
		}
	}

	application.Status = decision
	s.attachOpportunity(ctx, application)

	// Уведомления best-effort: их отказ не откатывает решение.
	s.notifyAthlete(ctx, application)

	return application, nil
}

func (s *applicationService) ListForAthlete(ctx context.Context, athleteID int) ([]AthleteApplicationView, error) {
	applications, err := s.repo.ListByAthlete(ctx, athleteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list athlete applications: %w", err)
	}

	views := make([]AthleteApplicationView, 0, len(applications))
	for _, a := range applications {
		s.attachOpportunity(ctx, a)
		views = append(views, AthleteApplicationView{
			Application:   *a,
			DisplayStatus: a.Status.DisplayStatus(),
		})
	}
	return views, nil
}

func (s *applicationService) ListForOrganization(ctx context.Context, organizationID int) ([]*models.Application, error) {
	applications, err := s.repo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organization applications: %w", err)
	}

	profiles := make(map[int]*models.AthleteSummary)
	for _, a := range applications {
		s.attachOpportunity(ctx, a)

		if summary, ok := profiles[a.AthleteID]; ok {
			a.Athlete = summary
			continue
		}
		profile, err := s.profileRepo.GetByUserID(ctx, a.AthleteID)
		if err != nil {
			if !errors.Is(err, repositories.ErrProfileNotFound) {
				s.logger.WarnContext(ctx, "failed to attach athlete profile",
					slog.Int("application_id", a.ID), slog.Int("athlete_id", a.AthleteID), slog.Any("error", err))
			}
			profiles[a.AthleteID] = nil
			continue
		}
		summary := &models.AthleteSummary{
			UserID:         profile.UserID,
			FullName:       profile.FullName,
			Age:            profile.Age,
			Gender:         profile.Gender,
			SportsCategory: profile.SportsCategory,
			CurrentLevel:   profile.CurrentLevel,
			City:           profile.City,
			State:          profile.State,
		}
		profiles[a.AthleteID] = summary
		a.Athlete = summary
	}
	return applications, nil
}

// attachOpportunity обогащает заявку денормализованным представлением
// возможности. Это read-time забота: ошибка логируется, заявка отдаётся без
// обогащения.
func (s *applicationService) attachOpportunity(ctx context.Context, a *models.Application) {
	if a == nil || a.Opportunity != nil {
		return
	}
	summary, err := s.oppRepo.FindSummary(ctx, a.OpportunityType, a.OpportunityID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to attach opportunity summary",
			slog.Int("application_id", a.ID),
			slog.String("opportunity_type", string(a.OpportunityType)),
			slog.Int("opportunity_id", a.OpportunityID),
			slog.Any("error", err))
		return
	}
	a.Opportunity = summary
}

func (s *applicationService) notifyAthlete(ctx context.Context, a *models.Application) {
	title := ""
	if a.Opportunity != nil {
		title = a.Opportunity.Title
	}

	if s.hub != nil {
		s.hub.NotifyUser(a.AthleteID, realtime.EventApplicationReviewed, map[string]interface{}{
			"application_id": a.ID,
			"status":         a.Status.DisplayStatus(),
			"title":          title,
		})
	}

	if s.mailer == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, a.AthleteID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load athlete for decision email",
			slog.Int("athlete_id", a.AthleteID), slog.Any("error", err))
		return
	}
	subject := fmt.Sprintf("Your application has been %s", a.Status.DisplayStatus())
	body := fmt.Sprintf("<p>Hello %s,</p><p>Your application for <b>%s</b> has been %s.</p>",
		user.FullName, title, a.Status.DisplayStatus())
	if err := s.mailer.SendEmail([]string{user.Email}, subject, body); err != nil {
		s.logger.WarnContext(ctx, "failed to send decision email",
			slog.Int("application_id", a.ID), slog.Any("error", err))
	}
}
