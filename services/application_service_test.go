package services

import (
	"context"
	"testing"

	"github.com/sportsbridge/platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApplicationServiceForTest(t *testing.T, oppRepo *fakeOpportunityRepo) (ApplicationService, *fakeApplicationRepo) {
	t.Helper()
	appRepo := newFakeApplicationRepo()
	svc := NewApplicationService(
		appRepo,
		oppRepo,
		newFakeProfileRepo(),
		newFakeUserRepo(),
		nil, // hub
		nil, // mailer
		testLogger(t),
	)
	return svc, appRepo
}

func sponsorshipSummary(id, orgID int) *models.OpportunitySummary {
	return &models.OpportunitySummary{
		Type:           models.OpportunitySponsorship,
		ID:             id,
		Title:          "Junior Athletics Grant",
		Description:    "Season funding for U-18 athletes",
		OrganizationID: orgID,
	}
}

func TestApplicationSubmitDefaults(t *testing.T) {
	oppRepo := newFakeOpportunityRepo()
	oppRepo.addSummary(sponsorshipSummary(7, 42))
	svc, _ := newApplicationServiceForTest(t, oppRepo)

	app, err := svc.Submit(context.Background(), 1, models.OpportunitySponsorship, 7, "", "")
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationPending, app.Status)
	assert.Equal(t, 42, app.OrganizationID)
	assert.Equal(t, "I am interested in this sponsorship opportunity and would like to apply.", app.Message)
	assert.Equal(t, "No specific requirements", app.Requirements)
	require.NotNil(t, app.Opportunity)
	assert.Equal(t, "Junior Athletics Grant", app.Opportunity.Title)
}

func TestApplicationSubmitKeepsProvidedText(t *testing.T) {
	oppRepo := newFakeOpportunityRepo()
	oppRepo.addSummary(sponsorshipSummary(7, 42))
	svc, _ := newApplicationServiceForTest(t, oppRepo)

	app, err := svc.Submit(context.Background(), 1, models.OpportunitySponsorship, 7,
		"  I train 6 days a week.  ", "Need travel covered")
	require.NoError(t, err)

	assert.Equal(t, "I train 6 days a week.", app.Message)
	assert.Equal(t, "Need travel covered", app.Requirements)
}

func TestApplicationSubmitUnknownOpportunity(t *testing.T) {
	svc, _ := newApplicationServiceForTest(t, newFakeOpportunityRepo())

	_, err := svc.Submit(context.Background(), 1, models.OpportunityEvent, 99, "", "")
	assert.ErrorIs(t, err, ErrOpportunityNotFound)
}

func TestApplicationSubmitDuplicateConflict(t *testing.T) {
	oppRepo := newFakeOpportunityRepo()
	oppRepo.addSummary(sponsorshipSummary(7, 42))
	svc, _ := newApplicationServiceForTest(t, oppRepo)

	_, err := svc.Submit(context.Background(), 1, models.OpportunitySponsorship, 7, "", "")
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 1, models.OpportunitySponsorship, 7, "second try", "")
	assert.ErrorIs(t, err, ErrApplicationConflict)
}

func TestApplicationReviewAccept(t *testing.T) {
	oppRepo := newFakeOpportunityRepo()
	oppRepo.addSummary(sponsorshipSummary(7, 42))
	svc, _ := newApplicationServiceForTest(t, oppRepo)

	app, err := svc.Submit(context.Background(), 1, models.OpportunitySponsorship, 7, "", "")
	require.NoError(t, err)

	reviewed, err := svc.Review(context.Background(), app.ID, 42, models.ApplicationAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationAccepted, reviewed.Status)
}

func TestApplicationReviewInvalidDecision(t *testing.T) {
	svc, _ := newApplicationServiceForTest(t, newFakeOpportunityRepo())

	_, err := svc.Review(context.Background(), 1, 42, models.ApplicationPending)
	assert.ErrorIs(t, err, ErrInvalidDecision)

	_, err = svc.Review(context.Background(), 1, 42, models.ApplicationStatus("approved"))
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestApplicationReviewNotFound(t *testing.T) {
	svc, _ := newApplicationServiceForTest(t, newFakeOpportunityRepo())

	_, err := svc.Review(context.Background(), 777, 42, models.ApplicationRejected)
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestApplicationReviewWrongOrganization(t *testing.T) {
	oppRepo := newFakeOpportunityRepo()
	oppRepo.addSummary(sponsorshipSummary(7, 42))
	svc, _ := newApplicationServiceForTest(t, oppRepo)

	app, err := svc.Submit(context.Background(), 1, models.OpportunitySponsorship, 7, "", "")
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), app.ID, 43, models.ApplicationAccepted)
	assert.ErrorIs(t, err, ErrApplicationReviewForbidden)
}

func TestApplicationReviewExactlyOnce(t *testing.T) {
	orderings := []struct {
		name          string
		first, second models.ApplicationStatus
	}{
		{"accept then reject", models.ApplicationAccepted, models.ApplicationRejected},
		{"reject then accept", models.ApplicationRejected, models.ApplicationAccepted},
		{"accept then accept", models.ApplicationAccepted, models.ApplicationAccepted},
	}

	for _, tt := range orderings {
		t.Run(tt.name, func(t *testing.T) {
			oppRepo := newFakeOpportunityRepo()
			oppRepo.addSummary(sponsorshipSummary(7, 42))
			svc, appRepo := newApplicationServiceForTest(t, oppRepo)

			app, err := svc.Submit(context.Background(), 1, models.OpportunitySponsorship, 7, "", "")
			require.NoError(t, err)

			_, err = svc.Review(context.Background(), app.ID, 42, tt.first)
			require.NoError(t, err)

			_, err = svc.Review(context.Background(), app.ID, 42, tt.second)
			assert.ErrorIs(t, err, ErrApplicationAlreadyDecided)

			// The stored decision must still be the first one.
			stored, err := appRepo.FindByID(context.Background(), app.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.first, stored.Status)
		})
	}
}

func TestApplicationListForAthleteDisplayStatus(t *testing.T) {
	oppRepo := newFakeOpportunityRepo()
	oppRepo.addSummary(sponsorshipSummary(7, 42))
	oppRepo.addSummary(&models.OpportunitySummary{
		Type: models.OpportunityEvent, ID: 3, Title: "State Championship", OrganizationID: 42,
	})
	svc, _ := newApplicationServiceForTest(t, oppRepo)

	first, err := svc.Submit(context.Background(), 1, models.OpportunitySponsorship, 7, "", "")
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), 1, models.OpportunityEvent, 3, "", "")
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), first.ID, 42, models.ApplicationAccepted)
	require.NoError(t, err)
	_, err = svc.Review(context.Background(), second.ID, 42, models.ApplicationRejected)
	require.NoError(t, err)

	views, err := svc.ListForAthlete(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, views, 2)

	// Accepted is projected to the athlete as "approved"; the stored value
	// stays "accepted".
	assert.Equal(t, "approved", views[0].DisplayStatus)
	assert.Equal(t, models.ApplicationAccepted, views[0].Status)
	assert.Equal(t, "rejected", views[1].DisplayStatus)
}

func TestApplicationListForOrganization(t *testing.T) {
	oppRepo := newFakeOpportunityRepo()
	oppRepo.addSummary(sponsorshipSummary(7, 42))
	oppRepo.addSummary(sponsorshipSummary(8, 99))

	appRepo := newFakeApplicationRepo()
	profileRepo := newFakeProfileRepo()
	require.NoError(t, profileRepo.Upsert(context.Background(), &models.AthleteProfile{
		UserID:   1,
		FullName: "Arjun Mehta",
		City:     "Pune",
	}))

	svc := NewApplicationService(appRepo, oppRepo, profileRepo, newFakeUserRepo(), nil, nil, testLogger(t))

	_, err := svc.Submit(context.Background(), 1, models.OpportunitySponsorship, 7, "", "")
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), 2, models.OpportunitySponsorship, 8, "", "")
	require.NoError(t, err)

	apps, err := svc.ListForOrganization(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, 1, apps[0].AthleteID)
	require.NotNil(t, apps[0].Athlete)
	assert.Equal(t, "Arjun Mehta", apps[0].Athlete.FullName)
}
