package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"github.com/sportsbridge/platform/filters"
	"github.com/sportsbridge/platform/models"
	"github.com/sportsbridge/platform/payments"
	"github.com/sportsbridge/platform/repositories"
	"github.com/sportsbridge/platform/storage"
)

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- application repository fake ---

type fakeApplicationRepo struct {
	mu     sync.Mutex
	nextID int
	items  map[int]*models.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{nextID: 1, items: make(map[int]*models.Application)}
}

func (r *fakeApplicationRepo) Create(_ context.Context, a *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.AthleteID == a.AthleteID &&
			existing.OpportunityType == a.OpportunityType &&
			existing.OpportunityID == a.OpportunityID {
			return repositories.ErrApplicationConflict
		}
	}
	a.ID = r.nextID
	r.nextID++
	stored := *a
	stored.Opportunity = nil
	stored.Athlete = nil
	r.items[a.ID] = &stored
	return nil
}

func (r *fakeApplicationRepo) FindByID(_ context.Context, id int) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeApplicationRepo) UpdateStatusFromPending(_ context.Context, id int, status models.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	if a.Status != models.ApplicationPending {
		return repositories.ErrApplicationNotPending
	}
	a.Status = status
	return nil
}

func (r *fakeApplicationRepo) ListByAthlete(_ context.Context, athleteID int) ([]*models.Application, error) {
	return r.list(func(a *models.Application) bool { return a.AthleteID == athleteID }), nil
}

func (r *fakeApplicationRepo) ListByOrganization(_ context.Context, organizationID int) ([]*models.Application, error) {
	return r.list(func(a *models.Application) bool { return a.OrganizationID == organizationID }), nil
}

func (r *fakeApplicationRepo) list(match func(*models.Application) bool) []*models.Application {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Application
	for _, a := range r.items {
		if match(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --- opportunity repository fake ---

type fakeOpportunityRepo struct {
	summaries map[string]*models.OpportunitySummary
}

func newFakeOpportunityRepo() *fakeOpportunityRepo {
	return &fakeOpportunityRepo{summaries: make(map[string]*models.OpportunitySummary)}
}

func (r *fakeOpportunityRepo) addSummary(s *models.OpportunitySummary) {
	r.summaries[fmt.Sprintf("%s/%d", s.Type, s.ID)] = s
}

func (r *fakeOpportunityRepo) FindSummary(_ context.Context, typ models.OpportunityType, id int) (*models.OpportunitySummary, error) {
	s, ok := r.summaries[fmt.Sprintf("%s/%d", typ, id)]
	if !ok {
		return nil, repositories.ErrOpportunityNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeOpportunityRepo) CreateEvent(_ context.Context, e *models.Event) error {
	e.ID = len(r.summaries) + 1
	r.addSummary(&models.OpportunitySummary{
		Type: models.OpportunityEvent, ID: e.ID, Title: e.Title,
		Description: e.Description, OrganizationID: e.OrganizationID,
	})
	return nil
}

func (r *fakeOpportunityRepo) CreateSponsorship(_ context.Context, s *models.Sponsorship) error {
	s.ID = len(r.summaries) + 1
	r.addSummary(&models.OpportunitySummary{
		Type: models.OpportunitySponsorship, ID: s.ID, Title: s.Title,
		Description: s.Description, OrganizationID: s.OrganizationID,
	})
	return nil
}

func (r *fakeOpportunityRepo) CreateTravelSupport(_ context.Context, ts *models.TravelSupport) error {
	ts.ID = len(r.summaries) + 1
	r.addSummary(&models.OpportunitySummary{
		Type: models.OpportunityTravel, ID: ts.ID, Title: ts.Title,
		Description: ts.Details, OrganizationID: ts.OrganizationID,
	})
	return nil
}

func (r *fakeOpportunityRepo) ListEvents(_ context.Context) ([]models.Event, error) {
	return nil, nil
}

func (r *fakeOpportunityRepo) ListSponsorships(_ context.Context) ([]models.Sponsorship, error) {
	return nil, nil
}

func (r *fakeOpportunityRepo) ListTravelSupports(_ context.Context) ([]models.TravelSupport, error) {
	return nil, nil
}

// --- profile repository fake ---

type fakeProfileRepo struct {
	profiles map[int]*models.AthleteProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[int]*models.AthleteProfile)}
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID int) (*models.AthleteProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, p *models.AthleteProfile) error {
	cp := *p
	r.profiles[p.UserID] = &cp
	return nil
}

func (r *fakeProfileRepo) Search(_ context.Context, _ filters.AthleteFilter) ([]models.AthleteProfile, error) {
	var out []models.AthleteProfile
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, nil
}

// --- user repository fake ---

type fakeUserRepo struct {
	users map[int]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	user.ID = len(r.users) + 1
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

// --- donation repository fake ---

type fakeDonationRepo struct {
	nextID int
	items  []*models.Donation
}

func newFakeDonationRepo() *fakeDonationRepo {
	return &fakeDonationRepo{nextID: 1}
}

func (r *fakeDonationRepo) Create(_ context.Context, d *models.Donation) error {
	d.ID = r.nextID
	r.nextID++
	cp := *d
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeDonationRepo) Settle(_ context.Context, orderID, paymentID string) (*models.Donation, error) {
	for _, d := range r.items {
		if d.OrderID == orderID {
			d.Status = models.DonationCompleted
			d.PaymentID = &paymentID
			cp := *d
			return &cp, nil
		}
	}
	return nil, repositories.ErrDonationNotFound
}

func (r *fakeDonationRepo) ListByDonor(_ context.Context, donorID int) ([]*models.Donation, error) {
	var out []*models.Donation
	for _, d := range r.items {
		if d.DonorID == donorID {
			cp := *d
			out = append(out, &cp)
		}
	}
	// Newest first, like the SQL ordering.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeDonationRepo) DeleteAllByDonor(_ context.Context, donorID int) error {
	kept := r.items[:0]
	for _, d := range r.items {
		if d.DonorID != donorID {
			kept = append(kept, d)
		}
	}
	r.items = kept
	return nil
}

// --- media repository fake ---

type fakeMediaRepo struct {
	nextID         int
	assets         []models.MediaAsset
	failNextCreate error
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{nextID: 1}
}

func (r *fakeMediaRepo) CreateBatch(_ context.Context, assets []*models.MediaAsset) error {
	if r.failNextCreate != nil {
		err := r.failNextCreate
		r.failNextCreate = nil
		return err
	}
	for _, a := range assets {
		a.ID = r.nextID
		r.nextID++
		r.assets = append(r.assets, *a)
	}
	return nil
}

func (r *fakeMediaRepo) FindByIDAndKind(_ context.Context, athleteID, id int, kind models.MediaKind) (*models.MediaAsset, error) {
	for _, a := range r.assets {
		if a.AthleteID == athleteID && a.ID == id && a.Kind == kind {
			cp := a
			return &cp, nil
		}
	}
	return nil, repositories.ErrMediaNotFound
}

func (r *fakeMediaRepo) Delete(_ context.Context, id int) error {
	for i, a := range r.assets {
		if a.ID == id {
			r.assets = append(r.assets[:i], r.assets[i+1:]...)
			return nil
		}
	}
	return repositories.ErrMediaNotFound
}

func (r *fakeMediaRepo) ListByAthlete(_ context.Context, athleteID int) ([]models.MediaAsset, error) {
	var out []models.MediaAsset
	for _, a := range r.assets {
		if a.AthleteID == athleteID {
			out = append(out, a)
		}
	}
	return out, nil
}

// --- payment gateway fake ---

type fakeGateway struct {
	calls int
	err   error
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount float64, currency string, _ map[string]string) (*payments.Order, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return &payments.Order{OrderID: fmt.Sprintf("order_%d", g.calls), Receipt: "rcpt_test"}, nil
}

// --- file uploader fake ---

type fakeUploader struct {
	mu       sync.Mutex
	objects  map[string]bool
	failFrom int // fail uploads once this many succeeded (0 = never)
	uploads  int
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string]bool)}
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, _ io.Reader) (*storage.UploadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.failFrom > 0 && u.uploads >= u.failFrom {
		return nil, fmt.Errorf("simulated upload failure for %s", key)
	}
	u.uploads++
	u.objects[key] = true
	return &storage.UploadResult{Key: key, Location: "https://cdn.test/" + key}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}
