package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/common"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/dbx"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/logging"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/policy"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/queue"
	activitiesrepo "github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/activities"
	favoritesrepo "github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/favorites"
	listingsrepo "github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/listings"
	refreshtokensrepo "github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/refreshtokens"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/repomanager"
	usersrepo "github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/users"
)

// --- helpers ---

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// --- in-memory fake repositories ---

type fakeUsersRepo struct {
	byID map[string]*models.User

	createErr error
	updateErr error
}

func newFakeUsersRepo(users ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{byID: map[string]*models.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrorConflict
		}
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u.Clone(), nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[u.ID]; !ok {
		return common.ErrorNotFound
	}
	f.byID[u.ID] = u.Clone()
	return nil
}

type fakeListingsRepo struct {
	byID map[string]*models.Listing

	createErr error
	updateErr error
}

func newFakeListingsRepo(rows ...*models.Listing) *fakeListingsRepo {
	f := &fakeListingsRepo{byID: map[string]*models.Listing{}}
	for _, l := range rows {
		f.byID[l.ID] = l
	}
	return f
}

func (f *fakeListingsRepo) Create(ctx context.Context, l *models.Listing) (*models.Listing, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.byID[l.ID] = l.Clone()
	return l, nil
}

func (f *fakeListingsRepo) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return l.Clone(), nil
}

func (f *fakeListingsRepo) ListVisible(ctx context.Context, viewerID string, admin bool) ([]*models.Listing, error) {
	var out []*models.Listing
	for _, l := range f.byID {
		if admin || l.Status == models.ListingStatusActive || (viewerID != "" && l.OwnerID == viewerID) {
			out = append(out, l.Clone())
		}
	}
	return out, nil
}

func (f *fakeListingsRepo) Update(ctx context.Context, l *models.Listing) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[l.ID]; !ok {
		return common.ErrorNotFound
	}
	f.byID[l.ID] = l.Clone()
	return nil
}

func (f *fakeListingsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type favKey struct{ user, listing string }

type fakeFavoritesRepo struct {
	rows map[favKey]*models.Favorite
}

func newFakeFavoritesRepo() *fakeFavoritesRepo {
	return &fakeFavoritesRepo{rows: map[favKey]*models.Favorite{}}
}

func (f *fakeFavoritesRepo) Create(ctx context.Context, fav *models.Favorite) error {
	k := favKey{fav.UserID, fav.ListingID}
	if _, ok := f.rows[k]; ok {
		return common.ErrorConflict
	}
	fav.CreatedAt = time.Now()
	f.rows[k] = fav
	return nil
}

func (f *fakeFavoritesRepo) Get(ctx context.Context, userID, listingID string) (*models.Favorite, error) {
	fav, ok := f.rows[favKey{userID, listingID}]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return fav, nil
}

func (f *fakeFavoritesRepo) ListByUser(ctx context.Context, userID string) ([]*models.Favorite, error) {
	var out []*models.Favorite
	for k, fav := range f.rows {
		if k.user == userID {
			out = append(out, fav)
		}
	}
	return out, nil
}

func (f *fakeFavoritesRepo) Delete(ctx context.Context, userID, listingID string) error {
	k := favKey{userID, listingID}
	if _, ok := f.rows[k]; !ok {
		return common.ErrorNotFound
	}
	delete(f.rows, k)
	return nil
}

type fakeActivitiesRepo struct {
	rows      []*models.Activity
	appendErr error
}

func (f *fakeActivitiesRepo) Append(ctx context.Context, a *models.Activity) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	a.CreatedAt = time.Now()
	f.rows = append(f.rows, a)
	return nil
}

func (f *fakeActivitiesRepo) ListByUser(ctx context.Context, userID string) ([]*models.Activity, error) {
	var out []*models.Activity
	for _, a := range f.rows {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr    error
	createErr error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	return f.createErr
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	return f.delErr
}

// --- fake repository manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	l *fakeListingsRepo
	f *fakeFavoritesRepo
	a *fakeActivitiesRepo
	r *fakeRefreshRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error           { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return m.r }
func (m *fakeRepoManager) Listings(db dbx.DBTX) listingsrepo.Repository           { return m.l }
func (m *fakeRepoManager) Favorites(db dbx.DBTX) favoritesrepo.Repository         { return m.f }
func (m *fakeRepoManager) Activities(db dbx.DBTX) activitiesrepo.Repository       { return m.a }

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

// --- policy plumbing ---

// newEvaluator builds an evaluator whose admin oracle reads from the fake
// users repo, same wiring as production.
func newEvaluator(users *fakeUsersRepo) *policy.Evaluator {
	log := testLogger()
	return policy.NewEvaluator(policy.NewAdminOracle(users, log), log)
}

// --- broker fake ---

type fakePublisher struct {
	events     []*queue.ActivityEvent
	publishErr error
}

func (f *fakePublisher) Publish(ctx context.Context, event *queue.ActivityEvent) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.events = append(f.events, event)
	return nil
}
