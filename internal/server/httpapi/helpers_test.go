package httpapi

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
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/cache"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/config"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/policy"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/queue"
	activitiesrepo "github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/activities"
	favoritesrepo "github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/favorites"
	listingsrepo "github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/listings"
	refreshtokensrepo "github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/refreshtokens"
	usersrepo "github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/users"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/services"
)

// In-memory repository fakes backing the end-to-end handler tests.

type memUsersRepo struct {
	byID map[string]*models.User
}

func (f *memUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
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

func (f *memUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u.Clone(), nil
}

func (f *memUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *memUsersRepo) Update(ctx context.Context, u *models.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return common.ErrorNotFound
	}
	f.byID[u.ID] = u.Clone()
	return nil
}

type memListingsRepo struct {
	byID map[string]*models.Listing
}

func (f *memListingsRepo) Create(ctx context.Context, l *models.Listing) (*models.Listing, error) {
	f.byID[l.ID] = l.Clone()
	return l, nil
}

func (f *memListingsRepo) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return l.Clone(), nil
}

func (f *memListingsRepo) ListVisible(ctx context.Context, viewerID string, admin bool) ([]*models.Listing, error) {
	var out []*models.Listing
	for _, l := range f.byID {
		if admin || l.Status == models.ListingStatusActive || (viewerID != "" && l.OwnerID == viewerID) {
			out = append(out, l.Clone())
		}
	}
	return out, nil
}

func (f *memListingsRepo) Update(ctx context.Context, l *models.Listing) error {
	if _, ok := f.byID[l.ID]; !ok {
		return common.ErrorNotFound
	}
	f.byID[l.ID] = l.Clone()
	return nil
}

func (f *memListingsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type memFavKey struct{ user, listing string }

type memFavoritesRepo struct {
	rows map[memFavKey]*models.Favorite
}

func (f *memFavoritesRepo) Create(ctx context.Context, fav *models.Favorite) error {
	k := memFavKey{fav.UserID, fav.ListingID}
	if _, ok := f.rows[k]; ok {
		return common.ErrorConflict
	}
	fav.CreatedAt = time.Now()
	f.rows[k] = fav
	return nil
}

func (f *memFavoritesRepo) Get(ctx context.Context, userID, listingID string) (*models.Favorite, error) {
	fav, ok := f.rows[memFavKey{userID, listingID}]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return fav, nil
}

func (f *memFavoritesRepo) ListByUser(ctx context.Context, userID string) ([]*models.Favorite, error) {
	var out []*models.Favorite
	for k, fav := range f.rows {
		if k.user == userID {
			out = append(out, fav)
		}
	}
	return out, nil
}

func (f *memFavoritesRepo) Delete(ctx context.Context, userID, listingID string) error {
	k := memFavKey{userID, listingID}
	if _, ok := f.rows[k]; !ok {
		return common.ErrorNotFound
	}
	delete(f.rows, k)
	return nil
}

type memActivitiesRepo struct {
	rows []*models.Activity
}

func (f *memActivitiesRepo) Append(ctx context.Context, a *models.Activity) error {
	a.CreatedAt = time.Now()
	f.rows = append(f.rows, a)
	return nil
}

func (f *memActivitiesRepo) ListByUser(ctx context.Context, userID string) ([]*models.Activity, error) {
	var out []*models.Activity
	for _, a := range f.rows {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type memRefreshRepo struct {
	byToken map[string]*models.RefreshToken
}

func (f *memRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	f.byToken[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (f *memRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	t, ok := f.byToken[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (f *memRefreshRepo) Delete(ctx context.Context, token string) error {
	delete(f.byToken, token)
	return nil
}

type memRepoManager struct {
	u *memUsersRepo
	l *memListingsRepo
	f *memFavoritesRepo
	a *memActivitiesRepo
	r *memRefreshRepo
}

func newMemRepoManager() *memRepoManager {
	return &memRepoManager{
		u: &memUsersRepo{byID: map[string]*models.User{}},
		l: &memListingsRepo{byID: map[string]*models.Listing{}},
		f: &memFavoritesRepo{rows: map[memFavKey]*models.Favorite{}},
		a: &memActivitiesRepo{},
		r: &memRefreshRepo{byToken: map[string]*models.RefreshToken{}},
	}
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error           { return nil }
func (m *memRepoManager) Users(db dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *memRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return m.r }
func (m *memRepoManager) Listings(db dbx.DBTX) listingsrepo.Repository           { return m.l }
func (m *memRepoManager) Favorites(db dbx.DBTX) favoritesrepo.Repository         { return m.f }
func (m *memRepoManager) Activities(db dbx.DBTX) activitiesrepo.Repository       { return m.a }

type memPublisher struct{}

func (memPublisher) Publish(ctx context.Context, event *queue.ActivityEvent) error { return nil }

type testEnv struct {
	srv *HTTPServer
	rm  *memRepoManager
}

// newTestEnv wires real services over in-memory repositories, mirroring the
// production wiring in app.go.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	// Refresh rotation opens real transactions against the sqlmock handle.
	mock.MatchExpectationsInOrder(false)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()
	t.Cleanup(func() { db.Close() })

	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))

	cfg := &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		BcryptCost:                   4, // minimum cost, tests only
		S3Bucket:                     "listings",
		S3Region:                     "us-east-1",
	}

	rm := newMemRepoManager()
	evaluator := policy.NewEvaluator(policy.NewAdminOracle(rm.u, log), log)
	resolver := policy.NewResolver(rm.u, []byte(cfg.SecretKey))

	users := services.NewUserService(db, rm, evaluator, cfg)
	activity := services.NewActivityService(db, rm, evaluator, memPublisher{}, log)
	lc := cache.NewListingCache(cache.NewMemoryCache())
	listings := services.NewListingService(db, rm, evaluator, lc, activity, log)
	favorites := services.NewFavoriteService(db, rm, evaluator, activity, log)
	storage := services.NewStorageService(evaluator, cfg)

	srv := NewHTTPServer(":0", log, resolver, users, listings, favorites, activity, storage)
	return &testEnv{srv: srv, rm: rm}
}
