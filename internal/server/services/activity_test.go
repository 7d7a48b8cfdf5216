package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/common"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActivityFixture(t *testing.T, users []*models.User) (*ActivityService, *fakeRepoManager, *fakePublisher) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })

	rm := &fakeRepoManager{
		u: newFakeUsersRepo(users...),
		a: &fakeActivitiesRepo{},
		r: &fakeRefreshRepo{},
	}
	pub := &fakePublisher{}
	svc := NewActivityService(db, rm, newEvaluator(rm.u), pub, testLogger())
	return svc, rm, pub
}

func TestActivityRecord_Success(t *testing.T) {
	svc, rm, pub := newActivityFixture(t, []*models.User{regularUser("u-1")})

	p := policy.Principal{Identity: "u-1"}
	row, err := svc.Record(context.Background(), p, "listing.created", "l-1", map[string]any{"title": "x"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", row.UserID)
	assert.NotEmpty(t, row.ID)

	require.Len(t, rm.a.rows, 1)
	require.Len(t, pub.events, 1)
	assert.Equal(t, row.ID, pub.events[0].ID)
}

func TestActivityRecord_AnonymousDenied(t *testing.T) {
	svc, rm, _ := newActivityFixture(t, nil)

	_, err := svc.Record(context.Background(), policy.Anonymous, "listing.created", "l-1", nil)
	require.ErrorIs(t, err, common.ErrPermissionDenied)
	assert.Empty(t, rm.a.rows)
}

func TestActivityRecord_BrokerOutageDoesNotFailWrite(t *testing.T) {
	svc, rm, pub := newActivityFixture(t, []*models.User{regularUser("u-1")})
	pub.publishErr = errors.New("broker down")

	_, err := svc.Record(context.Background(), policy.Principal{Identity: "u-1"}, "listing.created", "l-1", nil)
	require.NoError(t, err)
	assert.Len(t, rm.a.rows, 1)
}

func TestActivityList_OwnOnly(t *testing.T) {
	svc, _, _ := newActivityFixture(t, []*models.User{regularUser("u-1"), regularUser("u-2"), adminUser("u-root")})

	p1 := policy.Principal{Identity: "u-1"}
	_, err := svc.Record(context.Background(), p1, "listing.created", "l-1", nil)
	require.NoError(t, err)

	own, err := svc.ListForUser(context.Background(), p1, "u-1")
	require.NoError(t, err)
	assert.Len(t, own, 1)

	// Someone else's log is reported as absent, even for admins: the
	// activity rule is strictly per-owner.
	_, err = svc.ListForUser(context.Background(), policy.Principal{Identity: "u-2"}, "u-1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = svc.ListForUser(context.Background(), policy.Principal{Identity: "u-root"}, "u-1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
