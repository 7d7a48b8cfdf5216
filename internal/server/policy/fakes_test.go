package policy

import (
	"context"
	"io"
	"log/slog"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/common"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/logging"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

// fakeUserReader is an in-memory PrivilegedUserReader.
type fakeUserReader struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUserReader) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

// fakeAdmin answers the admin check from a fixed set of IDs.
type fakeAdmin struct {
	admins map[string]bool
}

func (f *fakeAdmin) IsAdmin(ctx context.Context, p Principal) bool {
	return !p.IsAnonymous() && f.admins[p.Identity]
}

func adminOnly(ids ...string) *fakeAdmin {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return &fakeAdmin{admins: m}
}
