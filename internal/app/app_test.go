package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blackpiston/internal/config"
	"blackpiston/internal/domain"
	"blackpiston/internal/services"
)

func testEnv() config.Env {
	return config.Env{
		AppAddr:       ":0",
		PageSize:      10,
		JWTSecret:     "test",
		AdminEmail:    "admin@blackpiston.com",
		AdminPassword: "admin123",
		TwoFactorCode: "123456",
		StoreDriver:   "memory",
	}
}

func TestNewMemory(t *testing.T) {
	a, err := New(context.Background(), testEnv())
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.DB)
	assert.Len(t, a.Listings.List(nil), len(a.Data.Listings))
	assert.NotNil(t, a.Router())
}

func TestSQLiteSnapshotSurvivesRestart(t *testing.T) {
	env := testEnv()
	env.StoreDriver = "sqlite"
	env.StoreDSN = filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()
	actor := domain.RequestContext{Email: "admin@blackpiston.com", Role: "admin"}

	first, err := New(ctx, env)
	require.NoError(t, err)
	_, err = first.API.Listings.Patch(actor, "L-1012", []byte(`{"price":26000}`))
	require.NoError(t, err)
	_, err = first.API.UserBulk.Execute(ctx, actor, services.BulkRequest{IDs: []string{"U-007"}, Action: "suspend"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := New(ctx, env)
	require.NoError(t, err)
	defer second.Close()

	l, err := second.Listings.Get("L-1012")
	require.NoError(t, err)
	assert.EqualValues(t, 26000, l.Price)

	u, err := second.Users.Get("U-007")
	require.NoError(t, err)
	assert.Equal(t, domain.UserSuspended, u.Status)

	entries := second.Audit.List()
	require.NotEmpty(t, entries)
	assert.Equal(t, "user.suspend", entries[0].Action)
}
