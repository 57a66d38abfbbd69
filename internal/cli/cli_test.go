package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blackpiston/internal/app"
	"blackpiston/internal/config"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestVersion(t *testing.T) {
	assert.Contains(t, run(t, "version"), "blackpiston dev")
}

func TestExportListingsCSV(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	dir := t.TempDir()

	out := run(t, "export", "listings", "--format", "csv", "--status", "pending", "--out-dir", dir)
	assert.Contains(t, out, "exported 4 rows")

	matches, err := filepath.Glob(filepath.Join(dir, "*", "listings-export.csv"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	body, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(body)), "\n"), 5)
}

func TestModerateApprovesPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a, err := app.New(context.Background(), config.Env{
		PageSize:      10,
		AuthRequired:  true,
		JWTSecret:     "cli-test",
		AdminEmail:    "admin@blackpiston.com",
		AdminPassword: "admin123",
		TwoFactorCode: "123456",
		StoreDriver:   "memory",
	})
	require.NoError(t, err)
	srv := httptest.NewServer(a.Router())
	defer srv.Close()

	t.Setenv("ADMIN_EMAIL", "admin@blackpiston.com")
	t.Setenv("ADMIN_PASSWORD", "admin123")
	t.Setenv("TWO_FACTOR_CODE", "123456")
	out := run(t, "moderate", "--api", srv.URL, "--status", "pending", "--search", "harley", "--action", "approve")
	assert.Contains(t, out, "approve: 2 of 2 listings changed")

	for _, id := range []string{"L-1009", "L-1011"} {
		l, err := a.Listings.Get(id)
		require.NoError(t, err)
		assert.Equal(t, "active", string(l.Status))
	}
}
