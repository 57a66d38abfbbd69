package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"blackpiston/internal/app"
	"blackpiston/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newServer(t *testing.T, authRequired bool) *gin.Engine {
	t.Helper()
	a, err := app.New(context.Background(), config.Env{
		PageSize:      10,
		AuthRequired:  authRequired,
		JWTSecret:     "test-secret",
		AdminEmail:    "admin@blackpiston.com",
		AdminPassword: "admin123",
		TwoFactorCode: "123456",
		StoreDriver:   "memory",
	})
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	return a.Router()
}

func do(t *testing.T, r http.Handler, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *bytes.Reader
	if body != "" {
		rdr = bytes.NewReader([]byte(body))
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type listResp struct {
	Data []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Price  int64  `json:"price"`
	} `json:"data"`
	Total      int  `json:"total"`
	Page       *int `json:"page"`
	TotalPages int  `json:"totalPages"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func ids(r listResp) []string {
	out := make([]string, 0, len(r.Data))
	for _, d := range r.Data {
		out = append(out, d.ID)
	}
	return out
}

func TestHealthAndRequestID(t *testing.T) {
	r := newServer(t, false)
	w := do(t, r, http.MethodGet, "/api/health", "", "X-Request-ID", "req-42")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("X-Request-ID"); got != "req-42" {
		t.Fatalf("request id = %q", got)
	}
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	r := newServer(t, false)
	w := do(t, r, http.MethodGet, "/api/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode[map[string]any](t, w)
	if body["error"] != "route not found" {
		t.Fatalf("body = %v", body)
	}
}

func TestListingsPendingHarley(t *testing.T) {
	r := newServer(t, false)
	w := do(t, r, http.MethodGet, "/api/admin/listings?status=pending&search=harley", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	res := decode[listResp](t, w)
	if got := strings.Join(ids(res), ","); got != "L-1009,L-1011" {
		t.Fatalf("ids = %s", got)
	}
	if res.Total != 2 || res.Page != nil {
		t.Fatalf("total = %d page = %v", res.Total, res.Page)
	}
}

func TestListingsAllMeansNoFilter(t *testing.T) {
	r := newServer(t, false)
	res := decode[listResp](t, do(t, r, http.MethodGet, "/api/admin/listings?status=all&type=all", ""))
	if res.Total != 16 {
		t.Fatalf("total = %d", res.Total)
	}
}

func TestListingsPaging(t *testing.T) {
	r := newServer(t, false)
	res := decode[listResp](t, do(t, r, http.MethodGet, "/api/admin/listings?sort=price&dir=desc&page=3&pageSize=5", ""))
	if res.Page == nil || *res.Page != 3 || res.TotalPages != 4 {
		t.Fatalf("page = %v totalPages = %d", res.Page, res.TotalPages)
	}
	if len(res.Data) != 1 || res.Data[0].ID != "L-1016" {
		t.Fatalf("last page = %v", ids(res))
	}

	res = decode[listResp](t, do(t, r, http.MethodGet, "/api/admin/listings?page=9&pageSize=5", ""))
	if len(res.Data) != 0 || res.Total != 16 {
		t.Fatalf("out of range page = %v total = %d", ids(res), res.Total)
	}

	w := do(t, r, http.MethodGet, "/api/admin/listings?page=1844674407370955162&pageSize=10", "")
	if w.Code != http.StatusOK {
		t.Fatalf("huge page status = %d", w.Code)
	}
	res = decode[listResp](t, w)
	if len(res.Data) != 0 || res.Total != 16 {
		t.Fatalf("huge page = %v total = %d", ids(res), res.Total)
	}
}

func TestGetAndPatchListing(t *testing.T) {
	r := newServer(t, false)

	if w := do(t, r, http.MethodGet, "/api/admin/listings/L-404", ""); w.Code != http.StatusNotFound {
		t.Fatalf("missing listing status = %d", w.Code)
	}

	w := do(t, r, http.MethodPatch, "/api/admin/listings/L-1006", `{"status":"active","flagReason":""}`)
	if w.Code != http.StatusOK {
		t.Fatalf("patch status = %d body = %s", w.Code, w.Body.String())
	}
	got := decode[map[string]any](t, w)
	if got["status"] != "active" || got["id"] != "L-1006" {
		t.Fatalf("patched = %v", got)
	}

	if w := do(t, r, http.MethodPatch, "/api/admin/listings/L-1006", `{"status":"gone"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid patch status = %d", w.Code)
	}

	logs := decode[map[string]any](t, do(t, r, http.MethodGet, "/api/admin/audit-logs?action=listing.update", ""))
	if logs["total"].(float64) != 1 {
		t.Fatalf("audit = %v", logs)
	}
}

func TestBulkActionSkipsDeletedIDs(t *testing.T) {
	r := newServer(t, false)
	w := do(t, r, http.MethodPost, "/api/admin/listings/bulk-action", `{"ids":["L-1009","L-0000"],"action":"approve"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	res := decode[struct {
		Success  bool     `json:"success"`
		Affected int      `json:"affected"`
		Skipped  []string `json:"skipped"`
	}](t, w)
	if !res.Success || res.Affected != 1 || len(res.Skipped) != 1 {
		t.Fatalf("result = %+v", res)
	}

	w = do(t, r, http.MethodPost, "/api/admin/users/bulk-action", `{"ids":["U-002"],"action":"approve"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown user action status = %d", w.Code)
	}
}

func TestVehiclesMotorbikesByPrice(t *testing.T) {
	r := newServer(t, false)
	res := decode[listResp](t, do(t, r, http.MethodGet, "/api/vehicles?type=motorbike&sort=price-desc", ""))
	if got := strings.Join(ids(res), ","); got != "5,7" {
		t.Fatalf("ids = %s", got)
	}
	if res.Data[0].Price != 28500 || res.Data[1].Price != 22500 {
		t.Fatalf("prices = %+v", res.Data)
	}

	if w := do(t, r, http.MethodGet, "/api/vehicles/facets", ""); w.Code != http.StatusOK {
		t.Fatalf("facets status = %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/vehicles/99", ""); w.Code != http.StatusNotFound {
		t.Fatalf("missing vehicle status = %d", w.Code)
	}
}

func TestExportCSV(t *testing.T) {
	r := newServer(t, false)
	w := do(t, r, http.MethodGet, "/api/admin/listings/export?format=csv&status=sold", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "listings-export.csv") {
		t.Fatalf("content disposition = %q", cd)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "ID,Title") {
		t.Fatalf("csv = %q", w.Body.String())
	}

	if w := do(t, r, http.MethodGet, "/api/admin/users/export?format=doc", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("bad format status = %d", w.Code)
	}
}

func TestLoginFlowAndProtectedRoutes(t *testing.T) {
	r := newServer(t, true)

	if w := do(t, r, http.MethodGet, "/api/admin/kpis", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous kpis status = %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/admin/login", `{"email":"admin@blackpiston.com","password":"nope"}`); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d", w.Code)
	}

	w := do(t, r, http.MethodPost, "/api/admin/login", `{"email":"admin@blackpiston.com","password":"admin123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d body = %s", w.Code, w.Body.String())
	}
	login := decode[struct {
		Token       string `json:"token"`
		Requires2FA bool   `json:"requires2FA"`
		User        struct {
			Name string `json:"name"`
		} `json:"user"`
	}](t, w)
	if !login.Requires2FA || login.User.Name != "Alex Morgan" {
		t.Fatalf("login = %+v", login)
	}
	if w := do(t, r, http.MethodGet, "/api/admin/kpis", "", "Authorization", "Bearer "+login.Token); w.Code != http.StatusUnauthorized {
		t.Fatalf("pending token status = %d", w.Code)
	}

	if w := do(t, r, http.MethodPost, "/api/admin/verify-2fa", `{"code":"123456"}`); w.Code != http.StatusUnauthorized {
		t.Fatalf("code without login status = %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/admin/verify-2fa", `{"code":"000000"}`, "Authorization", "Bearer "+login.Token); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad code status = %d", w.Code)
	}
	w = do(t, r, http.MethodPost, "/api/admin/verify-2fa", `{"code":"123456"}`, "Authorization", "Bearer "+login.Token)
	session := decode[struct {
		Token string `json:"token"`
	}](t, w)

	w = do(t, r, http.MethodGet, "/api/admin/kpis", "", "Authorization", "Bearer "+session.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("kpis status = %d", w.Code)
	}
	kpis := decode[map[string]float64](t, w)
	if kpis["activeListings"] != 7 || kpis["pendingApprovals"] != 4 {
		t.Fatalf("kpis = %v", kpis)
	}

	w = do(t, r, http.MethodPost, "/api/admin/users/bulk-action", `{"ids":["U-007"],"action":"suspend","reason":"chargeback"}`, "Authorization", "Bearer "+session.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("bulk status = %d", w.Code)
	}
	logs := decode[struct {
		Data []struct {
			Actor  string `json:"actor"`
			Action string `json:"action"`
		} `json:"data"`
	}](t, do(t, r, http.MethodGet, "/api/admin/audit-logs", "", "Authorization", "Bearer "+session.Token))
	if logs.Data[0].Action != "user.suspend" || logs.Data[0].Actor != "admin@blackpiston.com" {
		t.Fatalf("latest audit = %+v", logs.Data[0])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newServer(t, false)
	do(t, r, http.MethodGet, "/api/health", "")
	w := do(t, r, http.MethodGet, "/metrics", "")
	if !strings.Contains(w.Body.String(), `blackpiston_http_requests_total{method="GET",route="/api/health",status="200"} 1`) {
		t.Fatalf("metrics missing request counter")
	}
}

func TestCreateListingIsPending(t *testing.T) {
	r := newServer(t, false)
	w := do(t, r, http.MethodPost, "/api/listings", `{"type":"car","make":"Mini","model":"Cooper S","year":2021,"price":18500}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	got := decode[map[string]any](t, w)
	if got["status"] != "pending" || !strings.HasPrefix(got["id"].(string), "L-") {
		t.Fatalf("created = %v", got)
	}
	if w := do(t, r, http.MethodPost, "/api/listings", `{"type":"car"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid create status = %d", w.Code)
	}
}
