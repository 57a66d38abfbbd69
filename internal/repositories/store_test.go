package repositories

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blackpiston/internal/domain"
	"blackpiston/internal/domain/models"
)

func seedListings() []models.Listing {
	return []models.Listing{
		{ID: "L-1", Title: "Porsche 911", Make: "Porsche", Status: domain.ListingActive, Price: 124950, Badges: []string{"Verified"}},
		{ID: "L-2", Title: "Harley-Davidson Fat Boy", Make: "Harley-Davidson", Status: domain.ListingPending, Price: 19995},
		{ID: "L-3", Title: "BMW M3", Make: "BMW", Status: domain.ListingFlagged, Price: 67500},
	}
}

func newListingStore(t *testing.T) *MemoryStore[models.Listing] {
	t.Helper()
	s, err := NewMemoryStore("listing", seedListings())
	require.NoError(t, err)
	s.Now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	s.WithID = func(l models.Listing, id string) models.Listing { l.ID = id; return l }
	return s
}

func TestMemoryStoreRejectsDuplicateSeed(t *testing.T) {
	seed := append(seedListings(), models.Listing{ID: "L-1", Title: "dup", Status: domain.ListingActive})
	_, err := NewMemoryStore("listing", seed)
	assert.True(t, domain.IsConflict(err))
}

func TestMemoryStoreGetAndList(t *testing.T) {
	s := newListingStore(t)

	got, err := s.Get("L-2")
	require.NoError(t, err)
	assert.Equal(t, "Harley-Davidson Fat Boy", got.Title)

	_, err = s.Get("nope")
	assert.True(t, domain.IsNotFound(err))

	pending := s.List(func(l models.Listing) bool { return l.Status == domain.ListingPending })
	assert.Len(t, pending, 1)
	assert.Len(t, s.List(nil), 3)
}

func TestMemoryStorePatchMergesPresentKeys(t *testing.T) {
	s := newListingStore(t)

	got, keys, err := s.Patch("L-1", []byte(`{"price":119000,"id":"hijack","updatedAt":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"price"}, keys)
	assert.Equal(t, int64(119000), got.Price)
	assert.Equal(t, "L-1", got.ID)
	assert.Equal(t, "Porsche 911", got.Title)
	assert.Equal(t, []string{"Verified"}, got.Badges)
	assert.Equal(t, "2026-03-01T10:00:00Z", got.UpdatedAt)

	stored, _ := s.Get("L-1")
	assert.Equal(t, got, stored)
	assert.Equal(t, []string{"L-1", "L-2", "L-3"}, idsOf(s.List(nil)))
}

func TestMemoryStorePatchRejectsInvalid(t *testing.T) {
	s := newListingStore(t)
	before, _ := s.Get("L-1")

	cases := map[string]string{
		"status":    `{"status":"bogus"}`,
		"price":     `{"price":"cheap"}`,
		"colour":    `{"colour":"red"}`,
		"body":      `[1,2]`,
		"title":     `{"title":""}`,
		"negative":  `{"price":-1}`,
		"malformed": `{"price":`,
	}
	for name, body := range cases {
		_, _, err := s.Patch("L-1", []byte(body))
		assert.True(t, domain.IsValidation(err), "%s: %v", name, err)
	}

	after, _ := s.Get("L-1")
	assert.Equal(t, before, after)

	_, _, err := s.Patch("missing", []byte(`{}`))
	assert.True(t, domain.IsNotFound(err))
}

func TestPatchErrorNamesField(t *testing.T) {
	s := newListingStore(t)

	_, _, err := s.Patch("L-1", []byte(`{"colour":"red"}`))
	var ve domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "colour", ve.Field)

	_, _, err = s.Patch("L-1", []byte(`{"year":"old"}`))
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "year", ve.Field)
}

func TestBulkTransitionSkipsUnknownIDs(t *testing.T) {
	s := newListingStore(t)

	n, err := s.BulkTransition([]string{"L-2", "deleted", "L-2"}, domain.ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, _ := s.Get("L-2")
	assert.Equal(t, domain.ListingActive, got.Status)
	assert.NotEmpty(t, got.UpdatedAt)
}

func TestBulkTransitionUnknownActionChangesNothing(t *testing.T) {
	s := newListingStore(t)
	_, err := s.BulkTransition([]string{"L-2"}, "explode")
	assert.True(t, domain.IsValidation(err))

	got, _ := s.Get("L-2")
	assert.Equal(t, domain.ListingPending, got.Status)
}

func TestBulkTransitionListingActions(t *testing.T) {
	cases := []struct {
		action string
		want   domain.Status
	}{
		{domain.ActionApprove, domain.ListingActive},
		{domain.ActionReject, domain.ListingArchived},
		{domain.ActionArchive, domain.ListingArchived},
	}
	for _, tc := range cases {
		s := newListingStore(t)
		n, err := s.BulkTransition([]string{"L-1", "L-2", "L-3"}, tc.action)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		for _, l := range s.List(nil) {
			assert.Equal(t, tc.want, l.Status, tc.action)
		}
	}
}

func TestBulkTransitionUsers(t *testing.T) {
	s, err := NewMemoryStore("user", []models.User{
		{ID: "U-1", Email: "a@b.c", Status: domain.UserSuspended, SuspendReason: "spam"},
	})
	require.NoError(t, err)

	n, err := s.BulkTransition([]string{"U-1"}, domain.ActionReactivate)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	u, _ := s.Get("U-1")
	assert.Equal(t, domain.UserActive, u.Status)
	assert.Empty(t, u.SuspendReason)

	_, err = s.BulkTransition([]string{"U-1"}, domain.ActionApprove)
	assert.True(t, domain.IsValidation(err))
}

func TestCreatePrependsWithGeneratedID(t *testing.T) {
	s := newListingStore(t)

	got, err := s.Create(models.Listing{Title: "Triumph Bonneville", Status: domain.ListingPending})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, got.ID, s.List(nil)[0].ID)
	assert.True(t, s.Exists(got.ID))

	_, err = s.Create(models.Listing{ID: "L-1", Title: "again", Status: domain.ListingActive})
	assert.True(t, domain.IsConflict(err))

	_, err = s.Create(models.Listing{Title: "", Status: domain.ListingPending})
	assert.True(t, domain.IsValidation(err))
}

func TestExportImportRoundTrip(t *testing.T) {
	s := newListingStore(t)
	snap := s.Export()
	snap[0].Title = "mutated copy"

	got, _ := s.Get("L-1")
	assert.Equal(t, "Porsche 911", got.Title)

	other, err := NewMemoryStore[models.Listing]("listing", nil)
	require.NoError(t, err)
	require.NoError(t, other.Import(s.Export()))
	assert.Equal(t, s.Export(), other.Export())
}

func TestAuditLogPrepends(t *testing.T) {
	var seen int
	log := NewAuditLog([]models.AuditEntry{{ID: "A-1"}})
	log.OnAppend = func(entries []models.AuditEntry) { seen = len(entries) }

	log.Append(models.AuditEntry{ID: "A-2"})
	entries := log.List()
	assert.Equal(t, "A-2", entries[0].ID)
	assert.Equal(t, 2, seen)
}

func TestAuditLogHookSeesGrowingSnapshots(t *testing.T) {
	var seen []int
	log := NewAuditLog(nil)
	log.OnAppend = func(entries []models.AuditEntry) { seen = append(seen, len(entries)) }

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			log.Append(models.AuditEntry{ID: fmt.Sprintf("A-%d", i)})
		}(i)
	}
	wg.Wait()

	require.Len(t, seen, 50)
	for i, n := range seen {
		assert.Equal(t, i+1, n)
	}
}

func TestCollectionGet(t *testing.T) {
	c, err := NewCollection("seller", []models.Seller{{ID: "S-1", Name: "Prestige Motors"}})
	require.NoError(t, err)
	s, err := c.Get("S-1")
	require.NoError(t, err)
	assert.Equal(t, "Prestige Motors", s.Name)

	_, err = c.Get("S-9")
	assert.True(t, domain.IsNotFound(err))

	_, err = NewCollection("seller", []models.Seller{{ID: "S-1"}, {ID: "S-1"}})
	assert.True(t, domain.IsConflict(err))
}

func idsOf(ls []models.Listing) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.ID)
	}
	return out
}
