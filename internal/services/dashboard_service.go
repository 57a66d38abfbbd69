package services

import (
	"slices"

	"blackpiston/internal/domain"
	"blackpiston/internal/domain/models"
	"blackpiston/internal/repositories"
	"blackpiston/internal/seed"
)

// DashboardService derives the admin KPIs. Listing counts come from the live
// store; revenue, sign-ups and tickets come from the configured baseline.
type DashboardService struct {
	Listings repositories.Store[models.Listing]
	Baseline seed.Dashboard
}

func (s DashboardService) KPIs() models.KPIs {
	k := models.KPIs{
		Revenue30d:  s.Baseline.Revenue30d,
		NewUsers:    s.Baseline.NewUsers,
		OpenTickets: s.Baseline.OpenTickets,
	}
	for _, l := range s.Listings.List(nil) {
		switch l.Status {
		case domain.ListingActive:
			k.ActiveListings++
		case domain.ListingPending:
			k.PendingApprovals++
		case domain.ListingSold:
			k.Sold30d++
		}
	}
	return k
}

func (s DashboardService) Revenue() []models.RevenuePoint {
	out := slices.Clone(s.Baseline.Revenue)
	if out == nil {
		out = []models.RevenuePoint{}
	}
	return out
}

// TopModels is ordered by count, highest first.
func (s DashboardService) TopModels() []models.ModelCount {
	out := slices.Clone(s.Baseline.TopModels)
	if out == nil {
		return []models.ModelCount{}
	}
	slices.SortStableFunc(out, func(a, b models.ModelCount) int { return b.Count - a.Count })
	return out
}
