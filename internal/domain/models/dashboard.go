package models

// KPIs are the headline figures on the admin dashboard.
type KPIs struct {
	ActiveListings   int   `json:"activeListings"`
	PendingApprovals int   `json:"pendingApprovals"`
	Sold30d          int   `json:"sold30d"`
	Revenue30d       int64 `json:"revenue30d"`
	NewUsers         int   `json:"newUsers"`
	OpenTickets      int   `json:"openTickets"`
}

// RevenuePoint is one month on the revenue chart.
type RevenuePoint struct {
	Date     string `json:"date" yaml:"date"`
	Revenue  int64  `json:"revenue" yaml:"revenue"`
	Listings int    `json:"listings" yaml:"listings"`
}

// ModelCount is one bar on the top-models chart.
type ModelCount struct {
	Model string `json:"model" yaml:"model"`
	Count int    `json:"count" yaml:"count"`
}

// Facets are the distinct values offered by the public search filters.
type Facets struct {
	Makes         []string `json:"makes"`
	FuelTypes     []string `json:"fuelTypes"`
	Transmissions []string `json:"transmissions"`
	Locations     []string `json:"locations"`
}
