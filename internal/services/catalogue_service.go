package services

import (
	"strconv"
	"strings"

	"blackpiston/internal/domain/models"
	"blackpiston/internal/repositories"
	"blackpiston/internal/table"
	"blackpiston/internal/utils"
)

// CatalogueService is the public vehicle search.
type CatalogueService struct {
	Vehicles *repositories.Collection[models.Vehicle]
}

// VehicleQuery mirrors the public search form. Bounds are raw strings so a
// blank or malformed bound simply does not constrain.
type VehicleQuery struct {
	Type         string
	Make         string
	Fuel         string
	Transmission string
	PriceMin     string
	PriceMax     string
	YearMin      string
	YearMax      string
	Search       string
	Sort         string
}

func (q VehicleQuery) Criteria() []table.Criterion {
	return []table.Criterion{
		table.Eq("type", q.Type),
		table.Eq("make", q.Make),
		table.Eq("fuel", q.Fuel),
		table.Eq("transmission", q.Transmission),
		table.Range("price", pounds(q.PriceMin), pounds(q.PriceMax)),
		table.Range("year", q.YearMin, q.YearMax),
		table.Search(q.Search, "title", "make", "model"),
	}
}

// pounds accepts "£30,000" as well as "30000". Anything else is passed on
// unchanged and ends up not constraining.
func pounds(s string) string {
	if n, err := utils.ParsePounds(s); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return s
}

// VehicleSort maps the public sort keys; anything unknown is newest first.
func VehicleSort(key string) table.SortSpec {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "price-asc":
		return table.By("price", table.Asc)
	case "price-desc":
		return table.By("price", table.Desc)
	}
	return table.By("createdAt", table.Desc)
}

func (s CatalogueService) Search(q VehicleQuery, paging Paging) Result[models.Vehicle] {
	return run(s.Vehicles.List(nil), q.Criteria(), VehicleSort(q.Sort), paging)
}

func (s CatalogueService) Get(id string) (models.Vehicle, error) {
	return s.Vehicles.Get(strings.TrimSpace(id))
}

// Featured returns at most limit featured vehicles in catalogue order.
func (s CatalogueService) Featured(limit int) []models.Vehicle {
	out := s.Vehicles.List(func(v models.Vehicle) bool { return v.Featured })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Facets lists the distinct filter values in first-seen order.
func (s CatalogueService) Facets() models.Facets {
	f := models.Facets{Makes: []string{}, FuelTypes: []string{}, Transmissions: []string{}, Locations: []string{}}
	seen := map[string]map[string]bool{}
	add := func(kind string, dst *[]string, v string) {
		if v == "" {
			return
		}
		if seen[kind] == nil {
			seen[kind] = map[string]bool{}
		}
		if !seen[kind][v] {
			seen[kind][v] = true
			*dst = append(*dst, v)
		}
	}
	for _, v := range s.Vehicles.List(nil) {
		add("make", &f.Makes, v.Make)
		add("fuel", &f.FuelTypes, v.Fuel)
		add("transmission", &f.Transmissions, v.Transmission)
		add("location", &f.Locations, v.Location)
	}
	return f
}
