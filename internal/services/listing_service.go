package services

import (
	"fmt"
	"strings"
	"time"

	"blackpiston/internal/domain"
	"blackpiston/internal/domain/models"
	"blackpiston/internal/repositories"
	"blackpiston/internal/table"
	"blackpiston/internal/utils"
)

// ListingService is the admin view over marketplace listings.
type ListingService struct {
	Listings  repositories.Store[models.Listing]
	Audit     *repositories.AuditLog
	RequestID string
	Now       func() time.Time
}

func (s ListingService) List(f ListingFilter, sort table.SortSpec, paging Paging) Result[models.Listing] {
	return run(s.Listings.List(nil), f.Criteria(), sort, paging)
}

// Matching is the full filtered and sorted set, as exported.
func (s ListingService) Matching(f ListingFilter, sort table.SortSpec) []models.Listing {
	return table.Sort(table.Filter(s.Listings.List(nil), f.Criteria()...), sort)
}

func (s ListingService) Get(id string) (models.Listing, error) {
	return s.Listings.Get(strings.TrimSpace(id))
}

// Patch merges the present keys of raw into the listing.
func (s ListingService) Patch(actor domain.RequestContext, id string, raw []byte) (models.Listing, error) {
	l, keys, err := s.Listings.Patch(strings.TrimSpace(id), raw)
	if err != nil {
		return models.Listing{}, err
	}
	details := "fields=" + strings.Join(keys, ",")
	recordAudit(s.Audit, actor, s.Now, auditEvent{action: "listing.update", target: l.ID, label: l.Title, details: details})
	utils.LogEvent(s.RequestID, "listings", "patch", fmt.Sprintf("id=%s %s", l.ID, details))
	return l, nil
}

// CreateListingInput is what a seller submits. New listings await approval.
type CreateListingInput struct {
	Title        string   `json:"title"`
	Type         string   `json:"type"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Price        int64    `json:"price"`
	Mileage      int      `json:"mileage"`
	Fuel         string   `json:"fuel"`
	Transmission string   `json:"transmission"`
	Color        string   `json:"color"`
	Location     string   `json:"location"`
	SellerName   string   `json:"sellerName"`
	VIN          string   `json:"vin"`
	Badges       []string `json:"badges"`
}

func (in CreateListingInput) validate() error {
	switch {
	case strings.TrimSpace(in.Make) == "":
		return domain.ValidationError{Field: "make", Msg: "required"}
	case strings.TrimSpace(in.Model) == "":
		return domain.ValidationError{Field: "model", Msg: "required"}
	case in.Year < 1900:
		return domain.ValidationError{Field: "year", Msg: "must be 1900 or later"}
	case in.Price <= 0:
		return domain.ValidationError{Field: "price", Msg: "must be positive"}
	}
	switch in.Type {
	case "car", "bike", "motorbike":
	default:
		return domain.ValidationError{Field: "type", Msg: "must be car, bike or motorbike"}
	}
	return nil
}

func (s ListingService) Create(actor domain.RequestContext, in CreateListingInput) (models.Listing, error) {
	if err := in.validate(); err != nil {
		return models.Listing{}, err
	}
	title := utils.NormalizeSpace(in.Title)
	if title == "" {
		title = fmt.Sprintf("%d %s %s", in.Year, utils.NormalizeSpace(in.Make), utils.NormalizeSpace(in.Model))
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	badges := in.Badges
	if badges == nil {
		badges = []string{}
	}
	l, err := s.Listings.Create(models.Listing{
		Title:        title,
		Type:         in.Type,
		Make:         utils.NormalizeSpace(in.Make),
		Model:        utils.NormalizeSpace(in.Model),
		Year:         in.Year,
		Price:        in.Price,
		Mileage:      in.Mileage,
		Status:       domain.ListingPending,
		SellerName:   utils.Fallback(in.SellerName, actor.ActorName()),
		VIN:          strings.ToUpper(strings.TrimSpace(in.VIN)),
		Location:     strings.TrimSpace(in.Location),
		Badges:       badges,
		CreatedAt:    utils.Timestamp(now()),
		Fuel:         in.Fuel,
		Transmission: in.Transmission,
		Color:        in.Color,
	})
	if err != nil {
		return models.Listing{}, err
	}
	recordAudit(s.Audit, actor, s.Now, auditEvent{action: "listing.create", target: l.ID, label: l.Title})
	utils.LogEvent(s.RequestID, "listings", "create", "id="+l.ID)
	return l, nil
}
