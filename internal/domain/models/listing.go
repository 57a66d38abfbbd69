package models

import (
	"strings"

	"blackpiston/internal/domain"
)

// Listing is the admin view of a marketplace listing.
type Listing struct {
	ID           string        `json:"id" yaml:"id"`
	Title        string        `json:"title" yaml:"title"`
	Type         string        `json:"type" yaml:"type"`
	Make         string        `json:"make" yaml:"make"`
	Model        string        `json:"model" yaml:"model"`
	Year         int           `json:"year" yaml:"year"`
	Price        int64         `json:"price" yaml:"price"`
	Mileage      int           `json:"mileage" yaml:"mileage"`
	Status       domain.Status `json:"status" yaml:"status"`
	SellerName   string        `json:"sellerName" yaml:"sellerName"`
	VIN          string        `json:"vin" yaml:"vin"`
	Location     string        `json:"location" yaml:"location"`
	Badges       []string      `json:"badges" yaml:"badges"`
	CreatedAt    string        `json:"createdAt" yaml:"createdAt"`
	UpdatedAt    string        `json:"updatedAt,omitempty" yaml:"updatedAt"`
	Views        int           `json:"views" yaml:"views"`
	Inquiries    int           `json:"inquiries" yaml:"inquiries"`
	FlagReason   string        `json:"flagReason,omitempty" yaml:"flagReason"`
	Fuel         string        `json:"fuel" yaml:"fuel"`
	Transmission string        `json:"transmission" yaml:"transmission"`
	Color        string        `json:"color" yaml:"color"`
}

func (l Listing) RecordID() string { return l.ID }

func (l Listing) FieldValue(name string) (any, bool) {
	switch name {
	case "id":
		return l.ID, true
	case "title":
		return l.Title, true
	case "type":
		return l.Type, true
	case "make":
		return l.Make, true
	case "model":
		return l.Model, true
	case "year":
		return l.Year, true
	case "price":
		return l.Price, true
	case "mileage":
		return l.Mileage, true
	case "status":
		return string(l.Status), true
	case "sellerName":
		return l.SellerName, true
	case "vin":
		return l.VIN, true
	case "location":
		return l.Location, true
	case "badges":
		return l.Badges, true
	case "createdAt":
		return l.CreatedAt, true
	case "updatedAt":
		return l.UpdatedAt, true
	case "views":
		return l.Views, true
	case "inquiries":
		return l.Inquiries, true
	case "flagReason":
		return l.FlagReason, true
	case "fuel":
		return l.Fuel, true
	case "transmission":
		return l.Transmission, true
	case "color":
		return l.Color, true
	}
	return nil, false
}

// Validate checks the invariants a stored listing must keep.
func (l Listing) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return domain.ValidationError{Field: "id", Msg: "required"}
	}
	if strings.TrimSpace(l.Title) == "" {
		return domain.ValidationError{Field: "title", Msg: "must not be empty"}
	}
	if !domain.ValidListingStatus(l.Status) {
		return domain.ValidationError{Field: "status", Msg: "unknown status " + string(l.Status)}
	}
	if l.Price < 0 {
		return domain.ValidationError{Field: "price", Msg: "must not be negative"}
	}
	if l.Year < 0 || l.Mileage < 0 {
		return domain.ValidationError{Field: "year", Msg: "year and mileage must not be negative"}
	}
	return nil
}

// Transition applies a bulk action, reporting false for unknown actions.
func (l Listing) Transition(action string) (Listing, bool) {
	st, ok := domain.ListingTransitions[action]
	if !ok {
		return l, false
	}
	l.Status = st
	return l, true
}

// Touch stamps the update time.
func (l Listing) Touch(ts string) Listing {
	l.UpdatedAt = ts
	return l
}
