package models

import (
	"strings"

	"blackpiston/internal/domain"
)

// User is a marketplace or staff account as seen by the back-office.
type User struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Email         string        `json:"email" yaml:"email"`
	Role          string        `json:"role" yaml:"role"`
	LastLogin     string        `json:"lastLogin" yaml:"lastLogin"`
	Status        domain.Status `json:"status" yaml:"status"`
	CreatedAt     string        `json:"createdAt" yaml:"createdAt"`
	UpdatedAt     string        `json:"updatedAt,omitempty" yaml:"updatedAt"`
	Listings      int           `json:"listings" yaml:"listings"`
	Purchases     int           `json:"purchases" yaml:"purchases"`
	FlagReason    string        `json:"flagReason,omitempty" yaml:"flagReason"`
	SuspendReason string        `json:"suspendReason,omitempty" yaml:"suspendReason"`
}

func (u User) RecordID() string { return u.ID }

func (u User) FieldValue(name string) (any, bool) {
	switch name {
	case "id":
		return u.ID, true
	case "name":
		return u.Name, true
	case "email":
		return u.Email, true
	case "role":
		return u.Role, true
	case "lastLogin":
		return u.LastLogin, true
	case "status":
		return string(u.Status), true
	case "createdAt":
		return u.CreatedAt, true
	case "updatedAt":
		return u.UpdatedAt, true
	case "listings":
		return u.Listings, true
	case "purchases":
		return u.Purchases, true
	case "flagReason":
		return u.FlagReason, true
	case "suspendReason":
		return u.SuspendReason, true
	}
	return nil, false
}

func (u User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return domain.ValidationError{Field: "id", Msg: "required"}
	}
	if !strings.Contains(u.Email, "@") {
		return domain.ValidationError{Field: "email", Msg: "invalid address"}
	}
	if !domain.ValidUserStatus(u.Status) {
		return domain.ValidationError{Field: "status", Msg: "unknown status " + string(u.Status)}
	}
	return nil
}

// Transition applies suspend / reactivate. Reactivating clears the reason.
func (u User) Transition(action string) (User, bool) {
	st, ok := domain.UserTransitions[action]
	if !ok {
		return u, false
	}
	u.Status = st
	if st == domain.UserActive {
		u.SuspendReason = ""
	}
	return u, true
}

func (u User) Touch(ts string) User {
	u.UpdatedAt = ts
	return u
}
