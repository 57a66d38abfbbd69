package domain

// Status represents a lightweight state value.
type Status string

// Listing lifecycle. Listings are never deleted; archived is terminal.
const (
	ListingActive   Status = "active"
	ListingPending  Status = "pending"
	ListingSold     Status = "sold"
	ListingFlagged  Status = "flagged"
	ListingArchived Status = "archived"
)

// User account states. Suspended is terminal until reactivated.
const (
	UserActive    Status = "active"
	UserFlagged   Status = "flagged"
	UserSuspended Status = "suspended"
)

// Action names accepted by bulk-action endpoints.
const (
	ActionApprove    = "approve"
	ActionReject     = "reject"
	ActionArchive    = "archive"
	ActionSuspend    = "suspend"
	ActionReactivate = "reactivate"
)

// ListingTransitions maps bulk actions to the resulting listing status.
var ListingTransitions = map[string]Status{
	ActionApprove: ListingActive,
	ActionReject:  ListingArchived,
	ActionArchive: ListingArchived,
}

// UserTransitions maps bulk actions to the resulting user status.
var UserTransitions = map[string]Status{
	ActionSuspend:    UserSuspended,
	ActionReactivate: UserActive,
}

// ValidListingStatus reports whether s is a known listing status.
func ValidListingStatus(s Status) bool {
	switch s {
	case ListingActive, ListingPending, ListingSold, ListingFlagged, ListingArchived:
		return true
	}
	return false
}

// ValidUserStatus reports whether s is a known user status.
func ValidUserStatus(s Status) bool {
	switch s {
	case UserActive, UserFlagged, UserSuspended:
		return true
	}
	return false
}

// RequestContext carries the acting admin when the request is authenticated.
type RequestContext struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// ActorName is what audit entries record for this caller.
func (r RequestContext) ActorName() string {
	if r.Email != "" {
		return r.Email
	}
	return "system"
}

// ActorRole falls back to "system" for unauthenticated calls.
func (r RequestContext) ActorRole() string {
	if r.Role != "" {
		return r.Role
	}
	return "system"
}
