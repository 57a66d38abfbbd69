package models

// Seller is a dealer or private seller account summary.
type Seller struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Type        string  `json:"type" yaml:"type"`
	Email       string  `json:"email" yaml:"email"`
	Location    string  `json:"location" yaml:"location"`
	Rating      float64 `json:"rating" yaml:"rating"`
	ReviewCount int     `json:"reviewCount" yaml:"reviewCount"`
	Verified    bool    `json:"verified" yaml:"verified"`
	Listings    int     `json:"listings" yaml:"listings"`
	MemberSince string  `json:"memberSince" yaml:"memberSince"`
}

func (s Seller) RecordID() string { return s.ID }

func (s Seller) FieldValue(name string) (any, bool) {
	switch name {
	case "id":
		return s.ID, true
	case "name":
		return s.Name, true
	case "type":
		return s.Type, true
	case "email":
		return s.Email, true
	case "location":
		return s.Location, true
	case "rating":
		return s.Rating, true
	case "reviewCount":
		return s.ReviewCount, true
	case "verified":
		return s.Verified, true
	case "listings":
		return s.Listings, true
	case "memberSince":
		return s.MemberSince, true
	}
	return nil, false
}

// Transaction is a completed, pending or refunded sale.
type Transaction struct {
	ID           string `json:"id" yaml:"id"`
	ListingID    string `json:"listingId" yaml:"listingId"`
	ListingTitle string `json:"listingTitle" yaml:"listingTitle"`
	Buyer        string `json:"buyer" yaml:"buyer"`
	Seller       string `json:"seller" yaml:"seller"`
	Amount       int64  `json:"amount" yaml:"amount"`
	Fee          int64  `json:"fee" yaml:"fee"`
	Status       string `json:"status" yaml:"status"`
	Method       string `json:"method" yaml:"method"`
	CreatedAt    string `json:"createdAt" yaml:"createdAt"`
}

func (t Transaction) RecordID() string { return t.ID }

func (t Transaction) FieldValue(name string) (any, bool) {
	switch name {
	case "id":
		return t.ID, true
	case "listingId":
		return t.ListingID, true
	case "listingTitle":
		return t.ListingTitle, true
	case "buyer":
		return t.Buyer, true
	case "seller":
		return t.Seller, true
	case "amount":
		return t.Amount, true
	case "fee":
		return t.Fee, true
	case "status":
		return t.Status, true
	case "method":
		return t.Method, true
	case "createdAt":
		return t.CreatedAt, true
	}
	return nil, false
}

// AuditEntry is an immutable record of an administrative action.
type AuditEntry struct {
	ID          string `json:"id" yaml:"id"`
	Action      string `json:"action" yaml:"action"`
	Actor       string `json:"actor" yaml:"actor"`
	ActorRole   string `json:"actorRole" yaml:"actorRole"`
	Target      string `json:"target" yaml:"target"`
	TargetLabel string `json:"targetLabel" yaml:"targetLabel"`
	Details     string `json:"details" yaml:"details"`
	Timestamp   string `json:"timestamp" yaml:"timestamp"`
}

func (a AuditEntry) RecordID() string { return a.ID }

func (a AuditEntry) FieldValue(name string) (any, bool) {
	switch name {
	case "id":
		return a.ID, true
	case "action":
		return a.Action, true
	case "actor":
		return a.Actor, true
	case "actorRole":
		return a.ActorRole, true
	case "target":
		return a.Target, true
	case "targetLabel":
		return a.TargetLabel, true
	case "details":
		return a.Details, true
	case "timestamp":
		return a.Timestamp, true
	}
	return nil, false
}
