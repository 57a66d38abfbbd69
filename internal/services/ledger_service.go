package services

import (
	"blackpiston/internal/domain/models"
	"blackpiston/internal/repositories"
	"blackpiston/internal/table"
)

// LedgerService serves the read-only seller and transaction tables.
type LedgerService struct {
	Sellers      *repositories.Collection[models.Seller]
	Transactions *repositories.Collection[models.Transaction]
}

type SellerFilter struct {
	Search   string
	Type     string
	Verified string
}

func (f SellerFilter) Criteria() []table.Criterion {
	return []table.Criterion{
		table.Search(f.Search, "name", "email", "location"),
		table.Eq("type", f.Type),
		table.Eq("verified", f.Verified),
	}
}

type TransactionFilter struct {
	Search string
	Status string
	Method string
}

func (f TransactionFilter) Criteria() []table.Criterion {
	return []table.Criterion{
		table.Search(f.Search, "id", "listingTitle", "buyer", "seller"),
		table.Eq("status", f.Status),
		table.Eq("method", f.Method),
	}
}

func (s LedgerService) ListSellers(f SellerFilter, sort table.SortSpec, paging Paging) Result[models.Seller] {
	return run(s.Sellers.List(nil), f.Criteria(), sort, paging)
}

func (s LedgerService) ListTransactions(f TransactionFilter, sort table.SortSpec, paging Paging) Result[models.Transaction] {
	return run(s.Transactions.List(nil), f.Criteria(), sort, paging)
}
