package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blackpiston/internal/services"
)

// GET /api/admin/sellers
func (a *API) GetSellers(c *gin.Context) {
	f := services.SellerFilter{
		Search:   c.Query("search"),
		Type:     filterParam(c, "type"),
		Verified: filterParam(c, "verified"),
	}
	c.JSON(http.StatusOK, a.Ledger.ListSellers(f, sortParam(c), pagingParam(c, a.pageSize())))
}

// GET /api/admin/transactions
func (a *API) GetTransactions(c *gin.Context) {
	f := services.TransactionFilter{
		Search: c.Query("search"),
		Status: filterParam(c, "status"),
		Method: filterParam(c, "method"),
	}
	c.JSON(http.StatusOK, a.Ledger.ListTransactions(f, sortParam(c), pagingParam(c, a.pageSize())))
}

// GET /api/admin/audit-logs
func (a *API) GetAuditLogs(c *gin.Context) {
	f := services.AuditFilter{
		Action: filterParam(c, "action"),
		Actor:  filterParam(c, "actor"),
		Target: filterParam(c, "target"),
	}
	c.JSON(http.StatusOK, a.Audit.List(f, pagingParam(c, a.pageSize())))
}
