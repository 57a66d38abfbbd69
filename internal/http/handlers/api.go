package handlers

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"blackpiston/internal/domain/models"
	"blackpiston/internal/http/middleware"
	"blackpiston/internal/services"
)

// API holds the services behind the HTTP handlers. Services are values;
// each request works on a copy tagged with its request id.
type API struct {
	Listings    services.ListingService
	Users       services.UserService
	ListingBulk services.BulkService[models.Listing]
	UserBulk    services.BulkService[models.User]
	Dashboard   services.DashboardService
	Catalogue   services.CatalogueService
	Ledger      services.LedgerService
	Audit       services.AuditService
	Auth        services.AuthService
	Export      services.ExportService

	// PageSize is used when a request pages without a valid pageSize.
	PageSize int

	DB          *sql.DB
	StoreDriver string
}

func (a *API) pageSize() int {
	if a.PageSize > 0 {
		return a.PageSize
	}
	return 10
}

func (a *API) listings(c *gin.Context) services.ListingService {
	svc := a.Listings
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}

func (a *API) users(c *gin.Context) services.UserService {
	svc := a.Users
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}

func (a *API) exporter(c *gin.Context) services.ExportService {
	svc := a.Export
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}
