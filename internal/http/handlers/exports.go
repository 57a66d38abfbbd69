package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blackpiston/internal/export"
	"blackpiston/internal/services"
)

// GET /api/admin/listings/export?format=csv|xlsx|pdf
func (a *API) ExportListings(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unsupported export format", err)
		return
	}
	rows := a.listings(c).Matching(listingFilter(c), sortParam(c))
	file, err := services.Render(a.exporter(c), "listings", "Listings", format, export.ListingColumns, rows)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendFile(c, file)
}

// GET /api/admin/users/export?format=csv|xlsx|pdf
func (a *API) ExportUsers(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unsupported export format", err)
		return
	}
	rows := a.users(c).Matching(userFilter(c), sortParam(c))
	file, err := services.Render(a.exporter(c), "users", "Users", format, export.UserColumns, rows)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendFile(c, file)
}

func sendFile(c *gin.Context, f services.ExportFile) {
	c.Header("Content-Disposition", `attachment; filename="`+f.Name+`"`)
	c.Data(http.StatusOK, f.ContentType, f.Body)
}
