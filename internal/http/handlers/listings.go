package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blackpiston/internal/http/middleware"
	"blackpiston/internal/services"
)

func listingFilter(c *gin.Context) services.ListingFilter {
	return services.ListingFilter{
		Status: filterParam(c, "status"),
		Type:   filterParam(c, "type"),
		Search: c.Query("search"),
	}
}

// GET /api/admin/listings
func (a *API) GetListings(c *gin.Context) {
	res := a.listings(c).List(listingFilter(c), sortParam(c), pagingParam(c, a.pageSize()))
	c.JSON(http.StatusOK, res)
}

// GET /api/admin/listings/:id
func (a *API) GetListing(c *gin.Context) {
	l, err := a.listings(c).Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// PATCH /api/admin/listings/:id
func (a *API) PatchListing(c *gin.Context) {
	raw, ok := readBody(c)
	if !ok {
		return
	}
	l, err := a.listings(c).Patch(middleware.Actor(c), c.Param("id"), raw)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// POST /api/admin/listings/bulk-action
func (a *API) BulkListings(c *gin.Context) {
	var req services.BulkRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := a.ListingBulk
	svc.RequestID = middleware.GetRequestID(c)
	res, err := svc.Execute(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/listings
func (a *API) CreateListing(c *gin.Context) {
	var in services.CreateListingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	l, err := a.listings(c).Create(middleware.Actor(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}
