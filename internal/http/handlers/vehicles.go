package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blackpiston/internal/services"
)

const featuredLimit = 6

// GET /api/vehicles
func (a *API) GetVehicles(c *gin.Context) {
	q := services.VehicleQuery{
		Type:         filterParam(c, "type"),
		Make:         filterParam(c, "make"),
		Fuel:         filterParam(c, "fuel"),
		Transmission: filterParam(c, "transmission"),
		PriceMin:     c.Query("priceMin"),
		PriceMax:     c.Query("priceMax"),
		YearMin:      c.Query("yearMin"),
		YearMax:      c.Query("yearMax"),
		Search:       c.Query("search"),
		Sort:         c.Query("sort"),
	}
	c.JSON(http.StatusOK, a.Catalogue.Search(q, pagingParam(c, a.pageSize())))
}

// GET /api/vehicles/:id
func (a *API) GetVehicle(c *gin.Context) {
	v, err := a.Catalogue.Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// GET /api/vehicles/facets
func (a *API) GetFacets(c *gin.Context) {
	c.JSON(http.StatusOK, a.Catalogue.Facets())
}

// GET /api/vehicles/featured?limit=
func (a *API) GetFeatured(c *gin.Context) {
	limit := featuredLimit
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		limit = n
	}
	c.JSON(http.StatusOK, a.Catalogue.Featured(limit))
}
