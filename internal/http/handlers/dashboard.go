package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/kpis
func (a *API) GetKPIs(c *gin.Context) {
	c.JSON(http.StatusOK, a.Dashboard.KPIs())
}

// GET /api/admin/charts/revenue
func (a *API) GetRevenueChart(c *gin.Context) {
	c.JSON(http.StatusOK, a.Dashboard.Revenue())
}

// GET /api/admin/charts/top-models
func (a *API) GetTopModels(c *gin.Context) {
	c.JSON(http.StatusOK, a.Dashboard.TopModels())
}
