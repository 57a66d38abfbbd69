package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blackpiston/internal/http/middleware"
	"blackpiston/internal/services"
)

func userFilter(c *gin.Context) services.UserFilter {
	return services.UserFilter{
		Search: c.Query("search"),
		Role:   filterParam(c, "role"),
		Status: filterParam(c, "status"),
	}
}

// GET /api/admin/users
func (a *API) GetUsers(c *gin.Context) {
	c.JSON(http.StatusOK, a.users(c).List(userFilter(c), sortParam(c), pagingParam(c, a.pageSize())))
}

// GET /api/admin/users/:id
func (a *API) GetUser(c *gin.Context) {
	u, err := a.users(c).Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// PATCH /api/admin/users/:id
func (a *API) PatchUser(c *gin.Context) {
	raw, ok := readBody(c)
	if !ok {
		return
	}
	u, err := a.users(c).Patch(middleware.Actor(c), c.Param("id"), raw)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// POST /api/admin/users/bulk-action
func (a *API) BulkUsers(c *gin.Context) {
	var req services.BulkRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := a.UserBulk
	svc.RequestID = middleware.GetRequestID(c)
	res, err := svc.Execute(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
