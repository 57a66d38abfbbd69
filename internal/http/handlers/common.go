package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"blackpiston/internal/http/middleware"
	"blackpiston/internal/services"
	"blackpiston/internal/table"
	"blackpiston/internal/utils"
)

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"error":      message,
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["details"] = err.Error()
		_ = c.Error(err)
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// readBody returns the raw JSON body, for patches that merge by key
// presence.
func readBody(c *gin.Context) ([]byte, bool) {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "request body is empty", nil)
		return nil, false
	}
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "cannot read body", err)
		return nil, false
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		RespondError(c, http.StatusBadRequest, "request body is empty", nil)
		return nil, false
	}
	return raw, true
}

// filterParam reads a filter value; "all" and blanks mean no constraint.
func filterParam(c *gin.Context, key string) string {
	return utils.FilterValue(c.Query(key))
}

// sortParam reads sort and dir. An unknown field sorts nothing.
func sortParam(c *gin.Context) table.SortSpec {
	return table.By(strings.TrimSpace(c.Query("sort")), table.ParseDirection(c.Query("dir")))
}

// pagingParam turns page/pageSize into a Paging. Pages are zero-based.
// Paging is off unless one of the two is sent; a missing or bad pageSize
// then falls back to def.
func pagingParam(c *gin.Context, def int) services.Paging {
	rawPage, hasPage := c.GetQuery("page")
	rawSize, hasSize := c.GetQuery("pageSize")
	if !hasPage && !hasSize {
		return services.Paging{}
	}
	size, err := strconv.Atoi(strings.TrimSpace(rawSize))
	if err != nil || size <= 0 {
		size = def
	}
	page, err := strconv.Atoi(strings.TrimSpace(rawPage))
	if err != nil {
		page = 0
	}
	return services.Paging{Page: page, Size: size}
}
