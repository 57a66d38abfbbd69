package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for /api/routes.
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "blackpiston api running"})
}

// StoreCheck reports which backing store is in use and whether it answers.
func (a *API) StoreCheck(c *gin.Context) {
	if a.DB == nil {
		c.JSON(http.StatusOK, gin.H{"driver": "memory", "status": "ok"})
		return
	}
	if err := a.DB.PingContext(c.Request.Context()); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "store unreachable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": a.StoreDriver, "status": "ok"})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
