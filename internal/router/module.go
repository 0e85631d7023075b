package router

import "github.com/gin-gonic/gin"

// Module is a feature area (users, recipes, debug) that mounts its routes on the
// registry's group. Auth is applied per route group inside each module.
type Module interface {
	Register(rg *gin.RouterGroup)
}
