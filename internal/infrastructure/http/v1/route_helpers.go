// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"inventory/internal/domain/auth"
	"inventory/internal/infrastructure/http/v1/middleware"
)

// Role sets used by the route table.
var (
	adminOnly = []string{string(auth.RoleAdmin)}
	staff     = []string{string(auth.RoleAdmin), string(auth.RoleStoreManager)}
)

// CRUDRouteHandler defines the interface for entity handlers.
// All entity handlers must implement these methods.
type CRUDRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// RouteRoles lists the roles allowed per kind of operation.
type RouteRoles struct {
	Read   []string
	Write  []string
	Delete []string
}

// RegisterCRUDRoutes registers standard CRUD routes for an entity.
// Extra routes with static segments must be registered on the same group.
//
// Usage:
//
//	handler := handlers.NewCategoryHandler(base, categoryService)
//	RegisterCRUDRoutes(api.Group("/categories"), handler, RouteRoles{Read: staff, Write: adminOnly, Delete: adminOnly})
func RegisterCRUDRoutes(group *gin.RouterGroup, handler CRUDRouteHandler, roles RouteRoles) {
	group.GET("", middleware.RequireRole(roles.Read...), handler.List)
	group.POST("", middleware.RequireRole(roles.Write...), handler.Create)
	group.GET("/:id", middleware.RequireRole(roles.Read...), handler.Get)
	group.PUT("/:id", middleware.RequireRole(roles.Write...), handler.Update)
	group.DELETE("/:id", middleware.RequireRole(roles.Delete...), handler.Delete)
}

// SpreadsheetRouteHandler is implemented by handlers that support Excel import/export.
type SpreadsheetRouteHandler interface {
	Import(c *gin.Context)
	Export(c *gin.Context)
	Template(c *gin.Context)
}

// RegisterSpreadsheetRoutes registers import, export and template routes.
func RegisterSpreadsheetRoutes(group *gin.RouterGroup, handler SpreadsheetRouteHandler, roles []string) {
	group.POST("/import", middleware.RequireRole(roles...), handler.Import)
	group.GET("/export", middleware.RequireRole(roles...), handler.Export)
	group.GET("/template", middleware.RequireRole(roles...), handler.Template)
}
