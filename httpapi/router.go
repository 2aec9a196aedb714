// Package httpapi exposes the catalog over HTTP: JSON in, JSON out, an
// "error" field with a matching status on failure. Reads tolerate anonymous
// access; catalog writes and bulk operations require an admin session, and
// order creation requires any session.
package httpapi

import (
	"net/http"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/goliatone/go-catalog-sync/auth"
	"github.com/goliatone/go-catalog-sync/catalog"
	"github.com/goliatone/go-catalog-sync/pkg/logging"
)

// Router groups the handler dependencies.
type Router struct {
	svc      *catalog.Service
	auth     *auth.Store
	log      *logging.Logger
	validate *validatorv10.Validate
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(svc *catalog.Service, authStore *auth.Store, log *logging.Logger) *gin.Engine {
	r := &Router{
		svc:      svc,
		auth:     authStore,
		log:      log,
		validate: validatorv10.New(),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(r.resolveSession())

	engine.GET("/health", r.health)
	engine.GET("/metrics", r.metrics)

	engine.POST("/auth/signup", r.signup)
	engine.POST("/auth/login", r.login)
	engine.POST("/auth/logout", r.logout)
	engine.GET("/auth/session", r.session)

	categories := engine.Group("/categories")
	{
		categories.GET("", r.listCategories)
		categories.GET("/archived", r.listArchivedCategories)
		categories.GET("/:id", r.getCategory)
		categories.POST("", requireAdmin(), r.createCategory)
		categories.PUT("/:id", requireAdmin(), r.updateCategory)
		categories.DELETE("/:id", requireAdmin(), r.archiveCategory)
		categories.PATCH("/:id/restore", requireAdmin(), r.restoreCategory)
	}

	items := engine.Group("/items")
	{
		items.GET("", r.listItems)
		items.GET("/archived", r.listArchivedItems)
		items.GET("/:id", r.getItem)
		items.POST("", requireAdmin(), r.createItem)
		items.PUT("/:id", requireAdmin(), r.updateItem)
		items.DELETE("/:id/archive", requireAdmin(), r.archiveItem)
		items.PATCH("/:id/archive", requireAdmin(), r.archiveItem)
		items.PATCH("/:id/restore", requireAdmin(), r.restoreItem)
		items.POST("/bulk/create", requireAdmin(), r.bulkCreateItems)
		items.DELETE("/bulk/delete-all", requireAdmin(), r.bulkDeleteItems)
	}

	orders := engine.Group("/orders")
	{
		orders.GET("", r.listOrders)
		orders.GET("/:id", r.getOrder)
		orders.POST("", requireSession(), r.createOrder)
		orders.PUT("/:id", requireAdmin(), r.updateOrderStatus)
	}

	return engine
}

func (r *Router) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// metrics serves the Prometheus text exposition.
func (r *Router) metrics(c *gin.Context) {
	c.Header("Content-Type", "text/plain; charset=utf-8")
	metrics.WritePrometheus(c.Writer, true)
}
