package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-catalog-sync/catalog"
)

// actor returns the acting identity's email for archival stamps.
func actor(c *gin.Context) string {
	if identity, ok := identityFrom(c); ok {
		return identity.Email
	}
	return ""
}

// --------------------------------------------------------------------------
// Categories
// --------------------------------------------------------------------------

func (r *Router) listCategories(c *gin.Context) {
	categories, err := r.svc.ListCategories(c.Request.Context())
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (r *Router) listArchivedCategories(c *gin.Context) {
	categories, err := r.svc.ListArchivedCategories(c.Request.Context())
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (r *Router) getCategory(c *gin.Context) {
	category, err := r.svc.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// createCategory binds the body straight into the domain type; the service
// runs the domain validation.
func (r *Router) createCategory(c *gin.Context) {
	var body catalog.Category
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "msg": err.Error()})
		return
	}

	created, err := r.svc.CreateCategory(c.Request.Context(), body)
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (r *Router) updateCategory(c *gin.Context) {
	var patch catalog.CategoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "msg": err.Error()})
		return
	}

	updated, err := r.svc.UpdateCategory(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// archiveCategory handles DELETE on a category; deletion always archives.
func (r *Router) archiveCategory(c *gin.Context) {
	archived, err := r.svc.ArchiveCategory(c.Request.Context(), c.Param("id"), actor(c))
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, archived)
}

func (r *Router) restoreCategory(c *gin.Context) {
	restored, err := r.svc.RestoreCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, restored)
}

// --------------------------------------------------------------------------
// Items
// --------------------------------------------------------------------------

func (r *Router) listItems(c *gin.Context) {
	items, err := r.svc.ListItems(c.Request.Context(), c.Query("category_id"))
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (r *Router) listArchivedItems(c *gin.Context) {
	items, err := r.svc.ListArchivedItems(c.Request.Context())
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (r *Router) getItem(c *gin.Context) {
	item, err := r.svc.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (r *Router) createItem(c *gin.Context) {
	var body catalog.Item
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "msg": err.Error()})
		return
	}

	created, err := r.svc.CreateItem(c.Request.Context(), body)
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (r *Router) updateItem(c *gin.Context) {
	var patch catalog.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "msg": err.Error()})
		return
	}

	updated, err := r.svc.UpdateItem(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (r *Router) archiveItem(c *gin.Context) {
	archived, err := r.svc.ArchiveItem(c.Request.Context(), c.Param("id"), actor(c))
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, archived)
}

func (r *Router) restoreItem(c *gin.Context) {
	restored, err := r.svc.RestoreItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, restored)
}

type bulkCreateRequest struct {
	Items []catalog.Item `json:"items" validate:"required,min=1"`
}

func (r *Router) bulkCreateItems(c *gin.Context) {
	var req bulkCreateRequest
	if err := bindAndValidate(c, &req, r.validate); err != nil {
		return
	}

	created, err := r.svc.BulkCreateItems(c.Request.Context(), req.Items)
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"items": created})
}

func (r *Router) bulkDeleteItems(c *gin.Context) {
	deleted, err := r.svc.BulkDeleteItems(c.Request.Context())
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
