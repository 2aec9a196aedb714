package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-catalog-sync/catalog"
)

type orderLineRequest struct {
	ItemID   string  `json:"item_id" validate:"required"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
	Price    float64 `json:"price" validate:"min=0"`
	Size     string  `json:"size"`
}

type createOrderRequest struct {
	Lines []orderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (r *Router) listOrders(c *gin.Context) {
	orders, err := r.svc.ListOrders(c.Request.Context())
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (r *Router) getOrder(c *gin.Context) {
	order, err := r.svc.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (r *Router) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := bindAndValidate(c, &req, r.validate); err != nil {
		return
	}

	lines := make([]catalog.OrderLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, catalog.OrderLine{
			ItemID:   l.ItemID,
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    l.Price,
			Size:     l.Size,
		})
	}

	created, err := r.svc.CreateOrder(c.Request.Context(), lines)
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// updateOrderStatus transitions the status, the only mutable order field.
func (r *Router) updateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := bindAndValidate(c, &req, r.validate); err != nil {
		return
	}

	updated, err := r.svc.UpdateOrderStatus(c.Request.Context(), c.Param("id"), catalog.OrderStatus(req.Status))
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
