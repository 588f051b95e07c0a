package orders

import (
	"errors"
	"net/http"
	"strconv"

	"usagl/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	customers := r.Group("/customers")
	{
		customers.GET("", h.ListCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.POST("", h.CreateCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
		customers.GET("/:id/orders", h.ListCustomerOrders)
	}

	ordersGroup := r.Group("/orders")
	{
		ordersGroup.GET("", h.ListOrders)
		ordersGroup.GET("/:id", h.GetOrder)
		ordersGroup.POST("", h.CreateOrder)
		ordersGroup.PUT("/:id", h.UpdateOrder)
		ordersGroup.DELETE("/:id", h.DeleteOrder)
	}
}

func (h *Handler) ListCustomers(c *gin.Context) {
	out, err := h.service.ListCustomers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	customer, err := h.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to load customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	var in CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := h.service.CreateCustomer(c.Request.Context(), in)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateCustomer(c.Request.Context(), id, in); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListCustomerOrders(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	out, err := h.service.ListOrdersByCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list orders")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) ListOrders(c *gin.Context) {
	out, err := h.service.ListOrders(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list orders")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Order not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to load order")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var in OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			response.Error(c, http.StatusBadRequest, "Invalid order status")
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusBadRequest, "Customer not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create order")
		}
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateOrder(c.Request.Context(), id, in); err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			response.Error(c, http.StatusBadRequest, "Invalid order status")
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, "Order not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update order")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteOrder(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Order not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete order")
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
