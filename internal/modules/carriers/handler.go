package carriers

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
	carriersGroup := r.Group("/carriers")
	{
		carriersGroup.GET("", h.ListCarriers)
		carriersGroup.GET("/:id", h.GetCarrier)
		carriersGroup.POST("", h.CreateCarrier)
		carriersGroup.PUT("/:id", h.UpdateCarrier)
		carriersGroup.DELETE("/:id", h.DeleteCarrier)
		carriersGroup.GET("/:id/drivers", h.ListCarrierDrivers)
	}

	drivers := r.Group("/drivers")
	{
		drivers.GET("", h.ListDrivers)
		drivers.GET("/:id", h.GetDriver)
		drivers.POST("", h.CreateDriver)
		drivers.PUT("/:id", h.UpdateDriver)
		drivers.DELETE("/:id", h.DeleteDriver)
	}
}

func (h *Handler) ListCarriers(c *gin.Context) {
	out, err := h.service.ListCarriers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list carriers")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetCarrier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	carrier, err := h.service.GetCarrier(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Carrier not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to load carrier")
		return
	}
	c.JSON(http.StatusOK, carrier)
}

func (h *Handler) CreateCarrier(c *gin.Context) {
	var in CarrierInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	carrier, err := h.service.CreateCarrier(c.Request.Context(), in)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create carrier")
		return
	}
	c.JSON(http.StatusCreated, carrier)
}

func (h *Handler) UpdateCarrier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in CarrierInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateCarrier(c.Request.Context(), id, in); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Carrier not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update carrier")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteCarrier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCarrier(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Carrier not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete carrier")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListCarrierDrivers(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	out, err := h.service.ListDriversByCarrier(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list drivers")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) ListDrivers(c *gin.Context) {
	out, err := h.service.ListDrivers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list drivers")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	d, err := h.service.GetDriver(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Driver not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to load driver")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) CreateDriver(c *gin.Context) {
	var in DriverInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.service.CreateDriver(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusBadRequest, "Carrier not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create driver")
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) UpdateDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in DriverInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateDriver(c.Request.Context(), id, in); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Driver not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update driver")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteDriver(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Driver not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete driver")
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
