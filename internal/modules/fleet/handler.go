package fleet

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
	models := r.Group("/vehicle-models")
	{
		models.GET("", h.ListModels)
		models.GET("/:id", h.GetModel)
		models.POST("", h.CreateModel)
		models.PUT("/:id", h.UpdateModel)
		models.DELETE("/:id", h.DeleteModel)
	}

	vehicles := r.Group("/vehicles")
	{
		vehicles.GET("", h.ListVehicles)
		vehicles.GET("/:id", h.GetVehicle)
		vehicles.POST("", h.CreateVehicle)
		vehicles.PUT("/:id", h.UpdateVehicle)
		vehicles.DELETE("/:id", h.DeleteVehicle)
	}
}

func (h *Handler) ListModels(c *gin.Context) {
	out, err := h.service.ListModels(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list vehicle models")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetModel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	m, err := h.service.GetModel(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Vehicle model not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to load vehicle model")
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) CreateModel(c *gin.Context) {
	var in VehicleModelInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	m, err := h.service.CreateModel(c.Request.Context(), in)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create vehicle model")
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *Handler) UpdateModel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in VehicleModelInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateModel(c.Request.Context(), id, in); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Vehicle model not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update vehicle model")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteModel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteModel(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Vehicle model not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete vehicle model")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListVehicles(c *gin.Context) {
	out, err := h.service.ListVehicles(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list vehicles")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	v, err := h.service.GetVehicle(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Vehicle not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to load vehicle")
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) CreateVehicle(c *gin.Context) {
	var in VehicleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	v, err := h.service.CreateVehicle(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusBadRequest, "Vehicle model not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create vehicle")
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *Handler) UpdateVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in VehicleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateVehicle(c.Request.Context(), id, in); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Vehicle not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update vehicle")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteVehicle(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Vehicle not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete vehicle")
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
