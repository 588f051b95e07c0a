package shipments

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"usagl/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	locations := r.Group("/locations")
	{
		locations.GET("", h.ListLocations)
		locations.GET("/:id", h.GetLocation)
		locations.POST("", h.CreateLocation)
		locations.PUT("/:id", h.UpdateLocation)
		locations.DELETE("/:id", h.DeleteLocation)
	}

	shipments := r.Group("/shipments")
	{
		shipments.GET("/feed", h.Feed)
		shipments.GET("", h.ListShipments)
		shipments.GET("/:id", h.GetShipment)
		shipments.POST("", h.CreateShipment)
		shipments.PUT("/:id", h.UpdateShipment)
		shipments.DELETE("/:id", h.DeleteShipment)
		shipments.POST("/:id/status", h.ChangeStatus)
		shipments.POST("/:id/vehicles", h.AssignVehicles)
		shipments.DELETE("/:id/vehicles/:vehicleId", h.RemoveVehicle)
		shipments.POST("/:id/drivers", h.AssignDrivers)
		shipments.DELETE("/:id/drivers/:driverId", h.RemoveDriver)
	}
}

/* ---------- LOCATIONS ---------- */

func (h *Handler) ListLocations(c *gin.Context) {
	out, err := h.service.ListLocations(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list locations")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetLocation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	l, err := h.service.GetLocation(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Location not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to load location")
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *Handler) CreateLocation(c *gin.Context) {
	var in LocationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	l, err := h.service.CreateLocation(c.Request.Context(), in)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create location")
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h *Handler) UpdateLocation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in LocationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateLocation(c.Request.Context(), id, in); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Location not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update location")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteLocation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteLocation(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Location not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete location")
		return
	}
	c.Status(http.StatusNoContent)
}

/* ---------- SHIPMENTS ---------- */

func (h *Handler) ListShipments(c *gin.Context) {
	out, err := h.service.ListShipments(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list shipments")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetShipment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.service.GetShipment(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Shipment not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to load shipment")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) CreateShipment(c *gin.Context) {
	var in ShipmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	detail, err := h.service.CreateShipment(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			response.Error(c, http.StatusBadRequest, "Invalid shipment status")
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusBadRequest, "Referenced order or location not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create shipment")
		}
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func (h *Handler) UpdateShipment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in ShipmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateShipment(c.Request.Context(), id, in); err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			response.Error(c, http.StatusBadRequest, "Invalid shipment status")
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, "Shipment not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update shipment")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteShipment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteShipment(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Shipment not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete shipment")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ChangeStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in StatusChangeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	shipment, err := h.service.ChangeStatus(c.Request.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			response.Error(c, http.StatusBadRequest, "Invalid shipment status")
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, "Shipment not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to change status")
		}
		return
	}
	c.JSON(http.StatusOK, shipment)
}

/* ---------- ASSIGNMENTS ---------- */

type assignVehiclesRequest struct {
	VehicleIDs []int64 `json:"vehicleIds" binding:"required,min=1"`
}

func (h *Handler) AssignVehicles(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in assignVehiclesRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.AssignVehicles(c.Request.Context(), id, in.VehicleIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Shipment not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to assign vehicles")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) RemoveVehicle(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	vehicleID, ok := pathID(c, "vehicleId")
	if !ok {
		return
	}

	if err := h.service.RemoveVehicle(c.Request.Context(), id, vehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Assignment not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to remove vehicle")
		return
	}
	c.Status(http.StatusNoContent)
}

type assignDriversRequest struct {
	Drivers []AssignDriverInput `json:"drivers" binding:"required,min=1,dive"`
}

func (h *Handler) AssignDrivers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in assignDriversRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	for _, d := range in.Drivers {
		if d.Role != nil && !d.Role.Valid() {
			response.Error(c, http.StatusBadRequest, "Invalid driver role")
			return
		}
	}

	if err := h.service.AssignDrivers(c.Request.Context(), id, in.Drivers); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Shipment not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to assign drivers")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) RemoveDriver(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	driverID, ok := pathID(c, "driverId")
	if !ok {
		return
	}

	if err := h.service.RemoveDriver(c.Request.Context(), id, driverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Assignment not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to remove driver")
		return
	}
	c.Status(http.StatusNoContent)
}

/* ---------- FEED ---------- */

// Feed upgrades the connection to a websocket and streams StatusEvent
// messages until the client disconnects.
func (h *Handler) Feed(c *gin.Context) {
	userIDValue, exists := c.Get("user_id")
	if !exists {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	userID, ok := userIDValue.(int64)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID)

	// Drain the read side so ping/pong and close frames are processed.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
