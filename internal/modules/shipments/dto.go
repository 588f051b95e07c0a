package shipments

import (
	"time"

	"usagl/internal/domain"
)

type LocationInput struct {
	Name     string   `json:"name" binding:"required"`
	Address1 string   `json:"address1" binding:"required"`
	City     string   `json:"city" binding:"required"`
	State    string   `json:"state" binding:"required,len=2"`
	Zip      string   `json:"zip" binding:"required"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}

type ShipmentInput struct {
	OrderID            int64      `json:"orderId" binding:"required"`
	PickupLocationID   int64      `json:"pickupLocationId" binding:"required"`
	DeliveryLocationID int64      `json:"deliveryLocationId" binding:"required"`
	ScheduledPickup    *time.Time `json:"scheduledPickup"`
	ScheduledDelivery  *time.Time `json:"scheduledDelivery"`
	Status             string     `json:"status"`
	PriceUsd           *float64   `json:"priceUsd"`
}

type AssignDriverInput struct {
	DriverID int64              `json:"driverId" binding:"required"`
	Role     *domain.DriverRole `json:"role"`
}

type StatusChangeInput struct {
	Status string `json:"status" binding:"required"`
}

type ShipmentDriverOut struct {
	DriverID int64              `json:"driverId"`
	Role     *domain.DriverRole `json:"role"`
	Driver   *domain.Driver     `json:"driver"`
}

// ShipmentDetail is the full load view the shipment screen renders:
// the shipment plus its assigned vehicles and drivers.
type ShipmentDetail struct {
	*domain.Shipment
	Vehicles []domain.Vehicle    `json:"vehicles"`
	Drivers  []ShipmentDriverOut `json:"drivers"`
}
