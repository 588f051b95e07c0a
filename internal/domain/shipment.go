package domain

import "time"

type ShipmentStatus string

const (
	ShipmentCreated   ShipmentStatus = "Created"
	ShipmentScheduled ShipmentStatus = "Scheduled"
	ShipmentPickedUp  ShipmentStatus = "PickedUp"
	ShipmentInTransit ShipmentStatus = "InTransit"
	ShipmentDelivered ShipmentStatus = "Delivered"
	ShipmentCanceled  ShipmentStatus = "Canceled"
)

func (s ShipmentStatus) Valid() bool {
	switch s {
	case ShipmentCreated, ShipmentScheduled, ShipmentPickedUp,
		ShipmentInTransit, ShipmentDelivered, ShipmentCanceled:
		return true
	}
	return false
}

type DriverRole string

const (
	DriverPrimary  DriverRole = "Primary"
	DriverCoDriver DriverRole = "CoDriver"
)

func (r DriverRole) Valid() bool {
	switch r {
	case DriverPrimary, DriverCoDriver:
		return true
	}
	return false
}

type Shipment struct {
	ID      int64  `json:"id" gorm:"primaryKey"`
	OrderID int64  `json:"orderId" gorm:"index;not null"`
	Order   *Order `json:"-" gorm:"foreignKey:OrderID"`

	PickupLocationID int64     `json:"pickupLocationId" gorm:"not null"`
	PickupLocation   *Location `json:"pickupLocation,omitempty" gorm:"foreignKey:PickupLocationID"`

	DeliveryLocationID int64     `json:"deliveryLocationId" gorm:"not null"`
	DeliveryLocation   *Location `json:"deliveryLocation,omitempty" gorm:"foreignKey:DeliveryLocationID"`

	ScheduledPickup   *time.Time     `json:"scheduledPickup"`
	ScheduledDelivery *time.Time     `json:"scheduledDelivery"`
	Status            ShipmentStatus `json:"status" gorm:"size:20;not null;default:Created"`
	PriceUsd          *float64       `json:"priceUsd"`
}

// ShipmentVehicle links a vehicle onto a load (many-to-many).
type ShipmentVehicle struct {
	ShipmentID int64     `json:"shipmentId" gorm:"primaryKey"`
	Shipment   *Shipment `json:"-" gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	VehicleID  int64     `json:"vehicleId" gorm:"primaryKey"`
	Vehicle    *Vehicle  `json:"-" gorm:"foreignKey:VehicleID"`
}

// ShipmentDriver links a driver onto a load with an optional role.
type ShipmentDriver struct {
	ShipmentID int64       `json:"shipmentId" gorm:"primaryKey"`
	Shipment   *Shipment   `json:"-" gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	DriverID   int64       `json:"driverId" gorm:"primaryKey"`
	Driver     *Driver     `json:"-" gorm:"foreignKey:DriverID"`
	Role       *DriverRole `json:"role" gorm:"size:20"`
}
