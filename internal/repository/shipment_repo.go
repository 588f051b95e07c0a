package repository

import (
	"context"

	"usagl/internal/domain"

	"gorm.io/gorm"
)

type ShipmentRepository struct {
	db *gorm.DB
}

func NewShipmentRepository(db *gorm.DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

func (r *ShipmentRepository) List(ctx context.Context) ([]domain.Shipment, error) {
	var out []domain.Shipment
	err := r.db.WithContext(ctx).
		Preload("PickupLocation").
		Preload("DeliveryLocation").
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *ShipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Shipment, error) {
	var s domain.Shipment
	err := r.db.WithContext(ctx).
		Preload("PickupLocation").
		Preload("DeliveryLocation").
		First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Vehicles returns the assigned vehicles with their models.
func (r *ShipmentRepository) Vehicles(ctx context.Context, shipmentID int64) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	err := r.db.WithContext(ctx).
		Joins("JOIN shipment_vehicles sv ON sv.vehicle_id = vehicles.id").
		Where("sv.shipment_id = ?", shipmentID).
		Preload("Model").
		Order("vehicles.id").
		Find(&out).Error
	return out, err
}

// Drivers returns the assignment rows with drivers and carriers loaded.
func (r *ShipmentRepository) Drivers(ctx context.Context, shipmentID int64) ([]domain.ShipmentDriver, error) {
	var out []domain.ShipmentDriver
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Preload("Driver").
		Preload("Driver.Carrier").
		Order("driver_id").
		Find(&out).Error
	return out, err
}

func (r *ShipmentRepository) Create(ctx context.Context, s *domain.Shipment) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ShipmentRepository) Update(ctx context.Context, s *domain.Shipment) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ShipmentRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Shipment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ShipmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.ShipmentStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Shipment{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AssignVehicles links each vehicle onto the shipment, skipping links that
// already exist so repeat submissions are harmless.
func (r *ShipmentRepository) AssignVehicles(ctx context.Context, shipmentID int64, vehicleIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, vid := range vehicleIDs {
			var count int64
			if err := tx.Model(&domain.ShipmentVehicle{}).
				Where("shipment_id = ? AND vehicle_id = ?", shipmentID, vid).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			link := domain.ShipmentVehicle{ShipmentID: shipmentID, VehicleID: vid}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ShipmentRepository) RemoveVehicle(ctx context.Context, shipmentID, vehicleID int64) error {
	res := r.db.WithContext(ctx).
		Where("shipment_id = ? AND vehicle_id = ?", shipmentID, vehicleID).
		Delete(&domain.ShipmentVehicle{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AssignDrivers creates missing links and updates the role on existing ones.
func (r *ShipmentRepository) AssignDrivers(ctx context.Context, shipmentID int64, items []domain.ShipmentDriver) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var existing domain.ShipmentDriver
			err := tx.Where("shipment_id = ? AND driver_id = ?", shipmentID, item.DriverID).
				First(&existing).Error
			switch {
			case err == nil:
				if err := tx.Model(&domain.ShipmentDriver{}).
					Where("shipment_id = ? AND driver_id = ?", shipmentID, item.DriverID).
					Update("role", item.Role).Error; err != nil {
					return err
				}
			case err == gorm.ErrRecordNotFound:
				link := domain.ShipmentDriver{
					ShipmentID: shipmentID,
					DriverID:   item.DriverID,
					Role:       item.Role,
				}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}
		return nil
	})
}

func (r *ShipmentRepository) RemoveDriver(ctx context.Context, shipmentID, driverID int64) error {
	res := r.db.WithContext(ctx).
		Where("shipment_id = ? AND driver_id = ?", shipmentID, driverID).
		Delete(&domain.ShipmentDriver{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
