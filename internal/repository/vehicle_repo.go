package repository

import (
	"context"

	"usagl/internal/domain"

	"gorm.io/gorm"
)

type VehicleModelRepository struct {
	db *gorm.DB
}

func NewVehicleModelRepository(db *gorm.DB) *VehicleModelRepository {
	return &VehicleModelRepository{db: db}
}

func (r *VehicleModelRepository) List(ctx context.Context) ([]domain.VehicleModel, error) {
	var out []domain.VehicleModel
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *VehicleModelRepository) GetByID(ctx context.Context, id int64) (*domain.VehicleModel, error) {
	var m domain.VehicleModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *VehicleModelRepository) Create(ctx context.Context, m *domain.VehicleModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *VehicleModelRepository) Update(ctx context.Context, m *domain.VehicleModel) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *VehicleModelRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.VehicleModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// List returns vehicles with their models preloaded; the fleet screen
// renders make/model next to the VIN.
func (r *VehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	err := r.db.WithContext(ctx).Preload("Model").Order("id").Find(&out).Error
	return out, err
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := r.db.WithContext(ctx).Preload("Model").First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Vehicle{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
