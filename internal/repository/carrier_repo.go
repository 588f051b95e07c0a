package repository

import (
	"context"

	"usagl/internal/domain"

	"gorm.io/gorm"
)

type CarrierRepository struct {
	db *gorm.DB
}

func NewCarrierRepository(db *gorm.DB) *CarrierRepository {
	return &CarrierRepository{db: db}
}

func (r *CarrierRepository) List(ctx context.Context) ([]domain.Carrier, error) {
	var out []domain.Carrier
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *CarrierRepository) GetByID(ctx context.Context, id int64) (*domain.Carrier, error) {
	var c domain.Carrier
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CarrierRepository) Create(ctx context.Context, c *domain.Carrier) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CarrierRepository) Update(ctx context.Context, c *domain.Carrier) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CarrierRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Carrier{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type DriverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) List(ctx context.Context) ([]domain.Driver, error) {
	var out []domain.Driver
	err := r.db.WithContext(ctx).Preload("Carrier").Order("id").Find(&out).Error
	return out, err
}

func (r *DriverRepository) ListByCarrier(ctx context.Context, carrierID int64) ([]domain.Driver, error) {
	var out []domain.Driver
	err := r.db.WithContext(ctx).
		Where("carrier_id = ?", carrierID).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *DriverRepository) GetByID(ctx context.Context, id int64) (*domain.Driver, error) {
	var d domain.Driver
	if err := r.db.WithContext(ctx).Preload("Carrier").First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DriverRepository) Create(ctx context.Context, d *domain.Driver) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DriverRepository) Update(ctx context.Context, d *domain.Driver) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DriverRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Driver{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
