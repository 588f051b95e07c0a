package repository

import (
	"context"

	"usagl/internal/domain"

	"gorm.io/gorm"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) List(ctx context.Context) ([]domain.Location, error) {
	var out []domain.Location
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *LocationRepository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	var l domain.Location
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LocationRepository) Create(ctx context.Context, l *domain.Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LocationRepository) Update(ctx context.Context, l *domain.Location) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LocationRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Location{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
