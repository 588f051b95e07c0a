package fleet

import (
	"context"

	"usagl/internal/domain"
	"usagl/internal/repository"
)

type Service struct {
	models   *repository.VehicleModelRepository
	vehicles *repository.VehicleRepository
}

func NewService(models *repository.VehicleModelRepository, vehicles *repository.VehicleRepository) *Service {
	return &Service{models: models, vehicles: vehicles}
}

func (s *Service) ListModels(ctx context.Context) ([]domain.VehicleModel, error) {
	return s.models.List(ctx)
}

func (s *Service) GetModel(ctx context.Context, id int64) (*domain.VehicleModel, error) {
	return s.models.GetByID(ctx, id)
}

func (s *Service) CreateModel(ctx context.Context, in VehicleModelInput) (*domain.VehicleModel, error) {
	m := &domain.VehicleModel{
		Make:     in.Make,
		Model:    in.Model,
		BodyType: in.BodyType,
	}
	if err := s.models.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) UpdateModel(ctx context.Context, id int64, in VehicleModelInput) error {
	m, err := s.models.GetByID(ctx, id)
	if err != nil {
		return err
	}
	m.Make = in.Make
	m.Model = in.Model
	m.BodyType = in.BodyType
	return s.models.Update(ctx, m)
}

func (s *Service) DeleteModel(ctx context.Context, id int64) error {
	return s.models.Delete(ctx, id)
}

func (s *Service) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicles.List(ctx)
}

func (s *Service) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.vehicles.GetByID(ctx, id)
}

func (s *Service) CreateVehicle(ctx context.Context, in VehicleInput) (*domain.Vehicle, error) {
	if _, err := s.models.GetByID(ctx, in.ModelID); err != nil {
		return nil, err
	}

	v := &domain.Vehicle{
		Vin:      in.Vin,
		Year:     in.Year,
		Color:    in.Color,
		ModelID:  in.ModelID,
		Operable: in.Operable,
		ValueUsd: in.ValueUsd,
	}
	if err := s.vehicles.Create(ctx, v); err != nil {
		return nil, err
	}
	// Reload so the response carries make/model like every other read.
	return s.vehicles.GetByID(ctx, v.ID)
}

func (s *Service) UpdateVehicle(ctx context.Context, id int64, in VehicleInput) error {
	v, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	v.Vin = in.Vin
	v.Year = in.Year
	v.Color = in.Color
	v.ModelID = in.ModelID
	v.Operable = in.Operable
	v.ValueUsd = in.ValueUsd
	v.Model = nil
	return s.vehicles.Update(ctx, v)
}

func (s *Service) DeleteVehicle(ctx context.Context, id int64) error {
	return s.vehicles.Delete(ctx, id)
}
