package carriers

import (
	"context"

	"usagl/internal/domain"
	"usagl/internal/repository"
)

type Service struct {
	carriers *repository.CarrierRepository
	drivers  *repository.DriverRepository
}

func NewService(carriers *repository.CarrierRepository, drivers *repository.DriverRepository) *Service {
	return &Service{carriers: carriers, drivers: drivers}
}

func (s *Service) ListCarriers(ctx context.Context) ([]domain.Carrier, error) {
	return s.carriers.List(ctx)
}

func (s *Service) GetCarrier(ctx context.Context, id int64) (*domain.Carrier, error) {
	return s.carriers.GetByID(ctx, id)
}

func (s *Service) CreateCarrier(ctx context.Context, in CarrierInput) (*domain.Carrier, error) {
	carrier := &domain.Carrier{
		LegalName: in.LegalName,
		DotNumber: in.DotNumber,
		McNumber:  in.McNumber,
		Phone:     in.Phone,
		Email:     in.Email,
	}
	if err := s.carriers.Create(ctx, carrier); err != nil {
		return nil, err
	}
	return carrier, nil
}

func (s *Service) UpdateCarrier(ctx context.Context, id int64, in CarrierInput) error {
	carrier, err := s.carriers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	carrier.LegalName = in.LegalName
	carrier.DotNumber = in.DotNumber
	carrier.McNumber = in.McNumber
	carrier.Phone = in.Phone
	carrier.Email = in.Email
	return s.carriers.Update(ctx, carrier)
}

func (s *Service) DeleteCarrier(ctx context.Context, id int64) error {
	return s.carriers.Delete(ctx, id)
}

func (s *Service) ListDrivers(ctx context.Context) ([]domain.Driver, error) {
	return s.drivers.List(ctx)
}

func (s *Service) ListDriversByCarrier(ctx context.Context, carrierID int64) ([]domain.Driver, error) {
	return s.drivers.ListByCarrier(ctx, carrierID)
}

func (s *Service) GetDriver(ctx context.Context, id int64) (*domain.Driver, error) {
	return s.drivers.GetByID(ctx, id)
}

func (s *Service) CreateDriver(ctx context.Context, in DriverInput) (*domain.Driver, error) {
	if _, err := s.carriers.GetByID(ctx, in.CarrierID); err != nil {
		return nil, err
	}

	d := &domain.Driver{
		CarrierID:    in.CarrierID,
		FullName:     in.FullName,
		LicenseNo:    in.LicenseNo,
		LicenseState: in.LicenseState,
		Phone:        in.Phone,
	}
	if err := s.drivers.Create(ctx, d); err != nil {
		return nil, err
	}
	return s.drivers.GetByID(ctx, d.ID)
}

func (s *Service) UpdateDriver(ctx context.Context, id int64, in DriverInput) error {
	d, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	d.CarrierID = in.CarrierID
	d.FullName = in.FullName
	d.LicenseNo = in.LicenseNo
	d.LicenseState = in.LicenseState
	d.Phone = in.Phone
	d.Carrier = nil
	return s.drivers.Update(ctx, d)
}

func (s *Service) DeleteDriver(ctx context.Context, id int64) error {
	return s.drivers.Delete(ctx, id)
}
