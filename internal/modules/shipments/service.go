package shipments

import (
	"context"
	"time"

	"usagl/internal/domain"
	"usagl/internal/repository"
)

type Service struct {
	shipments *repository.ShipmentRepository
	locations *repository.LocationRepository
	orders    *repository.OrderRepository
	hub       *Hub
}

func NewService(
	shipments *repository.ShipmentRepository,
	locations *repository.LocationRepository,
	orders *repository.OrderRepository,
	hub *Hub,
) *Service {
	return &Service{
		shipments: shipments,
		locations: locations,
		orders:    orders,
		hub:       hub,
	}
}

/* ---------- LOCATIONS ---------- */

func (s *Service) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return s.locations.List(ctx)
}

func (s *Service) GetLocation(ctx context.Context, id int64) (*domain.Location, error) {
	return s.locations.GetByID(ctx, id)
}

func (s *Service) CreateLocation(ctx context.Context, in LocationInput) (*domain.Location, error) {
	l := &domain.Location{
		Name:     in.Name,
		Address1: in.Address1,
		City:     in.City,
		State:    in.State,
		Zip:      in.Zip,
		Lat:      in.Lat,
		Lng:      in.Lng,
	}
	if err := s.locations.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) UpdateLocation(ctx context.Context, id int64, in LocationInput) error {
	l, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	l.Name = in.Name
	l.Address1 = in.Address1
	l.City = in.City
	l.State = in.State
	l.Zip = in.Zip
	l.Lat = in.Lat
	l.Lng = in.Lng
	return s.locations.Update(ctx, l)
}

func (s *Service) DeleteLocation(ctx context.Context, id int64) error {
	return s.locations.Delete(ctx, id)
}

/* ---------- SHIPMENTS ---------- */

func (s *Service) ListShipments(ctx context.Context) ([]domain.Shipment, error) {
	return s.shipments.List(ctx)
}

func (s *Service) GetShipment(ctx context.Context, id int64) (*ShipmentDetail, error) {
	shipment, err := s.shipments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	vehicles, err := s.shipments.Vehicles(ctx, id)
	if err != nil {
		return nil, err
	}

	assignments, err := s.shipments.Drivers(ctx, id)
	if err != nil {
		return nil, err
	}

	drivers := make([]ShipmentDriverOut, 0, len(assignments))
	for _, a := range assignments {
		drivers = append(drivers, ShipmentDriverOut{
			DriverID: a.DriverID,
			Role:     a.Role,
			Driver:   a.Driver,
		})
	}

	return &ShipmentDetail{
		Shipment: shipment,
		Vehicles: vehicles,
		Drivers:  drivers,
	}, nil
}

func (s *Service) CreateShipment(ctx context.Context, in ShipmentInput) (*ShipmentDetail, error) {
	status := domain.ShipmentCreated
	if in.Status != "" {
		status = domain.ShipmentStatus(in.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	if _, err := s.orders.GetByID(ctx, in.OrderID); err != nil {
		return nil, err
	}
	if _, err := s.locations.GetByID(ctx, in.PickupLocationID); err != nil {
		return nil, err
	}
	if _, err := s.locations.GetByID(ctx, in.DeliveryLocationID); err != nil {
		return nil, err
	}

	shipment := &domain.Shipment{
		OrderID:            in.OrderID,
		PickupLocationID:   in.PickupLocationID,
		DeliveryLocationID: in.DeliveryLocationID,
		ScheduledPickup:    in.ScheduledPickup,
		ScheduledDelivery:  in.ScheduledDelivery,
		Status:             status,
		PriceUsd:           in.PriceUsd,
	}
	if err := s.shipments.Create(ctx, shipment); err != nil {
		return nil, err
	}

	return s.GetShipment(ctx, shipment.ID)
}

func (s *Service) UpdateShipment(ctx context.Context, id int64, in ShipmentInput) error {
	shipment, err := s.shipments.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if in.Status != "" {
		status := domain.ShipmentStatus(in.Status)
		if !status.Valid() {
			return ErrInvalidStatus
		}
		shipment.Status = status
	}
	shipment.OrderID = in.OrderID
	shipment.PickupLocationID = in.PickupLocationID
	shipment.DeliveryLocationID = in.DeliveryLocationID
	shipment.ScheduledPickup = in.ScheduledPickup
	shipment.ScheduledDelivery = in.ScheduledDelivery
	shipment.PriceUsd = in.PriceUsd
	shipment.PickupLocation = nil
	shipment.DeliveryLocation = nil

	return s.shipments.Update(ctx, shipment)
}

func (s *Service) DeleteShipment(ctx context.Context, id int64) error {
	return s.shipments.Delete(ctx, id)
}

// ChangeStatus updates the load status and notifies connected dashboards.
func (s *Service) ChangeStatus(ctx context.Context, id int64, in StatusChangeInput) (*domain.Shipment, error) {
	status := domain.ShipmentStatus(in.Status)
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	if err := s.shipments.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Broadcast(StatusEvent{
			ShipmentID: id,
			Status:     status,
			At:         time.Now().UTC(),
		})
	}

	return s.shipments.GetByID(ctx, id)
}

/* ---------- ASSIGNMENTS ---------- */

func (s *Service) AssignVehicles(ctx context.Context, shipmentID int64, vehicleIDs []int64) error {
	if _, err := s.shipments.GetByID(ctx, shipmentID); err != nil {
		return err
	}
	return s.shipments.AssignVehicles(ctx, shipmentID, dedupe(vehicleIDs))
}

func (s *Service) RemoveVehicle(ctx context.Context, shipmentID, vehicleID int64) error {
	return s.shipments.RemoveVehicle(ctx, shipmentID, vehicleID)
}

func (s *Service) AssignDrivers(ctx context.Context, shipmentID int64, items []AssignDriverInput) error {
	if _, err := s.shipments.GetByID(ctx, shipmentID); err != nil {
		return err
	}

	links := make([]domain.ShipmentDriver, 0, len(items))
	for _, item := range items {
		links = append(links, domain.ShipmentDriver{
			ShipmentID: shipmentID,
			DriverID:   item.DriverID,
			Role:       item.Role,
		})
	}
	return s.shipments.AssignDrivers(ctx, shipmentID, links)
}

func (s *Service) RemoveDriver(ctx context.Context, shipmentID, driverID int64) error {
	return s.shipments.RemoveDriver(ctx, shipmentID, driverID)
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
