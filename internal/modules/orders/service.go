package orders

import (
	"context"

	"usagl/internal/domain"
	"usagl/internal/repository"
)

type Service struct {
	customers *repository.CustomerRepository
	orders    *repository.OrderRepository
}

func NewService(customers *repository.CustomerRepository, orders *repository.OrderRepository) *Service {
	return &Service{customers: customers, orders: orders}
}

func (s *Service) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}

func (s *Service) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *Service) CreateCustomer(ctx context.Context, in CustomerInput) (*domain.Customer, error) {
	c := &domain.Customer{
		Name:         in.Name,
		ContactEmail: in.ContactEmail,
		Phone:        in.Phone,
		BillingTerms: in.BillingTerms,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) UpdateCustomer(ctx context.Context, id int64, in CustomerInput) error {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.Name = in.Name
	c.ContactEmail = in.ContactEmail
	c.Phone = in.Phone
	c.BillingTerms = in.BillingTerms
	return s.customers.Update(ctx, c)
}

func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	return s.customers.Delete(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

func (s *Service) ListOrdersByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *Service) CreateOrder(ctx context.Context, in OrderInput) (*domain.Order, error) {
	status := domain.OrderNew
	if in.Status != "" {
		status = domain.OrderStatus(in.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	// The customer must exist; a dangling order is useless to dispatch.
	if _, err := s.customers.GetByID(ctx, in.CustomerID); err != nil {
		return nil, err
	}

	o := &domain.Order{
		CustomerID: in.CustomerID,
		Status:     status,
		Notes:      in.Notes,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) UpdateOrder(ctx context.Context, id int64, in OrderInput) error {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if in.Status != "" {
		status := domain.OrderStatus(in.Status)
		if !status.Valid() {
			return ErrInvalidStatus
		}
		o.Status = status
	}
	o.CustomerID = in.CustomerID
	o.Notes = in.Notes

	return s.orders.Update(ctx, o)
}

func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	return s.orders.Delete(ctx, id)
}
