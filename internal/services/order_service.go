package services

import (
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/validate"
)

type OrderService struct {
	Orders *repos.OrderRepo
	Prods  *repos.ProductRepo
	Users  *repos.UserRepo
}

func NewOrderService(orders *repos.OrderRepo, prods *repos.ProductRepo, users *repos.UserRepo) *OrderService {
	return &OrderService{Orders: orders, Prods: prods, Users: users}
}

func (s *OrderService) List() ([]domain.Order, error) { return s.Orders.List() }

func (s *OrderService) Get(id int64) (domain.Order, error) { return s.Orders.Get(id) }

func (s *OrderService) Create(in validate.OrderInput) (domain.Order, error) {
	if err := in.Validate(false); err != nil {
		return domain.Order{}, err
	}
	if ok, err := s.Users.Exists(*in.User); err != nil {
		return domain.Order{}, err
	} else if !ok {
		return domain.Order{}, validate.FieldErrors{"user": {validate.NotFoundRef(*in.User)}}
	}

	o := domain.Order{
		UserID:        sql.NullInt64{Int64: *in.User, Valid: true},
		PaymentMethod: sql.NullString{String: *in.PaymentMethod, Valid: true},
		TaxPrice:      decimal.NullDecimal{Decimal: in.TaxPrice.Round(2), Valid: true},
		ShippingPrice: decimal.NullDecimal{Decimal: in.ShippingPrice.Round(2), Valid: true},
		TotalPrice:    decimal.NullDecimal{Decimal: in.TotalPrice.Round(2), Valid: true},
	}
	// Flags default to false; the matching timestamps stay null unless the
	// client supplied them explicitly.
	if in.IsPaid != nil {
		o.IsPaid = *in.IsPaid
	}
	if in.PaidAt != nil {
		o.PaidAt = sql.NullString{String: *in.PaidAt, Valid: true}
	}
	if in.IsDelivered != nil {
		o.IsDelivered = *in.IsDelivered
	}
	if in.DeliveredAt != nil {
		o.DeliveredAt = sql.NullString{String: *in.DeliveredAt, Valid: true}
	}
	if err := s.Orders.Create(&o); err != nil {
		return domain.Order{}, err
	}
	return s.Orders.Get(o.ID)
}

func (s *OrderService) Delete(id int64) error { return s.Orders.Delete(id) }

// AddItem attaches a line item to an existing order. The order reference
// comes from context, never from the body; the image snapshot is copied from
// the referenced product at insert time.
func (s *OrderService) AddItem(orderID int64, in validate.OrderItemInput) (domain.OrderItem, error) {
	if _, err := s.Orders.Get(orderID); err != nil {
		return domain.OrderItem{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.OrderItem{}, err
	}
	p, err := s.Prods.Get(*in.Product)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.OrderItem{}, validate.FieldErrors{"product": {validate.NotFoundRef(*in.Product)}}
		}
		return domain.OrderItem{}, err
	}

	it := domain.OrderItem{
		ProductID: sql.NullInt64{Int64: p.ID, Valid: true},
		OrderID:   orderID,
		Name:      sql.NullString{String: *in.Name, Valid: true},
		Qty:       *in.Qty,
		Price:     decimal.NullDecimal{Decimal: in.Price.Round(2), Valid: true},
		Image:     p.Image,
	}
	if err := s.Orders.InsertItem(&it); err != nil {
		return domain.OrderItem{}, err
	}
	return it, nil
}

// Detail loads the order with its items and the products the items still
// reference.
func (s *OrderService) Detail(id int64) (domain.Order, []domain.OrderItem, map[int64]domain.Product, error) {
	o, err := s.Orders.Get(id)
	if err != nil {
		return domain.Order{}, nil, nil, err
	}
	items, err := s.Orders.Items(id)
	if err != nil {
		return domain.Order{}, nil, nil, err
	}
	products, err := s.Orders.ItemProducts(items)
	if err != nil {
		return domain.Order{}, nil, nil, err
	}
	return o, items, products, nil
}

// SetShipping creates the order's one shipping address; a second call for
// the same order conflicts.
func (s *OrderService) SetShipping(orderID int64, in validate.ShippingAddressInput) (domain.ShippingAddress, error) {
	if _, err := s.Orders.Get(orderID); err != nil {
		return domain.ShippingAddress{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.ShippingAddress{}, err
	}
	sa := domain.ShippingAddress{
		OrderID:       sql.NullInt64{Int64: orderID, Valid: true},
		Address:       sql.NullString{String: *in.Address, Valid: true},
		City:          sql.NullString{String: *in.City, Valid: true},
		PostalCode:    sql.NullString{String: *in.PostalCode, Valid: true},
		Country:       sql.NullString{String: *in.Country, Valid: true},
		ShippingPrice: decimal.NullDecimal{Decimal: in.ShippingPrice.Round(2), Valid: true},
	}
	if err := s.Orders.SetShipping(&sa); err != nil {
		return domain.ShippingAddress{}, err
	}
	return s.Orders.ShippingByOrder(orderID)
}

// ShippingDetail returns the address plus everything its detail shape nests:
// the order, its items, and their products.
func (s *OrderService) ShippingDetail(orderID int64) (domain.ShippingAddress, domain.Order, []domain.OrderItem, map[int64]domain.Product, error) {
	sa, err := s.Orders.ShippingByOrder(orderID)
	if err != nil {
		return domain.ShippingAddress{}, domain.Order{}, nil, nil, err
	}
	o, items, products, err := s.Detail(orderID)
	if err != nil {
		return domain.ShippingAddress{}, domain.Order{}, nil, nil, err
	}
	return sa, o, items, products, nil
}
