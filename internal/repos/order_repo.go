package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `
  id, user_id, payment_method, tax_price, shipping_price, total_price,
  is_paid, paid_at, is_delivered, delivered_at,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *OrderRepo) List() ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `SELECT`+orderCols+` FROM orders ORDER BY id`)
	return out, err
}

func (r *OrderRepo) Get(id int64) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT`+orderCols+` FROM orders WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	return o, err
}

func (r *OrderRepo) Create(o *domain.Order) error {
	res, err := r.db.Exec(`
	  INSERT INTO orders(user_id, payment_method, tax_price, shipping_price, total_price,
	                     is_paid, paid_at, is_delivered, delivered_at, updated_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, o.UserID, o.PaymentMethod, o.TaxPrice, o.ShippingPrice, o.TotalPrice,
		o.IsPaid, o.PaidAt, o.IsDelivered, o.DeliveredAt)
	if err != nil {
		return err
	}
	o.ID, err = res.LastInsertId()
	return err
}

// Delete removes the order; items and the shipping address go with it via
// the declared cascade.
func (r *OrderRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	return err
}

func (r *OrderRepo) InsertItem(it *domain.OrderItem) error {
	res, err := r.db.Exec(`
	  INSERT INTO order_items(product_id, order_id, name, qty, price, image)
	  VALUES(?, ?, ?, ?, ?, ?)
	`, it.ProductID, it.OrderID, it.Name, it.Qty, it.Price, it.Image)
	if err != nil {
		return err
	}
	it.ID, err = res.LastInsertId()
	return err
}

func (r *OrderRepo) Items(orderID int64) ([]domain.OrderItem, error) {
	var out []domain.OrderItem
	err := r.db.Select(&out, `
	  SELECT id, product_id, order_id, name, qty, price, image
	  FROM order_items
	  WHERE order_id = ?
	  ORDER BY id`, orderID)
	return out, err
}

// ItemProducts loads the still-existing products referenced by the given
// items, keyed by product id. Items whose product was deleted simply have no
// entry.
func (r *OrderRepo) ItemProducts(items []domain.OrderItem) (map[int64]domain.Product, error) {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if it.ProductID.Valid {
			ids = append(ids, it.ProductID.Int64)
		}
	}
	products := make(map[int64]domain.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	query, args, err := sqlx.In(`SELECT`+productCols+` FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var rows []domain.Product
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, err
	}
	for _, p := range rows {
		products[p.ID] = p
	}
	return products, nil
}

// SetShipping inserts the order's shipping address inside a transaction; a
// second address for the same order is a conflict, enforced both here and by
// the unique index.
func (r *OrderRepo) SetShipping(sa *domain.ShippingAddress) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM shipping_addresses WHERE order_id = ?`, sa.OrderID); err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("order %d shipping address: %w", sa.OrderID.Int64, domain.ErrConflict)
	}

	res, err := tx.Exec(`
	  INSERT INTO shipping_addresses(order_id, address, city, postal_code, country, shipping_price)
	  VALUES(?, ?, ?, ?, ?, ?)
	`, sa.OrderID, sa.Address, sa.City, sa.PostalCode, sa.Country, sa.ShippingPrice)
	if err != nil {
		return err
	}
	if sa.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *OrderRepo) ShippingByOrder(orderID int64) (domain.ShippingAddress, error) {
	var sa domain.ShippingAddress
	err := r.db.Get(&sa, `
	  SELECT id, order_id, address, city, postal_code, country, shipping_price, created_at
	  FROM shipping_addresses
	  WHERE order_id = ?`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ShippingAddress{}, fmt.Errorf("order %d shipping address: %w", orderID, domain.ErrNotFound)
	}
	return sa, err
}
