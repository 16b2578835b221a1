package domain

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Money columns carry two fractional digits,
// rating one; all of them are non-negative. The owning user reference is
// nulled when the user is deleted.
type Product struct {
	ID           int64               `db:"id"`
	Name         sql.NullString      `db:"name"`
	Image        sql.NullString      `db:"image"`
	Brand        sql.NullString      `db:"brand"`
	Category     sql.NullString      `db:"category"`
	Description  sql.NullString      `db:"description"`
	Rating       decimal.NullDecimal `db:"rating"`
	NumReviews   int64               `db:"num_reviews"`
	Price        decimal.NullDecimal `db:"price"`
	CountInStock int64               `db:"count_in_stock"`
	CreatedAt    string              `db:"created_at"`
	UpdatedAt    string              `db:"updated_at"`
	UserID       sql.NullInt64       `db:"user_id"`
}

func (p Product) Label() string { return p.Name.String }

// Review belongs to exactly one product and is cascade-deleted with it.
// ProductName is populated by queries that join the product row.
type Review struct {
	ID          int64          `db:"id"`
	ProductID   int64          `db:"product_id"`
	UserID      sql.NullInt64  `db:"user_id"`
	Name        sql.NullString `db:"name"`
	Rating      int64          `db:"rating"`
	Comment     sql.NullString `db:"comment"`
	CreatedAt   string         `db:"created_at"`
	ProductName string         `db:"product_name"`
}

func (r Review) Label() string { return fmt.Sprintf("%d - %s", r.Rating, r.ProductName) }

// Order header. paid_at / delivered_at are plain optional timestamps and are
// never set implicitly when the matching flag flips.
type Order struct {
	ID            int64               `db:"id"`
	UserID        sql.NullInt64       `db:"user_id"`
	PaymentMethod sql.NullString      `db:"payment_method"`
	TaxPrice      decimal.NullDecimal `db:"tax_price"`
	ShippingPrice decimal.NullDecimal `db:"shipping_price"`
	TotalPrice    decimal.NullDecimal `db:"total_price"`
	IsPaid        bool                `db:"is_paid"`
	PaidAt        sql.NullString      `db:"paid_at"`
	IsDelivered   bool                `db:"is_delivered"`
	DeliveredAt   sql.NullString      `db:"delivered_at"`
	CreatedAt     string              `db:"created_at"`
	UpdatedAt     string              `db:"updated_at"`
}

func (o Order) Label() string { return o.CreatedAt }

// ShippingAddress is one-to-one with its order and cascade-deleted with it.
type ShippingAddress struct {
	ID            int64               `db:"id"`
	OrderID       sql.NullInt64       `db:"order_id"`
	Address       sql.NullString      `db:"address"`
	City          sql.NullString      `db:"city"`
	PostalCode    sql.NullString      `db:"postal_code"`
	Country       sql.NullString      `db:"country"`
	ShippingPrice decimal.NullDecimal `db:"shipping_price"`
	CreatedAt     string              `db:"created_at"`
}

func (s ShippingAddress) Label() string {
	return fmt.Sprintf("%s, %s, %s, %s", s.Address.String, s.City.String, s.PostalCode.String, s.Country.String)
}

// OrderItem keeps denormalized name/price/image snapshots so order history
// survives later product edits or deletion. The product reference is nulled
// if the product goes away; the row itself stays.
type OrderItem struct {
	ID        int64               `db:"id"`
	ProductID sql.NullInt64       `db:"product_id"`
	OrderID   int64               `db:"order_id"`
	Name      sql.NullString      `db:"name"`
	Qty       int64               `db:"qty"`
	Price     decimal.NullDecimal `db:"price"`
	Image     sql.NullString      `db:"image"`
}

func (i OrderItem) Label() string { return fmt.Sprintf("%s - %d", i.Name.String, i.OrderID) }
