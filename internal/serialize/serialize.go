// Package serialize defines the two representation depths of every entity:
// the flat shape (relations as bare identifiers, used for lists and writes)
// and the detail shape (relations expanded into nested objects, used for
// single-resource reads). Each entity gets an explicit projection function
// per shape; detail projections call into other entities' projections.
package serialize

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

func strPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func intPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func decPtr(v decimal.NullDecimal) *decimal.Decimal {
	if !v.Valid {
		return nil
	}
	d := v.Decimal
	return &d
}

// tsPtr turns the storage layer's empty-string "never updated/paid" marker
// into JSON null.
func tsPtr(v sql.NullString) *string {
	if !v.Valid || v.String == "" {
		return nil
	}
	s := v.String
	return &s
}

type UserOut struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func UserToOut(u domain.User) UserOut {
	return UserOut{ID: u.ID, Username: u.Username, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}

type ProductFlat struct {
	ID           int64            `json:"_id"`
	Name         *string          `json:"name"`
	Image        *string          `json:"image"`
	Brand        *string          `json:"brand"`
	Category     *string          `json:"category"`
	Description  *string          `json:"description"`
	Rating       *decimal.Decimal `json:"rating"`
	NumReviews   int64            `json:"numReviews"`
	Price        *decimal.Decimal `json:"price"`
	CountInStock int64            `json:"countInStock"`
}

func ProductToFlat(p domain.Product) ProductFlat {
	return ProductFlat{
		ID:           p.ID,
		Name:         strPtr(p.Name),
		Image:        strPtr(p.Image),
		Brand:        strPtr(p.Brand),
		Category:     strPtr(p.Category),
		Description:  strPtr(p.Description),
		Rating:       decPtr(p.Rating),
		NumReviews:   p.NumReviews,
		Price:        decPtr(p.Price),
		CountInStock: p.CountInStock,
	}
}

func ProductsToFlat(ps []domain.Product) []ProductFlat {
	out := make([]ProductFlat, 0, len(ps))
	for _, p := range ps {
		out = append(out, ProductToFlat(p))
	}
	return out
}

// ProductDetail additionally exposes the server-set timestamps and the owning
// user reference.
type ProductDetail struct {
	ProductFlat
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	User      *int64 `json:"user"`
}

func ProductToDetail(p domain.Product) ProductDetail {
	return ProductDetail{
		ProductFlat: ProductToFlat(p),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		User:        intPtr(p.UserID),
	}
}

type ReviewFlat struct {
	ID        int64   `json:"id"`
	Product   int64   `json:"product"`
	User      *int64  `json:"user"`
	Name      *string `json:"name"`
	Rating    int64   `json:"rating"`
	Comment   *string `json:"comment"`
	CreatedAt string  `json:"created_at"`
}

func ReviewToFlat(r domain.Review) ReviewFlat {
	return ReviewFlat{
		ID:        r.ID,
		Product:   r.ProductID,
		User:      intPtr(r.UserID),
		Name:      strPtr(r.Name),
		Rating:    r.Rating,
		Comment:   strPtr(r.Comment),
		CreatedAt: r.CreatedAt,
	}
}

func ReviewsToFlat(rs []domain.Review) []ReviewFlat {
	out := make([]ReviewFlat, 0, len(rs))
	for _, r := range rs {
		out = append(out, ReviewToFlat(r))
	}
	return out
}

type ReviewDetail struct {
	ID        int64       `json:"id"`
	Product   ProductFlat `json:"product"`
	User      *UserOut    `json:"user"`
	Name      *string     `json:"name"`
	Rating    int64       `json:"rating"`
	Comment   *string     `json:"comment"`
	CreatedAt string      `json:"created_at"`
}

func ReviewToDetail(r domain.Review, p domain.Product, u *domain.User) ReviewDetail {
	d := ReviewDetail{
		ID:        r.ID,
		Product:   ProductToFlat(p),
		Name:      strPtr(r.Name),
		Rating:    r.Rating,
		Comment:   strPtr(r.Comment),
		CreatedAt: r.CreatedAt,
	}
	if u != nil {
		out := UserToOut(*u)
		d.User = &out
	}
	return d
}

type OrderFlat struct {
	ID            int64            `json:"id"`
	User          *int64           `json:"user"`
	PaymentMethod *string          `json:"paymentMethod"`
	TaxPrice      *decimal.Decimal `json:"taxPrice"`
	ShippingPrice *decimal.Decimal `json:"shippingPrice"`
	TotalPrice    *decimal.Decimal `json:"totalPrice"`
	IsPaid        bool             `json:"isPaid"`
	PaidAt        *string          `json:"paidAt"`
	IsDelivered   bool             `json:"isDelivered"`
	DeliveredAt   *string          `json:"deliveredAt"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
}

func OrderToFlat(o domain.Order) OrderFlat {
	return OrderFlat{
		ID:            o.ID,
		User:          intPtr(o.UserID),
		PaymentMethod: strPtr(o.PaymentMethod),
		TaxPrice:      decPtr(o.TaxPrice),
		ShippingPrice: decPtr(o.ShippingPrice),
		TotalPrice:    decPtr(o.TotalPrice),
		IsPaid:        o.IsPaid,
		PaidAt:        tsPtr(o.PaidAt),
		IsDelivered:   o.IsDelivered,
		DeliveredAt:   tsPtr(o.DeliveredAt),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func OrdersToFlat(os []domain.Order) []OrderFlat {
	out := make([]OrderFlat, 0, len(os))
	for _, o := range os {
		out = append(out, OrderToFlat(o))
	}
	return out
}

type OrderItemFlat struct {
	ID      int64            `json:"id"`
	Product *int64           `json:"product"`
	Order   int64            `json:"order"`
	Name    *string          `json:"name"`
	Qty     int64            `json:"qty"`
	Price   *decimal.Decimal `json:"price"`
}

func OrderItemToFlat(i domain.OrderItem) OrderItemFlat {
	return OrderItemFlat{
		ID:      i.ID,
		Product: intPtr(i.ProductID),
		Order:   i.OrderID,
		Name:    strPtr(i.Name),
		Qty:     i.Qty,
		Price:   decPtr(i.Price),
	}
}

// OrderItemDetail expands the product reference into a full flat product, or
// null when the product has since been deleted.
type OrderItemDetail struct {
	ID      int64            `json:"id"`
	Product *ProductFlat     `json:"product"`
	Order   int64            `json:"order"`
	Name    *string          `json:"name"`
	Qty     int64            `json:"qty"`
	Price   *decimal.Decimal `json:"price"`
}

func OrderItemToDetail(i domain.OrderItem, products map[int64]domain.Product) OrderItemDetail {
	d := OrderItemDetail{
		ID:    i.ID,
		Order: i.OrderID,
		Name:  strPtr(i.Name),
		Qty:   i.Qty,
		Price: decPtr(i.Price),
	}
	if i.ProductID.Valid {
		if p, ok := products[i.ProductID.Int64]; ok {
			flat := ProductToFlat(p)
			d.Product = &flat
		}
	}
	return d
}

type OrderDetail struct {
	OrderFlat
	OrderItems []OrderItemDetail `json:"order_items"`
}

func OrderToDetail(o domain.Order, items []domain.OrderItem, products map[int64]domain.Product) OrderDetail {
	d := OrderDetail{OrderFlat: OrderToFlat(o), OrderItems: make([]OrderItemDetail, 0, len(items))}
	for _, it := range items {
		d.OrderItems = append(d.OrderItems, OrderItemToDetail(it, products))
	}
	return d
}

type ShippingAddressFlat struct {
	ID            int64            `json:"id"`
	Order         *int64           `json:"order"`
	Address       *string          `json:"address"`
	City          *string          `json:"city"`
	PostalCode    *string          `json:"postalCode"`
	Country       *string          `json:"country"`
	ShippingPrice *decimal.Decimal `json:"shippingPrice"`
	CreatedAt     string           `json:"created_at"`
}

func ShippingAddressToFlat(s domain.ShippingAddress) ShippingAddressFlat {
	return ShippingAddressFlat{
		ID:            s.ID,
		Order:         intPtr(s.OrderID),
		Address:       strPtr(s.Address),
		City:          strPtr(s.City),
		PostalCode:    strPtr(s.PostalCode),
		Country:       strPtr(s.Country),
		ShippingPrice: decPtr(s.ShippingPrice),
		CreatedAt:     s.CreatedAt,
	}
}

// ShippingAddressDetail nests the owning order's detail shape, which in turn
// expands its items and their products.
type ShippingAddressDetail struct {
	ID            int64            `json:"id"`
	Order         *OrderDetail     `json:"order"`
	Address       *string          `json:"address"`
	City          *string          `json:"city"`
	PostalCode    *string          `json:"postalCode"`
	Country       *string          `json:"country"`
	ShippingPrice *decimal.Decimal `json:"shippingPrice"`
	CreatedAt     string           `json:"created_at"`
}

func ShippingAddressToDetail(s domain.ShippingAddress, order *OrderDetail) ShippingAddressDetail {
	return ShippingAddressDetail{
		ID:            s.ID,
		Order:         order,
		Address:       strPtr(s.Address),
		City:          strPtr(s.City),
		PostalCode:    strPtr(s.PostalCode),
		Country:       strPtr(s.Country),
		ShippingPrice: decPtr(s.ShippingPrice),
		CreatedAt:     s.CreatedAt,
	}
}
