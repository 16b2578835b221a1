// Package validate holds the write-side field policies: which fields a client
// must send, which are optional, and the non-negative bounds on numeric
// fields. Every mutation runs through one of these inputs before anything is
// persisted, so a violation never partially applies.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	msgRequired = "This field is required."
	msgMinZero  = "Ensure this value is greater than or equal to 0."
)

// FieldErrors maps a field name to its list of messages.
type FieldErrors map[string][]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid input: " + strings.Join(fields, ", ")
}

func (fe FieldErrors) add(field, msg string) { fe[field] = append(fe[field], msg) }

// orNil collapses an empty map to a plain nil error so callers can do a
// simple err != nil check.
func (fe FieldErrors) orNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func requireString(fe FieldErrors, field string, v *string, partial bool) {
	if v == nil && !partial {
		fe.add(field, msgRequired)
	}
}

func requireID(fe FieldErrors, field string, v *int64, partial bool) {
	if v == nil && !partial {
		fe.add(field, msgRequired)
	}
}

func checkInt(fe FieldErrors, field string, v *int64, required, partial bool) {
	if v == nil {
		if required && !partial {
			fe.add(field, msgRequired)
		}
		return
	}
	if *v < 0 {
		fe.add(field, msgMinZero)
	}
}

func checkDecimal(fe FieldErrors, field string, v *decimal.Decimal, required, partial bool) {
	if v == nil {
		if required && !partial {
			fe.add(field, msgRequired)
		}
		return
	}
	if v.IsNegative() {
		fe.add(field, msgMinZero)
	}
}

// NotFoundRef is the message attached to a relation field whose target row
// does not exist.
func NotFoundRef(id int64) string {
	return fmt.Sprintf("Invalid pk %q - object does not exist.", fmt.Sprint(id))
}

// ProductInput is the flat write shape for products. Pointer fields
// distinguish "absent" from zero so the same input serves create and partial
// update.
type ProductInput struct {
	Name         *string          `json:"name"`
	Image        *string          `json:"image"`
	Brand        *string          `json:"brand"`
	Category     *string          `json:"category"`
	Description  *string          `json:"description"`
	Rating       *decimal.Decimal `json:"rating"`
	NumReviews   *int64           `json:"numReviews"`
	Price        *decimal.Decimal `json:"price"`
	CountInStock *int64           `json:"countInStock"`
}

func (in ProductInput) Validate(partial bool) error {
	fe := FieldErrors{}
	requireString(fe, "name", in.Name, partial)
	requireString(fe, "brand", in.Brand, partial)
	requireString(fe, "category", in.Category, partial)
	checkDecimal(fe, "rating", in.Rating, false, partial)
	checkInt(fe, "numReviews", in.NumReviews, false, partial)
	checkDecimal(fe, "price", in.Price, true, partial)
	checkInt(fe, "countInStock", in.CountInStock, true, partial)
	return fe.orNil()
}

// ProductImageInput is the image-only update shape: it replaces nothing but
// the image reference.
type ProductImageInput struct {
	Image *string `json:"image"`
}

func (in ProductImageInput) Validate() error {
	fe := FieldErrors{}
	requireString(fe, "image", in.Image, false)
	return fe.orNil()
}

type ReviewInput struct {
	Product *int64  `json:"product"`
	User    *int64  `json:"user"`
	Name    *string `json:"name"`
	Rating  *int64  `json:"rating"`
	Comment *string `json:"comment"`
}

func (in ReviewInput) Validate(partial bool) error {
	fe := FieldErrors{}
	requireID(fe, "product", in.Product, partial)
	requireID(fe, "user", in.User, partial)
	requireString(fe, "name", in.Name, partial)
	checkInt(fe, "rating", in.Rating, true, partial)
	return fe.orNil()
}

type OrderInput struct {
	User          *int64           `json:"user"`
	PaymentMethod *string          `json:"paymentMethod"`
	TaxPrice      *decimal.Decimal `json:"taxPrice"`
	ShippingPrice *decimal.Decimal `json:"shippingPrice"`
	TotalPrice    *decimal.Decimal `json:"totalPrice"`
	IsPaid        *bool            `json:"isPaid"`
	PaidAt        *string          `json:"paidAt"`
	IsDelivered   *bool            `json:"isDelivered"`
	DeliveredAt   *string          `json:"deliveredAt"`
}

func (in OrderInput) Validate(partial bool) error {
	fe := FieldErrors{}
	requireID(fe, "user", in.User, partial)
	requireString(fe, "paymentMethod", in.PaymentMethod, partial)
	checkDecimal(fe, "taxPrice", in.TaxPrice, true, partial)
	checkDecimal(fe, "shippingPrice", in.ShippingPrice, true, partial)
	checkDecimal(fe, "totalPrice", in.TotalPrice, true, partial)
	return fe.orNil()
}

// ShippingAddressInput has no order field: the owning order always comes from
// request context, never from the client.
type ShippingAddressInput struct {
	Address       *string          `json:"address"`
	City          *string          `json:"city"`
	PostalCode    *string          `json:"postalCode"`
	Country       *string          `json:"country"`
	ShippingPrice *decimal.Decimal `json:"shippingPrice"`
}

func (in ShippingAddressInput) Validate() error {
	fe := FieldErrors{}
	requireString(fe, "address", in.Address, false)
	requireString(fe, "city", in.City, false)
	requireString(fe, "postalCode", in.PostalCode, false)
	requireString(fe, "country", in.Country, false)
	checkDecimal(fe, "shippingPrice", in.ShippingPrice, true, false)
	return fe.orNil()
}

// OrderItemInput: the owning order comes from context. name/price are the
// client's denormalized snapshot; the image snapshot is copied server-side
// from the referenced product.
type OrderItemInput struct {
	Product *int64           `json:"product"`
	Name    *string          `json:"name"`
	Qty     *int64           `json:"qty"`
	Price   *decimal.Decimal `json:"price"`
}

func (in OrderItemInput) Validate() error {
	fe := FieldErrors{}
	requireID(fe, "product", in.Product, false)
	requireString(fe, "name", in.Name, false)
	checkInt(fe, "qty", in.Qty, true, false)
	checkDecimal(fe, "price", in.Price, true, false)
	return fe.orNil()
}
