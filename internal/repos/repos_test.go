package repos

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

// testDB opens a uniquely named shared-cache in-memory database so every test
// gets its own store while the sqlx pool still sees a single database.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := OpenDB("file:"+uuid.NewString()+"?mode=memory&cache=shared", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedUser(t *testing.T, db *sqlx.DB, username string) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO users(username,email,password_hash) VALUES(?,?,'x')`, username, username+"@storefront.test")
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func dec(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func nstr(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }

func seedProduct(t *testing.T, db *sqlx.DB, name string, userID int64) domain.Product {
	t.Helper()
	p := domain.Product{
		Name:         nstr(name),
		Image:        nstr("/images/" + name + ".jpg"),
		Brand:        nstr("Apple"),
		Category:     nstr("Electronics"),
		Price:        dec("89.99"),
		CountInStock: 5,
		UserID:       sql.NullInt64{Int64: userID, Valid: userID != 0},
	}
	require.NoError(t, NewProductRepo(db).Create(&p))
	return p
}

func TestProductCreateSetsTimestamps(t *testing.T) {
	db := testDB(t)
	uid := seedUser(t, db, "alice")
	p := seedProduct(t, db, "airpods", uid)

	got, err := NewProductRepo(db).Get(p.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, got.CreatedAt)
	assert.NotEmpty(t, got.UpdatedAt)
	assert.Equal(t, "89.99", got.Price.Decimal.String())
	assert.Equal(t, int64(5), got.CountInStock)
	assert.Equal(t, "airpods", got.Label())
}

func TestProductGetMissing(t *testing.T) {
	db := testDB(t)
	_, err := NewProductRepo(db).Get(42)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNegativeValuesRejectedByStore(t *testing.T) {
	// The validation layer rejects these first; the CHECK constraints are the
	// storage-side backstop, and a violation must leave the table unchanged.
	db := testDB(t)
	_, err := db.Exec(`INSERT INTO products(name, price) VALUES('bad', -1)`)
	require.Error(t, err)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM products`))
	assert.Zero(t, n)
}

func TestUserDeleteNullifiesReferences(t *testing.T) {
	db := testDB(t)
	uid := seedUser(t, db, "alice")
	p := seedProduct(t, db, "airpods", uid)

	reviews := NewReviewRepo(db)
	rv := domain.Review{ProductID: p.ID, UserID: sql.NullInt64{Int64: uid, Valid: true}, Name: nstr("Alice"), Rating: 4}
	require.NoError(t, reviews.Create(&rv))

	orders := NewOrderRepo(db)
	o := domain.Order{
		UserID:        sql.NullInt64{Int64: uid, Valid: true},
		PaymentMethod: nstr("PayPal"),
		TaxPrice:      dec("1.00"),
		ShippingPrice: dec("2.00"),
		TotalPrice:    dec("92.99"),
	}
	require.NoError(t, orders.Create(&o))

	require.NoError(t, NewUserRepo(db).Delete(uid))

	gotP, err := NewProductRepo(db).Get(p.ID)
	require.NoError(t, err)
	assert.False(t, gotP.UserID.Valid, "product.user must be nulled, not deleted")

	gotR, err := reviews.Get(rv.ID)
	require.NoError(t, err)
	assert.False(t, gotR.UserID.Valid)

	gotO, err := orders.Get(o.ID)
	require.NoError(t, err)
	assert.False(t, gotO.UserID.Valid)
}

func TestProductDeleteCascadesReviewsAndNullsOrderItems(t *testing.T) {
	db := testDB(t)
	uid := seedUser(t, db, "alice")
	p := seedProduct(t, db, "airpods", uid)

	reviews := NewReviewRepo(db)
	rv := domain.Review{ProductID: p.ID, UserID: sql.NullInt64{Int64: uid, Valid: true}, Name: nstr("Alice"), Rating: 4}
	require.NoError(t, reviews.Create(&rv))

	orders := NewOrderRepo(db)
	o := domain.Order{UserID: sql.NullInt64{Int64: uid, Valid: true}, PaymentMethod: nstr("PayPal"), TaxPrice: dec("0"), ShippingPrice: dec("0"), TotalPrice: dec("89.99")}
	require.NoError(t, orders.Create(&o))
	it := domain.OrderItem{
		ProductID: sql.NullInt64{Int64: p.ID, Valid: true},
		OrderID:   o.ID,
		Name:      nstr("airpods"),
		Qty:       1,
		Price:     dec("89.99"),
		Image:     p.Image,
	}
	require.NoError(t, orders.InsertItem(&it))

	require.NoError(t, NewProductRepo(db).Delete(p.ID))

	_, err := reviews.Get(rv.ID)
	require.ErrorIs(t, err, domain.ErrNotFound, "reviews are cascade-deleted with their product")

	items, err := orders.Items(o.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	got := items[0]
	assert.False(t, got.ProductID.Valid, "item's product reference must be nulled")
	assert.Equal(t, "airpods", got.Name.String, "denormalized snapshot survives product deletion")
	assert.Equal(t, "89.99", got.Price.Decimal.String())
	assert.Equal(t, "/images/airpods.jpg", got.Image.String)
}

func TestOrderDeleteCascadesItemsAndShipping(t *testing.T) {
	db := testDB(t)
	uid := seedUser(t, db, "alice")
	p := seedProduct(t, db, "airpods", uid)

	orders := NewOrderRepo(db)
	o := domain.Order{UserID: sql.NullInt64{Int64: uid, Valid: true}, PaymentMethod: nstr("PayPal"), TaxPrice: dec("0"), ShippingPrice: dec("0"), TotalPrice: dec("89.99")}
	require.NoError(t, orders.Create(&o))
	it := domain.OrderItem{ProductID: sql.NullInt64{Int64: p.ID, Valid: true}, OrderID: o.ID, Name: nstr("airpods"), Qty: 2, Price: dec("89.99")}
	require.NoError(t, orders.InsertItem(&it))
	sa := domain.ShippingAddress{
		OrderID:       sql.NullInt64{Int64: o.ID, Valid: true},
		Address:       nstr("1 Main St"),
		City:          nstr("College Park"),
		PostalCode:    nstr("20742"),
		Country:       nstr("USA"),
		ShippingPrice: dec("4.99"),
	}
	require.NoError(t, orders.SetShipping(&sa))

	require.NoError(t, orders.Delete(o.ID))

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM order_items WHERE order_id = ?`, o.ID))
	assert.Zero(t, n, "items cascade with the order")
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM shipping_addresses WHERE order_id = ?`, o.ID))
	assert.Zero(t, n, "shipping address cascades with the order")
}

func TestShippingAddressOnePerOrder(t *testing.T) {
	db := testDB(t)
	uid := seedUser(t, db, "alice")

	orders := NewOrderRepo(db)
	o := domain.Order{UserID: sql.NullInt64{Int64: uid, Valid: true}, PaymentMethod: nstr("PayPal"), TaxPrice: dec("0"), ShippingPrice: dec("0"), TotalPrice: dec("10.00")}
	require.NoError(t, orders.Create(&o))

	sa := domain.ShippingAddress{OrderID: sql.NullInt64{Int64: o.ID, Valid: true}, Address: nstr("1 Main St"), City: nstr("College Park"), PostalCode: nstr("20742"), Country: nstr("USA"), ShippingPrice: dec("4.99")}
	require.NoError(t, orders.SetShipping(&sa))

	dup := domain.ShippingAddress{OrderID: sql.NullInt64{Int64: o.ID, Valid: true}, Address: nstr("2 Main St"), City: nstr("College Park"), PostalCode: nstr("20742"), Country: nstr("USA"), ShippingPrice: dec("4.99")}
	err := orders.SetShipping(&dup)
	require.ErrorIs(t, err, domain.ErrConflict)

	got, err := orders.ShippingByOrder(o.ID)
	require.NoError(t, err)
	assert.Equal(t, "1 Main St", got.Address.String)
	assert.Equal(t, "1 Main St, College Park, 20742, USA", got.Label())
}

func TestReviewUpdateTouchesOnlyRatingAndComment(t *testing.T) {
	db := testDB(t)
	uid := seedUser(t, db, "alice")
	p := seedProduct(t, db, "airpods", uid)

	reviews := NewReviewRepo(db)
	rv := domain.Review{ProductID: p.ID, UserID: sql.NullInt64{Int64: uid, Valid: true}, Name: nstr("Alice"), Rating: 3}
	require.NoError(t, reviews.Create(&rv))

	created, err := reviews.Get(rv.ID)
	require.NoError(t, err)

	created.Rating = 5
	created.Comment = nstr("great")
	require.NoError(t, reviews.Update(created))

	got, err := reviews.Get(rv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Rating)
	assert.Equal(t, "great", got.Comment.String)
	assert.Equal(t, "Alice", got.Name.String)
	assert.Equal(t, created.CreatedAt, got.CreatedAt, "created_at is immutable")
	assert.Equal(t, "5 - airpods", got.Label())
}

func TestItemProducts(t *testing.T) {
	db := testDB(t)
	uid := seedUser(t, db, "alice")
	p1 := seedProduct(t, db, "airpods", uid)
	p2 := seedProduct(t, db, "camera", uid)

	orders := NewOrderRepo(db)
	o := domain.Order{UserID: sql.NullInt64{Int64: uid, Valid: true}, PaymentMethod: nstr("PayPal"), TaxPrice: dec("0"), ShippingPrice: dec("0"), TotalPrice: dec("179.98")}
	require.NoError(t, orders.Create(&o))
	for _, p := range []domain.Product{p1, p2} {
		it := domain.OrderItem{ProductID: sql.NullInt64{Int64: p.ID, Valid: true}, OrderID: o.ID, Name: p.Name, Qty: 1, Price: dec("89.99")}
		require.NoError(t, orders.InsertItem(&it))
	}

	items, err := orders.Items(o.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	products, err := orders.ItemProducts(items)
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, "airpods", products[p1.ID].Name.String)
	assert.Equal(t, "camera", products[p2.ID].Name.String)
}
