package repos

import (
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// OpenDB opens the sqlite store, applies the schema and, when asked, seeds
// demo data. Foreign-key enforcement is forced through the DSN so every
// pooled connection gets it, not only the one that ran the schema.
func OpenDB(dsn string, seed bool) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", withForeignKeys(dsn))
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if seed {
		if err := seedIfEmpty(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users (mirror of the external auth provider; referenced, never authenticated)
CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL,
  first_name TEXT NOT NULL DEFAULT '',
  last_name TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT,
  image TEXT,
  brand TEXT,
  category TEXT,
  description TEXT,
  rating NUMERIC CHECK (rating IS NULL OR rating >= 0),
  num_reviews INTEGER NOT NULL DEFAULT 0 CHECK (num_reviews >= 0),
  price NUMERIC CHECK (price IS NULL OR price >= 0),
  count_in_stock INTEGER NOT NULL DEFAULT 0 CHECK (count_in_stock >= 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT,
  user_id INTEGER REFERENCES users(id) ON DELETE SET NULL
);
CREATE INDEX IF NOT EXISTS idx_products_user     ON products(user_id);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);

-- Reviews (cascade-deleted with their product)
CREATE TABLE IF NOT EXISTS reviews(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  user_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
  name TEXT,
  rating INTEGER NOT NULL CHECK (rating >= 0),
  comment TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
  payment_method TEXT,
  tax_price NUMERIC CHECK (tax_price IS NULL OR tax_price >= 0),
  shipping_price NUMERIC CHECK (shipping_price IS NULL OR shipping_price >= 0),
  total_price NUMERIC CHECK (total_price IS NULL OR total_price >= 0),
  is_paid INTEGER NOT NULL DEFAULT 0,
  paid_at TEXT,
  is_delivered INTEGER NOT NULL DEFAULT 0,
  delivered_at TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);

-- Shipping addresses (one per order, cascade-deleted with it)
CREATE TABLE IF NOT EXISTS shipping_addresses(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id INTEGER UNIQUE REFERENCES orders(id) ON DELETE CASCADE,
  address TEXT,
  city TEXT,
  postal_code TEXT,
  country TEXT,
  shipping_price NUMERIC CHECK (shipping_price IS NULL OR shipping_price >= 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Order items: product reference is nulled on product deletion, the
-- denormalized name/price/image snapshot keeps the history readable.
CREATE TABLE IF NOT EXISTS order_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER REFERENCES products(id) ON DELETE SET NULL,
  order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  name TEXT,
  qty INTEGER NOT NULL DEFAULT 0 CHECK (qty >= 0),
  price NUMERIC CHECK (price IS NULL OR price >= 0),
  image TEXT
);
CREATE INDEX IF NOT EXISTS idx_order_items_order   ON order_items(order_id);
CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id);
`
	_, err := db.Exec(schema)
	return err
}

// seedIfEmpty inserts demo users and products on a fresh database. Safe to
// run on every start.
func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo users/products")

	hash := func(raw string) string {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return string(h)
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO users(username,email,first_name,last_name,password_hash) VALUES
	  ('alice','alice@storefront.test','Alice','Nguyen',?),
	  ('bob','bob@storefront.test','Bob','Marsh',?),
	  ('admin','admin@storefront.test','Admin','',?)`,
		hash("Passw0rd!"), hash("Passw0rd!"), hash("Passw0rd!"))

	tx.MustExec(`INSERT INTO products(name,image,brand,category,description,rating,num_reviews,price,count_in_stock,updated_at,user_id) VALUES
	  ('Airpods Wireless Bluetooth Headphones','/images/airpods.jpg','Apple','Electronics','Bluetooth technology lets you connect it with compatible devices wirelessly',4.5,12,89.99,5,CURRENT_TIMESTAMP,3),
	  ('iPhone 13 Pro 256GB Memory','/images/phone.jpg','Apple','Electronics','Introducing the iPhone 13 Pro. A transformative triple-camera system.',4.0,8,599.99,7,CURRENT_TIMESTAMP,3),
	  ('Cannon EOS 80D DSLR Camera','/images/camera.jpg','Cannon','Electronics','Characterized by versatile imaging specs',3.0,12,929.99,0,CURRENT_TIMESTAMP,3)`)

	return tx.Commit()
}
