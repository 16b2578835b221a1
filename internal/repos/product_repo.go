package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, name, image, brand, category, description,
  rating, num_reviews, price, count_in_stock,
  created_at, COALESCE(updated_at,'') AS updated_at, user_id`

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT`+productCols+` FROM products ORDER BY id`)
	return out, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return p, err
}

func (r *ProductRepo) Exists(id int64) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE id = ?`, id); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts the row and fills in the generated id. Timestamps are set by
// the store, not by the caller.
func (r *ProductRepo) Create(p *domain.Product) error {
	res, err := r.db.Exec(`
	  INSERT INTO products(name, image, brand, category, description, rating, num_reviews, price, count_in_stock, updated_at, user_id)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, ?)
	`, p.Name, p.Image, p.Brand, p.Category, p.Description, p.Rating, p.NumReviews, p.Price, p.CountInStock, p.UserID)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

// Update writes every mutable column; field-by-field merging happens in the
// service before this is called.
func (r *ProductRepo) Update(p domain.Product) error {
	res, err := r.db.Exec(`
	  UPDATE products SET
	    name = ?, image = ?, brand = ?, category = ?, description = ?,
	    rating = ?, num_reviews = ?, price = ?, count_in_stock = ?,
	    updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, p.Name, p.Image, p.Brand, p.Category, p.Description, p.Rating, p.NumReviews, p.Price, p.CountInStock, p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("product %d: %w", p.ID, domain.ErrNotFound)
	}
	return err
}

func (r *ProductRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return err
}
