package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

const reviewCols = `
  r.id, r.product_id, r.user_id, r.name, r.rating, r.comment, r.created_at,
  COALESCE(p.name,'') AS product_name`

func (r *ReviewRepo) Get(id int64) (domain.Review, error) {
	var rv domain.Review
	err := r.db.Get(&rv, `
	  SELECT`+reviewCols+`
	  FROM reviews r
	  LEFT JOIN products p ON p.id = r.product_id
	  WHERE r.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Review{}, fmt.Errorf("review %d: %w", id, domain.ErrNotFound)
	}
	return rv, err
}

func (r *ReviewRepo) ListByProduct(productID int64) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.Select(&out, `
	  SELECT`+reviewCols+`
	  FROM reviews r
	  LEFT JOIN products p ON p.id = r.product_id
	  WHERE r.product_id = ?
	  ORDER BY r.id`, productID)
	return out, err
}

func (r *ReviewRepo) Create(rv *domain.Review) error {
	res, err := r.db.Exec(`
	  INSERT INTO reviews(product_id, user_id, name, rating, comment)
	  VALUES(?, ?, ?, ?, ?)
	`, rv.ProductID, rv.UserID, rv.Name, rv.Rating, rv.Comment)
	if err != nil {
		return err
	}
	rv.ID, err = res.LastInsertId()
	return err
}

// Update touches only the mutable pair (rating, comment); everything else on
// a review is immutable after creation.
func (r *ReviewRepo) Update(rv domain.Review) error {
	res, err := r.db.Exec(`UPDATE reviews SET rating = ?, comment = ? WHERE id = ?`, rv.Rating, rv.Comment, rv.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("review %d: %w", rv.ID, domain.ErrNotFound)
	}
	return err
}

func (r *ReviewRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("review %d: %w", id, domain.ErrNotFound)
	}
	return err
}
