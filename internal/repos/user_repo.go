package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) ByID(id int64) (domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `SELECT id, username, email, first_name, last_name, password_hash FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return u, err
}

func (r *UserRepo) List() ([]domain.User, error) {
	var out []domain.User
	err := r.db.Select(&out, `SELECT id, username, email, first_name, last_name, password_hash FROM users ORDER BY id`)
	return out, err
}

func (r *UserRepo) Exists(id int64) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM users WHERE id = ?`, id); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes the user row. Products, reviews and orders that point at it
// keep their rows and get a null reference through the declared ON DELETE
// SET NULL actions.
func (r *UserRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return err
}
