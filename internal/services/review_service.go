package services

import (
	"database/sql"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/validate"
)

type ReviewService struct {
	Reviews *repos.ReviewRepo
	Prods   *repos.ProductRepo
	Users   *repos.UserRepo
}

func NewReviewService(reviews *repos.ReviewRepo, prods *repos.ProductRepo, users *repos.UserRepo) *ReviewService {
	return &ReviewService{Reviews: reviews, Prods: prods, Users: users}
}

func (s *ReviewService) Get(id int64) (domain.Review, error) {
	return s.Reviews.Get(id)
}

func (s *ReviewService) ListByProduct(productID int64) ([]domain.Review, error) {
	if ok, err := s.Prods.Exists(productID); err != nil {
		return nil, err
	} else if !ok {
		return nil, domain.ErrNotFound
	}
	return s.Reviews.ListByProduct(productID)
}

func (s *ReviewService) Create(in validate.ReviewInput) (domain.Review, error) {
	if err := in.Validate(false); err != nil {
		return domain.Review{}, err
	}
	// Relation targets must exist before anything is written; a dangling
	// reference is a field-scoped error, same as any other bad value.
	fe := validate.FieldErrors{}
	if ok, err := s.Prods.Exists(*in.Product); err != nil {
		return domain.Review{}, err
	} else if !ok {
		fe["product"] = []string{validate.NotFoundRef(*in.Product)}
	}
	if ok, err := s.Users.Exists(*in.User); err != nil {
		return domain.Review{}, err
	} else if !ok {
		fe["user"] = []string{validate.NotFoundRef(*in.User)}
	}
	if len(fe) > 0 {
		return domain.Review{}, fe
	}

	rv := domain.Review{
		ProductID: *in.Product,
		UserID:    sql.NullInt64{Int64: *in.User, Valid: true},
		Rating:    *in.Rating,
		Name:      sql.NullString{String: *in.Name, Valid: true},
	}
	if in.Comment != nil {
		rv.Comment = sql.NullString{String: *in.Comment, Valid: true}
	}
	if err := s.Reviews.Create(&rv); err != nil {
		return domain.Review{}, err
	}
	return s.Reviews.Get(rv.ID)
}

// Update merges only rating and comment; the product, user, name and
// timestamp of a review are immutable.
func (s *ReviewService) Update(id int64, in validate.ReviewInput) (domain.Review, error) {
	if err := in.Validate(true); err != nil {
		return domain.Review{}, err
	}
	rv, err := s.Reviews.Get(id)
	if err != nil {
		return domain.Review{}, err
	}
	if in.Rating != nil {
		rv.Rating = *in.Rating
	}
	if in.Comment != nil {
		rv.Comment = sql.NullString{String: *in.Comment, Valid: true}
	}
	if err := s.Reviews.Update(rv); err != nil {
		return domain.Review{}, err
	}
	return s.Reviews.Get(id)
}

// Detail resolves the nested representations: the product expanded to its
// flat shape and the submitting user, when still present.
func (s *ReviewService) Detail(id int64) (domain.Review, domain.Product, *domain.User, error) {
	rv, err := s.Reviews.Get(id)
	if err != nil {
		return domain.Review{}, domain.Product{}, nil, err
	}
	p, err := s.Prods.Get(rv.ProductID)
	if err != nil {
		return domain.Review{}, domain.Product{}, nil, err
	}
	var u *domain.User
	if rv.UserID.Valid {
		user, err := s.Users.ByID(rv.UserID.Int64)
		if err == nil {
			u = &user
		}
	}
	return rv, p, u, nil
}
