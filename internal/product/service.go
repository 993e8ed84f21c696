package product

import "github.com/mercado-api/mercado-backend/internal/apperr"

var ErrInvalidRating = apperr.New(apperr.Validation, "Datos inválidos: rating debe ser entre 1 y 5")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(p ListParams) ([]Product, error) {
	if p.Limit < 1 || p.Page < 1 {
		return nil, ErrInvalidPagination
	}
	return s.repo.List(p)
}

func (s *Service) Count() (int, error) {
	return s.repo.Count()
}

func (s *Service) Filter(f Filters) ([]Product, error) {
	return s.repo.Filter(f)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ExistingIDs(ids []int) ([]int, error) {
	return s.repo.ExistingIDs(ids)
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

func (s *Service) Update(id int, u Update) (Product, error) {
	return s.repo.Update(id, u)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

// Rate upserts one user's rating for a product; a second rating from the
// same user overwrites the first.
func (s *Service) Rate(productoID, usuarioID, rating int) (Rating, error) {
	if rating < 1 || rating > 5 {
		return Rating{}, ErrInvalidRating
	}
	return s.repo.Rate(productoID, usuarioID, rating)
}
