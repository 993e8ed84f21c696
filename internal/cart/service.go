package cart

import "errors"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddProduct inserts an item into the user's cart, creating the cart on
// first use.
func (s *Service) AddProduct(usuarioID, productoID, cantidad int) (Item, error) {
	c, err := s.repo.GetByUser(usuarioID)
	if errors.Is(err, ErrNotFound) {
		c, err = s.repo.Create(usuarioID)
	}
	if err != nil {
		return Item{}, err
	}

	return s.repo.AddItem(c.ID, productoID, cantidad)
}
