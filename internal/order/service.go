package order

import (
	"github.com/mercado-api/mercado-backend/internal/apperr"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart    = apperr.New(apperr.Validation, "El carrito está vacío o es inválido")
	ErrUnknownItems = apperr.New(apperr.Validation, "El carrito contiene productos inexistentes")
)

// CartItem is one purchasable line handed to CreateFromCart. Precio and
// VendedorID come from the product as the client last saw it.
type CartItem struct {
	ProductoID int
	Cantidad   int
	Precio     decimal.Decimal
	VendedorID int
}

// ProductChecker verifies product ids in batch before an order is created.
type ProductChecker interface {
	ExistingIDs(ids []int) ([]int, error)
}

type Service struct {
	repo     Repository
	products ProductChecker
}

func NewService(repo Repository, products ProductChecker) *Service {
	return &Service{repo: repo, products: products}
}

// CreateFromCart builds a pending order from the cart lines. The total is the
// sum of precio por cantidad and the seller is taken from the first line.
func (s *Service) CreateFromCart(usuarioID int, cart []CartItem) (Order, error) {
	if len(cart) == 0 {
		return Order{}, ErrEmptyCart
	}

	ids := make([]int, 0, len(cart))
	for _, it := range cart {
		if it.Cantidad < 1 {
			return Order{}, ErrEmptyCart
		}
		ids = append(ids, it.ProductoID)
	}

	existing, err := s.products.ExistingIDs(ids)
	if err != nil {
		return Order{}, err
	}
	known := make(map[int]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}
	for _, id := range ids {
		if !known[id] {
			return Order{}, ErrUnknownItems
		}
	}

	total := decimal.Zero
	items := make([]Item, 0, len(cart))
	for _, it := range cart {
		total = total.Add(it.Precio.Mul(decimal.NewFromInt(int64(it.Cantidad))))
		items = append(items, Item{
			ProductoID:     it.ProductoID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.Precio,
		})
	}

	ord := Order{
		UsuarioID:  usuarioID,
		VendedorID: cart[0].VendedorID,
		Total:      total,
		Status:     StatusPending,
	}
	return s.repo.Create(ord, items)
}

func (s *Service) ListRows(f Filter) ([]Row, error) {
	return s.repo.ListRows(f)
}

func (s *Service) ListByUser(usuarioID int) ([]Order, error) {
	return s.repo.ListByUser(usuarioID)
}

func (s *Service) UpdateStatus(id int, status string) (Order, error) {
	return s.repo.UpdateStatus(id, status)
}
