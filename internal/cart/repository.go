package cart

import (
	"sync"

	"github.com/mercado-api/mercado-backend/internal/apperr"
)

var ErrNotFound = apperr.New(apperr.NotFound, "Carrito no encontrado")

type Repository interface {
	GetByUser(usuarioID int) (Cart, error)
	Create(usuarioID int) (Cart, error)
	AddItem(carritoID, productoID, cantidad int) (Item, error)
}

type InMemoryRepository struct {
	mu         sync.Mutex
	carts      []Cart
	items      []Item
	nextCartID int
	nextItemID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextCartID: 1, nextItemID: 1}
}

func (r *InMemoryRepository) GetByUser(usuarioID int) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.carts {
		if c.UsuarioID == usuarioID {
			return c, nil
		}
	}
	return Cart{}, ErrNotFound
}

func (r *InMemoryRepository) Create(usuarioID int) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := Cart{ID: r.nextCartID, UsuarioID: usuarioID}
	r.nextCartID++
	r.carts = append(r.carts, c)
	return c, nil
}

func (r *InMemoryRepository) AddItem(carritoID, productoID, cantidad int) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it := Item{ID: r.nextItemID, CarritoID: carritoID, ProductoID: productoID, Cantidad: cantidad}
	r.nextItemID++
	r.items = append(r.items, it)
	return it, nil
}

// Items exposes the stored items for test assertions.
func (r *InMemoryRepository) Items() []Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}
