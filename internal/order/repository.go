package order

import (
	"sort"
	"sync"
	"time"

	"github.com/mercado-api/mercado-backend/internal/apperr"
)

var ErrNotFound = apperr.New(apperr.NotFound, "Pedido no encontrado")

type Repository interface {
	// Create persists the order header and all items atomically.
	Create(ord Order, items []Item) (Order, error)
	ListRows(f Filter) ([]Row, error)
	ListByUser(usuarioID int) ([]Order, error)
	UpdateStatus(id int, status string) (Order, error)
}

// RowProduct is the display data the in-memory repository joins into rows.
type RowProduct struct {
	Titulo string
	Imagen *string
}

// InMemoryRepository keeps orders plus the product titles and user names the
// listing join needs. It backs handler and service tests.
type InMemoryRepository struct {
	mu       sync.Mutex
	orders   []Order
	items    map[int][]Item
	products map[int]RowProduct
	names    map[int]string
	nextID   int
}

func NewInMemoryRepository(products map[int]RowProduct, names map[int]string) *InMemoryRepository {
	if products == nil {
		products = map[int]RowProduct{}
	}
	if names == nil {
		names = map[int]string{}
	}
	return &InMemoryRepository{
		items:    make(map[int][]Item),
		products: products,
		names:    names,
		nextID:   1,
	}
}

func (r *InMemoryRepository) Create(ord Order, items []Item) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord.ID = r.nextID
	r.nextID++
	ord.CreatedAt = time.Now().UTC()
	r.orders = append(r.orders, ord)

	stored := make([]Item, 0, len(items))
	for _, it := range items {
		it.PedidoID = ord.ID
		stored = append(stored, it)
	}
	r.items[ord.ID] = stored
	return ord, nil
}

func (r *InMemoryRepository) ListRows(f Filter) ([]Row, error) {
	if f.UsuarioID == nil && f.VendedorID == nil {
		return []Row{}, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]Order, 0)
	for _, ord := range r.orders {
		if f.UsuarioID != nil && ord.UsuarioID != *f.UsuarioID {
			continue
		}
		if f.VendedorID != nil && ord.VendedorID != *f.VendedorID {
			continue
		}
		matched = append(matched, ord)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	rows := make([]Row, 0)
	for _, ord := range matched {
		for _, it := range r.items[ord.ID] {
			p := r.products[it.ProductoID]
			rows = append(rows, Row{
				ID:             ord.ID,
				Total:          ord.Total,
				Status:         ord.Status,
				CreatedAt:      ord.CreatedAt,
				ProductoID:     it.ProductoID,
				Cantidad:       it.Cantidad,
				PrecioUnitario: it.PrecioUnitario,
				Titulo:         p.Titulo,
				Imagen:         p.Imagen,
				UsuarioNombre:  r.names[ord.UsuarioID],
			})
		}
	}
	return rows, nil
}

func (r *InMemoryRepository) ListByUser(usuarioID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.UsuarioID == usuarioID {
			out = append(out, ord)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(id int, status string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			return r.orders[i], nil
		}
	}
	return Order{}, ErrNotFound
}

// ItemsOf exposes the stored items for test assertions.
func (r *InMemoryRepository) ItemsOf(orderID int) []Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Item, len(r.items[orderID]))
	copy(out, r.items[orderID])
	return out
}
