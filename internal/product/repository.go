package product

import (
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mercado-api/mercado-backend/internal/apperr"
)

var ErrNotFound = apperr.New(apperr.NotFound, "Producto no encontrado")

type Repository interface {
	List(p ListParams) ([]Product, error)
	Count() (int, error)
	Filter(f Filters) ([]Product, error)
	GetByID(id int) (Product, error)
	// ExistingIDs reports which of the given product ids are present.
	ExistingIDs(ids []int) ([]int, error)
	Create(p Product) (Product, error)
	Update(id int, u Update) (Product, error)
	Delete(id int) error
	Rate(productoID, usuarioID, rating int) (Rating, error)
}

// InMemoryRepository mirrors the Postgres behaviour closely enough for
// handler and service tests, including average-rating aggregation.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
	ratings map[[2]int]int // (productoID, usuarioID) -> rating
	nextID  int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Product, 0, len(seed)),
		ratings: make(map[[2]int]int),
	}

	maxID := 0
	for _, p := range seed {
		r.storage = append(r.storage, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) avgRating(productoID int) decimal.Decimal {
	sum, n := 0, 0
	for key, v := range r.ratings {
		if key[0] == productoID {
			sum += v
			n++
		}
	}
	if n == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(n)))
}

func (r *InMemoryRepository) List(p ListParams) ([]Product, error) {
	if p.Limit < 1 || p.Page < 1 {
		return nil, ErrInvalidPagination
	}
	if _, err := orderClause(p.OrderBy); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(r.storage))
	for _, prod := range r.storage {
		if p.VendedorID != nil && prod.VendedorID != *p.VendedorID {
			continue
		}
		prod.Rating = r.avgRating(prod.ID)
		out = append(out, prod)
	}
	sortProducts(out, p.OrderBy)

	offset := (p.Page - 1) * p.Limit
	if offset >= len(out) {
		return []Product{}, nil
	}
	end := offset + p.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (r *InMemoryRepository) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.storage), nil
}

func (r *InMemoryRepository) Filter(f Filters) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0)
	for _, prod := range r.storage {
		if f.PrecioMax != nil && prod.Precio.GreaterThan(*f.PrecioMax) {
			continue
		}
		if f.PrecioMin != nil && prod.Precio.LessThan(*f.PrecioMin) {
			continue
		}
		if f.CategoriaID != nil && prod.CategoriaID != *f.CategoriaID {
			continue
		}
		if f.VendedorID != nil && prod.VendedorID != *f.VendedorID {
			continue
		}
		prod.Rating = r.avgRating(prod.ID)
		out = append(out, prod)
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, prod := range r.storage {
		if prod.ID == id {
			prod.Rating = r.avgRating(id)
			return prod, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) ExistingIDs(ids []int) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	present := make(map[int]bool, len(r.storage))
	for _, prod := range r.storage {
		present[prod.ID] = true
	}
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if present[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id int, u Update) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.storage {
		if r.storage[i].ID != id {
			continue
		}
		prod := &r.storage[i]
		if u.Titulo != nil {
			prod.Titulo = *u.Titulo
		}
		if u.Descripcion != nil {
			prod.Descripcion = *u.Descripcion
		}
		if u.Precio != nil {
			prod.Precio = *u.Precio
		}
		if u.CategoriaID != nil {
			prod.CategoriaID = *u.CategoriaID
		}
		if u.Size != nil {
			prod.Size = u.Size
		}
		if u.Stock != nil {
			prod.Stock = u.Stock
		}
		if u.Imagen != nil {
			prod.Imagen = u.Imagen
		}
		return *prod, nil
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Rate(productoID, usuarioID, rating int) (Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := false
	for _, prod := range r.storage {
		if prod.ID == productoID {
			found = true
			break
		}
	}
	if !found {
		return Rating{}, ErrNotFound
	}

	r.ratings[[2]int{productoID, usuarioID}] = rating
	return Rating{ProductoID: productoID, UsuarioID: usuarioID, Rating: rating}, nil
}

// RatingFor exposes the stored rating for test assertions.
func (r *InMemoryRepository) RatingFor(productoID, usuarioID int) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.ratings[[2]int{productoID, usuarioID}]
	return v, ok
}

func sortProducts(products []Product, token string) {
	field, dir := "id", "ASC"
	if token != "" {
		if i := strings.LastIndex(token, "_"); i > 0 {
			field, dir = token[:i], token[i+1:]
		}
	}
	less := func(a, b Product) bool { return a.ID < b.ID }
	switch field {
	case "titulo":
		less = func(a, b Product) bool { return a.Titulo < b.Titulo }
	case "precio":
		less = func(a, b Product) bool { return a.Precio.LessThan(b.Precio) }
	case "stock":
		less = func(a, b Product) bool {
			av, bv := 0, 0
			if a.Stock != nil {
				av = *a.Stock
			}
			if b.Stock != nil {
				bv = *b.Stock
			}
			return av < bv
		}
	case "rating":
		less = func(a, b Product) bool { return a.Rating.LessThan(b.Rating) }
	}
	sort.SliceStable(products, func(i, j int) bool {
		if dir == "DESC" {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}
