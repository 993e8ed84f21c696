package category

import "sync"

type Repository interface {
	List() ([]Category, error)
	Create(nombre string) (Category, error)
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Category
	nextID  int
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Category, 0, len(seed))}

	maxID := 0
	for _, cat := range seed {
		r.storage = append(r.storage, cat)
		if cat.ID > maxID {
			maxID = cat.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) Create(nombre string) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cat := Category{ID: r.nextID, Nombre: nombre}
	r.nextID++
	r.storage = append(r.storage, cat)
	return cat, nil
}
