package usertype

import "sync"

type Repository interface {
	List() ([]UserType, error)
	Create(nombre string) (UserType, error)
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []UserType
	nextID  int
}

func NewInMemoryRepository(seed []UserType) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]UserType, 0, len(seed))}

	maxID := 0
	for _, ut := range seed {
		r.storage = append(r.storage, ut)
		if ut.ID > maxID {
			maxID = ut.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() ([]UserType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]UserType, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) Create(nombre string) (UserType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ut := UserType{ID: r.nextID, Nombre: nombre}
	r.nextID++
	r.storage = append(r.storage, ut)
	return ut, nil
}
