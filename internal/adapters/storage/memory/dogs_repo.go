package memory

import (
	"context"
	"sync"

	"dog-registry/internal/domain/dogs"
)

// dogRepo guarda todo en memoria. Además del map mantiene un slice con el
// orden de inserción, porque List debe devolver el orden del store.
type dogRepo struct {
	mu    sync.RWMutex
	seq   int64
	byID  map[int64]dogs.Dog
	order []int64
}

func NewDogRepo() dogs.Repository {
	return &dogRepo{
		byID: make(map[int64]dogs.Dog),
	}
}

func (r *dogRepo) Create(ctx context.Context, d dogs.Dog) (dogs.Dog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	d.ID = r.seq
	r.byID[d.ID] = d
	r.order = append(r.order, d.ID)
	return d, nil
}

func (r *dogRepo) GetByID(ctx context.Context, id int64) (dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return d, nil
}

func (r *dogRepo) List(ctx context.Context) ([]dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dogs.Dog, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *dogRepo) Update(ctx context.Context, d dogs.Dog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[d.ID]; !ok {
		return dogs.ErrNotFound
	}
	r.byID[d.ID] = d
	return nil
}

func (r *dogRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return dogs.ErrNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
