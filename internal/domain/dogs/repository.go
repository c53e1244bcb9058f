package dogs

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven los adapters cuando el id no existe en el store.
var ErrNotFound = errors.New("dog not found")

// Repository es el puerto de persistencia. List preserva el orden de
// inserción del store (la página de listado lo muestra tal cual, sin
// reordenar).
type Repository interface {
	// Create persiste d y devuelve la copia con el ID asignado por el store.
	Create(ctx context.Context, d Dog) (Dog, error)
	GetByID(ctx context.Context, id int64) (Dog, error)
	List(ctx context.Context) ([]Dog, error)
	Update(ctx context.Context, d Dog) error
	Delete(ctx context.Context, id int64) error
}
