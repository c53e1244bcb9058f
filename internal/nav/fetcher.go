package nav

import (
	"context"

	"dog-registry/internal/domain/dogs"
)

// Fetcher trae los datos que una vista necesita. Contrato único para los dos
// contextos de ejecución; lo único que cambia por debajo es el transporte
// hacia la API. No muta estado de navegación.
type Fetcher interface {
	List(ctx context.Context) ([]dogs.Dog, error)
	Get(ctx context.Context, id int64) (dogs.Dog, error)
}

// NotFoundError es el "no existe ese id" reconocido de la API. Message es el
// texto plano del 404 y se propaga sin tocar hasta la página not-found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}
