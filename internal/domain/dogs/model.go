package dogs

import "time"

// Dog es el recurso gestionado. El ID lo asigna el store (entero positivo
// consecutivo) y es inmutable, igual que los timestamps.
type Dog struct {
	ID    int64
	Name  string
	Breed string
	Age   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RawInput son los valores tal cual llegaron del cliente (formulario o JSON).
// Age viaja como string porque los formularios html mandan todo como texto;
// la validación se encarga de convertirlo.
type RawInput struct {
	Name  string
	Breed string
	Age   string
}
