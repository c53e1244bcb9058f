package memory_test

import (
	"context"
	"errors"
	"testing"

	mem "dog-registry/internal/adapters/storage/memory"
	"dog-registry/internal/domain/dogs"
)

func TestDogRepo_ListPreservesInsertionOrder(t *testing.T) {
	repo := mem.NewDogRepo()
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"Zorro", "Aquiles", "Milo"} {
		d, err := repo.Create(ctx, dogs.Dog{Name: name, Breed: "mixed", Age: 1})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		ids = append(ids, d.ID)
	}

	// borrar el del medio no reordena el resto
	if err := repo.Delete(ctx, ids[1]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	d, err := repo.Create(ctx, dogs.Dog{Name: "Nuevo", Breed: "mixed", Age: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	want := []string{"Zorro", "Milo", "Nuevo"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}

	// ids consecutivos, sin reusar el borrado
	if d.ID != ids[2]+1 {
		t.Fatalf("new id = %d, want %d", d.ID, ids[2]+1)
	}
}

func TestDogRepo_NotFound(t *testing.T) {
	repo := mem.NewDogRepo()
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, 999); !errors.Is(err, dogs.ErrNotFound) {
		t.Fatalf("get: err = %v, want ErrNotFound", err)
	}
	if err := repo.Update(ctx, dogs.Dog{ID: 999}); !errors.Is(err, dogs.ErrNotFound) {
		t.Fatalf("update: err = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, 999); !errors.Is(err, dogs.ErrNotFound) {
		t.Fatalf("delete: err = %v, want ErrNotFound", err)
	}
}
