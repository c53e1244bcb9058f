package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dog-registry/internal/domain/dogs"

	_ "modernc.org/sqlite"
)

// Open abre (o crea) la base en path. Driver puro Go, sin cgo; pensado como
// persistencia simple para desarrollo, con el mismo contrato que Postgres.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// sqlite no banca escritores concurrentes sobre una conexión
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS dogs (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			breed      TEXT NOT NULL,
			age        INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	return err
}

type DogsRepo struct {
	db *sql.DB
}

func NewDogsRepo(db *sql.DB) *DogsRepo {
	return &DogsRepo{db: db}
}

func (r *DogsRepo) Create(ctx context.Context, d dogs.Dog) (dogs.Dog, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO dogs (name, breed, age, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		d.Name,
		d.Breed,
		d.Age,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if err != nil {
		return dogs.Dog{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return dogs.Dog{}, err
	}
	d.ID = id
	return d, nil
}

func (r *DogsRepo) GetByID(ctx context.Context, id int64) (dogs.Dog, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, breed, age, created_at, updated_at
		FROM dogs
		WHERE id = ?
	`, id)

	var d dogs.Dog
	if err := row.Scan(&d.ID, &d.Name, &d.Breed, &d.Age, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dogs.Dog{}, dogs.ErrNotFound
		}
		return dogs.Dog{}, err
	}
	return d, nil
}

func (r *DogsRepo) List(ctx context.Context) ([]dogs.Dog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, breed, age, created_at, updated_at
		FROM dogs
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dogs.Dog, 0)
	for rows.Next() {
		var d dogs.Dog
		if err := rows.Scan(&d.ID, &d.Name, &d.Breed, &d.Age, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DogsRepo) Update(ctx context.Context, d dogs.Dog) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dogs
		SET name = ?, breed = ?, age = ?, updated_at = ?
		WHERE id = ?
	`,
		d.Name,
		d.Breed,
		d.Age,
		d.UpdatedAt,
		d.ID,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dogs.ErrNotFound
	}
	return nil
}

func (r *DogsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dogs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dogs.ErrNotFound
	}
	return nil
}
