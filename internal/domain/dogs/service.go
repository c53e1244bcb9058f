package dogs

import (
	"context"
	"time"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Create valida in y persiste. El invariante del recurso: nunca llega al
// store una entidad que no pase Validate.
func (s *Service) Create(ctx context.Context, in RawInput) (Dog, error) {
	name, breed, age, verrs := Validate(in)
	if len(verrs) > 0 {
		return Dog{}, verrs
	}

	now := s.now().UTC()
	d := Dog{
		Name:      name,
		Breed:     breed,
		Age:       age,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.repo.Create(ctx, d)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Dog, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Dog, error) {
	return s.repo.List(ctx)
}

// Update reemplaza los tres campos editables. ID y CreatedAt no se tocan.
func (s *Service) Update(ctx context.Context, id int64, in RawInput) (Dog, error) {
	name, breed, age, verrs := Validate(in)
	if len(verrs) > 0 {
		return Dog{}, verrs
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Dog{}, err
	}

	current.Name = name
	current.Breed = breed
	current.Age = age
	current.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, current); err != nil {
		return Dog{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
