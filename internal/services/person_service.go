package services

import (
	"context"
	"errors"

	"booklib/internal/models"
)

var (
	errEmptyPersonName = errors.New("name must not be empty")
	errEmptyUpdate     = errors.New("nothing to update, supply a new name or phone number")
)

// PersonService validates input for borrower operations and delegates to the
// person repository.
type PersonService struct {
	people PersonRepository
}

// NewPersonService creates a PersonService backed by the given repository.
func NewPersonService(people PersonRepository) *PersonService {
	return &PersonService{people: people}
}

// AddNewPerson validates and stores a new borrower. An empty name fails with
// ErrInvalidInput before storage is touched; the phone number is optional.
func (s *PersonService) AddNewPerson(ctx context.Context, name string, phoneNumber string) (models.Person, error) {
	if name == "" {
		return models.Person{}, errors.Join(models.ErrInvalidInput, errEmptyPersonName)
	}

	return s.people.Add(ctx, models.Person{
		Name:        name,
		PhoneNumber: phoneNumber,
	})
}

// UpdatePerson applies a partial update to an existing person. The person is
// loaded first: ErrNotFound when absent, and the repository update is never
// invoked in that case. An update with no fields set fails with
// ErrInvalidInput.
func (s *PersonService) UpdatePerson(ctx context.Context, id int64, update models.PersonUpdate) error {
	if update.IsEmpty() {
		return errors.Join(models.ErrInvalidInput, errEmptyUpdate)
	}

	if _, err := s.people.GetByID(ctx, id); err != nil {
		return err
	}

	return s.people.Update(ctx, id, update)
}

// GetPersonByID fetches one person; ErrNotFound when absent.
func (s *PersonService) GetPersonByID(ctx context.Context, id int64) (models.Person, error) {
	return s.people.GetByID(ctx, id)
}

// GetPersonByName fetches one person by their exact name.
func (s *PersonService) GetPersonByName(ctx context.Context, name string) (models.Person, error) {
	if name == "" {
		return models.Person{}, errors.Join(models.ErrInvalidInput, errEmptyPersonName)
	}

	return s.people.GetByName(ctx, name)
}

// GetAllPeople lists every registered borrower.
func (s *PersonService) GetAllPeople(ctx context.Context) ([]models.Person, error) {
	return s.people.GetAll(ctx)
}

// SearchPeople finds people whose name or phone number contains the term.
func (s *PersonService) SearchPeople(ctx context.Context, term string) ([]models.Person, error) {
	if term == "" {
		return nil, errors.Join(models.ErrInvalidInput, errEmptySearchTerm)
	}

	return s.people.Search(ctx, term)
}
