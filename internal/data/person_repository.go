package data

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"booklib/internal/models"
)

const (
	peopleTableName = "people"

	colPersonID      = "id"
	colName          = "name"
	colPhoneNumber   = "phone_number"
	actionAddPerson  = "add person"
	actionGetPerson  = "get person"
	actionListPeople = "list people"
	actionSearchPpl  = "search people"
	actionEditPerson = "update person"
	actionDelPerson  = "delete person"

	peopleSchemaDDL = `
		CREATE TABLE IF NOT EXISTS people (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			phone_number TEXT
		)`
)

// PersonRepository handles all data access for people (borrowers). It owns
// the people table exclusively, including its idempotent schema creation.
type PersonRepository struct {
	repository
}

// NewPersonRepository creates a PersonRepository on the gateway's shared
// connection and ensures the people table exists.
func NewPersonRepository(gateway *Gateway, options ...RepositoryOption) (*PersonRepository, error) {
	base, err := newRepository(gateway, options...)
	if err != nil {
		return nil, err
	}

	repo := &PersonRepository{repository: base}

	if schemaErr := repo.createSchema(context.Background()); schemaErr != nil {
		return nil, schemaErr
	}

	return repo, nil
}

func (r *PersonRepository) createSchema(ctx context.Context) error {
	return r.createTable(ctx, peopleTableName, peopleSchemaDDL)
}

// Add inserts a new person and returns it with its assigned id.
// A name collision is reported as ErrDuplicateKey.
func (r *PersonRepository) Add(ctx context.Context, person models.Person) (models.Person, error) {
	sqlQuery, _, buildErr := r.builder().
		Insert(peopleTableName).
		Rows(goqu.Record{
			colName:        person.Name,
			colPhoneNumber: person.PhoneNumber,
		}).
		ToSQL()
	if buildErr != nil {
		return models.Person{}, buildErr
	}

	result, execErr := r.exec(ctx, actionAddPerson, sqlQuery)
	if execErr != nil {
		return models.Person{}, execErr
	}

	id, idErr := result.LastInsertId()
	if idErr != nil {
		return models.Person{}, idErr
	}

	person.ID = id

	return person, nil
}

// GetByID fetches a person by id; ErrNotFound when absent.
func (r *PersonRepository) GetByID(ctx context.Context, id int64) (models.Person, error) {
	sqlQuery, _, buildErr := r.builder().
		From(peopleTableName).
		Where(goqu.C(colPersonID).Eq(id)).
		ToSQL()
	if buildErr != nil {
		return models.Person{}, buildErr
	}

	var person models.Person
	if getErr := r.get(ctx, &person, actionGetPerson, sqlQuery); getErr != nil {
		return models.Person{}, getErr
	}

	return person, nil
}

// GetByName fetches a person by their exact name; ErrNotFound when absent.
func (r *PersonRepository) GetByName(ctx context.Context, name string) (models.Person, error) {
	sqlQuery, _, buildErr := r.builder().
		From(peopleTableName).
		Where(goqu.C(colName).Eq(name)).
		ToSQL()
	if buildErr != nil {
		return models.Person{}, buildErr
	}

	var person models.Person
	if getErr := r.get(ctx, &person, actionGetPerson, sqlQuery); getErr != nil {
		return models.Person{}, getErr
	}

	return person, nil
}

// GetAll fetches all people in insertion order.
func (r *PersonRepository) GetAll(ctx context.Context) ([]models.Person, error) {
	sqlQuery, _, buildErr := r.builder().
		From(peopleTableName).
		Order(goqu.I(colPersonID).Asc()).
		ToSQL()
	if buildErr != nil {
		return nil, buildErr
	}

	people := make([]models.Person, 0)
	if selectErr := r.selectAll(ctx, &people, actionListPeople, sqlQuery); selectErr != nil {
		return nil, selectErr
	}

	return people, nil
}

// Search fetches people whose name or phone number contains the search term.
func (r *PersonRepository) Search(ctx context.Context, term string) ([]models.Person, error) {
	pattern := "%" + term + "%"

	sqlQuery, _, buildErr := r.builder().
		From(peopleTableName).
		Where(goqu.Or(
			goqu.C(colName).Like(pattern),
			goqu.C(colPhoneNumber).Like(pattern),
		)).
		Order(goqu.I(colPersonID).Asc()).
		ToSQL()
	if buildErr != nil {
		return nil, buildErr
	}

	people := make([]models.Person, 0)
	if selectErr := r.selectAll(ctx, &people, actionSearchPpl, sqlQuery); selectErr != nil {
		return nil, selectErr
	}

	return people, nil
}

// Update applies a partial update: only the fields supplied in the update
// change. ErrNotFound when the id does not exist, ErrDuplicateKey when the
// new name collides with an existing one. An empty update is a no-op.
func (r *PersonRepository) Update(ctx context.Context, id int64, update models.PersonUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	record := goqu.Record{}
	if update.Name != nil {
		record[colName] = *update.Name
	}
	if update.PhoneNumber != nil {
		record[colPhoneNumber] = *update.PhoneNumber
	}

	sqlQuery, _, buildErr := r.builder().
		Update(peopleTableName).
		Set(record).
		Where(goqu.C(colPersonID).Eq(id)).
		ToSQL()
	if buildErr != nil {
		return buildErr
	}

	result, execErr := r.exec(ctx, actionEditPerson, sqlQuery)
	if execErr != nil {
		return execErr
	}

	rowsAffected, rowsErr := result.RowsAffected()
	if rowsErr != nil {
		return rowsErr
	}

	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Delete removes the person with the given id; ErrNotFound when absent.
func (r *PersonRepository) Delete(ctx context.Context, id int64) error {
	sqlQuery, _, buildErr := r.builder().
		Delete(peopleTableName).
		Where(goqu.C(colPersonID).Eq(id)).
		ToSQL()
	if buildErr != nil {
		return buildErr
	}

	result, execErr := r.exec(ctx, actionDelPerson, sqlQuery)
	if execErr != nil {
		return execErr
	}

	rowsAffected, rowsErr := result.RowsAffected()
	if rowsErr != nil {
		return rowsErr
	}

	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}
