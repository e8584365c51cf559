package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"booklib/internal/models"
	"booklib/internal/services"
)

func Test_AddNewPerson_StoresThePerson(t *testing.T) {
	// arrange
	spy := &personRepoSpy{}
	service := services.NewPersonService(spy)

	// act
	person, err := service.AddNewPerson(context.Background(), "Ada Lovelace", "555-1000")

	// assert
	assert.NoError(t, err)
	assert.NotZero(t, person.ID)
	assert.Equal(t, "Ada Lovelace", person.Name)
	assert.Equal(t, 1, spy.addCalls)
}

func Test_AddNewPerson_When_TheNameIsEmpty_NeverInvokesStorage(t *testing.T) {
	// arrange
	spy := &personRepoSpy{}
	service := services.NewPersonService(spy)

	// act
	_, err := service.AddNewPerson(context.Background(), "", "555-1000")

	// assert
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Zero(t, spy.addCalls)
}

func Test_AddNewPerson_When_ThePhoneIsEmpty_IsAccepted(t *testing.T) {
	// arrange
	service := services.NewPersonService(&personRepoSpy{})

	// act
	person, err := service.AddNewPerson(context.Background(), "Grace Hopper", "")

	// assert
	assert.NoError(t, err)
	assert.Empty(t, person.PhoneNumber)
}

func Test_UpdatePerson_When_ThePersonDoesNotExist_NeverInvokesTheUpdate(t *testing.T) {
	// arrange
	spy := &personRepoSpy{} // GetByID reports not found by default
	service := services.NewPersonService(spy)

	newName := "Renamed"

	// act
	err := service.UpdatePerson(context.Background(), 999, models.PersonUpdate{Name: &newName})

	// assert
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Zero(t, spy.updateCalls, "the store update must not be invoked")
}

func Test_UpdatePerson_When_NoFieldsAreSupplied(t *testing.T) {
	// arrange
	spy := &personRepoSpy{}
	service := services.NewPersonService(spy)

	// act
	err := service.UpdatePerson(context.Background(), 1, models.PersonUpdate{})

	// assert
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Zero(t, spy.updateCalls)
}

func Test_UpdatePerson_DelegatesThePartialUpdate(t *testing.T) {
	// arrange
	spy := &personRepoSpy{
		getByIDFunc: func(id int64) (models.Person, error) {
			return models.Person{ID: id, Name: "Ada Lovelace"}, nil
		},
	}
	service := services.NewPersonService(spy)

	newPhone := "555-9999"

	// act
	err := service.UpdatePerson(context.Background(), 1, models.PersonUpdate{PhoneNumber: &newPhone})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, spy.updateCalls)
}

func Test_GetPersonByName_When_TheNameIsEmpty(t *testing.T) {
	// arrange
	service := services.NewPersonService(&personRepoSpy{})

	// act
	_, err := service.GetPersonByName(context.Background(), "")

	// assert
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func Test_SearchPeople_When_TheTermIsEmpty(t *testing.T) {
	// arrange
	service := services.NewPersonService(&personRepoSpy{})

	// act
	_, err := service.SearchPeople(context.Background(), "")

	// assert
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
