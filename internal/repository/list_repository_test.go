package repository_test

import (
	"context"
	"errors"
	"testing"

	"flowtasks/internal/model"
	"flowtasks/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestListRepository_All(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewListRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "lists" ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "color", "position"}).
			AddRow(1, "Work", "#6366f1", 1).
			AddRow(2, "Personal", "#10b981", 2))

	// Act
	lists, err := repo.All(context.Background())

	// Assert
	assert.NoError(t, err)
	assert.Len(t, lists, 2)
	assert.Equal(t, model.ListKey("personal"), lists[1].Key())
	assert.Equal(t, 2, lists[1].Order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_Insert(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewListRepository(gormDB)
	list := &model.List{Name: "Shopping", Color: "#f59e0b", Order: 3}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "lists"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	// Act
	err := repo.Insert(context.Background(), list)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, model.ID(3), list.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_Get_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewListRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "lists" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// Act
	_, err := repo.Get(context.Background(), 42)

	// Assert
	assert.ErrorIs(t, err, repository.ErrListNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_Save_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewListRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "lists" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// Act
	err := repo.Save(context.Background(), model.List{ID: 42, Name: "Ghost", Color: "#000000", Order: 1})

	// Assert
	assert.ErrorIs(t, err, repository.ErrListNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_Delete(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewListRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "lists" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "color", "position"}).
			AddRow(2, "Personal", "#10b981", 2))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "lists" WHERE id = .*`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	removed, err := repo.Delete(context.Background(), 2)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "Personal", removed.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_DeleteCascade(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewListRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "lists" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "color", "position"}).
			AddRow(2, "Personal", "#10b981", 2))
	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE list_id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "list_id", "position"}).
			AddRow(4, "Call mom", "personal", 1))
	mock.ExpectExec(`DELETE FROM "tasks" WHERE list_id = .*`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "lists" WHERE id = .*`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	list, removed, err := repo.DeleteCascade(context.Background(), 2)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "Personal", list.Name)
	assert.Len(t, removed, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_DeleteCascade_RollsBack(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewListRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "lists" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "color", "position"}).
			AddRow(2, "Personal", "#10b981", 2))
	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE list_id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "list_id", "position"}).
			AddRow(4, "Call mom", "personal", 1))
	mock.ExpectExec(`DELETE FROM "tasks" WHERE list_id = .*`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "lists" WHERE id = .*`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	// Act
	_, _, err := repo.DeleteCascade(context.Background(), 2)

	// Assert
	assert.EqualError(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_DeleteCascade_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewListRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "lists" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	// Act
	_, _, err := repo.DeleteCascade(context.Background(), 42)

	// Assert
	assert.ErrorIs(t, err, repository.ErrListNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
