package repository_test

import (
	"context"
	"testing"
	"time"

	"flowtasks/internal/model"
	"flowtasks/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func TestTaskRepository_Get_Found(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewTaskRepository(gormDB)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "priority", "list_id", "completed", "created_at", "position"}).
			AddRow(7, "Write report", "", "high", "work", false, created, 2))

	// Act
	task, err := repo.Get(context.Background(), 7)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, model.ID(7), task.ID)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, model.PriorityHigh, task.Priority)
	assert.Equal(t, model.ListKey("work"), task.ListID)
	assert.Equal(t, 2, task.Order)
	assert.Nil(t, task.DueDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Get_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewTaskRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// Act
	_, err := repo.Get(context.Background(), 9999)

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Insert(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewTaskRepository(gormDB)

	task := &model.Task{
		Title:     "Buy milk",
		Priority:  model.PriorityMedium,
		ListID:    "shopping",
		CreatedAt: time.Now(),
		Order:     1,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectCommit()

	// Act
	err := repo.Insert(context.Background(), task)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, model.ID(12), task.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Save_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewTaskRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// Act
	err := repo.Save(context.Background(), model.Task{ID: 9999, Title: "ghost", ListID: "work", Order: 1})

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewTaskRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	// Act
	_, err := repo.Delete(context.Background(), 9999)

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
