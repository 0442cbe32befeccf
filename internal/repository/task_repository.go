package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"flowtasks/internal/model"
)

// TaskRepository stores tasks in postgres through gorm
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// All retrieves every task in insertion order
func (r *TaskRepository) All(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).Order("id").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// Get retrieves a task by its ID
func (r *TaskRepository) Get(ctx context.Context, id model.ID) (model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.Task{}, ErrTaskNotFound
		}
		return model.Task{}, result.Error
	}
	return task, nil
}

// Insert adds a new task; postgres assigns the ID
func (r *TaskRepository) Insert(ctx context.Context, task *model.Task) error {
	task.ID = 0
	return r.db.WithContext(ctx).Create(task).Error
}

// Save overwrites an existing task
func (r *TaskRepository) Save(ctx context.Context, task model.Task) error {
	return saveTask(r.db.WithContext(ctx), task)
}

// SaveAll overwrites several tasks in one transaction
func (r *TaskRepository) SaveAll(ctx context.Context, tasks []model.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, task := range tasks {
			if err := saveTask(tx, task); err != nil {
				return err
			}
		}
		return nil
	})
}

func saveTask(tx *gorm.DB, task model.Task) error {
	result := tx.Model(&model.Task{ID: task.ID}).
		Select("*").
		Omit("id", "created_at").
		Updates(&task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task by its ID and returns the removed row
func (r *TaskRepository) Delete(ctx context.Context, id model.ID) (model.Task, error) {
	var removed model.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&removed, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}
		result := tx.Delete(&model.Task{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaskNotFound
		}
		return nil
	})
	if err != nil {
		return model.Task{}, err
	}
	return removed, nil
}

// DeleteByList removes every task that belongs to a list
func (r *TaskRepository) DeleteByList(ctx context.Context, key model.ListKey) ([]model.Task, error) {
	var removed []model.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", key).Order("id").Find(&removed).Error; err != nil {
			return err
		}
		if len(removed) == 0 {
			return nil
		}
		return tx.Where("list_id = ?", key).Delete(&model.Task{}).Error
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
