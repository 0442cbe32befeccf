package repository

import (
	"context"
	"errors"

	"flowtasks/internal/model"

	"gorm.io/gorm"
)

// ListRepository stores lists in postgres through gorm
type ListRepository struct {
	db *gorm.DB
}

func NewListRepository(db *gorm.DB) *ListRepository {
	return &ListRepository{db: db}
}

func (r *ListRepository) All(ctx context.Context) ([]model.List, error) {
	var lists []model.List
	err := r.db.WithContext(ctx).Order("id").Find(&lists).Error
	return lists, err
}

func (r *ListRepository) Get(ctx context.Context, id model.ID) (model.List, error) {
	var list model.List
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.List{}, ErrListNotFound
		}
		return model.List{}, err
	}
	return list, nil
}

func (r *ListRepository) Insert(ctx context.Context, list *model.List) error {
	list.ID = 0
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *ListRepository) Save(ctx context.Context, list model.List) error {
	result := r.db.WithContext(ctx).Model(&model.List{ID: list.ID}).
		Select("name", "color", "position").
		Updates(&list)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListNotFound
	}
	return nil
}

func (r *ListRepository) Delete(ctx context.Context, id model.ID) (model.List, error) {
	list, err := r.Get(ctx, id)
	if err != nil {
		return model.List{}, err
	}
	result := r.db.WithContext(ctx).Delete(&model.List{}, "id = ?", id)
	if result.Error != nil {
		return model.List{}, result.Error
	}
	if result.RowsAffected == 0 {
		return model.List{}, ErrListNotFound
	}
	return list, nil
}

// DeleteCascade removes a list together with its tasks in one transaction
func (r *ListRepository) DeleteCascade(ctx context.Context, id model.ID) (model.List, []model.Task, error) {
	var list model.List
	var removed []model.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&list, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListNotFound
			}
			return err
		}
		key := list.Key()
		if err := tx.Where("list_id = ?", key).Order("id").Find(&removed).Error; err != nil {
			return err
		}
		if len(removed) > 0 {
			if err := tx.Where("list_id = ?", key).Delete(&model.Task{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.List{}, "id = ?", id).Error
	})
	if err != nil {
		return model.List{}, nil, err
	}
	return list, removed, nil
}

// Migrate creates or updates the tables both repositories use
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.List{}, &model.Task{})
}
